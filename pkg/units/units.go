// Package units provides the physical scalar types used by the dive gas
// calculators: depth in meters, pressure in bar and density in kg/m³.
// Conversions to SI quantities go through gonum's unit package.
package units

import (
	"fmt"

	"gonum.org/v1/gonum/unit"
)

const (
	// PascalsPerBar is the number of pascals in one bar
	PascalsPerBar = 1e5

	// BarsPerAtmosphere is the number of bars in one standard atmosphere (101325 Pa)
	BarsPerAtmosphere = 1.01325
)

// Depth is a length below the water surface, in meters
type Depth float64

// Pressure is always carried in bar. Negative values are representable so
// that calculators can reject them explicitly.
type Pressure float64

// Density is a mass density in kg/m³
type Density float64

// DepthFromMeters returns a depth of m meters
func DepthFromMeters(m float64) Depth {
	return Depth(m)
}

// DepthFromLength converts a gonum length (meters) into a depth
func DepthFromLength(l unit.Length) Depth {
	return Depth(float64(l))
}

// Meters returns the depth in meters
func (d Depth) Meters() float64 {
	return float64(d)
}

// Length returns the depth as a gonum SI length
func (d Depth) Length() unit.Length {
	return unit.Length(float64(d))
}

func (d Depth) String() string {
	return fmt.Sprintf("%g m", float64(d))
}

// PressureFromBars returns a pressure of b bar
func PressureFromBars(b float64) Pressure {
	return Pressure(b)
}

// PressureFromAtmospheres converts standard atmospheres into a pressure
func PressureFromAtmospheres(atm float64) Pressure {
	return Pressure(atm * BarsPerAtmosphere)
}

// PressureFromPascals converts a gonum SI pressure into bar
func PressureFromPascals(p unit.Pressure) Pressure {
	return Pressure(float64(p) / PascalsPerBar)
}

// Bars returns the pressure in bar
func (p Pressure) Bars() float64 {
	return float64(p)
}

// Atmospheres returns the pressure in standard atmospheres
func (p Pressure) Atmospheres() float64 {
	return float64(p) / BarsPerAtmosphere
}

// Pascals returns the pressure as a gonum SI pressure
func (p Pressure) Pascals() unit.Pressure {
	return unit.Pressure(float64(p) * PascalsPerBar)
}

func (p Pressure) String() string {
	return fmt.Sprintf("%g bar", float64(p))
}

// DensityFromKilogramsPerCubicMeter returns a density of kg kg/m³
func DensityFromKilogramsPerCubicMeter(kg float64) Density {
	return Density(kg)
}

// KilogramsPerCubicMeter returns the density in kg/m³
func (d Density) KilogramsPerCubicMeter() float64 {
	return float64(d)
}

// Unit returns the density as a dimensioned gonum quantity (kg·m⁻³)
func (d Density) Unit() *unit.Unit {
	return unit.New(float64(d), unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3})
}

func (d Density) String() string {
	return fmt.Sprintf("%g kg/m³", float64(d))
}
