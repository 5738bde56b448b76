package nitrox

import (
	"fmt"

	"github.com/chrissnell/divegas/pkg/units"
	"github.com/chrissnell/divegas/pkg/validation"
	"gonum.org/v1/gonum/unit"
)

// AmbientPressure is the default AmbientPressureCalculator
type AmbientPressure struct{}

// CalculateAmbientPressure returns the surface pressure plus the pressure of
// the water column above depth.
func (AmbientPressure) CalculateAmbientPressure(depth units.Depth, waterDensity units.Density) (units.Pressure, error) {
	// Negated comparisons so that NaN is rejected as well
	if !(depth >= 0) {
		return 0, validation.InvalidArgument("depth", depth, "Depth must be non-negative.")
	}

	if !(waterDensity > 0) {
		return 0, validation.InvalidArgument("waterDensity", waterDensity, "Water density must be larger than zero.")
	}

	column, err := waterPressure(depth, waterDensity)
	if err != nil {
		return 0, err
	}

	return SurfacePressure + column, nil
}

// waterPressure computes ρ·g·h as a dimensioned quantity and converts it to
// bar. The conversion fails unless the product reduces to kg·m⁻¹·s⁻².
func waterPressure(depth units.Depth, waterDensity units.Density) (units.Pressure, error) {
	column := waterDensity.Unit().
		Mul(unit.Acceleration(Gravity)).
		Mul(depth.Length())

	var pa unit.Pressure
	if err := pa.From(column); err != nil {
		return 0, fmt.Errorf("water column pressure: %w", err)
	}
	return units.PressureFromPascals(pa), nil
}
