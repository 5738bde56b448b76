// Package nitrox provides the single-point physical calculations used when
// planning a nitrox dive: ambient pressure at depth, partial pressure of a
// gas component, maximum operating depth and the best mix for a depth.
//
// All calculators are stateless and safe for concurrent use.
package nitrox

import (
	"github.com/chrissnell/divegas/pkg/gas"
	"github.com/chrissnell/divegas/pkg/units"
)

// AmbientPressureCalculator calculates the total pressure (atmosphere plus
// water column) at a depth.
type AmbientPressureCalculator interface {
	CalculateAmbientPressure(depth units.Depth, waterDensity units.Density) (units.Pressure, error)
}

// PartialPressureCalculator calculates the partial pressure of one
// component of a gas mixture at a given ambient pressure.
type PartialPressureCalculator interface {
	CalculatePartialPressure(ambientPressure units.Pressure, fraction float64) (units.Pressure, error)
}

// MaximumOperatingDepthCalculator calculates the deepest depth at which a
// mix keeps its oxygen partial pressure within partialPressureLimit.
type MaximumOperatingDepthCalculator interface {
	CalculateMaximumOperatingDepth(partialPressureLimit units.Pressure, oxygenFraction float64) (units.Depth, error)
}

// BestNitroxForDepthCalculator calculates the richest nitrox mix that stays
// at the desired oxygen partial pressure at depth.
type BestNitroxForDepthCalculator interface {
	CalculateBestNitroxForDepth(depth units.Depth, desiredPartialPressureOfOxygen units.Pressure, waterDensity units.Density) (gas.NitroxGas, error)
}

// Calculators holds one implementation of each calculator
type Calculators struct {
	AmbientPressure       AmbientPressureCalculator
	PartialPressure       PartialPressureCalculator
	MaximumOperatingDepth MaximumOperatingDepthCalculator
	BestNitroxForDepth    BestNitroxForDepthCalculator
}

// NewCalculators returns the default implementations wired together
func NewCalculators() *Calculators {
	ambient := &AmbientPressure{}
	return &Calculators{
		AmbientPressure:       ambient,
		PartialPressure:       &PartialPressure{},
		MaximumOperatingDepth: &MaximumOperatingDepth{},
		BestNitroxForDepth:    NewBestNitroxForDepth(ambient),
	}
}
