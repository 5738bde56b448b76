package nitrox

import (
	"fmt"
	"math"

	"github.com/chrissnell/divegas/pkg/gas"
	"github.com/chrissnell/divegas/pkg/units"
	"github.com/chrissnell/divegas/pkg/validation"
	"github.com/shopspring/decimal"
)

// BestNitroxForDepth is the default BestNitroxForDepthCalculator
type BestNitroxForDepth struct {
	ambient AmbientPressureCalculator
}

// NewBestNitroxForDepth returns a calculator that obtains ambient pressure
// from ambient.
func NewBestNitroxForDepth(ambient AmbientPressureCalculator) *BestNitroxForDepth {
	return &BestNitroxForDepth{ambient: ambient}
}

// CalculateBestNitroxForDepth divides the desired oxygen partial pressure by
// the ambient pressure at depth. A result above 1 means pure oxygen already
// meets the target, so the fraction is clamped to 1.
func (b *BestNitroxForDepth) CalculateBestNitroxForDepth(depth units.Depth, desiredPartialPressureOfOxygen units.Pressure, waterDensity units.Density) (gas.NitroxGas, error) {
	if !(depth >= 0) {
		return gas.NitroxGas{}, validation.InvalidArgument("depth", depth,
			fmt.Sprintf("Depth must be non-negative, got %v.", depth))
	}

	if !(desiredPartialPressureOfOxygen >= 0) {
		return gas.NitroxGas{}, validation.InvalidArgument("partialPressureOfOxygen", desiredPartialPressureOfOxygen,
			fmt.Sprintf("Partial pressure of oxygen must be non-negative, got %v.", desiredPartialPressureOfOxygen))
	}

	if !(waterDensity >= 0) {
		return gas.NitroxGas{}, validation.InvalidArgument("waterDensity", waterDensity,
			fmt.Sprintf("Water density must be non-negative, got %v.", waterDensity))
	}

	ambientPressure, err := b.ambient.CalculateAmbientPressure(depth, waterDensity)
	if err != nil {
		return gas.NitroxGas{}, err
	}

	if !(ambientPressure > 0) || math.IsInf(ambientPressure.Bars(), 0) {
		return gas.NitroxGas{}, validation.InvalidArgument("ambientPressure", ambientPressure,
			fmt.Sprintf("Ambient pressure must be larger than zero and finite, got %v.", ambientPressure))
	}

	// decimal can't represent infinities
	if math.IsInf(desiredPartialPressureOfOxygen.Bars(), 0) {
		return gas.NitroxGas{}, validation.InvalidArgument("partialPressureOfOxygen", desiredPartialPressureOfOxygen,
			fmt.Sprintf("Partial pressure of oxygen must be finite, got %v.", desiredPartialPressureOfOxygen))
	}

	oxygenFraction := decimal.NewFromFloat(desiredPartialPressureOfOxygen.Bars()).
		Div(decimal.NewFromFloat(ambientPressure.Bars()))

	if oxygenFraction.GreaterThan(decimal.NewFromInt(1)) {
		oxygenFraction = decimal.NewFromInt(1)
	}

	return gas.NewNitroxGasFromOxygen(oxygenFraction)
}
