package nitrox

import (
	"github.com/chrissnell/divegas/pkg/units"
	"github.com/chrissnell/divegas/pkg/validation"
)

// PartialPressure is the default PartialPressureCalculator
type PartialPressure struct{}

// CalculatePartialPressure returns ambientPressure scaled by fraction, which
// must be in (0,1].
func (PartialPressure) CalculatePartialPressure(ambientPressure units.Pressure, fraction float64) (units.Pressure, error) {
	if err := checkFraction("fraction", fraction); err != nil {
		return 0, err
	}

	return units.PressureFromBars(ambientPressure.Bars() * fraction), nil
}

// checkFraction rejects fractions outside (0,1]. NaN fails both comparisons
// and is rejected too.
func checkFraction(param string, fraction float64) error {
	if !(fraction > 0 && fraction <= 1) {
		return validation.OutOfRange(param, fraction, "Fraction must be between 0 and 1.")
	}
	return nil
}
