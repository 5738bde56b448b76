package nitrox

import (
	"math"

	"github.com/chrissnell/divegas/pkg/units"
)

// MaximumOperatingDepth is the default MaximumOperatingDepthCalculator
type MaximumOperatingDepth struct{}

// CalculateMaximumOperatingDepth returns the MOD rounded down to a whole
// meter, so the result is never deeper than the exact limit.
func (MaximumOperatingDepth) CalculateMaximumOperatingDepth(partialPressureLimit units.Pressure, oxygenFraction float64) (units.Depth, error) {
	if err := checkFraction("oxygenFraction", oxygenFraction); err != nil {
		return 0, err
	}

	mod := 10 * (partialPressureLimit.Bars()/oxygenFraction - 1.0)
	return units.DepthFromMeters(math.Floor(mod)), nil
}
