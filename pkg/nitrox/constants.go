package nitrox

import (
	"fmt"
	"strings"

	"github.com/chrissnell/divegas/pkg/gas"
	"github.com/chrissnell/divegas/pkg/units"
)

// Gravity is the standard acceleration due to gravity in m/s²
const Gravity = 9.81

// SurfacePressure is the atmospheric pressure at sea level
var SurfacePressure = units.PressureFromAtmospheres(1)

// Water densities
var (
	FreshWaterDensity    = units.DensityFromKilogramsPerCubicMeter(1000)
	BrackishWaterDensity = units.DensityFromKilogramsPerCubicMeter(1020)
	SaltWaterDensity     = units.DensityFromKilogramsPerCubicMeter(1030)
)

// Common nitrox mixes
var (
	Air   = gas.MustNitroxGas("0.21", "0.79")
	EAN32 = gas.MustNitroxGas("0.32", "0.68")
	EAN36 = gas.MustNitroxGas("0.36", "0.64")
)

// DefaultPartialPressureLimit is the usual working limit for oxygen, in bar
const DefaultPartialPressureLimit = 1.4

// WaterType names a kind of water with a known density
type WaterType string

const (
	FreshWater    WaterType = "fresh"
	BrackishWater WaterType = "brackish"
	SaltWater     WaterType = "salt"
)

// ParseWaterType parses a water type name, case-insensitively
func ParseWaterType(s string) (WaterType, error) {
	switch wt := WaterType(strings.ToLower(strings.TrimSpace(s))); wt {
	case FreshWater, BrackishWater, SaltWater:
		return wt, nil
	default:
		return "", fmt.Errorf("unknown water type %q: expected fresh, brackish or salt", s)
	}
}

// Density returns the density of the water type
func (w WaterType) Density() units.Density {
	switch w {
	case BrackishWater:
		return BrackishWaterDensity
	case SaltWater:
		return SaltWaterDensity
	default:
		return FreshWaterDensity
	}
}
