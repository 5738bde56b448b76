// Package gas provides validated breathing gas mixtures. Fractions are
// carried as exact decimals so the sum-to-one invariant can be checked
// without a tolerance. A value returned by one of the constructors always
// satisfies its invariants.
package gas

import (
	"github.com/chrissnell/divegas/pkg/validation"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// NitroxGas is an oxygen/nitrogen mixture
type NitroxGas struct {
	oxygen   decimal.Decimal
	nitrogen decimal.Decimal
}

// NewNitroxGas builds a mixture from both fractions. Each fraction must lie
// in [0,1] and together they must add up to exactly 1.
func NewNitroxGas(oxygenFraction, nitrogenFraction decimal.Decimal) (NitroxGas, error) {
	if err := validateNitrox(oxygenFraction, nitrogenFraction); err != nil {
		return NitroxGas{}, err
	}
	return NitroxGas{oxygen: oxygenFraction, nitrogen: nitrogenFraction}, nil
}

// NewNitroxGasFromOxygen builds a mixture whose nitrogen fraction is the
// complement of oxygenFraction.
func NewNitroxGasFromOxygen(oxygenFraction decimal.Decimal) (NitroxGas, error) {
	return NewNitroxGas(oxygenFraction, one.Sub(oxygenFraction))
}

// MustNitroxGas is like NewNitroxGas but panics on invalid fractions. It is
// meant for package-level mixes built from constants.
func MustNitroxGas(oxygenFraction, nitrogenFraction string) NitroxGas {
	g, err := NewNitroxGas(decimal.RequireFromString(oxygenFraction), decimal.RequireFromString(nitrogenFraction))
	if err != nil {
		panic(err)
	}
	return g
}

func (g NitroxGas) OxygenFraction() decimal.Decimal   { return g.oxygen }
func (g NitroxGas) NitrogenFraction() decimal.Decimal { return g.nitrogen }

func (g NitroxGas) OxygenPercentage() decimal.Decimal   { return g.oxygen.Mul(hundred) }
func (g NitroxGas) NitrogenPercentage() decimal.Decimal { return g.nitrogen.Mul(hundred) }

// EAN returns the Enriched Air Nitrox label, e.g. "EAN32". A mixture that is
// entirely oxygen is labelled "O2".
func (g NitroxGas) EAN() string {
	pct := g.OxygenPercentage().Floor()
	if pct.GreaterThanOrEqual(hundred) {
		return "O2"
	}
	return "EAN" + pct.String()
}

// Equal reports whether both mixtures have the same fractions
func (g NitroxGas) Equal(other NitroxGas) bool {
	return g.oxygen.Equal(other.oxygen) && g.nitrogen.Equal(other.nitrogen)
}

func (g NitroxGas) String() string {
	return g.EAN()
}

func validateNitrox(oxygen, nitrogen decimal.Decimal) error {
	if !inUnitInterval(oxygen) {
		return validation.OutOfRange("oxygenFraction", oxygen, "Oxygen fraction must be between 0 and 1")
	}
	if !inUnitInterval(nitrogen) {
		return validation.OutOfRange("nitrogenFraction", nitrogen, "Nitrogen fraction must be between 0 and 1")
	}
	if !oxygen.Add(nitrogen).Equal(one) {
		return validation.InvalidArgument("", nil, "Oxygen and nitrogen fractions must add up to 1")
	}
	return nil
}

// inUnitInterval reports whether 0 <= f <= 1
func inUnitInterval(f decimal.Decimal) bool {
	return !f.IsNegative() && f.LessThanOrEqual(one)
}
