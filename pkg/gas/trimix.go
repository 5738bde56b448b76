package gas

import (
	"fmt"

	"github.com/chrissnell/divegas/pkg/validation"
	"github.com/shopspring/decimal"
)

// TrimixGas is an oxygen/nitrogen/helium mixture
type TrimixGas struct {
	oxygen   decimal.Decimal
	nitrogen decimal.Decimal
	helium   decimal.Decimal
}

// NewTrimixGas builds a mixture from all three fractions, each in [0,1] and
// adding up to exactly 1.
func NewTrimixGas(oxygenFraction, nitrogenFraction, heliumFraction decimal.Decimal) (TrimixGas, error) {
	if err := validateTrimix(oxygenFraction, nitrogenFraction, heliumFraction); err != nil {
		return TrimixGas{}, err
	}
	return TrimixGas{oxygen: oxygenFraction, nitrogen: nitrogenFraction, helium: heliumFraction}, nil
}

// NewTrimixGasFromOxygenHelium builds a mixture where nitrogen makes up
// whatever oxygen and helium leave over.
func NewTrimixGasFromOxygenHelium(oxygenFraction, heliumFraction decimal.Decimal) (TrimixGas, error) {
	nitrogen := one.Sub(oxygenFraction).Sub(heliumFraction)
	return NewTrimixGas(oxygenFraction, nitrogen, heliumFraction)
}

func (g TrimixGas) OxygenFraction() decimal.Decimal   { return g.oxygen }
func (g TrimixGas) NitrogenFraction() decimal.Decimal { return g.nitrogen }
func (g TrimixGas) HeliumFraction() decimal.Decimal   { return g.helium }

func (g TrimixGas) OxygenPercentage() decimal.Decimal   { return g.oxygen.Mul(hundred) }
func (g TrimixGas) NitrogenPercentage() decimal.Decimal { return g.nitrogen.Mul(hundred) }
func (g TrimixGas) HeliumPercentage() decimal.Decimal   { return g.helium.Mul(hundred) }

// TX returns the trimix label, e.g. "TX 18/45" for 18% oxygen and 45% helium
func (g TrimixGas) TX() string {
	return fmt.Sprintf("TX %s/%s", g.OxygenPercentage().Floor(), g.HeliumPercentage().Floor())
}

// Equal reports whether both mixtures have the same fractions
func (g TrimixGas) Equal(other TrimixGas) bool {
	return g.oxygen.Equal(other.oxygen) && g.nitrogen.Equal(other.nitrogen) && g.helium.Equal(other.helium)
}

func (g TrimixGas) String() string {
	return g.TX()
}

func validateTrimix(oxygen, nitrogen, helium decimal.Decimal) error {
	if !inUnitInterval(oxygen) {
		return validation.OutOfRange("oxygenFraction", oxygen, "Oxygen fraction must be between 0 and 1")
	}
	if !inUnitInterval(nitrogen) {
		return validation.OutOfRange("nitrogenFraction", nitrogen, "Nitrogen fraction must be between 0 and 1")
	}
	if !inUnitInterval(helium) {
		return validation.OutOfRange("heliumFraction", helium, "Helium fraction must be between 0 and 1")
	}
	if !oxygen.Add(nitrogen).Add(helium).Equal(one) {
		return validation.InvalidArgument("", nil, "Oxygen, nitrogen and helium fractions must add up to 1")
	}
	return nil
}
