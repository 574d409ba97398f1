package commons_abc

import (
	"github.com/shopspring/decimal"

	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
)

// SpotPrice is the marginal reserve cost of one token at supply,
// d(reserve)/d(supply) = kappa * supply^(kappa-1) / K. Display only.
func SpotPrice(config *CurveConfig, supply uint64) (decimal.Decimal, error) {
	if config.Kappa < abc.MinKappa {
		return decimal.Zero, abc.ErrInvalidKappa
	}
	invariant := config.InvariantNumber()
	if invariant.IsZero() {
		return decimal.Zero, abc.ErrMathOverflow
	}
	factor := decimal.NewFromInt(1)
	if config.Kappa > 1 {
		factor = decimal.NewFromUint64(supply).Pow(decimal.NewFromUint64(config.Kappa - 1))
	}
	return decimal.NewFromUint64(config.Kappa).Mul(factor).Div(invariant.Decimal()), nil
}
