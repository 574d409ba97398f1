package decimal_math

import (
	"github.com/shopspring/decimal"
)

func Pow10(n int) decimal.Decimal {
	return decimal.New(1, int32(n))
}
