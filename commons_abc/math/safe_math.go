package math

import (
	"math/bits"

	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
)

func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, abc.ErrMathOverflow
	}
	return sum, nil
}

func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, abc.ErrMathOverflow
	}
	return diff, nil
}
