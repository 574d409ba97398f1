package math

import (
	"github.com/holiman/uint256"

	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
	pn "github.com/krazyTry/commons-abc-go/precise_number"
)

// NthRoot returns the largest r in [0, value] with r^root <= value, searching
// the raw 256-bit representation. A power that overflows 256 bits is treated
// as exceeding value.
func NthRoot(value pn.PreciseNumber, root uint64) (pn.PreciseNumber, error) {
	if root == 0 {
		return pn.PreciseNumber{}, abc.ErrInvalidKappa
	}
	if value.IsZero() {
		return pn.PreciseNumber{}, nil
	}

	var (
		low  uint256.Int
		high = value.Value
		diff uint256.Int
		mid  pn.PreciseNumber
	)
	for high.Gt(&low) {
		// mid = (low + high + 1) >> 1, kept below 2^256
		diff.Sub(&high, &low)
		odd := diff[0] & 1
		mid.Value.Rsh(&diff, 1)
		mid.Value.AddUint64(&mid.Value, odd)
		mid.Value.Add(&mid.Value, &low)

		pow, err := mid.CheckedPow(root)
		if err == nil && !pow.Value.Gt(&value.Value) {
			low = mid.Value
		} else if mid.IsZero() {
			break
		} else {
			high.SubUint64(&mid.Value, 1)
		}
	}
	return pn.FromRaw(&low), nil
}
