package precise_number

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/krazyTry/commons-abc-go/u256"
	"github.com/shopspring/decimal"
)

// Decimals is the number of fractional digits carried by a PreciseNumber.
const Decimals = 6

var ErrMathOverflow = errors.New("PreciseNumber: arithmetic overflow")

var one = uint256.Int{1_000_000, 0, 0, 0}

// PreciseNumber is an unsigned 256-bit fixed-point value scaled by 10^6.
// All operations floor and none of them mutate the receiver.
type PreciseNumber struct {
	Value uint256.Int
}

// One returns the fixed-point unit.
func One() PreciseNumber {
	return PreciseNumber{Value: one}
}

func New(v uint64) PreciseNumber {
	var p PreciseNumber
	// u64 * 10^6 always fits in 256 bits.
	p.Value.Mul(uint256.NewInt(v), &one)
	return p
}

// FromRaw wraps an already scaled value.
func FromRaw(raw *uint256.Int) PreciseNumber {
	return PreciseNumber{Value: *raw}
}

func FromBytes(b [32]byte) PreciseNumber {
	return PreciseNumber{Value: *u256.FromLittleEndian(b)}
}

func (p PreciseNumber) ToBytes() [32]byte {
	return u256.ToLittleEndian(&p.Value)
}

// ToImprecise drops the fractional part and returns the whole number,
// failing if it does not fit in 64 bits.
func (p PreciseNumber) ToImprecise() (uint64, error) {
	var q uint256.Int
	q.Div(&p.Value, &one)
	v, overflow := q.Uint64WithOverflow()
	if overflow {
		return 0, ErrMathOverflow
	}
	return v, nil
}

func (p PreciseNumber) IsZero() bool {
	return p.Value.IsZero()
}

func (p PreciseNumber) Cmp(o PreciseNumber) int {
	return p.Value.Cmp(&o.Value)
}

func (p PreciseNumber) CheckedAdd(o PreciseNumber) (PreciseNumber, error) {
	var r PreciseNumber
	if _, overflow := r.Value.AddOverflow(&p.Value, &o.Value); overflow {
		return PreciseNumber{}, ErrMathOverflow
	}
	return r, nil
}

func (p PreciseNumber) CheckedSub(o PreciseNumber) (PreciseNumber, error) {
	var r PreciseNumber
	if _, underflow := r.Value.SubOverflow(&p.Value, &o.Value); underflow {
		return PreciseNumber{}, ErrMathOverflow
	}
	return r, nil
}

// CheckedMul returns floor(p * o).
func (p PreciseNumber) CheckedMul(o PreciseNumber) (PreciseNumber, error) {
	var r PreciseNumber
	if _, overflow := r.Value.MulDivOverflow(&p.Value, &o.Value, &one); overflow {
		return PreciseNumber{}, ErrMathOverflow
	}
	return r, nil
}

// CheckedDiv returns floor(p / o).
func (p PreciseNumber) CheckedDiv(o PreciseNumber) (PreciseNumber, error) {
	if o.Value.IsZero() {
		return PreciseNumber{}, ErrMathOverflow
	}
	var r PreciseNumber
	if _, overflow := r.Value.MulDivOverflow(&p.Value, &one, &o.Value); overflow {
		return PreciseNumber{}, ErrMathOverflow
	}
	return r, nil
}

// CheckedPow raises p to an integer power by repeated squaring.
// p^0 is One for every p, including zero.
func (p PreciseNumber) CheckedPow(exp uint64) (PreciseNumber, error) {
	result := p
	if exp%2 == 0 {
		result = One()
	}
	base := p
	var err error
	for exp >>= 1; exp != 0; exp >>= 1 {
		if base, err = base.CheckedMul(base); err != nil {
			return PreciseNumber{}, err
		}
		if exp%2 != 0 {
			if result, err = result.CheckedMul(base); err != nil {
				return PreciseNumber{}, err
			}
		}
	}
	return result, nil
}

// Decimal converts p for display.
func (p PreciseNumber) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(p.Value.ToBig(), -Decimals)
}

func (p PreciseNumber) String() string {
	return p.Decimal().StringFixed(Decimals)
}
