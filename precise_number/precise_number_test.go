package precise_number

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestNewAndToImprecise(t *testing.T) {
	for _, v := range []uint64{0, 1, 999_999, 1_000_000, math.MaxUint64} {
		got, err := New(v).ToImprecise()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}

	// 1.999999 floors to 1
	half := FromRaw(uint256.NewInt(1_999_999))
	got, err := half.ToImprecise()
	require.NoError(t, err)
	require.Equal(t, uint64(1), got)

	big, err := New(math.MaxUint64).CheckedAdd(One())
	require.NoError(t, err)
	_, err = big.ToImprecise()
	require.ErrorIs(t, err, ErrMathOverflow)
}

func TestBytesRoundTrip(t *testing.T) {
	values := []PreciseNumber{
		{},
		New(1),
		New(math.MaxUint64),
		FromRaw(new(uint256.Int).SetAllOne()),
	}
	for _, v := range values {
		require.Equal(t, 0, FromBytes(v.ToBytes()).Cmp(v))
	}

	b := New(1).ToBytes()
	// 10^6 = 0x0f4240, little-endian
	require.Equal(t, []byte{0x40, 0x42, 0x0f, 0x00}, b[:4])
}

func TestCheckedArithmetic(t *testing.T) {
	two, three := New(2), New(3)

	sum, err := two.CheckedAdd(three)
	require.NoError(t, err)
	require.Equal(t, 0, sum.Cmp(New(5)))

	diff, err := three.CheckedSub(two)
	require.NoError(t, err)
	require.Equal(t, 0, diff.Cmp(New(1)))

	_, err = two.CheckedSub(three)
	require.ErrorIs(t, err, ErrMathOverflow)

	prod, err := two.CheckedMul(three)
	require.NoError(t, err)
	require.Equal(t, 0, prod.Cmp(New(6)))

	quot, err := two.CheckedDiv(three)
	require.NoError(t, err)
	require.Equal(t, "0.666666", quot.String())

	_, err = two.CheckedDiv(PreciseNumber{})
	require.ErrorIs(t, err, ErrMathOverflow)

	max := FromRaw(new(uint256.Int).SetAllOne())
	_, err = max.CheckedAdd(FromRaw(uint256.NewInt(1)))
	require.ErrorIs(t, err, ErrMathOverflow)
	_, err = max.CheckedMul(two)
	require.ErrorIs(t, err, ErrMathOverflow)
}

func TestCheckedPow(t *testing.T) {
	cases := []struct {
		base uint64
		exp  uint64
		want uint64
	}{
		{base: 7, exp: 0, want: 1},
		{base: 0, exp: 0, want: 1},
		{base: 7, exp: 1, want: 7},
		{base: 2, exp: 10, want: 1024},
		{base: 3, exp: 5, want: 243},
		{base: 1_000_000, exp: 2, want: 1_000_000_000_000},
		{base: 0, exp: 3, want: 0},
	}
	for _, c := range cases {
		got, err := New(c.base).CheckedPow(c.exp)
		require.NoError(t, err)
		require.Equalf(t, 0, got.Cmp(New(c.want)), "%d^%d = %s", c.base, c.exp, got)
	}

	// 0.5^2 floors at the sixth decimal
	half := FromRaw(uint256.NewInt(500_000))
	sq, err := half.CheckedPow(2)
	require.NoError(t, err)
	require.Equal(t, "0.250000", sq.String())

	_, err = New(math.MaxUint64).CheckedPow(5)
	require.ErrorIs(t, err, ErrMathOverflow)
}
