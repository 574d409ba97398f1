package math

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/require"

	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
)

func TestQuoteRoundTrip(t *testing.T) {
	k, err := ComputeInvariant(1_000_000, 1_000_000, 2)
	require.NoError(t, err)

	buy, err := QuoteBuy(1_000_000, 0, k, 2, 50_000)
	require.NoError(t, err)
	require.Equal(t, &BuyQuote{
		Amount:        1_000_000,
		ReserveShare:  950_000,
		PoolShare:     50_000,
		ReserveBefore: 0,
		ReserveAfter:  950_000,
		Minted:        974_679,
	}, buy)

	sell, err := QuoteSell(buy.Minted, buy.Minted, k, 2, 50_000)
	require.NoError(t, err)
	require.Equal(t, uint64(949_999), sell.ReserveDelta)
	require.Equal(t, uint64(47_499), sell.ExitTribute)
	require.Equal(t, uint64(902_500), sell.NetPayout)
	require.Equal(t, sell.ReserveDelta, sell.NetPayout+sell.ExitTribute)
	require.Zero(t, sell.SupplyAfter)

	fee, err := ComputeFee(sell.ReserveDelta, 50_000)
	require.NoError(t, err)
	require.Equal(t, fee, sell.ExitTribute)
}

func TestQuoteRejections(t *testing.T) {
	k, err := ComputeInvariant(1_000_000, 1_000_000, 2)
	require.NoError(t, err)

	_, err = QuoteBuy(0, 0, k, 2, 50_000)
	require.ErrorIs(t, err, abc.ErrZeroMint)
	require.True(t, IsRejection(err))

	_, err = QuoteBuy(1_000_000, 0, k, 2, abc.MaxFriction)
	require.ErrorIs(t, err, abc.ErrZeroMint)

	_, err = QuoteBuy(1, stdmath.MaxUint64, k, 2, 0)
	require.ErrorIs(t, err, abc.ErrMathOverflow)
	require.False(t, IsRejection(err))

	_, err = QuoteBuy(1, 0, k, 2, abc.MaxFriction+1)
	require.ErrorIs(t, err, abc.ErrInvalidFriction)

	_, err = QuoteSell(10, 5, k, 2, 50_000)
	require.ErrorIs(t, err, abc.ErrInsufficientSupply)

	_, err = QuoteSell(0, 5, k, 2, 50_000)
	require.ErrorIs(t, err, abc.ErrZeroPayout)

	_, err = QuoteSell(974_679, 974_679, k, 2, abc.MaxFriction)
	require.ErrorIs(t, err, abc.ErrZeroPayout)
}
