package math

import (
	"testing"

	"github.com/stretchr/testify/require"

	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
	pn "github.com/krazyTry/commons-abc-go/precise_number"
)

func TestComputeInvariant(t *testing.T) {
	k, err := ComputeInvariant(1_000_000, 1_000_000, 2)
	require.NoError(t, err)
	require.Equal(t, 0, k.Cmp(pn.New(1_000_000)))

	k, err = ComputeInvariant(1_000, 1_000, 1)
	require.NoError(t, err)
	require.Equal(t, 0, k.Cmp(pn.One()))

	_, err = ComputeInvariant(1_000_000, 0, 2)
	require.ErrorIs(t, err, abc.ErrMathOverflow)

	_, err = ComputeInvariant(1<<63, 1, 8)
	require.ErrorIs(t, err, abc.ErrMathOverflow)
}

func TestSupplyFromReserve(t *testing.T) {
	k, err := ComputeInvariant(1_000_000, 1_000_000, 2)
	require.NoError(t, err)

	supply, err := SupplyFromReserve(pn.New(950_000), k, 2)
	require.NoError(t, err)
	require.Equal(t, "974679.434480", supply.String())

	supply, err = SupplyFromReserve(pn.PreciseNumber{}, k, 2)
	require.NoError(t, err)
	require.True(t, supply.IsZero())
}

func TestReserveRoundTripNeverIncreases(t *testing.T) {
	for _, kappa := range []uint64{1, 2, 3} {
		k, err := ComputeInvariant(1_000_000, 1_000_000, kappa)
		require.NoError(t, err)

		for _, r := range []uint64{1, 1_000, 1_000_000, 1_000_000_000, 1_000_000_000_000} {
			reserve := pn.New(r)
			supply, err := SupplyFromReserve(reserve, k, kappa)
			require.NoError(t, err)
			back, err := ReserveFromSupply(supply, k, kappa)
			require.NoError(t, err)
			require.LessOrEqualf(t, back.Cmp(reserve), 0, "kappa=%d reserve=%d back=%s", kappa, r, back)
		}
	}
}

func TestSupplyFromReserveMonotonic(t *testing.T) {
	for _, kappa := range []uint64{1, 2, 3, 5} {
		k, err := ComputeInvariant(1_000_000, 1_000_000, kappa)
		require.NoError(t, err)

		prev := pn.PreciseNumber{}
		for r := uint64(0); r <= 2_000_000; r += 37_337 {
			supply, err := SupplyFromReserve(pn.New(r), k, kappa)
			require.NoError(t, err)
			require.GreaterOrEqual(t, supply.Cmp(prev), 0)
			prev = supply
		}
	}
}

func TestMintedAndBurned(t *testing.T) {
	k, err := ComputeInvariant(1_000_000, 1_000_000, 2)
	require.NoError(t, err)

	minted, err := MintedForDeposit(0, 950_000, k, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(974_679), minted)

	_, err = MintedForDeposit(950_000, 950_000, k, 2)
	require.ErrorIs(t, err, abc.ErrZeroMint)

	_, err = MintedForDeposit(950_000, 0, k, 2)
	require.ErrorIs(t, err, abc.ErrMathOverflow)

	delta, err := ReserveDeltaForBurn(974_679, 0, k, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(949_999), delta)

	_, err = ReserveDeltaForBurn(10, 10, k, 2)
	require.ErrorIs(t, err, abc.ErrZeroPayout)

	linear, err := ComputeInvariant(1_000, 1_000, 1)
	require.NoError(t, err)
	minted, err = MintedForDeposit(0, 500, linear, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(500), minted)
}
