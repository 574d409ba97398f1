package helpers

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestCurveAuthority(t *testing.T) {
	mint := solanago.NewWallet().PublicKey()

	pda, bump, err := DeriveCurveConfigPDA(mint)
	require.NoError(t, err)
	require.Equal(t, pda, DeriveCurveConfig(mint))
	require.False(t, pda.IsOnCurve())

	signer, err := CurveAuthority(mint, bump)
	require.NoError(t, err)
	require.Equal(t, pda, signer.Key)
	require.True(t, signer.IsProgramDerived())
	require.NoError(t, VerifySigner(signer, CommonsAbcProgramID))

	other := solanago.NewWallet().PublicKey()
	forged := signer
	forged.Key = other
	require.Error(t, VerifySigner(forged, CommonsAbcProgramID))
	require.Error(t, VerifySigner(signer, TokenProgramID))
}
