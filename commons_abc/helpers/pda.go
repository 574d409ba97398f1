package helpers

import (
	"errors"

	solanago "github.com/gagliardetto/solana-go"

	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
)

var seed = struct {
	CurveConfig []byte
}{
	CurveConfig: []byte("curve_config"),
}

// DeriveCurveConfigPDA returns the curve config address for a commons mint
// and its bump. The same address is the curve's signing authority.
func DeriveCurveConfigPDA(commonsMint solanago.PublicKey) (solanago.PublicKey, uint8, error) {
	return solanago.FindProgramAddress([][]byte{seed.CurveConfig, commonsMint.Bytes()}, CommonsAbcProgramID)
}

func DeriveCurveConfig(commonsMint solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := DeriveCurveConfigPDA(commonsMint)
	return pub
}

// CurveAuthority rebuilds the signer capability of a curve from its stored bump.
func CurveAuthority(commonsMint solanago.PublicKey, bump uint8) (abc.Signer, error) {
	seeds := [][]byte{seed.CurveConfig, commonsMint.Bytes(), {bump}}
	pub, err := solanago.CreateProgramAddress(seeds, CommonsAbcProgramID)
	if err != nil {
		return abc.Signer{}, err
	}
	return abc.Signer{Key: pub, Seeds: seeds}, nil
}

// VerifySigner checks that a program derived signer's seeds reproduce its key
// under programID. Wallet signers are accepted as-is.
func VerifySigner(s abc.Signer, programID solanago.PublicKey) error {
	if !s.IsProgramDerived() {
		return nil
	}
	pub, err := solanago.CreateProgramAddress(s.Seeds, programID)
	if err != nil {
		return err
	}
	if !pub.Equals(s.Key) {
		return errors.New("seeds do not derive signer key")
	}
	return nil
}
