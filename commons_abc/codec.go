package commons_abc

import (
	"fmt"

	bin "github.com/gagliardetto/binary"

	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
)

var CurveConfigDiscriminator = bin.SighashTypeID(bin.SIGHASH_ACCOUNT_NAMESPACE, CurveConfigAccountName)

// curveConfigLayout has CurveConfig's fields without its codec methods.
type curveConfigLayout CurveConfig

func (c CurveConfig) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteBytes(CurveConfigDiscriminator[:], false); err != nil {
		return err
	}
	layout := curveConfigLayout(c)
	return encoder.Encode(&layout)
}

func (c *CurveConfig) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	discriminator, err := decoder.ReadTypeID()
	if err != nil {
		return err
	}
	if !discriminator.Equal(CurveConfigDiscriminator[:]) {
		return fmt.Errorf("%w: discriminator %x", abc.ErrInvalidAccountData, discriminator[:])
	}
	return decoder.Decode((*curveConfigLayout)(c))
}

func EncodeCurveConfig(c *CurveConfig) ([]byte, error) {
	return bin.MarshalBorsh(c)
}

func DecodeCurveConfig(data []byte) (*CurveConfig, error) {
	if len(data) < CurveConfigSize {
		return nil, fmt.Errorf("%w: %d bytes", abc.ErrInvalidAccountData, len(data))
	}
	c := new(CurveConfig)
	if err := bin.NewBorshDecoder(data).Decode(c); err != nil {
		return nil, err
	}
	return c, nil
}
