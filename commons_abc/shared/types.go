package shared

import (
	solanago "github.com/gagliardetto/solana-go"
)

const (
	// FeeDenominator is the friction scale: 1_000_000 parts per million.
	FeeDenominator = 1_000_000
	MaxFriction    = FeeDenominator

	MinKappa = 1
)

type TradeDirection uint8

const (
	TradeDirectionBuy TradeDirection = iota
	TradeDirectionSell
)

func (d TradeDirection) String() string {
	switch d {
	case TradeDirectionBuy:
		return "buy"
	case TradeDirectionSell:
		return "sell"
	default:
		return "unknown"
	}
}

// Signer is the authority presented to the token service for one movement.
// A wallet owner carries only its Key; the curve's derived authority also
// carries the seeds (bump included) that reproduce Key under the program id.
type Signer struct {
	Key   solanago.PublicKey
	Seeds [][]byte
}

func WalletSigner(key solanago.PublicKey) Signer {
	return Signer{Key: key}
}

func (s Signer) IsProgramDerived() bool {
	return len(s.Seeds) > 0
}
