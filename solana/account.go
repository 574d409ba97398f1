package solana

import (
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// TokenAccountSize is the length of an SPL token account.
const TokenAccountSize = 165

type Account struct {
	Address solana.PublicKey
	// Mint associated with the account
	Mint solana.PublicKey

	// Owner of the account
	Owner solana.PublicKey

	// Number of tokens the account holds
	Amount uint64

	// True if the account is frozen
	IsFrozen bool
}

type AccountLayout struct {
}

func (l *AccountLayout) Decode(data []byte) (*Account, error) {
	if len(data) < TokenAccountSize {
		return nil, fmt.Errorf("token account: %d bytes", len(data))
	}
	raw := new(token.Account)
	if err := binary.NewBinDecoder(data).Decode(raw); err != nil {
		return nil, err
	}
	return &Account{
		Mint:     raw.Mint,
		Owner:    raw.Owner,
		Amount:   raw.Amount,
		IsFrozen: raw.State == token.Frozen,
	}, nil
}
