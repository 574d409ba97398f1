package solana

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/tidwall/gjson"
)

var ErrNotTokenAccount = errors.New("not a parsed token account")

// ParseTokenAccountJSON reads a jsonParsed spl-token account payload.
func ParseTokenAccountJSON(raw []byte) (*Account, error) {
	if gjson.GetBytes(raw, "parsed.type").String() != "account" {
		return nil, ErrNotTokenAccount
	}
	info := gjson.GetBytes(raw, "parsed.info")
	amount := info.Get("tokenAmount.amount")
	if !amount.Exists() {
		return nil, fmt.Errorf("%w: missing tokenAmount", ErrNotTokenAccount)
	}
	mint, err := solana.PublicKeyFromBase58(info.Get("mint").String())
	if err != nil {
		return nil, fmt.Errorf("mint: %w", err)
	}
	owner, err := solana.PublicKeyFromBase58(info.Get("owner").String())
	if err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}
	return &Account{
		Mint:     mint,
		Owner:    owner,
		Amount:   amount.Uint(),
		IsFrozen: info.Get("state").String() == "frozen",
	}, nil
}
