package solana

import (
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/shopspring/decimal"

	"github.com/krazyTry/commons-abc-go/decimal_math"
)

// Token represents a Solana token with mint information and owner
type Token struct {
	token.Mint
	// Owner account of the token
	Owner solana.PublicKey
}

// UiAmount scales a raw amount by the mint's decimals.
func (t *Token) UiAmount(amount uint64) decimal.Decimal {
	return UiAmount(amount, t.Decimals)
}

// TokenLayout provides methods for decoding token data
type TokenLayout struct {
}

func (l *TokenLayout) Decode(data []byte) (*Token, error) {
	if len(data) < token.MINT_SIZE {
		return nil, fmt.Errorf("mint: %d bytes", len(data))
	}
	mint := token.Mint{}
	if err := binary.NewBinDecoder(data).Decode(&mint); err != nil {
		return nil, err
	}
	return &Token{Mint: mint}, nil
}

func UiAmount(amount uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromUint64(amount).Div(decimal_math.Pow10(int(decimals)))
}
