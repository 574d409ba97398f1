package commons_abc

import (
	"context"

	solanago "github.com/gagliardetto/solana-go"

	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
)

// CurveStore persists curve configs by curve address.
type CurveStore interface {
	LoadCurve(ctx context.Context, curve solanago.PublicKey) (*CurveConfig, error)
	StoreCurve(ctx context.Context, curve solanago.PublicKey, config *CurveConfig) error
}

// Balances reads the ledger state a settlement is priced against.
type Balances interface {
	TokenAccountBalance(ctx context.Context, account solanago.PublicKey) (uint64, error)
	MintSupply(ctx context.Context, mint solanago.PublicKey) (uint64, error)
}

// TokenService executes the value movements of a settlement.
type TokenService interface {
	Transfer(ctx context.Context, from, to solanago.PublicKey, authority abc.Signer, amount uint64) error
	MintTo(ctx context.Context, mint, to solanago.PublicKey, authority abc.Signer, amount uint64) error
	Burn(ctx context.Context, mint, from solanago.PublicKey, authority abc.Signer, amount uint64) error
}

// Transactor is implemented by token services able to apply a group of
// calls all-or-nothing.
type Transactor interface {
	Atomic(ctx context.Context, fn func(ctx context.Context) error) error
}
