package commons_abc

import (
	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	pn "github.com/krazyTry/commons-abc-go/precise_number"
)

// CurveConfig is the persisted state of one curve.
type CurveConfig struct {
	Kappa        uint64
	Exponent     uint64
	InitialPrice uint64
	Friction     uint64

	CommonsTokenMint solanago.PublicKey
	ReserveMint      solanago.PublicKey
	ReserveVault     solanago.PublicKey
	// CommonsTreasury receives friction; it holds the reserve asset.
	CommonsTreasury solanago.PublicKey

	CurveConfigBump uint8
	Authority       solanago.PublicKey

	// Invariant is K = supply^kappa / reserve as a little-endian fixed-point number.
	Invariant [32]byte
}

func (c *CurveConfig) InvariantNumber() pn.PreciseNumber {
	return pn.FromBytes(c.Invariant)
}

type Curve struct {
	Address solanago.PublicKey
	Config  *CurveConfig
}

type CurveAccounts struct {
	CommonsTokenMint solanago.PublicKey
	ReserveMint      solanago.PublicKey
	ReserveVault     solanago.PublicKey
	CommonsTreasury  solanago.PublicKey
}

type InitializeCurveParams struct {
	Kappa          uint64
	Exponent       uint64
	InitialPrice   uint64
	Friction       uint64
	InitialReserve uint64
	InitialSupply  uint64
}

// AdminUpdateParams leaves a field unchanged when it is nil.
type AdminUpdateParams struct {
	Kappa        *uint64
	Exponent     *uint64
	InitialPrice *uint64
	Friction     *uint64
}

// TraderAccounts are the caller's wallet and token accounts for one trade.
type TraderAccounts struct {
	Owner          solanago.PublicKey
	ReserveAccount solanago.PublicKey
	CommonsAccount solanago.PublicKey
}

type CurveState struct {
	Address   solanago.PublicKey
	Config    *CurveConfig
	Reserve   uint64
	Supply    uint64
	Treasury  uint64
	Invariant pn.PreciseNumber
	SpotPrice decimal.Decimal
}
