package math

import (
	"errors"

	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
	pn "github.com/krazyTry/commons-abc-go/precise_number"
)

type BuyQuote struct {
	Amount        uint64
	ReserveShare  uint64
	PoolShare     uint64
	ReserveBefore uint64
	ReserveAfter  uint64
	Minted        uint64
}

type SellQuote struct {
	Amount       uint64
	SupplyBefore uint64
	SupplyAfter  uint64
	ReserveDelta uint64
	ExitTribute  uint64
	NetPayout    uint64
}

// QuoteBuy computes every quantity of a deposit of amount reserve units
// against a vault currently holding reserveBefore.
func QuoteBuy(amount, reserveBefore uint64, invariant pn.PreciseNumber, kappa, friction uint64) (*BuyQuote, error) {
	reserveShare, poolShare, err := SplitWithFriction(amount, friction)
	if err != nil {
		return nil, err
	}
	reserveAfter, err := Add(reserveBefore, reserveShare)
	if err != nil {
		return nil, err
	}
	minted, err := MintedForDeposit(reserveBefore, reserveAfter, invariant, kappa)
	if err != nil {
		return nil, err
	}
	return &BuyQuote{
		Amount:        amount,
		ReserveShare:  reserveShare,
		PoolShare:     poolShare,
		ReserveBefore: reserveBefore,
		ReserveAfter:  reserveAfter,
		Minted:        minted,
	}, nil
}

// QuoteSell computes every quantity of burning amount tokens out of a
// circulating supply of supplyBefore.
func QuoteSell(amount, supplyBefore uint64, invariant pn.PreciseNumber, kappa, friction uint64) (*SellQuote, error) {
	supplyAfter, err := Sub(supplyBefore, amount)
	if err != nil {
		return nil, abc.ErrInsufficientSupply
	}
	reserveDelta, err := ReserveDeltaForBurn(supplyBefore, supplyAfter, invariant, kappa)
	if err != nil {
		return nil, err
	}
	exitTribute, err := ComputeFee(reserveDelta, friction)
	if err != nil {
		return nil, err
	}
	netPayout, err := Sub(reserveDelta, exitTribute)
	if err != nil {
		return nil, err
	}
	if netPayout == 0 {
		return nil, abc.ErrZeroPayout
	}
	return &SellQuote{
		Amount:       amount,
		SupplyBefore: supplyBefore,
		SupplyAfter:  supplyAfter,
		ReserveDelta: reserveDelta,
		ExitTribute:  exitTribute,
		NetPayout:    netPayout,
	}, nil
}

// IsRejection reports whether err is a settlement rejection rather than an
// arithmetic failure.
func IsRejection(err error) bool {
	return errors.Is(err, abc.ErrZeroMint) ||
		errors.Is(err, abc.ErrZeroPayout) ||
		errors.Is(err, abc.ErrInsufficientSupply)
}
