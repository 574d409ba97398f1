package math

import (
	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
	pn "github.com/krazyTry/commons-abc-go/precise_number"
)

// ComputeInvariant returns K = supply^kappa / reserve.
func ComputeInvariant(initialSupply, initialReserve, kappa uint64) (pn.PreciseNumber, error) {
	supplyPow, err := pn.New(initialSupply).CheckedPow(kappa)
	if err != nil {
		return pn.PreciseNumber{}, err
	}
	return supplyPow.CheckedDiv(pn.New(initialReserve))
}

func SupplyFromReserve(reserve, invariant pn.PreciseNumber, kappa uint64) (pn.PreciseNumber, error) {
	product, err := invariant.CheckedMul(reserve)
	if err != nil {
		return pn.PreciseNumber{}, err
	}
	return NthRoot(product, kappa)
}

func ReserveFromSupply(supply, invariant pn.PreciseNumber, kappa uint64) (pn.PreciseNumber, error) {
	supplyPow, err := supply.CheckedPow(kappa)
	if err != nil {
		return pn.PreciseNumber{}, err
	}
	return supplyPow.CheckedDiv(invariant)
}

// MintedForDeposit is the whole number of tokens issued when the reserve
// grows from reserveBefore to reserveAfter.
func MintedForDeposit(reserveBefore, reserveAfter uint64, invariant pn.PreciseNumber, kappa uint64) (uint64, error) {
	supplyBefore, err := SupplyFromReserve(pn.New(reserveBefore), invariant, kappa)
	if err != nil {
		return 0, err
	}
	supplyAfter, err := SupplyFromReserve(pn.New(reserveAfter), invariant, kappa)
	if err != nil {
		return 0, err
	}
	minted, err := supplyAfter.CheckedSub(supplyBefore)
	if err != nil {
		return 0, err
	}
	amount, err := minted.ToImprecise()
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, abc.ErrZeroMint
	}
	return amount, nil
}

// ReserveDeltaForBurn is the whole number of reserve units released when
// supply shrinks from supplyBefore to supplyAfter.
func ReserveDeltaForBurn(supplyBefore, supplyAfter uint64, invariant pn.PreciseNumber, kappa uint64) (uint64, error) {
	reserveBefore, err := ReserveFromSupply(pn.New(supplyBefore), invariant, kappa)
	if err != nil {
		return 0, err
	}
	reserveAfter, err := ReserveFromSupply(pn.New(supplyAfter), invariant, kappa)
	if err != nil {
		return 0, err
	}
	delta, err := reserveBefore.CheckedSub(reserveAfter)
	if err != nil {
		return 0, err
	}
	amount, err := delta.ToImprecise()
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, abc.ErrZeroPayout
	}
	return amount, nil
}
