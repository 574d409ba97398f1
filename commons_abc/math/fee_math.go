package math

import (
	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
	pn "github.com/krazyTry/commons-abc-go/precise_number"
)

// SplitWithFriction splits amount into the share kept by the curve and the
// share skimmed into the common pool. The pool share rounds down.
func SplitWithFriction(amount, friction uint64) (net uint64, pool uint64, err error) {
	if friction > abc.MaxFriction {
		return 0, 0, abc.ErrInvalidFriction
	}
	share, err := pn.New(amount).CheckedMul(pn.New(friction))
	if err != nil {
		return 0, 0, err
	}
	if share, err = share.CheckedDiv(pn.New(abc.FeeDenominator)); err != nil {
		return 0, 0, err
	}
	if pool, err = share.ToImprecise(); err != nil {
		return 0, 0, err
	}
	if net, err = Sub(amount, pool); err != nil {
		return 0, 0, err
	}
	return net, pool, nil
}

func ComputeFee(amount, friction uint64) (uint64, error) {
	_, pool, err := SplitWithFriction(amount, friction)
	return pool, err
}
