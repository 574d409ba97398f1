package shared

import (
	"errors"

	"github.com/krazyTry/commons-abc-go/precise_number"
)

var (
	ErrMathOverflow       = precise_number.ErrMathOverflow
	ErrZeroMint           = errors.New("mint amount is zero")
	ErrZeroPayout         = errors.New("payout is zero")
	ErrInsufficientSupply = errors.New("not enough supply to burn")
	ErrInvalidFriction    = errors.New("friction parameter exceeds 100%")
	ErrInvalidKappa       = errors.New("kappa must be at least 1")

	ErrUnauthorized  = errors.New("signer is not the curve authority")
	ErrInvalidSigner = errors.New("signer does not own the account")

	ErrInsufficientFunds  = errors.New("insufficient token balance")
	ErrCurveNotFound      = errors.New("curve config not found")
	ErrReadOnlyStore      = errors.New("curve store is read-only")
	ErrInvalidAccountData = errors.New("invalid curve config account data")
)
