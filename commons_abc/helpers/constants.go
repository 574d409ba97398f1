package helpers

import (
	solanago "github.com/gagliardetto/solana-go"
)

var (
	CommonsAbcProgramID = solanago.MustPublicKeyFromBase58("2xnNJU6bK1R6WvnBUmUKxftMyVuvXXhn3Vs5hDHM3KQv")
	TokenProgramID      = solanago.TokenProgramID
)
