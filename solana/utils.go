package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	commons "github.com/krazyTry/commons-abc-go/commons_abc"
)

// GenProgramAccountFilter selects accounts whose discriminator matches the
// CurveConfig record and, unless owner is zero, whose authority is owner.
func GenProgramAccountFilter(owner solana.PublicKey, commitment rpc.CommitmentType) *rpc.GetProgramAccountsOpts {
	opt := &rpc.GetProgramAccountsOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{DataSize: commons.CurveConfigSize},
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  commons.CurveConfigDiscriminator[:],
				},
			},
		},
	}
	if owner.IsZero() {
		return opt
	}

	opt.Filters = append(opt.Filters, rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: commons.CurveConfigAuthorityOffset,
			Bytes:  owner[:],
		},
	})
	return opt
}

func GetAccountInfo(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey, encoding solana.EncodingType, commitment rpc.CommitmentType) (*rpc.GetAccountInfoResult, error) {
	return rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: commitment, Encoding: encoding})
}
