package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	commons "github.com/krazyTry/commons-abc-go/commons_abc"
	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
)

// StateService reads curve records, token balances and mint supplies from
// a Solana RPC node. It is a read-only CurveStore and a Balances source, so
// an Engine built on it can quote and plan trades against live state.
type StateService struct {
	client     *rpc.Client
	programID  solana.PublicKey
	commitment rpc.CommitmentType
	logger     *zap.Logger

	maxTries        uint
	initialInterval time.Duration
	maxElapsed      time.Duration
}

type StateOption func(*StateService)

func WithCommitment(commitment rpc.CommitmentType) StateOption {
	return func(s *StateService) {
		s.commitment = commitment
	}
}

func WithStateLogger(logger *zap.Logger) StateOption {
	return func(s *StateService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRetry bounds the retries of a single account read.
func WithRetry(maxTries uint, initialInterval, maxElapsed time.Duration) StateOption {
	return func(s *StateService) {
		s.maxTries = maxTries
		s.initialInterval = initialInterval
		s.maxElapsed = maxElapsed
	}
}

func NewStateService(client *rpc.Client, opts ...StateOption) *StateService {
	s := &StateService{
		client:          client,
		programID:       commons.CommonsAbcProgramID,
		commitment:      rpc.CommitmentFinalized,
		logger:          zap.NewNop(),
		maxTries:        5,
		initialInterval: 500 * time.Millisecond,
		maxElapsed:      15 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("solana_state")
	return s
}

func (s *StateService) LoadCurve(ctx context.Context, curve solana.PublicKey) (*commons.CurveConfig, error) {
	account, err := s.fetch(ctx, curve, solana.EncodingBase64)
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, abc.ErrCurveNotFound
	}
	if err != nil {
		return nil, err
	}
	if !account.Owner.Equals(s.programID) {
		return nil, fmt.Errorf("%w: owned by %s", abc.ErrInvalidAccountData, account.Owner)
	}
	return commons.DecodeCurveConfig(account.Data.GetBinary())
}

func (s *StateService) StoreCurve(context.Context, solana.PublicKey, *commons.CurveConfig) error {
	return abc.ErrReadOnlyStore
}

// ListCurves returns every curve record, or only those of authority when
// it is non-zero.
func (s *StateService) ListCurves(ctx context.Context, authority solana.PublicKey) ([]*commons.Curve, error) {
	accounts, err := s.client.GetProgramAccountsWithOpts(ctx, s.programID, GenProgramAccountFilter(authority, s.commitment))
	if err != nil {
		return nil, err
	}
	curves := make([]*commons.Curve, 0, len(accounts))
	for _, keyed := range accounts {
		if keyed == nil || keyed.Account == nil {
			continue
		}
		config, err := commons.DecodeCurveConfig(keyed.Account.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", keyed.Pubkey, err)
		}
		curves = append(curves, &commons.Curve{Address: keyed.Pubkey, Config: config})
	}
	return curves, nil
}

// TokenAccountBalance prefers the node's jsonParsed view and falls back to
// decoding the raw account layout.
func (s *StateService) TokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	out, err := s.fetch(ctx, account, solana.EncodingJSONParsed)
	if err != nil {
		return 0, err
	}
	if raw := out.Data.GetRawJSON(); len(raw) > 0 {
		parsed, err := ParseTokenAccountJSON(raw)
		if err != nil {
			return 0, fmt.Errorf("token account %s: %w", account, err)
		}
		return parsed.Amount, nil
	}
	decoded, err := new(AccountLayout).Decode(out.Data.GetBinary())
	if err != nil {
		return 0, fmt.Errorf("token account %s: %w", account, err)
	}
	return decoded.Amount, nil
}

func (s *StateService) MintSupply(ctx context.Context, mint solana.PublicKey) (uint64, error) {
	out, err := s.fetch(ctx, mint, solana.EncodingBase64)
	if err != nil {
		return 0, err
	}
	decoded, err := new(TokenLayout).Decode(out.Data.GetBinary())
	if err != nil {
		return 0, fmt.Errorf("mint %s: %w", mint, err)
	}
	return decoded.Supply, nil
}

func (s *StateService) fetch(ctx context.Context, account solana.PublicKey, encoding solana.EncodingType) (*rpc.Account, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.initialInterval
	policy.MaxInterval = s.initialInterval * 10

	notify := func(err error, next time.Duration) {
		s.logger.Warn("account read failed, retrying",
			zap.Stringer("account", account),
			zap.Error(err),
			zap.Duration("backoff", next),
		)
	}

	operation := func() (*rpc.Account, error) {
		out, err := GetAccountInfo(ctx, s.client, account, encoding, s.commitment)
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, backoff.Permanent(err)
		}
		if err != nil {
			return nil, err
		}
		return out.Value, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(s.maxTries),
		backoff.WithMaxElapsedTime(s.maxElapsed),
		backoff.WithNotify(notify))
}
