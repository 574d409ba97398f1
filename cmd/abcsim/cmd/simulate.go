package cmd

import (
	"context"
	"fmt"
	"io"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	commons "github.com/krazyTry/commons-abc-go/commons_abc"
	"github.com/krazyTry/commons-abc-go/commons_abc/helpers"
	"github.com/krazyTry/commons-abc-go/commons_abc/math"
	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
	"github.com/krazyTry/commons-abc-go/config"
	"github.com/krazyTry/commons-abc-go/ledger"
	"github.com/krazyTry/commons-abc-go/solana"
)

func newSimulateCmd(s *simulator) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Replay the configured trades against a fresh in-memory curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := s.load()
			if err != nil {
				return err
			}
			defer log.Sync()
			return simulate(cmd.Context(), cfg, log.Logger, cmd.OutOrStdout())
		},
	}
}

// world is an in-memory deployment of one curve and one trader.
type world struct {
	ledger *ledger.Memory
	engine *commons.Engine
	curve  solanago.PublicKey
	trader commons.TraderAccounts
}

func newWorld(ctx context.Context, cfg *config.Config, log *zap.Logger) (*world, error) {
	l := ledger.NewMemory(commons.CommonsAbcProgramID)

	commonsMint, reserveMint, issuer := newKey(), newKey(), newKey()
	curve := helpers.DeriveCurveConfig(commonsMint)
	accounts := commons.CurveAccounts{
		CommonsTokenMint: commonsMint,
		ReserveMint:      reserveMint,
		ReserveVault:     newKey(),
		CommonsTreasury:  newKey(),
	}
	trader := commons.TraderAccounts{Owner: newKey(), ReserveAccount: newKey(), CommonsAccount: newKey()}

	var deposits uint64
	for _, trade := range cfg.Trades {
		if side, _ := trade.Direction(); side == abc.TradeDirectionBuy {
			sum, err := math.Add(deposits, trade.Amount)
			if err != nil {
				return nil, fmt.Errorf("total deposits: %w", err)
			}
			deposits = sum
		}
	}

	steps := []func() error{
		func() error { return l.CreateMint(reserveMint, issuer, cfg.Curve.Decimals) },
		func() error { return l.CreateMint(commonsMint, curve, cfg.Curve.Decimals) },
		func() error { return l.CreateAccount(accounts.ReserveVault, reserveMint, curve) },
		func() error { return l.CreateAccount(accounts.CommonsTreasury, reserveMint, curve) },
		func() error { return l.CreateAccount(trader.ReserveAccount, reserveMint, trader.Owner) },
		func() error { return l.CreateAccount(trader.CommonsAccount, commonsMint, trader.Owner) },
		func() error {
			return l.MintTo(ctx, reserveMint, trader.ReserveAccount, abc.WalletSigner(issuer), deposits)
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	engine := commons.NewEngine(commons.NewMemoryStore(), l, l, commons.WithLogger(log))
	if _, err := engine.InitializeCurve(ctx, newKey(), accounts, cfg.Curve.Params()); err != nil {
		return nil, err
	}
	return &world{ledger: l, engine: engine, curve: curve, trader: trader}, nil
}

func simulate(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer) error {
	w, err := newWorld(ctx, cfg, log)
	if err != nil {
		return err
	}
	decimals := cfg.Curve.Decimals

	for i, trade := range cfg.Trades {
		side, _ := trade.Direction()
		var line string
		if side == abc.TradeDirectionBuy {
			quote, err := w.engine.Buy(ctx, w.curve, w.trader, trade.Amount)
			if err == nil {
				line = fmt.Sprintf("buy  %s -> minted %s (pool %s)",
					solana.UiAmount(trade.Amount, decimals), solana.UiAmount(quote.Minted, decimals), solana.UiAmount(quote.PoolShare, decimals))
			}
			err = reportRejection(err, &line)
			if err != nil {
				return fmt.Errorf("trade %d: %w", i, err)
			}
		} else {
			quote, err := w.engine.Sell(ctx, w.curve, w.trader, trade.Amount)
			if err == nil {
				line = fmt.Sprintf("sell %s -> paid %s (tribute %s)",
					solana.UiAmount(trade.Amount, decimals), solana.UiAmount(quote.NetPayout, decimals), solana.UiAmount(quote.ExitTribute, decimals))
			}
			err = reportRejection(err, &line)
			if err != nil {
				return fmt.Errorf("trade %d: %w", i, err)
			}
		}
		fmt.Fprintf(out, "[%d] %s\n", i, line)
	}

	state, err := w.engine.State(ctx, w.curve)
	if err != nil {
		return err
	}
	reserve, err := w.ledger.TokenAccountBalance(ctx, w.trader.ReserveAccount)
	if err != nil {
		return err
	}
	holdings, err := w.ledger.TokenAccountBalance(ctx, w.trader.CommonsAccount)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "curve:          %s\n", state.Address)
	fmt.Fprintf(out, "invariant:      %s\n", state.Invariant)
	fmt.Fprintf(out, "reserve:        %s\n", solana.UiAmount(state.Reserve, decimals))
	fmt.Fprintf(out, "supply:         %s\n", solana.UiAmount(state.Supply, decimals))
	fmt.Fprintf(out, "treasury:       %s\n", solana.UiAmount(state.Treasury, decimals))
	fmt.Fprintf(out, "spot price:     %s\n", state.SpotPrice.StringFixed(6))
	fmt.Fprintf(out, "trader reserve: %s\n", solana.UiAmount(reserve, decimals))
	fmt.Fprintf(out, "trader commons: %s\n", solana.UiAmount(holdings, decimals))
	return nil
}

// reportRejection turns a settlement rejection into an output line so the
// replay continues. Other errors are returned.
func reportRejection(err error, line *string) error {
	if err == nil || !math.IsRejection(err) {
		return err
	}
	*line = "rejected: " + err.Error()
	return nil
}

func newKey() solanago.PublicKey {
	return solanago.NewWallet().PublicKey()
}
