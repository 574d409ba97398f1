package cmd

import (
	"fmt"
	"strconv"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"

	commons "github.com/krazyTry/commons-abc-go/commons_abc"
	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
	"github.com/krazyTry/commons-abc-go/config"
	"github.com/krazyTry/commons-abc-go/solana"
)

func newQuoteCmd(s *simulator) *cobra.Command {
	var curveAddr string
	cmd := &cobra.Command{
		Use:   "quote buy|sell <amount>",
		Short: "Quote a trade against a live curve",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := config.Trade{Side: args[0]}.Direction()
			if err != nil {
				return err
			}
			amount, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("amount: %w", err)
			}
			curve, err := solanago.PublicKeyFromBase58(curveAddr)
			if err != nil {
				return fmt.Errorf("curve: %w", err)
			}

			cfg, log, err := s.load()
			if err != nil {
				return err
			}
			defer log.Sync()

			state := solana.NewStateService(rpc.New(cfg.RPC.Endpoint),
				solana.WithCommitment(rpc.CommitmentType(cfg.RPC.Commitment)),
				solana.WithRetry(cfg.RPC.MaxRetries, cfg.RPC.InitialBackoff, cfg.RPC.MaxElapsed),
				solana.WithStateLogger(log.WithComponent("rpc")),
			)
			engine := commons.NewEngine(state, state, solana.NewInstructionRecorder(), commons.WithLogger(log.Logger))
			return printQuote(cmd, engine, curve, direction, amount)
		},
	}
	cmd.Flags().StringVar(&curveAddr, "curve", "", "curve config address")
	_ = cmd.MarkFlagRequired("curve")
	return cmd
}

func printQuote(cmd *cobra.Command, engine *commons.Engine, curve solanago.PublicKey, direction abc.TradeDirection, amount uint64) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if direction == abc.TradeDirectionBuy {
		quote, err := engine.QuoteBuy(ctx, curve, amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "deposit:       %d\nreserve share: %d\npool share:    %d\nminted:        %d\n",
			quote.Amount, quote.ReserveShare, quote.PoolShare, quote.Minted)
		return nil
	}
	quote, err := engine.QuoteSell(ctx, curve, amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "burn:          %d\nreserve delta: %d\nexit tribute:  %d\nnet payout:    %d\n",
		quote.Amount, quote.ReserveDelta, quote.ExitTribute, quote.NetPayout)
	return nil
}
