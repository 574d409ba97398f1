package cmd

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/krazyTry/commons-abc-go/commons_abc/helpers"
)

func newDeriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive <commons-mint>",
		Short: "Print the curve config address and bump of a commons mint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := solanago.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("commons mint: %w", err)
			}
			curve, bump, err := helpers.DeriveCurveConfigPDA(mint)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "curve: %s\nbump:  %d\n", curve, bump)
			return nil
		},
	}
}
