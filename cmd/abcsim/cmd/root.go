package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/krazyTry/commons-abc-go/config"
	"github.com/krazyTry/commons-abc-go/logger"
)

type simulator struct {
	configPath string
	logLevel   string
}

func NewRootCmd() *cobra.Command {
	s := &simulator{}
	cmd := &cobra.Command{
		Use:   "abcsim",
		Short: "Augmented bonding curve simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.PersistentFlags().StringVarP(&s.configPath, "config", "c", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "log level, overrides the config")

	cmd.AddCommand(
		newSimulateCmd(s),
		newQuoteCmd(s),
		newDeriveCmd(),
	)
	return cmd
}

// load reads the configuration and builds the logger it describes.
func (s *simulator) load() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, nil, err
	}
	logCfg := cfg.Log.Logger()
	if s.logLevel != "" {
		logCfg.Level = s.logLevel
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, nil, err
	}
	log.WithComponent("abcsim").Debug("configuration loaded",
		zap.String("path", s.configPath),
		zap.String("rpc", cfg.RPC.Endpoint),
	)
	return cfg, log, nil
}
