package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-calc/internal/config"
	"github.com/rovshanmuradov/token-calc/internal/logger"
)

// Version is overridden at build time.
var Version = "dev"

type rootOptions struct {
	configPath string
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the calc command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "calc",
		Short: "Crypto investment calculator",
		Long: `calc derives tokens purchased, future value, break-even price and
post-unlock price from a token's price, your investment, fees and target.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = logger.CreatePrettyLogger(opts.debug || cfg.DebugLogging, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a config file (json, yaml, toml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newComputeCmd(opts))
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		logger.CreatePrettyLogger(false, os.Stderr).Error(err.Error())
		return 1
	}
	return 0
}
