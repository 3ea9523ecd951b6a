package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tellerdesk-dev/tellerdesk/internal/bank"
	"github.com/tellerdesk-dev/tellerdesk/internal/config"
	"github.com/tellerdesk-dev/tellerdesk/internal/shell"
	"github.com/tellerdesk-dev/tellerdesk/internal/store/csvstore"
	"github.com/tellerdesk-dev/tellerdesk/internal/transactions"
	"github.com/tellerdesk-dev/tellerdesk/internal/users"
)

func newRunCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start an interactive banking session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSession(cmd, cfg)
		},
	}
}

func runSession(cmd *cobra.Command, cfg *config.Config) error {
	log, err := buildLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	st := csvstore.New(cfg.DataDir, log.Named("store"))
	if err := st.Init(); err != nil {
		return err
	}

	sh := shell.New(shell.Params{
		In:           cmd.InOrStdin(),
		Out:          cmd.OutOrStdout(),
		Users:        users.NewService(st, log.Named("users")),
		Accounts:     bank.NewService(st, log.Named("bank")),
		Transactions: transactions.NewService(st, log.Named("transactions")),
		Superuser:    cfg.Superuser,
		DataDir:      cfg.DataDir,
		Log:          log.Named("shell"),
	})
	return sh.Run()
}

// buildLogger constructs the diagnostic logger from the config's logging
// section. Diagnostics go to stderr so they never interleave with the menu
// output on stdout.
func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}
