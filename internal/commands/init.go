package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/config"
	"github.com/tellerdesk-dev/tellerdesk/internal/store/csvstore"
)

func newInitCommand() *cobra.Command {
	var superuserName string
	var superuserPassword string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tellerdesk installation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, superuserName, superuserPassword); err != nil {
				return err
			}
			cmd.Printf("Initialized tellerdesk at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&superuserName, "superuser-name", "superuser", "superuser login name")
	cmd.Flags().StringVar(&superuserPassword, "superuser-password", "", "superuser password (required)")
	_ = cmd.MarkFlagRequired("superuser-password")

	return cmd
}

func runInit(dir, superuserName, superuserPassword string) error {
	dataDir := filepath.Join(dir, "data")

	cfg := config.Default(dataDir)
	cfg.Superuser.Username = superuserName
	cfg.Superuser.Password = superuserPassword

	if err := config.Save(filepath.Join(dir, "tellerdesk.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	st := csvstore.New(dataDir, zap.NewNop())
	if err := st.Init(); err != nil {
		return fmt.Errorf("creating data files: %w", err)
	}
	return nil
}
