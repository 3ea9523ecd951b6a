package commands

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellerdesk-dev/tellerdesk/internal/config"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()

	err := runInit(dir, "admin", "adminpass123")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "tellerdesk.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.Equal(t, "admin", cfg.Superuser.Username)
	assert.Equal(t, "adminpass123", cfg.Superuser.Password)

	for _, name := range []string{"users.csv", "accounts.csv", "transactions.csv"} {
		_, err := os.Stat(filepath.Join(dir, "data", name))
		require.NoError(t, err, "%s should exist", name)
	}
}

func TestInitCommand_RequiresPassword(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"init", t.TempDir()})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
}
