package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_Session(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "admin", "adminpass123"))

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"run", "--config", filepath.Join(dir, "tellerdesk.yaml")})
	cmd.SetIn(strings.NewReader("Exit\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Exiting the application.")
}

func TestRunCommand_MissingConfig(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"run", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.Error(t, cmd.Execute())
}
