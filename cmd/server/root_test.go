package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate"}, names)

	f := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, f)
	assert.Equal(t, "config.yaml", f.DefValue)
}

func TestRootCmd_MigrateRejectsMemoryStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  storage: memory\nlogger:\n  env: test\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate", "--config", path})
	cmd.SetOut(os.Stderr)
	err := cmd.Execute()
	assert.ErrorContains(t, err, "migrate needs app.storage=postgres")
}

func TestRootCmd_BadConfigFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorContains(t, cmd.Execute(), "config loading failed")
}
