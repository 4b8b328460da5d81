package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestResolveSocketPathFromConfigFile(t *testing.T) {
	path := writeConfig(t, "control:\n  socket_path: /run/user/1000/focus.sock\n")

	got, err := resolveSocketPath(false, config.DefaultSocketPath(), path)
	require.NoError(t, err)
	assert.Equal(t, "/run/user/1000/focus.sock", got)
}

func TestResolveSocketPathFromEnv(t *testing.T) {
	path := writeConfig(t, "title: Focus\n")
	t.Setenv("POMO_CONTROL_SOCKET_PATH", "/tmp/env-pomo.sock")

	got, err := resolveSocketPath(false, config.DefaultSocketPath(), path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env-pomo.sock", got)
}

func TestResolveSocketPathFlagWins(t *testing.T) {
	path := writeConfig(t, "control:\n  socket_path: /tmp/config.sock\n")

	got, err := resolveSocketPath(true, "/tmp/flag.sock", path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flag.sock", got)
}

func TestResolveSocketPathDefault(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	got, err := resolveSocketPath(false, "", "")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSocketPath(), got)
}

func TestResolveSocketPathBadConfig(t *testing.T) {
	path := writeConfig(t, "control: [unclosed\n")

	_, err := resolveSocketPath(false, "", path)
	assert.Error(t, err)
}
