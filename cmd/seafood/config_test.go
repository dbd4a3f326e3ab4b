package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SEAFOOD_HOME", home)
	t.Setenv("SEAFOOD_LOG_ENCODING", "json")

	env, err := getEnvironment()
	require.NoError(t, err)
	seafoodHome, err := env.seafoodHome()
	require.NoError(t, err)
	require.Equal(t, home, seafoodHome)

	cfg := env.loggingConfig(false)
	require.Equal(t, "warn", cfg.Level)
	require.Equal(t, "json", cfg.Encoding)
	require.Equal(t, "debug", env.loggingConfig(true).Level)
}

func TestConfig(t *testing.T) {
	seafoodHome := filepath.Join(t.TempDir(), ".seafood")

	_, err := getConfig(seafoodHome)
	require.Error(t, err)
	require.Contains(t, err.Error(), "seafood --server ADDRESS login")

	require.NoError(
		t,
		saveConfig(seafoodHome, &config{APIAddress: "http://localhost:8080"}),
	)
	cfg, err := getConfig(seafoodHome)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.APIAddress)
}
