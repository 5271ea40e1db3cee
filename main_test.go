package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fast-trip/config"
)

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "fast-trip version "+Version+"\n", out.String())
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "chat", "mock-api", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	t.Setenv(config.EnvAPIBaseURL, "http://from-env")

	cfg, err := loadConfig(&rootOptions{apiURL: "http://from-flag/api"})
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag/api", cfg.API.BaseURL)

	_, err = loadConfig(&rootOptions{apiURL: "ftp://nope"})
	assert.Error(t, err)
}

func TestNewLogger_Level(t *testing.T) {
	logger := newLogger(io.Discard, "warn")
	assert.False(t, logger.Enabled(context.Background(), -4))
	assert.True(t, logger.Enabled(context.Background(), 4))
	assert.True(t, newLogger(io.Discard, "DEBUG").Enabled(context.Background(), -4))
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, newLogger(io.Discard, "error")) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestOpenItineraries(t *testing.T) {
	cfg := config.DefaultConfig()
	repo, err := openItineraries(cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, repo.GetAll())

	cfg.Itinerary.Path = filepath.Join(t.TempDir(), "trip.json")
	require.NoError(t, os.WriteFile(cfg.Itinerary.Path, []byte(`{"destination":"Austin","itinerary":[{"day":1}]}`), 0644))
	repo, err = openItineraries(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Austin", repo.Destination())

	cfg.Itinerary.Path = filepath.Join(t.TempDir(), "missing.json")
	_, err = openItineraries(cfg)
	assert.Error(t, err)
}
