package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *App {
	t.Helper()
	a, err := New("test", "abc123", "2026-08-24")
	require.NoError(t, err)
	return a
}

func TestNewApp(t *testing.T) {
	a := testApp(t)
	assert.Equal(t, "test", a.Version())
	assert.NotNil(t, a.Config())
	assert.NotNil(t, a.Logger())
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.NotEmpty(t, cfg.GeminiModel)
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "json", LogLevel: "info"}
	cfg.UpdateFromFlags(true, false, true, "", "")

	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	// Empty flag values never clobber configured values.
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)

	cfg.UpdateFromFlags(false, true, false, "yaml", "debug")
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"default", Config{}, "info"},
		{"verbose", Config{Verbose: true}, "debug"},
		{"quiet", Config{Quiet: true}, "warn"},
		{"both flags prefers quiet", Config{Verbose: true, Quiet: true}, "warn"},
		{"explicit wins over verbose", Config{Verbose: true, LogLevel: "error"}, "error"},
		{"invalid falls back", Config{LogLevel: "loud"}, "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	a := testApp(t)

	var out bytes.Buffer
	cmd := a.NewVersionCommand()
	cmd.SetOut(&out)
	require.NoError(t, cmd.RunE(cmd, nil))

	assert.Contains(t, out.String(), "scorelens test")
	assert.Contains(t, out.String(), "abc123")
}

func TestExecuteUnknownCommand(t *testing.T) {
	a := testApp(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := a.Execute(ctx, []string{"no-such-command"})
	assert.Error(t, err)
}

func TestScanRequiresImageArgument(t *testing.T) {
	a := testApp(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := a.Execute(ctx, []string{"scan"})
	assert.Error(t, err)
}
