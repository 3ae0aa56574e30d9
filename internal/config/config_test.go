package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("REVERSI_SERVER_HOST", "localhost")
	t.Setenv("REVERSI_SERVER_PORT", "3000")
	t.Setenv("REVERSI_BASIC_AUTH_USER", "user")
	t.Setenv("REVERSI_BASIC_AUTH_PASS", "pass")
	t.Setenv("REVERSI_TOKEN", "token")
	t.Setenv("REVERSI_PREFORK", "false")
}

func TestLoadServerConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REVERSI_REDIS_URL", "redis://localhost:6379")
	t.Setenv("REVERSI_POSTGRES_URL", "postgres://localhost:5432/reversi")

	cfg := LoadServerConfig()

	require.Equal(t, &ServerConfig{
		ServerHost:        "localhost",
		ServerPort:        "3000",
		RedisURL:          "redis://localhost:6379",
		PostgresURL:       "postgres://localhost:5432/reversi",
		BasicAuthUsername: "user",
		BasicAuthPassword: "pass",
		Token:             "token",
		Prefork:           false,
		DefaultStrategy:   "advanced",
		ParallelSearch:    false,
		Offline:           false,
	}, cfg)
}

func TestLoadServerConfig_Offline(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REVERSI_OFFLINE", "true")
	t.Setenv("REVERSI_PARALLEL_SEARCH", "true")
	t.Setenv("REVERSI_DEFAULT_STRATEGY", "basic")

	cfg := LoadServerConfig()

	require.True(t, cfg.Offline)
	require.True(t, cfg.ParallelSearch)
	require.Equal(t, "basic", cfg.DefaultStrategy)
	require.Empty(t, cfg.RedisURL)
	require.Empty(t, cfg.PostgresURL)
}

func TestLoadServerConfig_DotEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REVERSI_OFFLINE", "true")

	// Variables only set by the .env file are not restored by t.Setenv.
	require.NoError(t, os.Unsetenv("REVERSI_DEFAULT_STRATEGY"))
	t.Cleanup(func() {
		_ = os.Unsetenv("REVERSI_DEFAULT_STRATEGY")
	})

	dir := t.TempDir()
	dotEnv := "REVERSI_DEFAULT_STRATEGY=basic\nREVERSI_SERVER_PORT=9999\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotEnv), 0o600))
	t.Chdir(dir)

	cfg := LoadServerConfig()

	require.Equal(t, "basic", cfg.DefaultStrategy)

	// Environment takes precedence over the .env file.
	require.Equal(t, "3000", cfg.ServerPort)
}

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		value   string
		want    slog.Level
		wantErr bool
	}{
		{value: "", want: slog.LevelInfo},
		{value: "debug", want: slog.LevelDebug},
		{value: "INFO", want: slog.LevelInfo},
		{value: "Warn", want: slog.LevelWarn},
		{value: "ERROR", want: slog.LevelError},
		{value: "trace", wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.value, func(t *testing.T) {
			level, err := parseLogLevel(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, level)
		})
	}
}

func TestValidateStrategy(t *testing.T) {
	require.NoError(t, validateStrategy("basic"))
	require.NoError(t, validateStrategy("advanced"))
	require.NoError(t, validateStrategy(DefaultStrategy))

	err := validateStrategy("advnaced")
	require.ErrorContains(t, err, `unknown strategy "advnaced"`)
}
