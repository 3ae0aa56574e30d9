package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/repository"
	"github.com/stretchr/testify/require"
)

const (
	TestUser     = "test-user"
	TestPassword = "test-password"
	TestToken    = "test-token"
)

// TestConfig returns a config that does not need external services.
func TestConfig() *config.ServerConfig {
	return &config.ServerConfig{
		ServerHost:        "localhost",
		ServerPort:        "3000",
		BasicAuthUsername: TestUser,
		BasicAuthPassword: TestPassword,
		Token:             TestToken,
		Prefork:           false,
		DefaultStrategy:   config.DefaultStrategy,
		ParallelSearch:    false,
		Offline:           true,
	}
}

// App is a Fiber app with in-memory storage that is tested without listening on a port.
type App struct {
	*fiber.App
	Store    *repository.MemoryStore
	Registry *game.Registry
}

// NewApp builds an app for tests.
func NewApp() *App {
	store := repository.NewMemoryStore()
	registry := game.NewRegistry()

	return &App{
		App:      internal.BuildApp(TestConfig(), store, registry),
		Store:    store,
		Registry: registry,
	}
}

// Do sends a request with an optional JSON body and returns the response.
// The body is closed when the test ends.
func (a *App) Do(t *testing.T, method, url string, body any, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	// Searches at the start of a game can take longer than the default of one second.
	resp, err := a.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	return resp
}

// Decode decodes a JSON response body.
func Decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var value T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&value))
	return value
}
