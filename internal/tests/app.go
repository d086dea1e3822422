package tests

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/reversi/internal"
	"github.com/lk16/flippy/reversi/internal/config"
	"github.com/lk16/flippy/reversi/internal/opponent"
	"github.com/lk16/flippy/reversi/internal/services"
	"github.com/stretchr/testify/require"
)

// App is the app under test.
type App = *fiber.App

// TestToken is the token of the app returned by NewTestApp.
const TestToken = "test-token"

// NewTestConfig returns a configuration without external services.
func NewTestConfig() *config.ServerConfig {
	return &config.ServerConfig{
		ServerHost:        "localhost",
		ServerPort:        "3000",
		Token:             TestToken,
		SessionTTL:        time.Hour,
		DefaultDifficulty: opponent.Medium,
	}
}

// NewTestApp builds the app on in-memory stores.
func NewTestApp(t *testing.T) (*fiber.App, *services.Services) {
	t.Helper()

	cfg := NewTestConfig()
	services := services.NewMemoryServices(cfg)

	return internal.BuildApp(cfg, services), services
}

// Do sends a request to the app and decodes the JSON response into out, unless out is nil.
func Do(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("x-token", TestToken)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if out != nil {
		require.NoError(t, sonic.Unmarshal(respBody, out), string(respBody))
	}

	return resp.StatusCode
}
