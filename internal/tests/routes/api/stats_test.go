package api_test

import (
	"net/http"
	"testing"

	"github.com/lk16/flippy/reversi/internal/models"
	"github.com/lk16/flippy/reversi/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestGetStats_Empty(t *testing.T) {
	app, _ := tests.NewTestApp(t)

	var stats []models.DifficultyStats
	status := tests.Do(t, app, http.MethodGet, "/api/stats", nil, &stats)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, stats)
}

func TestGetStats_Unauthorized(t *testing.T) {
	app, _ := tests.NewTestApp(t)

	for _, token := range []string{"", "wrong-token"} {
		req, err := http.NewRequest(http.MethodGet, "/api/stats", nil)
		require.NoError(t, err)

		if token != "" {
			req.Header.Set("x-token", token)
		}

		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}
