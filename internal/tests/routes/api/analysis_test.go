package api_test

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/tests"
	"github.com/stretchr/testify/require"
)

const startBoard = "---------------------------ox------xo---------------------------"

func newApp() *tests.App {
	return tests.NewApp()
}

func basicAuth(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}

func TestLegalMoves(t *testing.T) {
	app := newApp()

	resp := app.Do(t, http.MethodPost, "/api/analysis/moves", map[string]any{"board": startBoard, "turn": "white"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	moves := tests.Decode[models.LegalMovesResponse](t, resp)
	require.False(t, moves.Terminal)
	require.Len(t, moves.Moves, 4)
	require.Equal(t, "e3", moves.Moves[0].String())
	require.Len(t, moves.Moves[0].Flips, 1)
}

func TestLegalMovesBadRequest(t *testing.T) {
	testCases := []struct {
		name string
		body map[string]any
	}{
		{name: "board too short", body: map[string]any{"board": "xo", "turn": "black"}},
		{name: "invalid turn", body: map[string]any{"board": startBoard, "turn": "empty"}},
		{name: "missing turn", body: map[string]any{"board": startBoard}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()

			resp := app.Do(t, http.MethodPost, "/api/analysis/moves", tt.body, nil)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestEvaluate(t *testing.T) {
	app := newApp()

	body := map[string]any{
		"board":       "-------------------x-------xx------xo---------------------------",
		"perspective": "white",
	}

	resp := app.Do(t, http.MethodPost, "/api/analysis/evaluate", body, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	evaluation := tests.Decode[models.EvaluateResponse](t, resp)
	require.Equal(t, -9, evaluation.Score)
}

func TestChoose(t *testing.T) {
	app := newApp()

	body := map[string]any{"board": startBoard, "turn": "black", "strategy": "advanced"}

	resp := app.Do(t, http.MethodPost, "/api/analysis/choose", body, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	chosen := tests.Decode[models.ChooseResponse](t, resp)
	require.Equal(t, "d3", chosen.Move.String())
	require.Equal(t, -2, chosen.Score)
	require.Equal(t, 4, chosen.Depth)
	require.False(t, chosen.Cached)
	require.Equal(t, 1, app.Store.Len())

	resp = app.Do(t, http.MethodPost, "/api/analysis/choose", body, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cached := tests.Decode[models.ChooseResponse](t, resp)
	require.True(t, cached.Cached)
	require.Equal(t, chosen.Move, cached.Move)
}

func TestChoosePass(t *testing.T) {
	app := newApp()

	body := map[string]any{"board": "-xxxxxxo" + strings.Repeat("o", 56), "turn": "black", "strategy": "basic"}

	resp := app.Do(t, http.MethodPost, "/api/analysis/choose", body, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	chosen := tests.Decode[models.ChooseResponse](t, resp)
	require.Nil(t, chosen.Move)
}

func TestChooseUnknownStrategy(t *testing.T) {
	app := newApp()

	body := map[string]any{"board": startBoard, "turn": "black", "strategy": "expert"}

	resp := app.Do(t, http.MethodPost, "/api/analysis/choose", body, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetStats(t *testing.T) {
	app := newApp()

	body := map[string]any{"board": startBoard, "turn": "black", "strategy": "advanced"}
	resp := app.Do(t, http.MethodPost, "/api/analysis/choose", body, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	testCases := []struct {
		name       string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "no auth",
			headers:    nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong token",
			headers:    map[string]string{"X-Token": "wrong"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token",
			headers:    map[string]string{"X-Token": tests.TestToken},
			wantStatus: http.StatusOK,
		},
		{
			name:       "basic auth",
			headers:    map[string]string{"Authorization": basicAuth(tests.TestUser, tests.TestPassword)},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			resp := app.Do(t, http.MethodGet, "/api/analysis/stats", nil, tt.headers)
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusUnauthorized {
				require.Equal(t, `Basic realm="Reversi analysis"`, resp.Header.Get("WWW-Authenticate"))
			}

			if tt.wantStatus == http.StatusOK {
				stats := tests.Decode[map[string]int64](t, resp)
				require.Equal(t, map[string]int64{"advanced": 1}, stats)
			}
		})
	}
}
