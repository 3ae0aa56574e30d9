package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/tests"
	"github.com/stretchr/testify/require"
)

func createGame(t *testing.T, app *tests.App, body map[string]any) game.View {
	t.Helper()

	resp := app.Do(t, http.MethodPost, "/api/games", body, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return tests.Decode[game.View](t, resp)
}

func TestCreateGame(t *testing.T) {
	testCases := []struct {
		name         string
		body         map[string]any
		wantTurn     models.Color
		wantStrategy string
		wantEvents   int
		wantHinted   int
	}{
		{
			name:         "human black with hints",
			body:         map[string]any{"human": "black", "strategy": "basic", "hints": true},
			wantTurn:     models.BLACK,
			wantStrategy: "basic",
			wantEvents:   0,
			wantHinted:   4,
		},
		{
			name:         "human white, engine opens",
			body:         map[string]any{"human": "white", "strategy": "advanced", "hints": true},
			wantTurn:     models.WHITE,
			wantStrategy: "advanced",
			wantEvents:   1,
			wantHinted:   3,
		},
		{
			name:         "default strategy without hints",
			body:         map[string]any{"human": "black"},
			wantTurn:     models.BLACK,
			wantStrategy: "advanced",
			wantEvents:   0,
			wantHinted:   0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()

			view := createGame(t, app, tt.body)

			require.NotEqual(t, uuid.Nil, view.ID)
			require.Equal(t, tt.wantTurn, view.Turn)
			require.Equal(t, tt.wantStrategy, view.Strategy)
			require.Equal(t, game.AwaitingMove, view.Phase)
			require.Len(t, view.Events, tt.wantEvents)
			require.Len(t, view.Hinted, tt.wantHinted)
			require.Nil(t, view.Result)
			require.Equal(t, 1, app.Registry.Len())
		})
	}
}

func TestCreateGameBadRequest(t *testing.T) {
	testCases := []struct {
		name string
		body any
	}{
		{name: "missing human", body: map[string]any{"strategy": "basic"}},
		{name: "human empty", body: map[string]any{"human": "empty"}},
		{name: "unknown human", body: map[string]any{"human": "purple"}},
		{name: "unknown strategy", body: map[string]any{"human": "black", "strategy": "expert"}},
		{name: "not an object", body: []int{1, 2, 3}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()

			resp := app.Do(t, http.MethodPost, "/api/games", tt.body, nil)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := tests.Decode[map[string]string](t, resp)
			require.NotEmpty(t, body["error"])
			require.Equal(t, 0, app.Registry.Len())
		})
	}
}

func TestGetGame(t *testing.T) {
	app := newApp()
	created := createGame(t, app, map[string]any{"human": "black", "strategy": "basic"})

	resp := app.Do(t, http.MethodGet, "/api/games/"+created.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := tests.Decode[game.View](t, resp)
	require.Equal(t, created.ID, view.ID)
	require.Equal(t, models.NewBoardStart(), view.Board)
	require.Empty(t, view.Events)
}

func TestGetGameErrors(t *testing.T) {
	app := newApp()

	resp := app.Do(t, http.MethodGet, "/api/games/"+uuid.NewString(), nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = app.Do(t, http.MethodGet, "/api/games/not-a-uuid", nil, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteGame(t *testing.T) {
	app := newApp()
	created := createGame(t, app, map[string]any{"human": "black"})

	resp := app.Do(t, http.MethodDelete, "/api/games/"+created.ID.String(), nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, 0, app.Registry.Len())

	resp = app.Do(t, http.MethodDelete, "/api/games/"+created.ID.String(), nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayMove(t *testing.T) {
	app := newApp()
	created := createGame(t, app, map[string]any{"human": "black", "strategy": "basic", "hints": true})

	resp := app.Do(t, http.MethodPost, "/api/games/"+created.ID.String()+"/moves", map[string]any{"square": "d3"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := tests.Decode[game.View](t, resp)
	require.Len(t, view.Events, 2)
	require.Equal(t, game.EventMove, view.Events[0].Type)
	require.Equal(t, "d3", view.Events[0].Move.String())
	require.Equal(t, models.WHITE, view.Events[1].Color)
	require.Equal(t, models.BLACK, view.Turn)
	require.Equal(t, 6, view.Board.CountDiscs())
	require.NotEmpty(t, view.Hinted)
}

func TestPlayMoveErrors(t *testing.T) {
	app := newApp()
	created := createGame(t, app, map[string]any{"human": "black", "strategy": "basic"})
	url := "/api/games/" + created.ID.String() + "/moves"

	testCases := []struct {
		name       string
		url        string
		body       any
		wantStatus int
	}{
		{
			name:       "illegal move",
			url:        url,
			body:       map[string]any{"square": "a1"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "occupied square",
			url:        url,
			body:       map[string]any{"square": "d4"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid square",
			url:        url,
			body:       map[string]any{"square": "z9"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown game",
			url:        "/api/games/" + uuid.NewString() + "/moves",
			body:       map[string]any{"square": "d3"},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			resp := app.Do(t, http.MethodPost, tt.url, tt.body, nil)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestPlayMoveGameOver(t *testing.T) {
	app := newApp()
	created := createGame(t, app, map[string]any{"human": "black", "strategy": "basic"})

	session, err := app.Registry.Get(created.ID)
	require.NoError(t, err)

	session.Lock()
	session.Controller, err = game.NewControllerWithStart(models.NewBoardMust(strings.Repeat("xo", 32)), models.BLACK, game.Players{})
	session.Unlock()
	require.NoError(t, err)

	resp := app.Do(t, http.MethodPost, "/api/games/"+created.ID.String()+"/moves", map[string]any{"square": "a1"}, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = app.Do(t, http.MethodGet, "/api/games/"+created.ID.String(), nil, nil)
	view := tests.Decode[game.View](t, resp)
	require.Equal(t, game.Terminal, view.Phase)
	require.Equal(t, &game.Result{Black: 32, White: 32, Winner: models.EMPTY}, view.Result)
}
