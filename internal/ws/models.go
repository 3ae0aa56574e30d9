package ws

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

type Outgoing struct {
	ID   int `json:"id"`
	Data any `json:"data"`
}

// NewGameRequest starts a game, it is the same as the HTTP request.
type NewGameRequest = models.NewGameRequest

type PlayRequest struct {
	GameID uuid.UUID     `json:"game_id"`
	Square models.Square `json:"square"`
}

type StateRequest struct {
	GameID uuid.UUID `json:"game_id"`
}

// ErrorResponse is sent when a request could not be handled. The connection stays open.
type ErrorResponse struct {
	Error string `json:"error"`
}
