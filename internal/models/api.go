package models

import (
	"errors"
)

// NewGameRequest represents the payload for starting a game against the engine.
type NewGameRequest struct {
	Human    Color  `json:"human"`
	Strategy string `json:"strategy"`
	Hints    bool   `json:"hints"`
}

// Validate validates the new game request.
func (r *NewGameRequest) Validate() error {
	if r.Human != BLACK && r.Human != WHITE {
		return errors.New("human must be black or white")
	}
	return nil
}

// PlayRequest represents a human move.
type PlayRequest struct {
	Square Square `json:"square"`
}

// BoardRequest is a board together with the side to move.
type BoardRequest struct {
	Board Board `json:"board"`
	Turn  Color `json:"turn"`
}

// Validate validates the board request.
func (r *BoardRequest) Validate() error {
	if r.Turn != BLACK && r.Turn != WHITE {
		return errors.New("turn must be black or white")
	}
	return nil
}

// LegalMovesResponse lists the legal moves of a board request.
type LegalMovesResponse struct {
	Moves    []Move `json:"moves"`
	Terminal bool   `json:"terminal"`
}

// EvaluateRequest asks for the heuristic score of a board.
type EvaluateRequest struct {
	Board       Board `json:"board"`
	Perspective Color `json:"perspective"`
}

// Validate validates the evaluate request.
func (r *EvaluateRequest) Validate() error {
	if r.Perspective != BLACK && r.Perspective != WHITE {
		return errors.New("perspective must be black or white")
	}
	return nil
}

// EvaluateResponse contains a heuristic score.
type EvaluateResponse struct {
	Score int `json:"score"`
}

// ChooseRequest asks a strategy to pick a move.
type ChooseRequest struct {
	Board    Board  `json:"board"`
	Turn     Color  `json:"turn"`
	Strategy string `json:"strategy"`
}

// Validate validates the choose request.
func (r *ChooseRequest) Validate() error {
	if r.Turn != BLACK && r.Turn != WHITE {
		return errors.New("turn must be black or white")
	}
	return nil
}

// ChooseResponse contains the chosen move. Move is nil when the side to move has to pass.
type ChooseResponse struct {
	Move   *Move `json:"move"`
	Score  int   `json:"score"`
	Depth  int   `json:"depth"`
	Cached bool  `json:"cached"`
}

// VersionResponse contains the git commit of the running server.
type VersionResponse struct {
	Commit string `json:"commit"`
}
