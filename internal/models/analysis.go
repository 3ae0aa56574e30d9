package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// Analysis is the stored outcome of one search for the side to move on a board.
type Analysis struct {
	Board    Board  `json:"board"    db:"board"`
	Turn     Color  `json:"turn"     db:"turn"`
	Strategy string `json:"strategy" db:"strategy"`
	Depth    int    `json:"depth"    db:"depth"`
	Score    int    `json:"score"    db:"score"`

	// Move is NoSquare when the side to move has to pass.
	Move Square `json:"move" db:"move"`
}

// Key returns the lookup key of the analysis.
func (a *Analysis) Key() AnalysisKey {
	return AnalysisKey{Board: a.Board, Turn: a.Turn, Strategy: a.Strategy}
}

// Validate checks that the analysis is internally consistent.
func (a *Analysis) Validate() error {
	if a.Turn != BLACK && a.Turn != WHITE {
		return fmt.Errorf("invalid turn: %s", a.Turn)
	}

	if a.Strategy == "" {
		return errors.New("strategy is empty")
	}

	if a.Depth < 0 {
		return errors.New("depth is negative")
	}

	if a.Move == NoSquare {
		if HasMoves(a.Board, a.Turn) {
			return errors.New("pass is not allowed when moves are available")
		}
		return nil
	}

	if !a.Move.IsValid() || len(Flips(a.Board, a.Move, a.Turn)) == 0 {
		return fmt.Errorf("move %s is not legal", a.Move)
	}

	return nil
}

// AnalysisKey identifies an analysis.
type AnalysisKey struct {
	Board    Board
	Turn     Color
	Strategy string
}

// String returns the key as used in caches, e.g. "<board>:black:advanced".
func (k AnalysisKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Board, k.Turn, k.Strategy)
}

// Value implements the driver.Valuer interface for Board.
func (b Board) Value() (driver.Value, error) {
	return b.String(), nil
}

// Scan implements the sql.Scanner interface for Board.
func (b *Board) Scan(value interface{}) error {
	var s string

	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("cannot scan %T into Board", value)
	}

	board, err := NewBoardFromString(s)
	if err != nil {
		return fmt.Errorf("cannot scan board: %w", err)
	}

	*b = board
	return nil
}
