package search

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lk16/reversi/internal/models"
)

const (
	// BasicName is the name of the greedy strategy.
	BasicName = "basic"

	// AdvancedName is the name of the alpha-beta strategy.
	AdvancedName = "advanced"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy chooses a move for the side to move.
type Strategy interface {
	// Name returns the name used to select the strategy.
	Name() string

	// ChooseMove returns the chosen move, or false if color has to pass.
	ChooseMove(board models.Board, color models.Color) (models.Move, bool)
}

// Options configures strategies created by NewStrategy.
type Options struct {
	// Rand is used for tie-breaking by the basic strategy. A time-seeded source is used when nil.
	Rand *rand.Rand

	// Parallel makes the advanced strategy search root moves concurrently.
	Parallel bool
}

// NewStrategy returns the strategy with the given name.
func NewStrategy(name string, opts Options) (Strategy, error) {
	switch name {
	case BasicName:
		return NewGreedy(opts.Rand), nil
	case AdvancedName:
		return &AlphaBeta{Parallel: opts.Parallel}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Names returns the names of all strategies.
func Names() []string {
	return []string{BasicName, AdvancedName}
}
