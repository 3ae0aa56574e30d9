package search

import (
	"math/rand"
	"sync"
	"time"

	"github.com/lk16/reversi/internal/models"
)

// Greedy plays the move that flips the most discs. Ties are broken uniformly at random.
type Greedy struct {
	// rngMutex protects rng
	rngMutex sync.Mutex
	rng      *rand.Rand
}

// NewGreedy creates a greedy strategy. A time-seeded source is used when rng is nil.
func NewGreedy(rng *rand.Rand) *Greedy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
	}
	return &Greedy{rng: rng}
}

// Name implements Strategy.
func (g *Greedy) Name() string {
	return BasicName
}

// ChooseMove implements Strategy.
func (g *Greedy) ChooseMove(board models.Board, color models.Color) (models.Move, bool) {
	moves := models.LegalMoves(board, color)
	if len(moves) == 0 {
		return models.Move{}, false
	}

	best := make([]models.Move, 0, len(moves))
	bestScore := -1

	for _, move := range moves {
		score := move.FlipCount()

		switch {
		case score > bestScore:
			bestScore = score
			best = append(best[:0], move)
		case score == bestScore:
			best = append(best, move)
		}
	}

	g.rngMutex.Lock()
	defer g.rngMutex.Unlock()

	return best[g.rng.Intn(len(best))], true
}
