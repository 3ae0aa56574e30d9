package search

import (
	"log/slog"
	"math"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/models"
	"golang.org/x/sync/errgroup"
)

const inf = math.MaxInt32

// Depth returns the search depth for a board. Fewer empty squares allow a deeper search.
func Depth(board models.Board) int {
	empties := board.CountEmpties()

	switch {
	case empties <= 14:
		return 6
	case empties <= 26:
		return 5
	default:
		return 4
	}
}

// Result is the outcome of a search.
type Result struct {
	Move    models.Move
	Score   int
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
}

// AlphaBeta chooses moves with a depth-limited minimax search with alpha-beta pruning.
type AlphaBeta struct {
	// Parallel searches every root move in its own goroutine.
	// This finds the same move and score as the sequential search.
	Parallel bool
}

// Name implements Strategy.
func (s *AlphaBeta) Name() string {
	return AdvancedName
}

// ChooseMove implements Strategy.
func (s *AlphaBeta) ChooseMove(board models.Board, color models.Color) (models.Move, bool) {
	result, ok := s.Search(board, color, Depth(board))
	return result.Move, ok
}

// Search searches board to a fixed depth for color. It returns false if color has to pass.
func (s *AlphaBeta) Search(board models.Board, color models.Color, depth int) (Result, bool) {
	moves := models.LegalMoves(board, color)
	if len(moves) == 0 {
		return Result{Depth: depth}, false
	}

	orderMoves(moves)

	start := time.Now()

	var result Result
	if s.Parallel {
		result = searchParallel(board, moves, color, depth)
	} else {
		result = searchSequential(board, moves, color, depth)
	}

	result.Depth = depth
	result.Elapsed = time.Since(start)

	slog.Debug("Search done",
		"color", color,
		"depth", depth,
		"move", result.Move,
		"score", result.Score,
		"nodes", result.Nodes,
		"elapsed", result.Elapsed,
	)

	return result, true
}

// searchSequential searches ordered root moves one by one, raising alpha after each move.
func searchSequential(board models.Board, moves []models.Move, color models.Color, depth int) Result {
	s := &searcher{perspective: color}

	best := moves[0]
	bestScore := -inf
	alpha := -inf

	for _, move := range moves {
		child := models.ApplyMove(board, move, color)
		score := s.minimax(child, depth-1, color.Opponent(), alpha, inf)

		if score > bestScore {
			bestScore = score
			best = move
		}

		alpha = max(alpha, bestScore)
	}

	return Result{Move: best, Score: bestScore, Nodes: s.nodes}
}

// searchParallel searches each ordered root move with a full window.
// Picking the first strictly greatest score gives the same move as searchSequential.
func searchParallel(board models.Board, moves []models.Move, color models.Color, depth int) Result {
	scores := make([]int, len(moves))

	var nodes atomic.Uint64

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, move := range moves {
		group.Go(func() error {
			s := &searcher{perspective: color}
			child := models.ApplyMove(board, move, color)
			scores[i] = s.minimax(child, depth-1, color.Opponent(), -inf, inf)
			nodes.Add(s.nodes)
			return nil
		})
	}

	// Workers never fail.
	_ = group.Wait()

	best := moves[0]
	bestScore := -inf

	for i, move := range moves {
		if scores[i] > bestScore {
			bestScore = scores[i]
			best = move
		}
	}

	return Result{Move: best, Score: bestScore, Nodes: nodes.Load()}
}

// searcher holds the state of one search tree walk.
type searcher struct {
	perspective models.Color
	nodes       uint64
}

// minimax returns the score of board for the searcher perspective with toMove to play.
func (s *searcher) minimax(board models.Board, depth int, toMove models.Color, alpha, beta int) int {
	s.nodes++

	if depth <= 0 || models.IsTerminal(board) {
		return evaluate.Evaluate(board, s.perspective)
	}

	moves := models.LegalMoves(board, toMove)

	// Passing costs a ply.
	if len(moves) == 0 {
		return s.minimax(board, depth-1, toMove.Opponent(), alpha, beta)
	}

	orderMoves(moves)

	if toMove == s.perspective {
		value := -inf
		for _, move := range moves {
			child := models.ApplyMove(board, move, toMove)
			value = max(value, s.minimax(child, depth-1, toMove.Opponent(), alpha, beta))
			alpha = max(alpha, value)
			if alpha >= beta {
				break
			}
		}
		return value
	}

	value := inf
	for _, move := range moves {
		child := models.ApplyMove(board, move, toMove)
		value = min(value, s.minimax(child, depth-1, toMove.Opponent(), alpha, beta))
		beta = min(beta, value)
		if alpha >= beta {
			break
		}
	}
	return value
}

// orderMoves sorts moves by descending flip count, keeping row-major order for equal counts.
func orderMoves(moves []models.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].FlipCount() > moves[j].FlipCount()
	})
}
