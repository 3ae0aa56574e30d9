package search

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/models"
	"github.com/stretchr/testify/require"
)

// fullMinimax is minimax without pruning, used as a reference for the alpha-beta search.
func fullMinimax(board models.Board, depth int, toMove, perspective models.Color) int {
	if depth <= 0 || models.IsTerminal(board) {
		return evaluate.Evaluate(board, perspective)
	}

	moves := models.LegalMoves(board, toMove)
	if len(moves) == 0 {
		return fullMinimax(board, depth-1, toMove.Opponent(), perspective)
	}

	maximizing := toMove == perspective

	best := inf
	if maximizing {
		best = -inf
	}

	for _, move := range moves {
		child := models.ApplyMove(board, move, toMove)
		score := fullMinimax(child, depth-1, toMove.Opponent(), perspective)

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}

// fullSearch picks the first root move with the strictly greatest full minimax score.
func fullSearch(board models.Board, color models.Color, depth int) (models.Move, int) {
	moves := models.LegalMoves(board, color)
	orderMoves(moves)

	best := moves[0]
	bestScore := -inf

	for _, move := range moves {
		score := fullMinimax(models.ApplyMove(board, move, color), depth-1, color.Opponent(), color)
		if score > bestScore {
			bestScore = score
			best = move
		}
	}

	return best, bestScore
}

func TestDepth(t *testing.T) {
	tests := []struct {
		empties int
		want    int
	}{
		{empties: 60, want: 4},
		{empties: 27, want: 4},
		{empties: 26, want: 5},
		{empties: 15, want: 5},
		{empties: 14, want: 6},
		{empties: 1, want: 6},
	}

	for _, tt := range tests {
		board := models.NewBoardMust(strings.Repeat("-", tt.empties) + strings.Repeat("x", 64-tt.empties))
		require.Equal(t, tt.want, Depth(board), "empties %d", tt.empties)
	}
}

func TestOrderMoves(t *testing.T) {
	moves := []models.Move{
		{Square: 1, Flips: []models.Square{10}},
		{Square: 2, Flips: []models.Square{10, 11, 12}},
		{Square: 3, Flips: []models.Square{10, 11}},
		{Square: 4, Flips: []models.Square{10, 11, 12}},
		{Square: 5, Flips: []models.Square{10}},
	}

	orderMoves(moves)

	got := make([]models.Square, len(moves))
	for i, move := range moves {
		got[i] = move.Square
	}

	require.Equal(t, []models.Square{2, 4, 3, 1, 5}, got)
}

func TestAlphaBeta_Search(t *testing.T) {
	tests := []struct {
		name      string
		board     string
		color     models.Color
		depth     int
		wantMove  string
		wantScore int
	}{
		{
			name:      "start depth 1",
			board:     "---------------------------ox------xo---------------------------",
			color:     models.BLACK,
			depth:     1,
			wantMove:  "d3",
			wantScore: 9,
		},
		{
			name:      "start depth 2",
			board:     "---------------------------ox------xo---------------------------",
			color:     models.BLACK,
			depth:     2,
			wantMove:  "d3",
			wantScore: -16,
		},
		{
			name:      "start depth 3",
			board:     "---------------------------ox------xo---------------------------",
			color:     models.BLACK,
			depth:     3,
			wantMove:  "d3",
			wantScore: 13,
		},
		{
			name:      "start depth 4",
			board:     "---------------------------ox------xo---------------------------",
			color:     models.BLACK,
			depth:     4,
			wantMove:  "d3",
			wantScore: -2,
		},
		{
			name:      "midgame 20 discs",
			board:     "------------------xx-x----ooxoo---oxoo----o-oox---ox--o-----x---",
			color:     models.BLACK,
			depth:     4,
			wantMove:  "c8",
			wantScore: 109,
		},
		{
			name:      "midgame 40 discs",
			board:     "-xxx-ox-xxxoooo-xxxoxo--x-xox---xxoxxoo-xxxxx---ooo-x-----x--x--",
			color:     models.BLACK,
			depth:     5,
			wantMove:  "h1",
			wantScore: 114,
		},
		{
			name:      "endgame 58 discs",
			board:     "oxx-oooooxxxxxoooxxxooo-oxxxoooxoxoxooo-ooxxoox-oooxoxxx--oxxxxx",
			color:     models.BLACK,
			depth:     6,
			wantMove:  "h3",
			wantScore: -24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := models.NewBoardMust(tt.board)

			for _, parallel := range []bool{false, true} {
				s := &AlphaBeta{Parallel: parallel}

				result, ok := s.Search(board, tt.color, tt.depth)
				require.True(t, ok)
				require.Equal(t, tt.wantMove, result.Move.String(), "parallel %t", parallel)
				require.Equal(t, tt.wantScore, result.Score, "parallel %t", parallel)
				require.Equal(t, tt.depth, result.Depth)
				require.Positive(t, result.Nodes)
			}
		})
	}
}

func TestAlphaBeta_ChooseMoveUsesDepthPolicy(t *testing.T) {
	board := models.NewBoardMust("-xxx-ox-xxxoooo-xxxoxo--x-xox---xxoxxoo-xxxxx---ooo-x-----x--x--")
	s := &AlphaBeta{}

	move, ok := s.ChooseMove(board, models.BLACK)
	require.True(t, ok)

	result, ok := s.Search(board, models.BLACK, Depth(board))
	require.True(t, ok)
	require.Equal(t, result.Move, move)
	require.Equal(t, "h1", move.String())
}

func TestAlphaBeta_Pass(t *testing.T) {
	board := models.NewBoardMust("-xxxxxxo" + strings.Repeat("o", 56))
	s := &AlphaBeta{}

	_, ok := s.ChooseMove(board, models.BLACK)
	require.False(t, ok)

	move, ok := s.ChooseMove(board, models.WHITE)
	require.True(t, ok)
	require.Equal(t, "a1", move.String())
}

func TestAlphaBeta_MatchesFullMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	s := &AlphaBeta{}

	for i := range 60 {
		discs := 44 + rng.Intn(18)
		depth := 1 + i%4

		board, turn, err := models.NewBoardRandom(rng, discs)
		require.NoError(t, err)

		if !models.HasMoves(board, turn) {
			turn = turn.Opponent()
		}
		if !models.HasMoves(board, turn) {
			continue
		}

		wantMove, wantScore := fullSearch(board, turn, depth)

		result, ok := s.Search(board, turn, depth)
		require.True(t, ok)
		require.Equal(t, wantScore, result.Score, "board %s turn %s depth %d", board, turn, depth)
		require.Equal(t, wantMove, result.Move, "board %s turn %s depth %d", board, turn, depth)
	}
}

func TestAlphaBeta_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	sequential := &AlphaBeta{}
	parallel := &AlphaBeta{Parallel: true}

	for range 20 {
		board, turn, err := models.NewBoardRandom(rng, 10+rng.Intn(50))
		require.NoError(t, err)

		want, wantOk := sequential.Search(board, turn, 3)
		got, gotOk := parallel.Search(board, turn, 3)

		require.Equal(t, wantOk, gotOk)
		require.Equal(t, want.Move, got.Move)
		require.Equal(t, want.Score, got.Score)
	}
}

func TestAlphaBeta_DoesNotModifyBoard(t *testing.T) {
	board := models.NewBoardStart()
	s := &AlphaBeta{}

	_, ok := s.ChooseMove(board, models.BLACK)
	require.True(t, ok)
	require.Equal(t, models.NewBoardStart(), board)
}
