package evaluate

import (
	"github.com/lk16/reversi/internal/models"
)

const (
	mobilityWeight = 4
	cornerWeight   = 25

	// Disc count only starts to matter when at most 10 squares are left.
	endgameDiscThreshold = 54
	endgameDiscWeight    = 2
)

// weights is the positional value of each square.
var weights = [models.MaxY][models.MaxX]int{
	{120, -20, 20, 5, 5, 20, -20, 120},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{120, -20, 20, 5, 5, 20, -20, 120},
}

// Weight returns the positional weight of a square.
func Weight(sq models.Square) int {
	return weights[sq.Row()][sq.Col()]
}

// Evaluate returns a heuristic score of board for perspective. Higher is better for perspective.
func Evaluate(board models.Board, perspective models.Color) int {
	opponent := perspective.Opponent()

	positional := 0
	own := 0
	opp := 0

	for sq := models.Square(0); sq < models.BoardSize; sq++ {
		switch board.Get(sq) {
		case perspective:
			positional += Weight(sq)
			own++
		case opponent:
			positional -= Weight(sq)
			opp++
		}
	}

	mobility := models.CountMoves(board, perspective) - models.CountMoves(board, opponent)

	corners := 0
	for _, sq := range models.Corners {
		switch board.Get(sq) {
		case perspective:
			corners += cornerWeight
		case opponent:
			corners -= cornerWeight
		}
	}

	discs := 0
	if own+opp > endgameDiscThreshold {
		discs = (own - opp) * endgameDiscWeight
	}

	return positional + mobility*mobilityWeight + corners + discs
}
