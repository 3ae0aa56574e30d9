package models

import (
	"fmt"
	"math/bits"
)

// directions lists the eight walking directions as (row, col) steps.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Flips returns the opponent discs that color would flip by playing on sq.
// Flips from all directions are combined. The result is empty for occupied squares and illegal moves.
func Flips(b Board, sq Square, c Color) []Square {
	if b.Get(sq) != EMPTY {
		return nil
	}

	var flips []Square

	for _, dir := range directions {
		dy, dx := dir[0], dir[1]
		row, col := sq.Row()+dy, sq.Col()+dx

		s := 0
		for InBounds(row, col) && b.GetRowCol(row, col) == c.Opponent() {
			s++
			row += dy
			col += dx
		}

		if s == 0 || !InBounds(row, col) || b.GetRowCol(row, col) != c {
			continue
		}

		for dist := 1; dist <= s; dist++ {
			flips = append(flips, NewSquare(sq.Row()+dist*dy, sq.Col()+dist*dx))
		}
	}

	return flips
}

// LegalMoves returns all legal moves for color in row-major order.
func LegalMoves(b Board, c Color) []Move {
	moves := make([]Move, 0, bits.OnesCount64(b.Position(c).Moves()))

	for sq := Square(0); sq < BoardSize; sq++ {
		flips := Flips(b, sq, c)
		if len(flips) == 0 {
			continue
		}
		moves = append(moves, Move{Square: sq, Flips: flips})
	}

	return moves
}

// ApplyMove returns a new board with move played by color. The input board is not modified.
// Playing on an occupied square or playing a move without flips is a programming error and panics.
func ApplyMove(b Board, move Move, c Color) Board {
	if !move.Square.IsValid() || b.Get(move.Square) != EMPTY {
		panic(fmt.Sprintf("cannot play %s: square is not empty", move.Square))
	}

	if len(move.Flips) == 0 {
		panic(fmt.Sprintf("cannot play %s: move flips no discs", move.Square))
	}

	next := b
	next.set(move.Square, c)
	for _, flip := range move.Flips {
		next.set(flip, c)
	}

	return next
}

// HasMoves checks if color has any legal move.
func HasMoves(b Board, c Color) bool {
	return b.Position(c).HasMoves()
}

// CountMoves returns the number of legal moves for color.
func CountMoves(b Board, c Color) int {
	return bits.OnesCount64(b.Position(c).Moves())
}

// IsTerminal checks if neither side can move.
func IsTerminal(b Board) bool {
	return !HasMoves(b, BLACK) && !HasMoves(b, WHITE)
}
