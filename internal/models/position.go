package models

import (
	"fmt"
	"math/rand"
)

// Position is a bitboard view of a board from the perspective of one side.
// Bit i corresponds to Square i.
type Position struct {
	player   uint64 // Bitboard for the discs of the side to move
	opponent uint64 // Bitboard for the discs of the other side
}

// NewPosition creates a new position from a player and opponent bitboard.
func NewPosition(player, opponent uint64) (Position, error) {
	if player&opponent != 0 {
		return Position{}, fmt.Errorf("invalid position: player and opponent discs cannot overlap")
	}

	return Position{
		player:   player,
		opponent: opponent,
	}, nil
}

// NewPositionMust creates a new position from a player and opponent bitboard
// and panics if the position is invalid.
func NewPositionMust(player, opponent uint64) Position {
	p, err := NewPosition(player, opponent)
	if err != nil {
		panic(err)
	}
	return p
}

// HasMoves returns whether the player has any legal move.
func (p Position) HasMoves() bool {
	return p.Moves() != 0
}

// Moves returns a bitset with all legal moves for the player.
// This code is adapted from Edax.
func (p Position) Moves() uint64 {
	mask := p.opponent & 0x7E7E7E7E7E7E7E7E

	movesSet := movesInDirection(p.player, mask, 1)
	movesSet |= movesInDirection(p.player, mask, 7)
	movesSet |= movesInDirection(p.player, mask, 9)
	movesSet |= movesInDirection(p.player, p.opponent, 8)

	movesSet &^= p.player | p.opponent
	return movesSet
}

// movesInDirection finds the empty squares that close a run of masked opponent discs
// starting at a player disc, shifting by dir in both directions.
func movesInDirection(player, mask uint64, dir uint) uint64 {
	flipL := mask & (player << dir)
	flipL |= mask & (flipL << dir)
	maskL := mask & (mask << dir)
	flipL |= maskL & (flipL << (2 * dir))
	flipL |= maskL & (flipL << (2 * dir))

	flipR := mask & (player >> dir)
	flipR |= mask & (flipR >> dir)
	maskR := mask & (mask >> dir)
	flipR |= maskR & (flipR >> (2 * dir))
	flipR |= maskR & (flipR >> (2 * dir))

	return (flipL << dir) | (flipR >> dir)
}

// NewBoardRandom plays random legal moves from the start position until the board has the
// requested number of discs. It returns the board and the side to move.
func NewBoardRandom(rng *rand.Rand, discs int) (Board, Color, error) {
	if discs < 4 || discs > BoardSize {
		return Board{}, EMPTY, fmt.Errorf("invalid number of discs: %d", discs)
	}

	board := NewBoardStart()
	turn := BLACK

	for board.CountDiscs() < discs {
		moves := LegalMoves(board, turn)

		if len(moves) == 0 {
			if !HasMoves(board, turn.Opponent()) {
				// Game ended too early, start over.
				board = NewBoardStart()
				turn = BLACK
				continue
			}
			turn = turn.Opponent()
			continue
		}

		move := moves[rng.Intn(len(moves))]
		board = ApplyMove(board, move, turn)
		turn = turn.Opponent()
	}

	return board, turn, nil
}
