package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Color is the content of a square, or the side that plays a move.
type Color int

const (
	BLACK Color = -1
	WHITE Color = 1
	EMPTY Color = 0
	DRAW        = EMPTY
)

const (
	MaxX      = 8
	MaxY      = 8
	BoardSize = MaxX * MaxY

	// BoardStringLength is the length of the text form of a board.
	BoardStringLength = BoardSize
)

// Opponent returns the other side. BLACK and WHITE are each others negation.
func (c Color) Opponent() Color {
	return -c
}

// String returns the lower case name of the color.
func (c Color) String() string {
	switch c {
	case BLACK:
		return "black"
	case WHITE:
		return "white"
	case EMPTY:
		return "empty"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// ParseColor parses "black" or "white".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b", "x":
		return BLACK, nil
	case "white", "w", "o":
		return WHITE, nil
	default:
		return EMPTY, fmt.Errorf("invalid color: %q", s)
	}
}

// MarshalJSON implements json.Marshaler.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler. Only sides can be unmarshaled.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("color must be a string: %w", err)
	}

	if s == "empty" {
		*c = EMPTY
		return nil
	}

	color, err := ParseColor(s)
	if err != nil {
		return err
	}

	*c = color
	return nil
}

// Board is an 8x8 grid of squares in row-major order.
// Boards are values: copying one never shares squares with the original.
type Board struct {
	squares [BoardSize]Color
}

// NewBoardStart creates a board with the standard opening position.
func NewBoardStart() Board {
	var b Board
	b.set(NewSquare(3, 3), WHITE)
	b.set(NewSquare(3, 4), BLACK)
	b.set(NewSquare(4, 3), BLACK)
	b.set(NewSquare(4, 4), WHITE)
	return b
}

// NewBoardFromString parses the text form of a board: 64 characters in row-major order,
// 'x' for black, 'o' for white and '-' for empty. Whitespace and '|' are ignored.
func NewBoardFromString(s string) (Board, error) {
	var b Board
	index := 0

	for _, r := range s {
		var color Color

		switch r {
		case ' ', '\t', '\n', '\r', '|':
			continue
		case 'x', 'X', '●':
			color = BLACK
		case 'o', 'O', '○':
			color = WHITE
		case '-', '.':
			color = EMPTY
		default:
			return Board{}, fmt.Errorf("invalid board character %q at index %d", r, index)
		}

		if index >= BoardSize {
			return Board{}, errors.New("board string has more than 64 squares")
		}

		b.squares[index] = color
		index++
	}

	if index != BoardSize {
		return Board{}, fmt.Errorf("board string must have 64 squares, got %d", index)
	}

	return b, nil
}

// NewBoardMust works like NewBoardFromString but panics on invalid input.
func NewBoardMust(s string) Board {
	b, err := NewBoardFromString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// set changes a square in place. Only used while constructing a new board.
func (b *Board) set(sq Square, c Color) {
	b.squares[sq] = c
}

// Get returns the color on a square.
func (b Board) Get(sq Square) Color {
	return b.squares[sq]
}

// GetRowCol returns the color at a row and column, or EMPTY when out of bounds.
func (b Board) GetRowCol(row, col int) Color {
	if !InBounds(row, col) {
		return EMPTY
	}
	return b.squares[row*MaxX+col]
}

// Count returns the number of squares with the given color.
func (b Board) Count(c Color) int {
	count := 0
	for _, sq := range b.squares {
		if sq == c {
			count++
		}
	}
	return count
}

// CountDiscs returns the number of occupied squares.
func (b Board) CountDiscs() int {
	return BoardSize - b.CountEmpties()
}

// CountEmpties returns the number of empty squares.
func (b Board) CountEmpties() int {
	return b.Count(EMPTY)
}

// Equal checks if two boards are equal.
func (b Board) Equal(other Board) bool {
	return b.squares == other.squares
}

// Position returns the bitboard view of the board from the perspective of color.
// Color must be BLACK or WHITE.
func (b Board) Position(c Color) Position {
	var player, opponent uint64

	for i, sq := range b.squares {
		switch sq {
		case EMPTY:
			continue
		case c:
			player |= 1 << i
		default:
			opponent |= 1 << i
		}
	}

	return NewPositionMust(player, opponent)
}

// String returns the text form of the board.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardStringLength)

	for _, sq := range b.squares {
		switch sq {
		case BLACK:
			sb.WriteByte('x')
		case WHITE:
			sb.WriteByte('o')
		default:
			sb.WriteByte('-')
		}
	}

	return sb.String()
}

// MarshalJSON implements json.Marshaler.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Board) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("board must be a string: %w", err)
	}

	board, err := NewBoardFromString(s)
	if err != nil {
		return err
	}

	*b = board
	return nil
}

// ASCIIArtLines returns the ascii art lines for the board.
// Legal moves of turn are marked with a dot, pass EMPTY to hide them.
func (b Board) ASCIIArtLines(turn Color) []string {
	var moves uint64
	if turn != EMPTY {
		moves = b.Position(turn).Moves()
	}

	lines := make([]string, MaxY+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for y := range MaxY {
		line := fmt.Sprintf("%d ", y+1)

		for x := range MaxX {
			index := (y * MaxX) + x
			mask := uint64(1) << index

			switch {
			case b.squares[index] == WHITE:
				line += "○ "
			case b.squares[index] == BLACK:
				line += "● "
			case moves&mask != 0:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[y+1] = line + "|"
	}

	lines[MaxY+1] = "+-----------------+"

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b Board) Print(turn Color) {
	for _, line := range b.ASCIIArtLines(turn) {
		fmt.Println(line)
	}
}
