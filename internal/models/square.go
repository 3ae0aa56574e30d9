package models

import (
	"fmt"
	"strings"
)

// Square is a board index in row-major order: row*8 + col.
type Square int

// NoSquare is used where a move is expected but the side to move has to pass.
const NoSquare Square = -1

// Corners contains the four corner squares a1, h1, a8 and h8.
var Corners = [4]Square{0, 7, 56, 63}

// NewSquare returns the square at row and column. Both must be in bounds.
func NewSquare(row, col int) Square {
	return Square(row*MaxX + col)
}

// InBounds checks if row and column are on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < MaxY && col >= 0 && col < MaxX
}

// ParseSquare converts a field notation (e.g. "a1", "H8") to a Square.
// NoSquare is returned for "--", "ps" and "pa".
func ParseSquare(field string) (Square, error) {
	if len(field) != 2 {
		return NoSquare, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if field == "--" || field == "ps" || field == "pa" {
		return NoSquare, nil
	}

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return NoSquare, fmt.Errorf("invalid field: %q", field)
	}

	col := int(field[0] - 'a')
	row := int(field[1] - '1')
	return NewSquare(row, col), nil
}

// Row returns the zero-based row.
func (s Square) Row() int {
	return int(s) / MaxX
}

// Col returns the zero-based column.
func (s Square) Col() int {
	return int(s) % MaxX
}

// IsValid checks if the square is on the board.
func (s Square) IsValid() bool {
	return s >= 0 && s < BoardSize
}

// String returns the column letter followed by the one-based row, e.g. "d3".
func (s Square) String() string {
	if !s.IsValid() {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col(), s.Row()+1)
}

// MarshalText implements encoding.TextMarshaler.
func (s Square) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}
