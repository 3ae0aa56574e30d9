package models

// Move is a disc placed on Square together with the opponent discs it flips.
// A Move only makes sense for the board and side it was computed for.
type Move struct {
	Square Square   `json:"square"`
	Flips  []Square `json:"flips"`
}

// FlipCount returns the number of discs flipped by the move.
func (m Move) FlipCount() int {
	return len(m.Flips)
}

// String returns the field notation of the move square.
func (m Move) String() string {
	return m.Square.String()
}
