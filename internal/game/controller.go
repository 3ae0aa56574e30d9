package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/search"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrNotHumanTurn = errors.New("not a human turn")
	ErrMustPass     = errors.New("side to move has no legal moves and must pass")
	ErrIllegalMove  = errors.New("illegal move")
	ErrCannotPass   = errors.New("side to move has legal moves")
)

// Phase is the state of a game between two moves.
type Phase int

const (
	// AwaitingMove means the side to move has at least one legal move.
	AwaitingMove Phase = iota

	// Passing means the side to move has no legal moves but the opponent does.
	Passing

	// Terminal means neither side has a legal move.
	Terminal
)

func (p Phase) String() string {
	switch p {
	case AwaitingMove:
		return "awaiting_move"
	case Passing:
		return "passing"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for _, phase := range []Phase{AwaitingMove, Passing, Terminal} {
		if phase.String() == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", string(text))
}

// Players assigns a strategy to each side. A nil strategy means the side is played by a human.
type Players struct {
	Black search.Strategy
	White search.Strategy
}

// For returns the strategy playing color.
func (p Players) For(color models.Color) search.Strategy {
	if color == models.BLACK {
		return p.Black
	}
	return p.White
}

// EventType names something that happened in a game.
type EventType string

const (
	EventMove     EventType = "move"
	EventPass     EventType = "pass"
	EventGameOver EventType = "game_over"
)

// Event is an entry in the game history.
type Event struct {
	Type EventType `json:"type"`

	// Color is the side that moved or passed. For game over events it is the winner.
	Color models.Color `json:"color"`

	// Move is only set for move events.
	Move *models.Move `json:"move,omitempty"`
}

// Result contains the disc counts of a game.
type Result struct {
	Black int `json:"black"`
	White int `json:"white"`

	// Winner has the most discs, EMPTY means a draw.
	Winner models.Color `json:"winner"`
}

// Controller runs a single game. It is not safe for concurrent use.
type Controller struct {
	board   models.Board
	turn    models.Color
	phase   Phase
	players Players

	// history contains all moves, passes and the game over event
	history []Event
}

// NewController creates a game from the start position with black to move.
func NewController(players Players) *Controller {
	c, err := NewControllerWithStart(models.NewBoardStart(), models.BLACK, players)
	if err != nil {
		// Start board with black to move is always valid.
		panic(err)
	}
	return c
}

// NewControllerWithStart creates a game from a custom board.
func NewControllerWithStart(board models.Board, turn models.Color, players Players) (*Controller, error) {
	if turn != models.BLACK && turn != models.WHITE {
		return nil, fmt.Errorf("invalid turn %s", turn)
	}

	c := &Controller{
		board:   board,
		turn:    turn,
		players: players,
		history: make([]Event, 0),
	}

	c.settle()
	return c, nil
}

// Board returns the current board.
func (c *Controller) Board() models.Board {
	return c.board
}

// Turn returns the side to move.
func (c *Controller) Turn() models.Color {
	return c.turn
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// IsHuman returns whether color is played by a human.
func (c *Controller) IsHuman(color models.Color) bool {
	return c.players.For(color) == nil
}

// IsHumanTurn returns whether a human has to make the next move.
func (c *Controller) IsHumanTurn() bool {
	return c.phase == AwaitingMove && c.IsHuman(c.turn)
}

// LegalMoves returns the legal moves of the side to move.
func (c *Controller) LegalMoves() []models.Move {
	return models.LegalMoves(c.board, c.turn)
}

// History returns a copy of all events so far.
func (c *Controller) History() []Event {
	return append([]Event{}, c.history...)
}

// Play applies the move of a human on square.
func (c *Controller) Play(square models.Square) (models.Move, error) {
	if err := c.checkCanMove(); err != nil {
		return models.Move{}, err
	}

	if !c.IsHuman(c.turn) {
		return models.Move{}, ErrNotHumanTurn
	}

	move, err := c.findMove(square)
	if err != nil {
		return models.Move{}, err
	}

	c.apply(move)
	return move, nil
}

// Decide lets the strategy of the side to move choose a move without applying it.
func (c *Controller) Decide() (models.Move, error) {
	if err := c.checkCanMove(); err != nil {
		return models.Move{}, err
	}

	strategy := c.players.For(c.turn)
	if strategy == nil {
		return models.Move{}, ErrNotHumanTurn
	}

	move, ok := strategy.ChooseMove(c.board, c.turn)
	if !ok {
		return models.Move{}, ErrMustPass
	}

	return move, nil
}

// Apply applies a move for the side to move. The move is validated against the rules.
func (c *Controller) Apply(move models.Move) error {
	if err := c.checkCanMove(); err != nil {
		return err
	}

	legal, err := c.findMove(move.Square)
	if err != nil {
		return err
	}

	c.apply(legal)
	return nil
}

// Pass gives the turn to the opponent. It is only allowed when the side to move has no moves.
func (c *Controller) Pass() error {
	switch c.phase {
	case Terminal:
		return ErrGameOver
	case AwaitingMove:
		return ErrCannotPass
	}

	c.history = append(c.history, Event{Type: EventPass, Color: c.turn})
	c.turn = c.turn.Opponent()
	c.settle()
	return nil
}

// Advance plays all automated moves and forced passes until a human has to move or the game ends.
// It returns the events that happened.
func (c *Controller) Advance() []Event {
	before := len(c.history)

	for {
		switch {
		case c.phase == Terminal:
			return append([]Event{}, c.history[before:]...)
		case c.phase == Passing:
			// Can't fail, phase was checked.
			_ = c.Pass()
		case c.IsHuman(c.turn):
			return append([]Event{}, c.history[before:]...)
		default:
			move, err := c.Decide()
			if err != nil {
				// Can't happen: phase guarantees at least one legal move.
				panic(err)
			}

			if err = c.Apply(move); err != nil {
				panic(fmt.Errorf("strategy %s chose illegal move %s: %w", c.players.For(c.turn).Name(), move, err))
			}
		}
	}
}

// PlayAndAdvance plays a human move followed by Advance. It returns the events of both.
func (c *Controller) PlayAndAdvance(square models.Square) ([]Event, error) {
	before := len(c.history)

	if _, err := c.Play(square); err != nil {
		return nil, err
	}

	c.Advance()

	return append([]Event{}, c.history[before:]...), nil
}

// Result returns the disc counts and the player with the most discs.
func (c *Controller) Result() Result {
	result := Result{
		Black:  c.board.Count(models.BLACK),
		White:  c.board.Count(models.WHITE),
		Winner: models.EMPTY,
	}

	switch {
	case result.Black > result.White:
		result.Winner = models.BLACK
	case result.White > result.Black:
		result.Winner = models.WHITE
	}

	return result
}

func (c *Controller) checkCanMove() error {
	switch c.phase {
	case Terminal:
		return ErrGameOver
	case Passing:
		return ErrMustPass
	}
	return nil
}

func (c *Controller) findMove(square models.Square) (models.Move, error) {
	if !square.IsValid() {
		return models.Move{}, fmt.Errorf("%w: invalid square %d", ErrIllegalMove, square)
	}

	for _, move := range c.LegalMoves() {
		if move.Square == square {
			return move, nil
		}
	}

	return models.Move{}, fmt.Errorf("%w: %s for %s", ErrIllegalMove, square, c.turn)
}

func (c *Controller) apply(move models.Move) {
	c.board = models.ApplyMove(c.board, move, c.turn)
	c.history = append(c.history, Event{Type: EventMove, Color: c.turn, Move: &move})
	c.turn = c.turn.Opponent()
	c.settle()
}

// settle computes the phase after the board or the side to move changed.
func (c *Controller) settle() {
	switch {
	case models.IsTerminal(c.board):
		if c.phase != Terminal {
			result := c.Result()
			c.history = append(c.history, Event{Type: EventGameOver, Color: result.Winner})
			slog.Debug("Game over", "black", result.Black, "white", result.White, "winner", result.Winner)
		}
		c.phase = Terminal
	case !models.HasMoves(c.board, c.turn):
		c.phase = Passing
	default:
		c.phase = AwaitingMove
	}
}
