package game

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/search"
)

var ErrGameNotFound = errors.New("game not found")

// PlayersAgainst returns players where human plays one side and engine plays the other.
func PlayersAgainst(human models.Color, engine search.Strategy) Players {
	if human == models.BLACK {
		return Players{White: engine}
	}
	return Players{Black: engine}
}

// Session is a single player game held in memory.
type Session struct {
	// mutex serializes access to the controller
	mutex sync.Mutex

	ID         uuid.UUID
	Human      models.Color
	Strategy   string
	Hints      bool
	Created    time.Time
	Controller *Controller

	// lastActive is when the session was last looked up, protected by the registry mutex
	lastActive time.Time
}

// Lock locks the session. Callers must hold the lock while using the controller.
func (s *Session) Lock() {
	s.mutex.Lock()
}

// Unlock unlocks the session.
func (s *Session) Unlock() {
	s.mutex.Unlock()
}

// View is the state of a session as shown to clients.
type View struct {
	ID       uuid.UUID    `json:"id"`
	Board    models.Board `json:"board"`
	Turn     models.Color `json:"turn"`
	Phase    Phase        `json:"phase"`
	Human    models.Color `json:"human"`
	Strategy string       `json:"strategy"`
	Hints    bool         `json:"hints"`

	// Hinted contains the legal moves of the human, only when hints are enabled and it's their turn.
	Hinted []models.Move `json:"hinted,omitempty"`

	// Events contains what happened since the last request.
	Events []Event `json:"events"`

	// Result is only set when the game is over.
	Result *Result `json:"result,omitempty"`
}

// View builds the client view of the session. The caller must hold the lock.
func (s *Session) View(events []Event) View {
	c := s.Controller

	if events == nil {
		events = []Event{}
	}

	view := View{
		ID:       s.ID,
		Board:    c.Board(),
		Turn:     c.Turn(),
		Phase:    c.Phase(),
		Human:    s.Human,
		Strategy: s.Strategy,
		Hints:    s.Hints,
		Events:   events,
	}

	if s.Hints && c.IsHumanTurn() {
		view.Hinted = c.LegalMoves()
	}

	if c.Phase() == Terminal {
		result := c.Result()
		view.Result = &result
	}

	return view
}

// Registry keeps sessions in memory. It is safe for concurrent use.
type Registry struct {
	// mutex protects sessions
	mutex    sync.Mutex
	sessions map[uuid.UUID]*Session

	// now returns the current time, it is replaced in tests
	now func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		now:      time.Now,
	}
}

// Create stores a new session for a human playing against engine.
func (r *Registry) Create(human models.Color, engine search.Strategy, hints bool) *Session {
	session := &Session{
		ID:         uuid.New(),
		Human:      human,
		Strategy:   engine.Name(),
		Hints:      hints,
		Created:    r.now(),
		Controller: NewController(PlayersAgainst(human, engine)),
	}
	session.lastActive = session.Created

	r.mutex.Lock()
	r.sessions[session.ID] = session
	r.mutex.Unlock()

	slog.Debug("Created game", "id", session.ID, "human", human, "strategy", session.Strategy)
	return session
}

// Get returns the session with the given id and marks it as active.
func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrGameNotFound
	}

	session.lastActive = r.now()
	return session, nil
}

// LastActive returns when the session was last looked up.
func (r *Registry) LastActive(session *Session) time.Time {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return session.lastActive
}

// Delete removes the session with the given id.
func (r *Registry) Delete(id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrGameNotFound
	}

	delete(r.sessions, id)
	return nil
}

// Len returns the number of sessions.
func (r *Registry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return len(r.sessions)
}

// Prune removes sessions that were not used for maxAge and returns how many were removed.
func (r *Registry) Prune(maxAge time.Duration) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	cutoff := r.now().Add(-maxAge)

	removed := 0
	for id, session := range r.sessions {
		if session.lastActive.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		slog.Info("Pruned games", "removed", removed, "remaining", len(r.sessions))
	}

	return removed
}
