package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/reversi/internal/analysis"
	"github.com/lk16/reversi/internal/game"
)

// errRequest marks errors that are reported to the client instead of closing the connection.
var errRequest = errors.New("bad request")

type Handler struct {
	ws              *websocket.Conn
	registry        *game.Registry
	service         *analysis.Service
	defaultStrategy string
}

// NewHandler creates a new Handler.
func NewHandler(ws *websocket.Conn, registry *game.Registry, service *analysis.Service, defaultStrategy string) *Handler {
	return &Handler{
		ws:              ws,
		registry:        registry,
		service:         service,
		defaultStrategy: defaultStrategy,
	}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", msg)

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, fmt.Errorf("%w: event field is either empty or missing", errRequest)
	}

	switch req.Event {
	case "new_game":
		return h.handleNewGame(req)
	case "play":
		return h.handlePlay(req)
	case "state":
		return h.handleState(req)
	default:
		return nil, fmt.Errorf("%w: unknown event: %s", errRequest, req.Event)
	}
}

// respond handles a message and turns request errors into error responses.
func (h *Handler) respond(req *Incoming) (*Outgoing, error) {
	outgoing, err := h.handleMessage(req)
	if errors.Is(err, errRequest) {
		return &Outgoing{ID: req.ID, Data: ErrorResponse{Error: err.Error()}}, nil
	}
	return outgoing, err
}

// Handle handles the websocket connection.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		respData, err := h.respond(req)
		if err != nil {
			return fmt.Errorf("ws handle error: %w", err)
		}

		if err = h.writeMessage(respData); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleNewGame(req *Incoming) (*Outgoing, error) {
	var reqData NewGameRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("%w: new game unmarshal error: %w", errRequest, err)
	}

	if err := reqData.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errRequest, err)
	}

	if reqData.Strategy == "" {
		reqData.Strategy = h.defaultStrategy
	}

	engine, err := h.service.NewStrategy(reqData.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errRequest, err)
	}

	session := h.registry.Create(reqData.Human, engine, reqData.Hints)

	session.Lock()
	defer session.Unlock()

	events := session.Controller.Advance()

	return &Outgoing{ID: req.ID, Data: session.View(events)}, nil
}

func (h *Handler) handlePlay(req *Incoming) (*Outgoing, error) {
	var reqData PlayRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("%w: play unmarshal error: %w", errRequest, err)
	}

	session, err := h.registry.Get(reqData.GameID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errRequest, err)
	}

	session.Lock()
	defer session.Unlock()

	events, err := session.Controller.PlayAndAdvance(reqData.Square)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errRequest, err)
	}

	return &Outgoing{ID: req.ID, Data: session.View(events)}, nil
}

func (h *Handler) handleState(req *Incoming) (*Outgoing, error) {
	var reqData StateRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("%w: state unmarshal error: %w", errRequest, err)
	}

	session, err := h.registry.Get(reqData.GameID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errRequest, err)
	}

	session.Lock()
	defer session.Unlock()

	return &Outgoing{ID: req.ID, Data: session.View(nil)}, nil
}
