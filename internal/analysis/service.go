package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/search"
)

// Service answers engine queries about arbitrary boards.
type Service struct {
	store repository.AnalysisStore
	opts  search.Options
}

// NewService creates a new Service.
func NewService(store repository.AnalysisStore, opts search.Options) *Service {
	return &Service{
		store: store,
		opts:  opts,
	}
}

// Store returns the store used for caching search results.
func (s *Service) Store() repository.AnalysisStore {
	return s.store
}

// NewStrategy creates a strategy with the options of the service.
func (s *Service) NewStrategy(name string) (search.Strategy, error) {
	return search.NewStrategy(name, s.opts)
}

// LegalMoves lists the legal moves for the side to move.
func (s *Service) LegalMoves(req models.BoardRequest) models.LegalMovesResponse {
	return models.LegalMovesResponse{
		Moves:    models.LegalMoves(req.Board, req.Turn),
		Terminal: models.IsTerminal(req.Board),
	}
}

// Evaluate returns the heuristic score of a board.
func (s *Service) Evaluate(req models.EvaluateRequest) models.EvaluateResponse {
	return models.EvaluateResponse{
		Score: evaluate.Evaluate(req.Board, req.Perspective),
	}
}

// Choose lets a strategy pick a move. Results of cacheable strategies are looked up and stored.
func (s *Service) Choose(ctx context.Context, req models.ChooseRequest) (models.ChooseResponse, error) {
	strategy, err := s.NewStrategy(req.Strategy)
	if err != nil {
		return models.ChooseResponse{}, err
	}

	if !models.HasMoves(req.Board, req.Turn) {
		return models.ChooseResponse{
			Score: evaluate.Evaluate(req.Board, req.Turn),
		}, nil
	}

	alphaBeta, ok := strategy.(*search.AlphaBeta)
	if !ok || !repository.Cacheable(strategy.Name()) {
		return s.chooseUncached(req, strategy), nil
	}

	key := models.AnalysisKey{Board: req.Board, Turn: req.Turn, Strategy: strategy.Name()}

	analysis, err := s.store.Lookup(ctx, key)
	if err == nil {
		move := models.Move{
			Square: analysis.Move,
			Flips:  models.Flips(req.Board, analysis.Move, req.Turn),
		}
		return models.ChooseResponse{Move: &move, Score: analysis.Score, Depth: analysis.Depth, Cached: true}, nil
	}

	if !errors.Is(err, repository.ErrAnalysisNotFound) {
		return models.ChooseResponse{}, fmt.Errorf("failed to lookup analysis: %w", err)
	}

	result, _ := alphaBeta.Search(req.Board, req.Turn, search.Depth(req.Board))

	analysis = models.Analysis{
		Board:    req.Board,
		Turn:     req.Turn,
		Strategy: strategy.Name(),
		Depth:    result.Depth,
		Score:    result.Score,
		Move:     result.Move.Square,
	}

	// The move is still returned when it could not be stored.
	if err = s.store.Save(ctx, analysis); err != nil {
		slog.Warn("Failed to save analysis", "key", key, "error", err)
	}

	return models.ChooseResponse{Move: &result.Move, Score: result.Score, Depth: result.Depth}, nil
}

// chooseUncached scores the chosen move with a static evaluation of the resulting board.
func (s *Service) chooseUncached(req models.ChooseRequest, strategy search.Strategy) models.ChooseResponse {
	move, _ := strategy.ChooseMove(req.Board, req.Turn)
	child := models.ApplyMove(req.Board, move, req.Turn)

	return models.ChooseResponse{
		Move:  &move,
		Score: evaluate.Evaluate(child, req.Turn),
		Depth: 1,
	}
}
