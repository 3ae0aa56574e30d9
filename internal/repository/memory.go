package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/lk16/reversi/internal/models"
)

// MemoryStore keeps analyses in process memory. It is used when no external services are available.
type MemoryStore struct {
	// data stores the analyses
	data map[models.AnalysisKey]models.Analysis

	// dataMutex protects data
	dataMutex sync.Mutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[models.AnalysisKey]models.Analysis),
	}
}

// Lookup implements AnalysisStore.
func (s *MemoryStore) Lookup(_ context.Context, key models.AnalysisKey) (models.Analysis, error) {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	analysis, ok := s.data[key]
	if !ok {
		return models.Analysis{}, ErrAnalysisNotFound
	}
	return analysis, nil
}

// Save implements AnalysisStore.
func (s *MemoryStore) Save(_ context.Context, analysis models.Analysis) error {
	if err := analysis.Validate(); err != nil {
		return fmt.Errorf("invalid analysis: %w", err)
	}

	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	key := analysis.Key()

	found, ok := s.data[key]
	if !ok || analysis.Depth >= found.Depth {
		s.data[key] = analysis
	}

	return nil
}

// Stats implements AnalysisStore.
func (s *MemoryStore) Stats(_ context.Context) (map[string]int64, error) {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	stats := make(map[string]int64, len(cacheableStrategies))
	for _, strategy := range cacheableStrategies {
		stats[strategy] = 0
	}

	for key := range s.data {
		stats[key.Strategy]++
	}

	return stats, nil
}

// Len returns the number of stored analyses.
func (s *MemoryStore) Len() int {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	return len(s.data)
}
