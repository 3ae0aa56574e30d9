package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/lib/pq"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/services"
	"github.com/redis/go-redis/v9"
)

const (
	analysisKeyPrefix = "analysis:"
	analysisTTL       = time.Hour
	analysisStatsKey  = "analysis_stats"
)

// ErrAnalysisNotFound is returned when no analysis is stored for a key.
var ErrAnalysisNotFound = errors.New("analysis not found")

// cacheableStrategies lists strategies that always find the same move for the same input.
var cacheableStrategies = []string{search.AdvancedName}

// Cacheable returns whether results of strategy can be stored and reused.
func Cacheable(strategy string) bool {
	for _, name := range cacheableStrategies {
		if name == strategy {
			return true
		}
	}
	return false
}

// AnalysisStore stores search results.
type AnalysisStore interface {
	// Lookup returns the stored analysis for key or ErrAnalysisNotFound.
	Lookup(ctx context.Context, key models.AnalysisKey) (models.Analysis, error)

	// Save stores analysis, unless an analysis with a greater depth is already stored.
	Save(ctx context.Context, analysis models.Analysis) error

	// Stats returns how many analyses are stored per strategy.
	Stats(ctx context.Context) (map[string]int64, error)
}

// AnalysisRepository stores analyses in Postgres and caches them in Redis.
type AnalysisRepository struct {
	services *services.Services
}

// NewAnalysisRepository creates a new AnalysisRepository.
func NewAnalysisRepository(services *services.Services) *AnalysisRepository {
	return &AnalysisRepository{
		services: services,
	}
}

func redisKey(key models.AnalysisKey) string {
	return analysisKeyPrefix + key.String()
}

// Lookup checks Redis first and falls back to Postgres.
func (repo *AnalysisRepository) Lookup(ctx context.Context, key models.AnalysisKey) (models.Analysis, error) {
	redisConn := repo.services.Redis

	jsonData, err := redisConn.Get(ctx, redisKey(key)).Bytes()
	if err == nil {
		var analysis models.Analysis
		if err = json.Unmarshal(jsonData, &analysis); err != nil {
			return models.Analysis{}, fmt.Errorf("error unmarshaling analysis: %w", err)
		}
		return analysis, nil
	}

	if !errors.Is(err, redis.Nil) {
		return models.Analysis{}, fmt.Errorf("error getting analysis from Redis: %w", err)
	}

	pgConn := repo.services.Postgres

	query := `
		SELECT board, turn, strategy, depth, score, move
		FROM analyses
		WHERE board = $1 AND turn = $2 AND strategy = $3
	`

	var analysis models.Analysis
	err = pgConn.GetContext(ctx, &analysis, query, key.Board, key.Turn, key.Strategy)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Analysis{}, ErrAnalysisNotFound
	}
	if err != nil {
		return models.Analysis{}, fmt.Errorf("error looking up analysis: %w", err)
	}

	// Refill the cache, a failure only costs a future database lookup.
	if err = repo.cache(ctx, analysis); err != nil {
		slog.Warn("Failed to cache analysis", "key", key, "error", err)
	}

	return analysis, nil
}

// Save upserts analysis in Postgres, caches it in Redis and updates the stats.
func (repo *AnalysisRepository) Save(ctx context.Context, analysis models.Analysis) error {
	if err := analysis.Validate(); err != nil {
		return fmt.Errorf("invalid analysis: %w", err)
	}

	pgConn := repo.services.Postgres

	query := `
		INSERT INTO analyses (board, turn, strategy, disc_count, depth, score, move)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (board, turn, strategy)
		DO UPDATE SET
			depth = EXCLUDED.depth,
			score = EXCLUDED.score,
			move = EXCLUDED.move
		WHERE EXCLUDED.depth >= analyses.depth
		RETURNING (xmax = 0) AS inserted;
	`

	rows, err := pgConn.QueryxContext(ctx, query,
		analysis.Board,
		analysis.Turn,
		analysis.Strategy,
		analysis.Board.CountDiscs(),
		analysis.Depth,
		analysis.Score,
		analysis.Move,
	)
	if err != nil {
		return fmt.Errorf("error saving analysis: %w", err)
	}
	defer rows.Close()

	// No row is returned when a deeper analysis is already stored.
	if !rows.Next() {
		return rows.Err()
	}

	var inserted bool
	if err = rows.Scan(&inserted); err != nil {
		return fmt.Errorf("error scanning upsert result: %w", err)
	}

	if err = repo.cache(ctx, analysis); err != nil {
		return err
	}

	if inserted {
		err = repo.services.Redis.HIncrBy(ctx, analysisStatsKey, analysis.Strategy, 1).Err()
		if err != nil {
			return fmt.Errorf("error updating analysis stats: %w", err)
		}
	}

	return nil
}

func (repo *AnalysisRepository) cache(ctx context.Context, analysis models.Analysis) error {
	jsonData, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("error marshaling analysis: %w", err)
	}

	err = repo.services.Redis.Set(ctx, redisKey(analysis.Key()), jsonData, analysisTTL).Err()
	if err != nil {
		return fmt.Errorf("error caching analysis: %w", err)
	}

	return nil
}

func (repo *AnalysisRepository) buildInitialStats(ctx context.Context) error {
	pgConn := repo.services.Postgres
	redisConn := repo.services.Redis

	query := `
		SELECT strategy, count(*)
		FROM analyses
		WHERE strategy = ANY($1)
		GROUP BY strategy
	`

	type statRow struct {
		Strategy string `db:"strategy"`
		Count    int64  `db:"count"`
	}

	var stats []statRow
	err := pgConn.SelectContext(ctx, &stats, query, pq.Array(cacheableStrategies))
	if err != nil {
		return fmt.Errorf("error loading analysis stats: %w", err)
	}

	statsMap := make(map[string]interface{}, len(cacheableStrategies))
	for _, strategy := range cacheableStrategies {
		statsMap[strategy] = 0
	}
	for _, stat := range stats {
		statsMap[stat.Strategy] = stat.Count
	}

	err = redisConn.HSet(ctx, analysisStatsKey, statsMap).Err()
	if err != nil {
		return fmt.Errorf("error storing analysis stats in Redis: %w", err)
	}

	return nil
}

// Stats returns the number of stored analyses per strategy.
func (repo *AnalysisRepository) Stats(ctx context.Context) (map[string]int64, error) {
	redisConn := repo.services.Redis

	stats, err := redisConn.HGetAll(ctx, analysisStatsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting analysis stats from Redis: %w", err)
	}

	if len(stats) == 0 {
		if err = repo.buildInitialStats(ctx); err != nil {
			return nil, fmt.Errorf("error building initial analysis stats: %w", err)
		}

		// Try reading from Redis again after building stats
		stats, err = redisConn.HGetAll(ctx, analysisStatsKey).Result()
		if err != nil {
			return nil, fmt.Errorf("error getting analysis stats from Redis after build: %w", err)
		}
	}

	return parseStats(stats)
}

func parseStats(stats map[string]string) (map[string]int64, error) {
	result := make(map[string]int64, len(stats))

	for strategy, value := range stats {
		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("error parsing analysis stats value for %s: %w", strategy, err)
		}
		result[strategy] = count
	}

	return result, nil
}
