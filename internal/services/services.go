package services

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/reversi/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
}

// connectTimeout bounds connecting to all services at startup.
const connectTimeout = 10 * time.Second

// InitServices connects to Postgres and Redis.
func InitServices(cfg *config.ServerConfig) (*Services, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	// Initialize database
	postgres, err := InitPostgres(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, err
	}

	// Initialize Redis
	redis, err := InitRedis(ctx, cfg.RedisURL)
	if err != nil {
		_ = postgres.Close()
		return nil, err
	}

	return &Services{
		Postgres: postgres,
		Redis:    redis,
	}, nil
}

// Close closes all connections.
func (s *Services) Close() error {
	pgErr := s.Postgres.Close()
	redisErr := s.Redis.Close()

	if pgErr != nil {
		return pgErr
	}
	return redisErr
}
