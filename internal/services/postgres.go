package services

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS analyses (
		board      CHAR(64)    NOT NULL,
		turn       SMALLINT    NOT NULL,
		strategy   TEXT        NOT NULL,
		disc_count SMALLINT    NOT NULL,
		depth      SMALLINT    NOT NULL,
		score      INTEGER     NOT NULL,
		move       SMALLINT    NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (board, turn, strategy)
	);

	CREATE INDEX IF NOT EXISTS analyses_disc_count_idx ON analyses (disc_count);
`

// InitPostgres initializes the database connection and creates missing tables.
func InitPostgres(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the tables used by the analysis repository.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}
