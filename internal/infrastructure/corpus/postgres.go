package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharebite/backend/internal/domain"
)

const corpusTable = "training_corpus"

// PostgresSink bulk-loads the corpus into PostgreSQL with COPY
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink connects to databaseURL and ensures the corpus table exists
func NewPostgresSink(ctx context.Context, databaseURL string) (*PostgresSink, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	config.MaxConns = 4
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, createTableSQL()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create corpus table: %w", err)
	}

	slog.Info("connected to postgres corpus sink", "table", corpusTable)
	return &PostgresSink{pool: pool}, nil
}

// Close releases the connection pool
func (s *PostgresSink) Close() {
	s.pool.Close()
}

// Write replaces the table contents with rows in one transaction
func (s *PostgresSink) Write(ctx context.Context, rows []domain.CorpusRow) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE "+corpusTable); err != nil {
		return fmt.Errorf("truncate corpus: %w", err)
	}

	records := make([][]any, len(rows))
	for i, row := range rows {
		records[i] = record(row)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{corpusTable}, Columns, pgx.CopyFromRows(records))
	if err != nil {
		return fmt.Errorf("copy corpus: %w", err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("copy corpus: wrote %d of %d rows", n, len(rows))
	}
	return tx.Commit(ctx)
}

// createTableSQL derives the DDL from Columns so the two cannot drift
func createTableSQL() string {
	defs := make([]string, len(Columns))
	for i, col := range Columns {
		defs[i] = fmt.Sprintf("%s %s", col, columnType(col))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", corpusTable, strings.Join(defs, ",\n\t"))
}

func columnType(col string) string {
	switch col {
	case "id":
		return "TEXT PRIMARY KEY"
	case "row_index", "days_until_expiry":
		return "BIGINT NOT NULL"
	case "category", "restaurant_type", "final_status", "status":
		return "TEXT NOT NULL"
	case "purchase_date", "expiry_date":
		return "DATE NOT NULL"
	case "was_donated", "should_donate", "will_expire":
		return "BOOLEAN NOT NULL"
	default:
		return "DOUBLE PRECISION NOT NULL"
	}
}
