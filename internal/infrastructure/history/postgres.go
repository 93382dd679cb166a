// Package history keeps a cross-run record of processed item IDs in Postgres
// for dedup against historical state and for auditing. The repository is
// optional: without a DSN the pipeline relies on the previous dataset alone.
package history

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository persists processed item fingerprints into Postgres.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.HistoryRepository = (*PostgresRepository)(nil)

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open history database")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to ping history database")
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation; db may be nil.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SeenIDs returns a map with IDs that already exist in storage.
func (r *PostgresRepository) SeenIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	if r.db == nil || len(ids) == 0 {
		return map[string]bool{}, nil
	}

	query, args, err := psql.
		Select("item_id").
		From("processed_items").
		Where(sq.Expr("item_id = ANY(?)", pq.StringArray(ids))).
		ToSql()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build seen query")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query processed items")
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, goerr.Wrap(err, "failed to scan item id")
		}
		result[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "rows iteration failed")
	}

	return result, nil
}

// MarkProcessed upserts the processed item snapshots.
func (r *PostgresRepository) MarkProcessed(ctx context.Context, items []domain.EnrichedItem) error {
	if r.db == nil || len(items) == 0 {
		return nil
	}

	builder := psql.
		Insert("processed_items").
		Columns("item_id", "title", "category", "confidence", "processed_at")
	for _, item := range items {
		builder = builder.Values(item.ID, item.Title, string(item.Category), item.Confidence, item.ProcessedAt)
	}
	builder = builder.Suffix("ON CONFLICT (item_id) DO NOTHING")

	query, args, err := builder.ToSql()
	if err != nil {
		return goerr.Wrap(err, "failed to build upsert query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return goerr.Wrap(err, "failed to upsert processed items")
	}

	return nil
}
