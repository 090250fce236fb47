package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/community-ops/internal/domain"
)

// documentKey identifies the single document row; the table never holds more
// than one document per key.
const documentKey = "community-ops"

// PostgresStore persists the document as one JSONB row, upserted whole on
// every replace. Storage stays whole-document: the relational layer carries
// no per-record granularity.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore ensures the backing table exists and returns the store.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) (*PostgresStore, error) {
	const ddl = `
        CREATE TABLE IF NOT EXISTS documents (
            key        TEXT PRIMARY KEY,
            body       JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// Load reads the stored document. A missing row reports absent; a malformed
// body is logged and discarded, also reporting absent.
func (s *PostgresStore) Load(ctx context.Context) (domain.Document, bool, error) {
	const query = `SELECT body FROM documents WHERE key=$1`
	var body []byte
	if err := s.pool.QueryRow(ctx, query, documentKey).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewDocument(), false, nil
		}
		return domain.NewDocument(), false, fmt.Errorf("load document row: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		s.logger.Warn("discarding malformed document row", zap.Error(err))
		return domain.NewDocument(), false, nil
	}
	if doc.Applications == nil {
		doc.Applications = []domain.Application{}
	}
	if doc.Tickets == nil {
		doc.Tickets = []domain.Ticket{}
	}
	if doc.Sessions == nil {
		doc.Sessions = []domain.DutySession{}
	}
	return doc, true, nil
}

// Replace upserts the whole document row.
func (s *PostgresStore) Replace(ctx context.Context, doc domain.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	const query = `
        INSERT INTO documents (key, body, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET body=EXCLUDED.body, updated_at=NOW()`
	if _, err := s.pool.Exec(ctx, query, documentKey, body); err != nil {
		return fmt.Errorf("replace document row: %w", err)
	}
	return nil
}
