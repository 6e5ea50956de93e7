package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx both *pgxpool.Pool and pgx.Tx satisfy.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS networks (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	base BIGINT NOT NULL,
	prefix SMALLINT NOT NULL CHECK (prefix BETWEEN 0 AND 32),
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS allocations (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	network_id BIGINT NOT NULL REFERENCES networks(id) ON DELETE CASCADE,
	base BIGINT NOT NULL,
	prefix SMALLINT NOT NULL CHECK (prefix BETWEEN 0 AND 32),
	owner TEXT NOT NULL,
	kind TEXT NOT NULL CHECK (kind IN ('static', 'dynamic')),
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT unique_allocation_block UNIQUE (network_id, base, prefix)
);

CREATE INDEX IF NOT EXISTS allocations_owner_idx ON allocations (owner);
CREATE INDEX IF NOT EXISTS allocations_network_id_idx ON allocations (network_id);
`

// Bootstrap creates the ledger tables if they do not exist yet. The
// no-overlap invariant between allocation rows is enforced in the service,
// not here; the unique constraint only backstops exact duplicates.
func Bootstrap(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("bootstrap schema: %w", err)
	}
	return nil
}
