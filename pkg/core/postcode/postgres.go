package postcode

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTable serves lookups from a postcode_caps table:
//
//	CREATE TABLE IF NOT EXISTS postcode_caps (
//	  postcode TEXT PRIMARY KEY,
//	  status   TEXT NOT NULL,
//	  cap      NUMERIC NOT NULL DEFAULT 0
//	);
type PostgresTable struct {
	pool *pgxpool.Pool
	ctx  context.Context
}

// NewPostgresTable wraps an existing pool. The caller owns the pool's
// lifecycle.
func NewPostgresTable(pool *pgxpool.Pool) *PostgresTable {
	return &PostgresTable{pool: pool, ctx: context.Background()}
}

func (t *PostgresTable) Lookup(postcode string) (Entry, bool) {
	var status string
	var cap float64
	err := t.pool.QueryRow(t.ctx,
		`SELECT status, cap FROM postcode_caps WHERE postcode = $1`,
		postcode,
	).Scan(&status, &cap)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, false
	}
	if err != nil {
		// Query failures read as not-in-service-area rather than accept.
		return Entry{}, false
	}
	return Entry{Status: Status(status), Cap: cap}, true
}
