package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"equity_release/pkg/core/eligibility"
	"equity_release/pkg/core/projection"
)

// Quote is one produced calculation: the input it was computed from and the
// validation/projection outputs, stored whole so the workflow layer can
// rehydrate exactly what the borrower was shown.
type Quote struct {
	ID         uuid.UUID           `json:"id"`
	Postcode   string              `json:"postcode"`
	Validation *eligibility.Result `json:"validation,omitempty"`
	Projection *projection.Result  `json:"projection,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// QuoteRepo stores quotes as JSONB rows keyed by quote id.
//
// Schema assumption (managed by migrations elsewhere):
//
//	CREATE TABLE IF NOT EXISTS quotes (
//	  id         UUID PRIMARY KEY,
//	  postcode   TEXT NOT NULL,
//	  quote_json JSONB NOT NULL,
//	  created_at TIMESTAMPTZ NOT NULL
//	);
type QuoteRepo struct{}

// NewQuoteRepo creates a new repository instance.
func NewQuoteRepo() *QuoteRepo {
	return &QuoteRepo{}
}

// Save persists a quote, upserting on id.
func (r *QuoteRepo) Save(ctx context.Context, quote *Quote) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	query := `
		INSERT INTO quotes (id, postcode, quote_json, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			postcode = EXCLUDED.postcode,
			quote_json = EXCLUDED.quote_json;
	`

	_, err = pool.Exec(ctx, query, quote.ID, quote.Postcode, jsonData, quote.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save quote: %w", err)
	}
	return nil
}

// Load retrieves a quote by id.
func (r *QuoteRepo) Load(ctx context.Context, id uuid.UUID) (*Quote, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT quote_json FROM quotes WHERE id = $1`, id).Scan(&jsonData)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	var quote Quote
	if err := json.Unmarshal(jsonData, &quote); err != nil {
		return nil, fmt.Errorf("failed to decode quote: %w", err)
	}
	return &quote, nil
}
