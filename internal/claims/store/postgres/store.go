// Package postgres persists validated case results. The per-party decisions
// are stored as JSONB next to queryable claim-level columns; re-processing a
// claim replaces the stored result.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/platform/sentinel"
)

const Schema = `
CREATE TABLE IF NOT EXISTS case_results (
    claim_id   TEXT PRIMARY KEY,
    decisions  JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveCase(ctx context.Context, result *models.CaseResult) error {
	if result == nil || result.ClaimID == "" {
		return sentinel.ErrInvalidState
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	decisions, err := json.Marshal(result.Decisions)
	if err != nil {
		return fmt.Errorf("marshal decisions: %w", err)
	}

	query := `
		INSERT INTO case_results (claim_id, decisions, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (claim_id) DO UPDATE SET
			decisions = EXCLUDED.decisions,
			created_at = EXCLUDED.created_at
	`
	if _, err := s.db.ExecContext(ctx, query, result.ClaimID, decisions, result.CreatedAt); err != nil {
		return fmt.Errorf("save case result: %w", err)
	}
	return nil
}

func (s *Store) FindByClaimID(ctx context.Context, claimID string) (*models.CaseResult, error) {
	var (
		decisions []byte
		createdAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT decisions, created_at FROM case_results WHERE claim_id = $1`,
		claimID,
	).Scan(&decisions, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find case result: %w", err)
	}

	result := &models.CaseResult{ClaimID: claimID, CreatedAt: createdAt}
	if err := json.Unmarshal(decisions, &result.Decisions); err != nil {
		return nil, fmt.Errorf("unmarshal decisions: %w", err)
	}
	return result, nil
}
