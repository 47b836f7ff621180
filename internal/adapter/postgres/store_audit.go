package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/academly/academly/internal/domain/audit"
)

func (s *Store) AppendAudit(ctx context.Context, e *audit.Entry) error {
	e.CreatedAt = time.Now().UTC()

	details, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, performed_by, action, target_user_id, details, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
		e.ID, e.PerformedBy, e.Action, e.TargetID, details, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

func (s *Store) ListAudit(ctx context.Context, limit int) ([]audit.Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, performed_by, action, COALESCE(target_user_id::text, ''), details, created_at
		FROM audit_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var details []byte
		if err := rows.Scan(&e.ID, &e.PerformedBy, &e.Action, &e.TargetID, &details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if details != nil {
			_ = json.Unmarshal(details, &e.Details)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
