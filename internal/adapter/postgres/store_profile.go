package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/academly/academly/internal/domain/principal"
)

const profileColumns = `id, email, full_name, is_super_admin, COALESCE(password_hash, ''), created_at, updated_at`

func (s *Store) GetProfile(ctx context.Context, id string) (*principal.Profile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)

	var p principal.Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.SuperAdmin, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFoundWrap(err, "get profile %s", id)
	}
	return &p, nil
}

func (s *Store) GetProfileByEmail(ctx context.Context, email string) (*principal.Profile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)

	var p principal.Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.SuperAdmin, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFoundWrap(err, "get profile by email %s", email)
	}
	return &p, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *principal.Profile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO profiles (id, email, full_name, is_super_admin, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`,
		p.ID, p.Email, p.FullName, p.SuperAdmin, p.PasswordHash, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return conflictWrap(err, "create profile %s", p.Email)
	}
	return nil
}

func (s *Store) CountProfiles(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM profiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}
