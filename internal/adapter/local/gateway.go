// Package local implements the identity gateway port against the directory
// store itself, with bcrypt password verification. Used in development and
// tests where no hosted identity provider is available.
package local

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/principal"
	"github.com/academly/academly/internal/normalize"
	"github.com/academly/academly/internal/port/database"
	"github.com/academly/academly/internal/port/identity"
)

// Gateway verifies credentials against profile rows.
type Gateway struct {
	store      database.Store
	bcryptCost int
}

// NewGateway creates a local identity gateway.
func NewGateway(store database.Store) *Gateway {
	return &Gateway{store: store, bcryptCost: bcrypt.DefaultCost}
}

// SignIn verifies the password hash stored on the profile. Unknown email
// and wrong password both collapse into ErrInvalidCredentials. The email
// is lowercased first; profiles are stored with normalized emails.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (string, error) {
	p, err := g.store.GetProfileByEmail(ctx, normalize.Email(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", identity.ErrInvalidCredentials
		}
		return "", fmt.Errorf("local sign in: %w", err)
	}
	if p.PasswordHash == "" {
		return "", identity.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return "", identity.ErrInvalidCredentials
	}
	return p.ID, nil
}

// CreateUser inserts a profile with a bcrypt hash. A duplicate email is
// reported as the typed ErrEmailExists sentinel.
func (g *Gateway) CreateUser(ctx context.Context, email, password, fullName string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	p := &principal.Profile{
		ID:           uuid.NewString(),
		Email:        normalize.Email(email),
		FullName:     fullName,
		PasswordHash: string(hash),
	}
	if err := g.store.CreateProfile(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", identity.ErrEmailExists
		}
		return "", fmt.Errorf("local create user: %w", err)
	}
	return p.ID, nil
}

// SignOut is a no-op: local mode issues no upstream tokens.
func (g *Gateway) SignOut(context.Context, string) error {
	return nil
}
