// Package service contains the access-control core: the access resolver,
// session/context manager, license guard, provisioning workflow, and the
// audit recorder.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/access"
	"github.com/academly/academly/internal/port/database"
)

// Resolver classifies an authenticated principal and computes their
// (tenant, module) access set.
type Resolver struct {
	store database.Store
}

// NewResolver creates an access resolver.
func NewResolver(store database.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the principal's classification. The super-admin flag has
// absolute priority: when set, resolution stops there and the session
// carries no tenant contexts. Any store failure is wrapped in
// ErrResolutionFailed; absence of a definitive allow is always a deny.
func (r *Resolver) Resolve(ctx context.Context, principalID string) (*access.Classification, error) {
	p, err := r.store.GetProfile(ctx, principalID)
	switch {
	case err == nil:
		if p.SuperAdmin {
			return &access.Classification{SuperAdmin: true}, nil
		}
	case errors.Is(err, domain.ErrNotFound):
		// No profile mirror yet: fall through to membership resolution,
		// which will report NoAccess for a principal with no rows.
	default:
		return nil, fmt.Errorf("%w: get profile: %w", domain.ErrResolutionFailed, err)
	}

	contexts, err := r.store.ListAccessContexts(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("%w: list contexts: %w", domain.ErrResolutionFailed, err)
	}
	if len(contexts) == 0 {
		return nil, domain.ErrNoAccess
	}

	return &access.Classification{Contexts: contexts}, nil
}
