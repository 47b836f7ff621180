package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/activity"
	"github.com/academly/academly/internal/port/database"
)

// ActivityService manages a tenant's class catalog with schedules and
// pricing plans.
type ActivityService struct {
	store   database.Store
	license *LicenseGuard
}

// NewActivityService creates the activity catalog service.
func NewActivityService(store database.Store, license *LicenseGuard) *ActivityService {
	return &ActivityService{store: store, license: license}
}

// List returns the tenant's activities with nested schedules and plans.
func (s *ActivityService) List(ctx context.Context, tenantID string) ([]activity.Activity, error) {
	return s.store.ListActivities(ctx, tenantID)
}

// Create inserts an activity together with its schedules and pricing
// plans. The store performs the insert transactionally, so a rejected
// schedule never leaves a half-created activity behind.
func (s *ActivityService) Create(ctx context.Context, tenantID string, req activity.CreateRequest) (*activity.Activity, error) {
	if err := s.license.RequireActive(ctx, tenantID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	a := &activity.Activity{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Name:     req.Name,
		Active:   req.Active,
	}
	for _, sch := range req.Schedules {
		sch.ID = uuid.NewString()
		sch.ActivityID = a.ID
		a.Schedules = append(a.Schedules, sch)
	}
	for _, p := range req.Plans {
		p.ID = uuid.NewString()
		p.ActivityID = a.ID
		a.Plans = append(a.Plans, p)
	}

	if err := s.store.CreateActivity(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
