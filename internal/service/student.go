package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/student"
	"github.com/academly/academly/internal/normalize"
	"github.com/academly/academly/internal/port/database"
)

// StudentService manages a tenant's member roster. Every mutation passes
// through the license guard so a suspended tenant can read but not write.
type StudentService struct {
	store   database.Store
	license *LicenseGuard
}

// NewStudentService creates the roster service.
func NewStudentService(store database.Store, license *LicenseGuard) *StudentService {
	return &StudentService{store: store, license: license}
}

// List returns the tenant's students.
func (s *StudentService) List(ctx context.Context, tenantID string) ([]student.Student, error) {
	return s.store.ListStudents(ctx, tenantID)
}

// Create enrolls a student for the tenant.
func (s *StudentService) Create(ctx context.Context, tenantID string, req student.CreateRequest) (*student.Student, error) {
	if err := s.license.RequireActive(ctx, tenantID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	st := &student.Student{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Name:     normalize.DisplayName(req.Name),
		Email:    normalize.Email(req.Email),
		Active:   true,
	}
	if err := s.store.CreateStudent(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SetActive toggles a student's active flag.
func (s *StudentService) SetActive(ctx context.Context, tenantID, id string, active bool) error {
	if err := s.license.RequireActive(ctx, tenantID); err != nil {
		return err
	}
	return s.store.SetStudentActive(ctx, tenantID, id, active)
}
