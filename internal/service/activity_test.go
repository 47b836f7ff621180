package service

import (
	"context"
	"errors"
	"testing"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/activity"
	"github.com/academly/academly/internal/domain/tenant"
)

func TestActivityService_Create(t *testing.T) {
	store := &mockStore{}
	svc := NewActivityService(store, NewLicenseGuard(&mockStatusReader{status: tenant.StatusActive}))

	got, err := svc.Create(context.Background(), "t1", activity.CreateRequest{
		Name:   "Spinning",
		Active: true,
		Schedules: []activity.Schedule{
			{Weekday: 1, StartTime: "18:00", EndTime: "19:00"},
			{Weekday: 3, StartTime: "18:00", EndTime: "19:00"},
		},
		Plans: []activity.PricingPlan{
			{Name: "Monthly", PriceCents: 4500, BillingPeriod: "monthly"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID == "" || got.TenantID != "t1" {
		t.Errorf("activity = %+v", got)
	}
	if len(got.Schedules) != 2 {
		t.Fatalf("schedules = %d, want 2", len(got.Schedules))
	}
	for _, s := range got.Schedules {
		if s.ID == "" || s.ActivityID != got.ID {
			t.Errorf("schedule not linked: %+v", s)
		}
	}
	if len(got.Plans) != 1 || got.Plans[0].ActivityID != got.ID {
		t.Errorf("plans = %+v", got.Plans)
	}
}

func TestActivityService_Validation(t *testing.T) {
	svc := NewActivityService(&mockStore{}, NewLicenseGuard(&mockStatusReader{status: tenant.StatusActive}))
	tests := []struct {
		name string
		req  activity.CreateRequest
	}{
		{"missing name", activity.CreateRequest{}},
		{"bad weekday", activity.CreateRequest{Name: "Yoga", Schedules: []activity.Schedule{{Weekday: 7, StartTime: "09:00", EndTime: "10:00"}}}},
		{"missing times", activity.CreateRequest{Name: "Yoga", Schedules: []activity.Schedule{{Weekday: 2}}}},
		{"negative price", activity.CreateRequest{Name: "Yoga", Plans: []activity.PricingPlan{{Name: "Monthly", PriceCents: -1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "t1", tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestActivityService_SuspendedTenantCannotCreate(t *testing.T) {
	svc := NewActivityService(&mockStore{}, NewLicenseGuard(&mockStatusReader{status: tenant.StatusArchived}))

	_, err := svc.Create(context.Background(), "t1", activity.CreateRequest{Name: "Yoga"})
	if !errors.Is(err, domain.ErrLicenseInactive) {
		t.Fatalf("err = %v, want ErrLicenseInactive", err)
	}
}
