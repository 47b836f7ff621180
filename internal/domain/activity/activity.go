// Package activity defines tenant-scoped activities with their schedules
// and pricing plans.
package activity

import (
	"errors"
	"time"
)

// Activity is a class or service a gym offers (e.g. spinning, crossfit).
type Activity struct {
	ID        string        `json:"id"`
	TenantID  string        `json:"tenant_id"`
	Name      string        `json:"name"`
	Active    bool          `json:"is_active"`
	Schedules []Schedule    `json:"schedules"`
	Plans     []PricingPlan `json:"pricing_plans"`
	CreatedAt time.Time     `json:"created_at"`
}

// Schedule is a weekly time slot for an activity. Weekday follows
// time.Weekday numbering (Sunday = 0).
type Schedule struct {
	ID         string `json:"id"`
	ActivityID string `json:"activity_id"`
	Weekday    int    `json:"weekday"`
	StartTime  string `json:"start_time"` // "HH:MM"
	EndTime    string `json:"end_time"`   // "HH:MM"
}

// PricingPlan is a billing option for an activity.
type PricingPlan struct {
	ID            string `json:"id"`
	ActivityID    string `json:"activity_id"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"price_cents"`
	BillingPeriod string `json:"billing_period"` // monthly, quarterly, yearly
}

// CreateRequest creates an activity with its schedules and pricing plans
// in a single all-or-nothing call.
type CreateRequest struct {
	Name      string        `json:"name"`
	Active    bool          `json:"is_active"`
	Schedules []Schedule    `json:"schedules"`
	Plans     []PricingPlan `json:"pricing_plans"`
}

// Validate checks the CreateRequest and its nested records.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	for _, s := range r.Schedules {
		if s.Weekday < 0 || s.Weekday > 6 {
			return errors.New("schedule weekday must be 0-6")
		}
		if s.StartTime == "" || s.EndTime == "" {
			return errors.New("schedule start and end times are required")
		}
	}
	for _, p := range r.Plans {
		if p.Name == "" {
			return errors.New("pricing plan name is required")
		}
		if p.PriceCents < 0 {
			return errors.New("pricing plan price must not be negative")
		}
	}
	return nil
}
