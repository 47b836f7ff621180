package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/academly/academly/internal/domain/activity"
)

// CreateActivity inserts an activity with its schedules and pricing plans
// in a single transaction. Any child insert failing rolls back the whole
// creation.
func (s *Store) CreateActivity(ctx context.Context, a *activity.Activity) error {
	a.CreatedAt = time.Now().UTC()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create activity: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO activities (id, tenant_id, name, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.TenantID, a.Name, a.Active, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	for i := range a.Schedules {
		sc := &a.Schedules[i]
		sc.ActivityID = a.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO activity_schedules (id, activity_id, weekday, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)`,
			sc.ID, sc.ActivityID, sc.Weekday, sc.StartTime, sc.EndTime,
		)
		if err != nil {
			return fmt.Errorf("create schedule: %w", err)
		}
	}

	for i := range a.Plans {
		p := &a.Plans[i]
		p.ActivityID = a.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO pricing_plans (id, activity_id, name, price_cents, billing_period)
			VALUES ($1, $2, $3, $4, $5)`,
			p.ID, p.ActivityID, p.Name, p.PriceCents, p.BillingPeriod,
		)
		if err != nil {
			return fmt.Errorf("create pricing plan: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create activity: %w", err)
	}
	return nil
}

func (s *Store) ListActivities(ctx context.Context, tenantID string) ([]activity.Activity, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, name, is_active, created_at
		FROM activities WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []activity.Activity
	index := map[string]int{}
	for rows.Next() {
		var a activity.Activity
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Name, &a.Active, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Schedules = []activity.Schedule{}
		a.Plans = []activity.PricingPlan{}
		index[a.ID] = len(activities)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return activities, nil
	}

	if err := s.attachSchedules(ctx, tenantID, activities, index); err != nil {
		return nil, err
	}
	if err := s.attachPlans(ctx, tenantID, activities, index); err != nil {
		return nil, err
	}
	return activities, nil
}

func (s *Store) attachSchedules(ctx context.Context, tenantID string, activities []activity.Activity, index map[string]int) error {
	rows, err := s.pool.Query(ctx, `
		SELECT sc.id, sc.activity_id, sc.weekday, sc.start_time, sc.end_time
		FROM activity_schedules sc
		JOIN activities a ON a.id = sc.activity_id
		WHERE a.tenant_id = $1
		ORDER BY sc.weekday, sc.start_time`, tenantID)
	if err != nil {
		return fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc activity.Schedule
		if err := rows.Scan(&sc.ID, &sc.ActivityID, &sc.Weekday, &sc.StartTime, &sc.EndTime); err != nil {
			return fmt.Errorf("scan schedule: %w", err)
		}
		if i, ok := index[sc.ActivityID]; ok {
			activities[i].Schedules = append(activities[i].Schedules, sc)
		}
	}
	return rows.Err()
}

func (s *Store) attachPlans(ctx context.Context, tenantID string, activities []activity.Activity, index map[string]int) error {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.activity_id, p.name, p.price_cents, p.billing_period
		FROM pricing_plans p
		JOIN activities a ON a.id = p.activity_id
		WHERE a.tenant_id = $1
		ORDER BY p.price_cents`, tenantID)
	if err != nil {
		return fmt.Errorf("list pricing plans: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p activity.PricingPlan
		if err := rows.Scan(&p.ID, &p.ActivityID, &p.Name, &p.PriceCents, &p.BillingPeriod); err != nil {
			return fmt.Errorf("scan pricing plan: %w", err)
		}
		if i, ok := index[p.ActivityID]; ok {
			activities[i].Plans = append(activities[i].Plans, p)
		}
	}
	return rows.Err()
}
