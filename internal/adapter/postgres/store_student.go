package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/academly/academly/internal/domain/student"
)

func (s *Store) ListStudents(ctx context.Context, tenantID string) ([]student.Student, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, name, COALESCE(email, ''), active, created_at, updated_at
		FROM students WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []student.Student
	for rows.Next() {
		var st student.Student
		if err := rows.Scan(&st.ID, &st.TenantID, &st.Name, &st.Email, &st.Active, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

func (s *Store) CreateStudent(ctx context.Context, st *student.Student) error {
	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO students (id, tenant_id, name, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`,
		st.ID, st.TenantID, st.Name, st.Email, st.Active, st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// SetStudentActive scopes by tenant id as well as student id so a session
// can never flip a student belonging to another tenant.
func (s *Store) SetStudentActive(ctx context.Context, tenantID, id string, active bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE students SET active = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, active)
	return execExpectOne(tag, err, "set student active %s", id)
}
