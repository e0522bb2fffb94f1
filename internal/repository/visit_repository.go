package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rescue-academy/internship-roster-api/internal/models"
)

// VisitRepository persists hospital site-visit confirmations keyed by
// (hospital, visit_date).
type VisitRepository struct {
	db *sqlx.DB
}

// NewVisitRepository constructs a VisitRepository.
func NewVisitRepository(db *sqlx.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// Upsert records a visit, updating comment and visitor when the key exists.
func (r *VisitRepository) Upsert(ctx context.Context, visit *models.VisitRecord) error {
	if visit.ID == "" {
		visit.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = now
	}
	if visit.CreatedAt.IsZero() {
		visit.CreatedAt = now
	}
	visit.UpdatedAt = now
	const query = `INSERT INTO hospital_visits (id, hospital, visit_date, comment, visited_by, visited_at, created_at, updated_at)
        VALUES (:id, :hospital, :visit_date, :comment, :visited_by, :visited_at, :created_at, :updated_at)
        ON CONFLICT (hospital, visit_date)
        DO UPDATE SET comment = EXCLUDED.comment, visited_by = EXCLUDED.visited_by,
                      visited_at = EXCLUDED.visited_at, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, visit); err != nil {
		return fmt.Errorf("upsert visit: %w", err)
	}
	return nil
}

// List returns visits, optionally for a single date, newest first.
func (r *VisitRepository) List(ctx context.Context, filter models.VisitFilter) ([]models.VisitRecord, error) {
	query := `SELECT id, hospital, visit_date, comment, visited_by, visited_at, created_at, updated_at
        FROM hospital_visits`
	args := []interface{}{}
	if filter.Date != "" {
		query += " WHERE visit_date = $1"
		args = append(args, filter.Date)
	}
	query += " ORDER BY visited_at DESC"

	var visits []models.VisitRecord
	if err := r.db.SelectContext(ctx, &visits, query, args...); err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return visits, nil
}

// Delete removes the visit for the exact (hospital, date) key.
func (r *VisitRepository) Delete(ctx context.Context, hospital, date string) error {
	const query = `DELETE FROM hospital_visits WHERE hospital = $1 AND visit_date = $2`
	if _, err := r.db.ExecContext(ctx, query, hospital, date); err != nil {
		return fmt.Errorf("delete visit: %w", err)
	}
	return nil
}

// Count returns the number of visit rows.
func (r *VisitRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM hospital_visits"); err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return count, nil
}
