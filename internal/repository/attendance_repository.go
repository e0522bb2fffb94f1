package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rescue-academy/internship-roster-api/internal/models"
)

// AttendanceRepository persists attendance marks keyed by
// (student_number, attendance_date, period).
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert inserts or overwrites the attendance mark for the record's key.
// Last write wins; there is no audit trail.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO attendance_records (id, student_number, attendance_date, period, status, created_at, updated_at)
        VALUES (:id, :student_number, :attendance_date, :period, :status, :created_at, :updated_at)
        ON CONFLICT (student_number, attendance_date, period)
        DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// List returns attendance records matching the filter, newest date first.
// A track filter joins the roster; records whose student number no longer
// resolves are excluded from track-filtered results only.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	query := `SELECT a.id, a.student_number, a.attendance_date, a.period, a.status, a.created_at, a.updated_at
        FROM attendance_records a`
	conditions := []string{}
	args := []interface{}{}

	if filter.Track != "" {
		query += " JOIN students s ON s.student_number = a.student_number"
		conditions = append(conditions, fmt.Sprintf("s.track = $%d", len(args)+1))
		args = append(args, filter.Track)
	}
	if filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("a.attendance_date = $%d", len(args)+1))
		args = append(args, filter.Date)
	}
	if filter.Period != nil {
		conditions = append(conditions, fmt.Sprintf("a.period = $%d", len(args)+1))
		args = append(args, *filter.Period)
	}
	if filter.StudentNumber != "" {
		conditions = append(conditions, fmt.Sprintf("a.student_number = $%d", len(args)+1))
		args = append(args, filter.StudentNumber)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.attendance_date DESC, a.student_number, a.period"

	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// Delete removes the attendance mark for the exact key.
func (r *AttendanceRepository) Delete(ctx context.Context, studentNumber, date string, period int) error {
	const query = `DELETE FROM attendance_records WHERE student_number = $1 AND attendance_date = $2 AND period = $3`
	if _, err := r.db.ExecContext(ctx, query, studentNumber, date, period); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}
