package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rescue-academy/internship-roster-api/internal/models"
)

// ScheduleRepository manages persistence for schedule entries.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListByStudentIDs returns schedule entries for the given students ordered
// by date. Dates are stored canonically so the optional date filter is an
// exact match.
func (r *ScheduleRepository) ListByStudentIDs(ctx context.Context, studentIDs []int64, date string) ([]models.ScheduleEntry, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	query := `SELECT id, student_id, schedule_date, symbol, description, created_at, updated_at
        FROM schedules WHERE student_id IN (?)`
	args := []interface{}{studentIDs}
	if date != "" {
		query += " AND schedule_date = ?"
		args = append(args, date)
	}
	query += " ORDER BY student_id, schedule_date"

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("expand schedule query: %w", err)
	}
	query = r.db.Rebind(query)

	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, expanded...); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return entries, nil
}

// ListForExport joins every schedule entry with its owner's student number,
// ordered the way both export formats expect.
func (r *ScheduleRepository) ListForExport(ctx context.Context) ([]models.ScheduleExportRow, error) {
	const query = `SELECT sc.id, sc.student_id, sc.schedule_date, sc.symbol, sc.description, sc.created_at, sc.updated_at,
        st.student_number
        FROM schedules sc
        JOIN students st ON st.id = sc.student_id
        ORDER BY st.student_number, sc.schedule_date`
	var rows []models.ScheduleExportRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list schedules for export: %w", err)
	}
	return rows, nil
}

// FindByID fetches a single schedule entry.
func (r *ScheduleRepository) FindByID(ctx context.Context, id int64) (*models.ScheduleEntry, error) {
	const query = `SELECT id, student_id, schedule_date, symbol, description, created_at, updated_at
        FROM schedules WHERE id = $1`
	var entry models.ScheduleEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateSymbol overwrites an entry's symbol and description in place.
func (r *ScheduleRepository) UpdateSymbol(ctx context.Context, id int64, symbol, description string) error {
	const query = `UPDATE schedules SET symbol = $2, description = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, symbol, description, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update schedule symbol: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DistinctDateCount returns the number of distinct schedule dates.
func (r *ScheduleRepository) DistinctDateCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(DISTINCT schedule_date) FROM schedules"); err != nil {
		return 0, fmt.Errorf("count schedule dates: %w", err)
	}
	return count, nil
}
