package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rescue-academy/internship-roster-api/internal/models"
)

// scheduleInsertBatchSize caps multi-row inserts to stay under driver
// payload limits.
const scheduleInsertBatchSize = 1000

// ScheduleSeed is a schedule row awaiting student-id resolution. Dates are
// already canonical by the time a seed reaches the repository.
type ScheduleSeed struct {
	StudentNumber string
	Date          string
	Symbol        string
	Description   string
}

type scheduleInsertRow struct {
	StudentID   int64     `db:"student_id"`
	Date        string    `db:"schedule_date"`
	Symbol      string    `db:"symbol"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// RosterImportRepository owns the full replace-and-reload of the roster
// dataset. The delete+insert sequence runs inside one transaction so a
// failed import never leaves a half-replaced roster behind.
type RosterImportRepository struct {
	db *sqlx.DB
}

// NewRosterImportRepository constructs a RosterImportRepository.
func NewRosterImportRepository(db *sqlx.DB) *RosterImportRepository {
	return &RosterImportRepository{db: db}
}

// ReplaceAll deletes the existing roster (schedules before students, child
// before parent) and inserts the new generation. Schedule seeds whose
// student number resolves to no inserted student are dropped and counted,
// not treated as fatal. Returns inserted and dropped schedule counts.
func (r *RosterImportRepository) ReplaceAll(ctx context.Context, students []models.Student, seeds []ScheduleSeed) (int, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM schedules"); err != nil {
		return 0, 0, fmt.Errorf("clear schedules: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM students"); err != nil {
		return 0, 0, fmt.Errorf("clear students: %w", err)
	}

	now := time.Now().UTC()
	idByNumber := make(map[string]int64, len(students))
	const insertStudent = `INSERT INTO students (student_number, name, kana, gender, birth_date, age, hospital, track, group_name, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	for i := range students {
		student := &students[i]
		var id int64
		err := tx.QueryRowxContext(ctx, insertStudent,
			student.StudentNumber, student.Name, student.Kana, student.Gender,
			student.BirthDate, student.Age, student.Hospital, student.Track,
			student.Group, now, now,
		).Scan(&id)
		if err != nil {
			return 0, 0, fmt.Errorf("insert student %s: %w", student.StudentNumber, err)
		}
		student.ID = id
		idByNumber[student.StudentNumber] = id
	}

	rows := make([]scheduleInsertRow, 0, len(seeds))
	dropped := 0
	for _, seed := range seeds {
		studentID, ok := idByNumber[seed.StudentNumber]
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, scheduleInsertRow{
			StudentID:   studentID,
			Date:        seed.Date,
			Symbol:      seed.Symbol,
			Description: seed.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	const insertSchedules = `INSERT INTO schedules (student_id, schedule_date, symbol, description, created_at, updated_at)
        VALUES (:student_id, :schedule_date, :symbol, :description, :created_at, :updated_at)`
	for start := 0; start < len(rows); start += scheduleInsertBatchSize {
		end := start + scheduleInsertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := tx.NamedExecContext(ctx, insertSchedules, rows[start:end]); err != nil {
			return 0, 0, fmt.Errorf("insert schedule batch at %d: %w", start, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit import tx: %w", err)
	}
	return len(rows), dropped, nil
}

// DeleteAll clears schedules then students in one transaction.
func (r *RosterImportRepository) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM schedules"); err != nil {
		return fmt.Errorf("clear schedules: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM students"); err != nil {
		return fmt.Errorf("clear students: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete tx: %w", err)
	}
	return nil
}
