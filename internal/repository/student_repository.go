package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rescue-academy/internship-roster-api/internal/models"
)

// StudentRepository manages persistence for student roster rows.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters ordered by id.
func (r *StudentRepository) List(ctx context.Context, filter models.RosterFilter) ([]models.Student, error) {
	query := `SELECT id, student_number, name, kana, gender, birth_date, age, hospital, track, group_name, created_at, updated_at
        FROM students`
	conditions := []string{}
	args := []interface{}{}

	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR kana ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Hospital != "" {
		conditions = append(conditions, fmt.Sprintf("hospital ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Hospital+"%")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListForExport returns every student ordered by student number, the fixed
// export order shared by the unified and legacy formats.
func (r *StudentRepository) ListForExport(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, student_number, name, kana, gender, birth_date, age, hospital, track, group_name, created_at, updated_at
        FROM students ORDER BY student_number`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students for export: %w", err)
	}
	return students, nil
}

// FindByNumber fetches a student by its 7-digit natural key.
func (r *StudentRepository) FindByNumber(ctx context.Context, studentNumber string) (*models.Student, error) {
	const query = `SELECT id, student_number, name, kana, gender, birth_date, age, hospital, track, group_name, created_at, updated_at
        FROM students WHERE student_number = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, studentNumber); err != nil {
		return nil, err
	}
	return &student, nil
}

// Count returns the number of student rows.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM students"); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// DistinctHospitalCount returns the number of distinct assigned facilities.
func (r *StudentRepository) DistinctHospitalCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(DISTINCT hospital) FROM students WHERE hospital <> ''"); err != nil {
		return 0, fmt.Errorf("count hospitals: %w", err)
	}
	return count, nil
}
