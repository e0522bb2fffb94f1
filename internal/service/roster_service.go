package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	"github.com/rescue-academy/internship-roster-api/internal/rostercsv"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
)

type rosterStudentRepository interface {
	List(ctx context.Context, filter models.RosterFilter) ([]models.Student, error)
	FindByNumber(ctx context.Context, studentNumber string) (*models.Student, error)
}

type rosterScheduleRepository interface {
	ListByStudentIDs(ctx context.Context, studentIDs []int64, date string) ([]models.ScheduleEntry, error)
	FindByID(ctx context.Context, id int64) (*models.ScheduleEntry, error)
	UpdateSymbol(ctx context.Context, id int64, symbol, description string) error
}

// UpdateScheduleRequest holds the payload for a schedule symbol edit.
type UpdateScheduleRequest struct {
	Symbol string `json:"symbol" validate:"required,max=4"`
}

// RosterService serves the read side of the roster plus the small in-place
// schedule mutations (symbol edits, absence overwrites).
type RosterService struct {
	students   rosterStudentRepository
	schedules  rosterScheduleRepository
	validator  *validator.Validate
	logger     *zap.Logger
	cohortYear int
}

// NewRosterService constructs the roster service.
func NewRosterService(students rosterStudentRepository, schedules rosterScheduleRepository, validate *validator.Validate, cohortYear int, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{students: students, schedules: schedules, validator: validate, logger: logger, cohortYear: cohortYear}
}

// List returns students matching the filter, each with its schedule entries
// attached. A date filter is normalized to the canonical format first so
// the storage lookup stays an exact match.
func (s *RosterService) List(ctx context.Context, filter models.RosterFilter) ([]models.StudentWithSchedules, error) {
	if filter.Date != "" {
		normalized, ok := rostercsv.NormalizeDate(filter.Date, s.cohortYear)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognized date format")
		}
		filter.Date = normalized
	}

	students, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if len(students) == 0 {
		return []models.StudentWithSchedules{}, nil
	}

	ids := make([]int64, len(students))
	for i, student := range students {
		ids[i] = student.ID
	}
	entries, err := s.schedules.ListByStudentIDs(ctx, ids, filter.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}

	byStudent := make(map[int64][]models.ScheduleEntry, len(students))
	for _, entry := range entries {
		byStudent[entry.StudentID] = append(byStudent[entry.StudentID], entry)
	}

	result := make([]models.StudentWithSchedules, 0, len(students))
	for _, student := range students {
		schedules := byStudent[student.ID]
		if schedules == nil {
			schedules = []models.ScheduleEntry{}
		}
		result = append(result, models.StudentWithSchedules{Student: student, Schedules: schedules})
	}
	return result, nil
}

// SchedulesByStudentNumber returns one student's schedule entries by
// natural key.
func (s *RosterService) SchedulesByStudentNumber(ctx context.Context, studentNumber string) ([]models.ScheduleEntry, error) {
	if !rostercsv.ValidStudentNumber(studentNumber) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student number must be 7 digits")
	}
	student, err := s.students.FindByNumber(ctx, studentNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	entries, err := s.schedules.ListByStudentIDs(ctx, []int64{student.ID}, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return entries, nil
}

// UpdateScheduleSymbol overwrites one entry's symbol; the description is
// re-derived from the symbol catalog, never taken from the caller.
func (s *RosterService) UpdateScheduleSymbol(ctx context.Context, id int64, req UpdateScheduleRequest) (*models.ScheduleEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	description := models.DescribeSymbol(req.Symbol)
	if err := s.schedules.UpdateSymbol(ctx, id, req.Symbol, description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule")
	}
	entry, err := s.schedules.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload schedule")
	}
	return entry, nil
}

// MarkScheduleAbsent overwrites the entry with the absence symbol and its
// description in place. No history is kept.
func (s *RosterService) MarkScheduleAbsent(ctx context.Context, id int64) (*models.ScheduleEntry, error) {
	return s.UpdateScheduleSymbol(ctx, id, UpdateScheduleRequest{Symbol: models.SymbolAbsent})
}
