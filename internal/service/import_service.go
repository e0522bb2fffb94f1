package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	"github.com/rescue-academy/internship-roster-api/internal/repository"
	"github.com/rescue-academy/internship-roster-api/internal/rostercsv"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
)

type rosterImportRepository interface {
	ReplaceAll(ctx context.Context, students []models.Student, seeds []repository.ScheduleSeed) (int, int, error)
	DeleteAll(ctx context.Context) error
}

// ImportConfig tunes the import pipeline.
type ImportConfig struct {
	// CohortYear anchors schedule dates that arrive without a year (`M/D`).
	CohortYear int
}

// ImportResult reports what one import did. Skipped rows and dropped
// schedules are soft outcomes, not errors: spreadsheet exports are
// expected to carry irregular rows.
type ImportResult struct {
	StudentsImported  int `json:"students_imported"`
	SchedulesImported int `json:"schedules_imported"`
	SchedulesDropped  int `json:"schedules_dropped"`
	RowsSkipped       int `json:"rows_skipped"`
}

// ImportService orchestrates the full replace-and-reload of the roster
// dataset from CSV text. The upstream spreadsheet is the single source of
// truth for a given import, so existing rows are never merged with.
type ImportService struct {
	repo   rosterImportRepository
	cache  *CacheService
	logger *zap.Logger
	cfg    ImportConfig
}

// NewImportService constructs an ImportService.
func NewImportService(repo rosterImportRepository, cache *CacheService, cfg ImportConfig, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{repo: repo, cache: cache, logger: logger, cfg: cfg}
}

// ImportUnified ingests the single-table 12-column format: one row per
// (student, schedule entry) pair, students repeated across their rows.
// The first occurrence of a student number wins for student fields; later
// rows still contribute schedule entries.
func (s *ImportService) ImportUnified(ctx context.Context, raw string) (*ImportResult, error) {
	lines := splitDataLines(raw)
	if len(lines) < 2 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "csv is empty or contains only a header row")
	}

	students := make([]models.Student, 0)
	seen := make(map[string]struct{})
	seeds := make([]repository.ScheduleSeed, 0)
	skipped := 0

	for _, line := range lines[1:] {
		student, schedule := rostercsv.ParseUnifiedRow(line)
		if student == nil {
			skipped++
			continue
		}
		if _, ok := seen[student.StudentNumber]; !ok {
			seen[student.StudentNumber] = struct{}{}
			students = append(students, studentFromRecord(student))
		}
		if schedule == nil {
			continue
		}
		seed, ok := s.seedFromRecord(schedule)
		if !ok {
			skipped++
			continue
		}
		seeds = append(seeds, seed)
	}

	return s.replace(ctx, students, seeds, skipped)
}

// ImportLegacy ingests the two-section format: a student table followed by
// a schedule table referencing students by student number. Section header
// comment lines (`=== ... ===`) switch between the two tables.
func (s *ImportService) ImportLegacy(ctx context.Context, raw string) (*ImportResult, error) {
	lines := splitDataLines(raw)
	if len(lines) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "csv is empty")
	}

	students := make([]models.Student, 0)
	seen := make(map[string]struct{})
	seeds := make([]repository.ScheduleSeed, 0)
	skipped := 0
	section := 0

	for _, line := range lines {
		if strings.HasPrefix(line, "=") {
			section++
			continue
		}
		if isHeaderRow(line) {
			continue
		}
		if section <= 1 {
			student := rostercsv.ParseStudentRow(line)
			if student == nil {
				skipped++
				continue
			}
			if _, ok := seen[student.StudentNumber]; ok {
				continue
			}
			seen[student.StudentNumber] = struct{}{}
			students = append(students, studentFromRecord(student))
			continue
		}
		schedule := rostercsv.ParseScheduleRow(line)
		if schedule == nil {
			skipped++
			continue
		}
		seed, ok := s.seedFromRecord(schedule)
		if !ok {
			skipped++
			continue
		}
		seeds = append(seeds, seed)
	}

	return s.replace(ctx, students, seeds, skipped)
}

// DeleteAll clears the whole roster, schedules before students.
func (s *ImportService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete roster")
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *ImportService) replace(ctx context.Context, students []models.Student, seeds []repository.ScheduleSeed, skipped int) (*ImportResult, error) {
	if len(students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no valid student rows found")
	}

	inserted, dropped, err := s.repo.ReplaceAll(ctx, students, seeds)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace roster")
	}

	s.invalidateStats(ctx)
	s.logger.Info("roster imported",
		zap.Int("students", len(students)),
		zap.Int("schedules", inserted),
		zap.Int("schedules_dropped", dropped),
		zap.Int("rows_skipped", skipped),
	)

	return &ImportResult{
		StudentsImported:  len(students),
		SchedulesImported: inserted,
		SchedulesDropped:  dropped,
		RowsSkipped:       skipped,
	}, nil
}

// seedFromRecord normalizes the schedule date and applies the description
// policy: descriptions are always derived from the symbol catalog, and a
// description column in the source is ignored.
func (s *ImportService) seedFromRecord(record *rostercsv.ScheduleRecord) (repository.ScheduleSeed, bool) {
	date, ok := rostercsv.NormalizeDate(record.Date, s.cfg.CohortYear)
	if !ok {
		return repository.ScheduleSeed{}, false
	}
	return repository.ScheduleSeed{
		StudentNumber: record.StudentNumber,
		Date:          date,
		Symbol:        record.Symbol,
		Description:   models.DescribeSymbol(record.Symbol),
	}, true
}

func (s *ImportService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, statsCacheKeyPattern); err != nil {
		s.logger.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}

func studentFromRecord(record *rostercsv.StudentRecord) models.Student {
	return models.Student{
		StudentNumber: record.StudentNumber,
		Name:          record.Name,
		Kana:          record.Kana,
		Gender:        record.Gender,
		BirthDate:     record.BirthDate,
		Age:           record.Age,
		Hospital:      record.Hospital,
		Track:         record.Track,
		Group:         record.Group,
	}
}

// splitDataLines splits raw CSV text into non-empty lines, tolerating a
// leading byte-order mark and CRLF endings from spreadsheet exports.
func splitDataLines(raw string) []string {
	raw = strings.TrimPrefix(raw, "\ufeff")
	candidates := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(candidates))
	for _, line := range candidates {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// isHeaderRow recognises the column-name rows inside legacy sections.
func isHeaderRow(line string) bool {
	fields := rostercsv.SplitFields(line)
	return len(fields) > 0 && fields[0] == "student_number"
}
