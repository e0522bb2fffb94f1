package service

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	"github.com/rescue-academy/internship-roster-api/internal/rostercsv"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
	"github.com/rescue-academy/internship-roster-api/pkg/export"
)

// Section header comment lines for the legacy two-section format. The
// importer treats any line starting with "=" as a section switch.
const (
	legacyStudentSection  = "=== students ==="
	legacyScheduleSection = "=== schedules ==="
)

type exportStudentRepository interface {
	ListForExport(ctx context.Context) ([]models.Student, error)
}

type exportScheduleRepository interface {
	ListForExport(ctx context.Context) ([]models.ScheduleExportRow, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportService renders the roster dataset back into the CSV formats the
// importer accepts, so an export can always be re-imported losslessly.
type ExportService struct {
	students  exportStudentRepository
	schedules exportScheduleRepository
	csv       csvRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(students exportStudentRepository, schedules exportScheduleRepository, csv csvRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	return &ExportService{students: students, schedules: schedules, csv: csv, logger: logger}
}

// ExportUnified renders the single-table format: one row per
// (student, schedule entry) pair, students without schedules emitted once
// with blank schedule columns. Students are ordered by student number,
// entries within a student by date.
func (s *ExportService) ExportUnified(ctx context.Context) ([]byte, error) {
	students, schedulesByNumber, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(students))
	for _, student := range students {
		entries := schedulesByNumber[student.StudentNumber]
		if len(entries) == 0 {
			rows = append(rows, unifiedRow(student, nil))
			continue
		}
		for i := range entries {
			rows = append(rows, unifiedRow(student, &entries[i]))
		}
	}

	payload, err := s.csv.Render(export.Dataset{Headers: rostercsv.UnifiedHeader, Rows: rows, BOM: true})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render unified csv")
	}
	return payload, nil
}

// ExportLegacy renders the two-section format: a student table, a blank
// line, then a schedule table referencing students by student number.
func (s *ExportService) ExportLegacy(ctx context.Context) ([]byte, error) {
	students, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	scheduleRows, err := s.schedules.ListForExport(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedules")
	}

	studentRows := make([]map[string]string, 0, len(students))
	for _, student := range students {
		studentRows = append(studentRows, map[string]string{
			"student_number": student.StudentNumber,
			"name":           student.Name,
			"kana":           student.Kana,
			"gender":         student.Gender,
			"birth_date":     student.BirthDate,
			"age":            student.Age,
			"hospital":       student.Hospital,
			"track":          student.Track,
			"group":          student.Group,
		})
	}
	studentSection, err := s.csv.Render(export.Dataset{Headers: rostercsv.LegacyStudentHeader, Rows: studentRows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render student section")
	}

	entryRows := make([]map[string]string, 0, len(scheduleRows))
	for _, row := range scheduleRows {
		entryRows = append(entryRows, map[string]string{
			"student_number": row.StudentNumber,
			"date":           row.Date,
			"symbol":         row.Symbol,
			"description":    row.Description,
		})
	}
	scheduleSection, err := s.csv.Render(export.Dataset{Headers: rostercsv.LegacyScheduleHeader, Rows: entryRows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule section")
	}

	buf := &bytes.Buffer{}
	buf.WriteString(export.UTF8BOM)
	buf.WriteString(legacyStudentSection + "\n")
	buf.Write(studentSection)
	buf.WriteString("\n")
	buf.WriteString(legacyScheduleSection + "\n")
	buf.Write(scheduleSection)
	return buf.Bytes(), nil
}

// ExportTemplate renders a header-only unified CSV for staff preparing a
// fresh import spreadsheet.
func (s *ExportService) ExportTemplate() ([]byte, error) {
	payload, err := s.csv.Render(export.Dataset{Headers: rostercsv.UnifiedHeader, BOM: true})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render template csv")
	}
	return payload, nil
}

func (s *ExportService) load(ctx context.Context) ([]models.Student, map[string][]models.ScheduleExportRow, error) {
	students, err := s.students.ListForExport(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	scheduleRows, err := s.schedules.ListForExport(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedules")
	}

	byNumber := make(map[string][]models.ScheduleExportRow, len(students))
	for _, row := range scheduleRows {
		byNumber[row.StudentNumber] = append(byNumber[row.StudentNumber], row)
	}
	return students, byNumber, nil
}

func unifiedRow(student models.Student, entry *models.ScheduleExportRow) map[string]string {
	row := map[string]string{
		"student_number": student.StudentNumber,
		"name":           student.Name,
		"kana":           student.Kana,
		"gender":         student.Gender,
		"birth_date":     student.BirthDate,
		"age":            student.Age,
		"hospital":       student.Hospital,
		"track":          student.Track,
		"group":          student.Group,
	}
	if entry != nil {
		row["date"] = entry.Date
		row["symbol"] = entry.Symbol
		row["description"] = entry.Description
	}
	return row
}
