package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	"github.com/rescue-academy/internship-roster-api/internal/rostercsv"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
	"github.com/rescue-academy/internship-roster-api/pkg/export"
)

var attendanceExportHeader = []string{"student_number", "attendance_date", "period", "status"}

type attendanceRepository interface {
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	Delete(ctx context.Context, studentNumber, date string, period int) error
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// MarkAttendanceRequest is the payload for recording one attendance mark.
type MarkAttendanceRequest struct {
	StudentNumber string `json:"student_number" validate:"required"`
	Date          string `json:"attendance_date" validate:"required"`
	Period        int    `json:"period" validate:"required,min=1,max=10"`
	Status        string `json:"status" validate:"required"`
}

// AttendanceService manages the attendance ledger. Marks are keyed by
// (student_number, date, period); writing the same key again overwrites.
type AttendanceService struct {
	repo       attendanceRepository
	csv        csvRenderer
	pdf        pdfRenderer
	validator  *validator.Validate
	logger     *zap.Logger
	cohortYear int
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, csv csvRenderer, pdf pdfRenderer, validate *validator.Validate, cohortYear int, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &AttendanceService{repo: repo, csv: csv, pdf: pdf, validator: validate, logger: logger, cohortYear: cohortYear}
}

// Mark records or overwrites one attendance mark.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if !rostercsv.ValidStudentNumber(req.StudentNumber) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student number must be 7 digits")
	}
	status := models.AttendanceStatus(req.Status)
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}
	date, ok := rostercsv.NormalizeDate(req.Date, s.cohortYear)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognized date format")
	}

	record := &models.AttendanceRecord{
		StudentNumber: req.StudentNumber,
		Date:          date,
		Period:        req.Period,
		Status:        status,
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}
	return record, nil
}

// List returns attendance marks matching the filter. A date filter is
// normalized before hitting storage.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	if filter.Date != "" {
		normalized, ok := rostercsv.NormalizeDate(filter.Date, s.cohortYear)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognized date format")
		}
		filter.Date = normalized
	}
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	return records, nil
}

// Remove deletes the mark for the exact key. Removing a missing key is not
// an error.
func (s *AttendanceService) Remove(ctx context.Context, studentNumber, rawDate string, period int) error {
	if !rostercsv.ValidStudentNumber(studentNumber) {
		return appErrors.Clone(appErrors.ErrValidation, "student number must be 7 digits")
	}
	date, ok := rostercsv.NormalizeDate(rawDate, s.cohortYear)
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, "unrecognized date format")
	}
	if err := s.repo.Delete(ctx, studentNumber, date, period); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance")
	}
	return nil
}

// ExportCSV renders the filtered ledger as a BOM-prefixed CSV.
func (s *AttendanceService) ExportCSV(ctx context.Context, filter models.AttendanceFilter) ([]byte, error) {
	records, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(export.Dataset{Headers: attendanceExportHeader, Rows: attendanceRows(records), BOM: true})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render attendance csv")
	}
	return payload, nil
}

// ExportPDF renders the filtered ledger as a printable table. Statuses
// are printed as their ASCII labels because the renderer's core fonts
// cannot encode Japanese text.
func (s *AttendanceService) ExportPDF(ctx context.Context, filter models.AttendanceFilter) ([]byte, error) {
	records, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	title := "Attendance"
	if filter.Date != "" {
		title = "Attendance " + filter.Date
	}
	payload, err := s.pdf.Render(export.Dataset{Headers: attendanceExportHeader, Rows: attendancePDFRows(records)}, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render attendance pdf")
	}
	return payload, nil
}

// attendancePDFRows swaps the status column for its ASCII label.
func attendancePDFRows(records []models.AttendanceRecord) []map[string]string {
	rows := attendanceRows(records)
	for i, record := range records {
		rows[i]["status"] = record.Status.Label()
	}
	return rows
}

func attendanceRows(records []models.AttendanceRecord) []map[string]string {
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, map[string]string{
			"student_number":  record.StudentNumber,
			"attendance_date": record.Date,
			"period":          fmt.Sprintf("%d", record.Period),
			"status":          string(record.Status),
		})
	}
	return rows
}
