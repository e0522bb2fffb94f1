package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	"github.com/rescue-academy/internship-roster-api/internal/rostercsv"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
)

type visitRepository interface {
	Upsert(ctx context.Context, visit *models.VisitRecord) error
	List(ctx context.Context, filter models.VisitFilter) ([]models.VisitRecord, error)
	Delete(ctx context.Context, hospital, date string) error
}

// RecordVisitRequest is the payload for confirming a hospital site visit.
type RecordVisitRequest struct {
	Hospital  string `json:"hospital" validate:"required,max=200"`
	Date      string `json:"visit_date" validate:"required"`
	Comment   string `json:"comment" validate:"max=1000"`
	VisitedBy string `json:"visited_by" validate:"max=100"`
}

// VisitService manages the hospital visit ledger. Visits are keyed by
// (hospital, date) and independent of the roster, so they survive roster
// re-imports.
type VisitService struct {
	repo       visitRepository
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
	cohortYear int
}

// NewVisitService constructs a VisitService.
func NewVisitService(repo visitRepository, cache *CacheService, validate *validator.Validate, cohortYear int, logger *zap.Logger) *VisitService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisitService{repo: repo, cache: cache, validator: validate, logger: logger, cohortYear: cohortYear}
}

// Record confirms a visit, overwriting comment and visitor on a repeat key.
func (s *VisitService) Record(ctx context.Context, req RecordVisitRequest) (*models.VisitRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid visit payload")
	}
	date, ok := rostercsv.NormalizeDate(req.Date, s.cohortYear)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognized date format")
	}

	visit := &models.VisitRecord{
		Hospital:  req.Hospital,
		Date:      date,
		Comment:   req.Comment,
		VisitedBy: req.VisitedBy,
	}
	if err := s.repo.Upsert(ctx, visit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save visit")
	}
	s.invalidateStats(ctx)
	return visit, nil
}

// List returns visits, optionally for a single date.
func (s *VisitService) List(ctx context.Context, filter models.VisitFilter) ([]models.VisitRecord, error) {
	if filter.Date != "" {
		normalized, ok := rostercsv.NormalizeDate(filter.Date, s.cohortYear)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognized date format")
		}
		filter.Date = normalized
	}
	visits, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list visits")
	}
	if visits == nil {
		visits = []models.VisitRecord{}
	}
	return visits, nil
}

// Remove deletes a visit by its (hospital, date) key.
func (s *VisitService) Remove(ctx context.Context, hospital, rawDate string) error {
	if hospital == "" {
		return appErrors.Clone(appErrors.ErrValidation, "hospital is required")
	}
	date, ok := rostercsv.NormalizeDate(rawDate, s.cohortYear)
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, "unrecognized date format")
	}
	if err := s.repo.Delete(ctx, hospital, date); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete visit")
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *VisitService) invalidateStats(ctx context.Context) {
	if err := s.cache.DeleteByPattern(ctx, statsCacheKeyPattern); err != nil {
		s.logger.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}
