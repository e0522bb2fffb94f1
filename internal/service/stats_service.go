package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
)

const (
	statsCacheKey        = "stats:summary"
	statsCacheKeyPattern = "stats:*"
)

type statsStudentRepository interface {
	Count(ctx context.Context) (int, error)
	DistinctHospitalCount(ctx context.Context) (int, error)
}

type statsScheduleRepository interface {
	DistinctDateCount(ctx context.Context) (int, error)
}

type statsVisitRepository interface {
	Count(ctx context.Context) (int, error)
}

// StatsService aggregates the dashboard summary, caching it briefly since
// the counts only change on imports and visit writes.
type StatsService struct {
	students  statsStudentRepository
	schedules statsScheduleRepository
	visits    statsVisitRepository
	cache     *CacheService
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewStatsService constructs a StatsService.
func NewStatsService(students statsStudentRepository, schedules statsScheduleRepository, visits statsVisitRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{students: students, schedules: schedules, visits: visits, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Summary returns dataset counts plus the symbol vocabulary.
func (s *StatsService) Summary(ctx context.Context) (*models.Stats, error) {
	var cached models.Stats
	if hit, _ := s.cache.Get(ctx, statsCacheKey, &cached); hit {
		return &cached, nil
	}

	studentCount, err := s.students.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	hospitalCount, err := s.students.DistinctHospitalCount(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count hospitals")
	}
	dateCount, err := s.schedules.DistinctDateCount(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count schedule dates")
	}
	visitCount, err := s.visits.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count visits")
	}

	stats := &models.Stats{
		StudentCount:  studentCount,
		HospitalCount: hospitalCount,
		DateCount:     dateCount,
		VisitCount:    visitCount,
		Symbols:       models.SymbolCatalog(),
	}

	if err := s.cache.Set(ctx, statsCacheKey, stats, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache stats", zap.Error(err))
	}
	return stats, nil
}
