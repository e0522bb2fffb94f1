package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
)

type visitRepoStub struct {
	visits  []models.VisitRecord
	deleted [][2]string
}

func (s *visitRepoStub) Upsert(ctx context.Context, visit *models.VisitRecord) error {
	for i := range s.visits {
		existing := &s.visits[i]
		if existing.Hospital == visit.Hospital && existing.Date == visit.Date {
			existing.Comment = visit.Comment
			existing.VisitedBy = visit.VisitedBy
			return nil
		}
	}
	s.visits = append(s.visits, *visit)
	return nil
}

func (s *visitRepoStub) List(ctx context.Context, filter models.VisitFilter) ([]models.VisitRecord, error) {
	var result []models.VisitRecord
	for _, visit := range s.visits {
		if filter.Date != "" && visit.Date != filter.Date {
			continue
		}
		result = append(result, visit)
	}
	return result, nil
}

func (s *visitRepoStub) Delete(ctx context.Context, hospital, date string) error {
	s.deleted = append(s.deleted, [2]string{hospital, date})
	return nil
}

func newVisitServiceForTest(repo *visitRepoStub) *VisitService {
	return NewVisitService(repo, nil, nil, 2026, zap.NewNop())
}

func TestVisitRecord(t *testing.T) {
	repo := &visitRepoStub{}
	svc := newVisitServiceForTest(repo)

	visit, err := svc.Record(context.Background(), RecordVisitRequest{
		Hospital: "県立中央病院", Date: "4/7", Comment: "巡回済み", VisitedBy: "担当A",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-04-07", visit.Date)

	// Same key overwrites comment and visitor.
	_, err = svc.Record(context.Background(), RecordVisitRequest{
		Hospital: "県立中央病院", Date: "2026-04-07", Comment: "再巡回", VisitedBy: "担当B",
	})
	require.NoError(t, err)
	require.Len(t, repo.visits, 1)
	assert.Equal(t, "再巡回", repo.visits[0].Comment)
	assert.Equal(t, "担当B", repo.visits[0].VisitedBy)
}

func TestVisitRecordValidation(t *testing.T) {
	svc := newVisitServiceForTest(&visitRepoStub{})
	var appErr *appErrors.Error

	_, err := svc.Record(context.Background(), RecordVisitRequest{Hospital: "", Date: "4/7"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)

	_, err = svc.Record(context.Background(), RecordVisitRequest{Hospital: "市民病院", Date: "someday"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestVisitListFiltersByDate(t *testing.T) {
	repo := &visitRepoStub{visits: []models.VisitRecord{
		{Hospital: "県立中央病院", Date: "2026-04-07"},
		{Hospital: "市民病院", Date: "2026-04-08"},
	}}
	svc := newVisitServiceForTest(repo)

	visits, err := svc.List(context.Background(), models.VisitFilter{Date: "4/8"})
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "市民病院", visits[0].Hospital)
}

func TestVisitRemove(t *testing.T) {
	repo := &visitRepoStub{}
	svc := newVisitServiceForTest(repo)
	require.NoError(t, svc.Remove(context.Background(), "市民病院", "4/8"))
	require.Len(t, repo.deleted, 1)
	assert.Equal(t, [2]string{"市民病院", "2026-04-08"}, repo.deleted[0])
}
