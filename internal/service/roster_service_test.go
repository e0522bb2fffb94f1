package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
)

type rosterStudentStub struct {
	students   []models.Student
	lastFilter models.RosterFilter
}

func (s *rosterStudentStub) List(ctx context.Context, filter models.RosterFilter) ([]models.Student, error) {
	s.lastFilter = filter
	return s.students, nil
}

func (s *rosterStudentStub) FindByNumber(ctx context.Context, studentNumber string) (*models.Student, error) {
	for i := range s.students {
		if s.students[i].StudentNumber == studentNumber {
			return &s.students[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

type rosterScheduleStub struct {
	entries  []models.ScheduleEntry
	updated  map[int64][2]string
	lastDate string
}

func (s *rosterScheduleStub) ListByStudentIDs(ctx context.Context, studentIDs []int64, date string) ([]models.ScheduleEntry, error) {
	s.lastDate = date
	ids := make(map[int64]struct{}, len(studentIDs))
	for _, id := range studentIDs {
		ids[id] = struct{}{}
	}
	var result []models.ScheduleEntry
	for _, entry := range s.entries {
		if _, ok := ids[entry.StudentID]; ok {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (s *rosterScheduleStub) FindByID(ctx context.Context, id int64) (*models.ScheduleEntry, error) {
	for i := range s.entries {
		if s.entries[i].ID == id {
			entry := s.entries[i]
			if pair, ok := s.updated[id]; ok {
				entry.Symbol = pair[0]
				entry.Description = pair[1]
			}
			return &entry, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *rosterScheduleStub) UpdateSymbol(ctx context.Context, id int64, symbol, description string) error {
	for i := range s.entries {
		if s.entries[i].ID == id {
			if s.updated == nil {
				s.updated = make(map[int64][2]string)
			}
			s.updated[id] = [2]string{symbol, description}
			return nil
		}
	}
	return sql.ErrNoRows
}

func newRosterServiceForTest() (*RosterService, *rosterStudentStub, *rosterScheduleStub) {
	students := &rosterStudentStub{students: []models.Student{
		{ID: 1, StudentNumber: "2301001", Name: "山田 太郎", Hospital: "県立中央病院"},
		{ID: 2, StudentNumber: "2301002", Name: "佐藤 花子", Hospital: "市民病院"},
	}}
	schedules := &rosterScheduleStub{entries: []models.ScheduleEntry{
		{ID: 10, StudentID: 1, Date: "2026-04-07", Symbol: "〇", Description: "病院実習当日"},
		{ID: 11, StudentID: 1, Date: "2026-04-08", Symbol: "学", Description: "学校登校日"},
	}}
	svc := NewRosterService(students, schedules, nil, 2026, zap.NewNop())
	return svc, students, schedules
}

func TestRosterList(t *testing.T) {
	svc, _, _ := newRosterServiceForTest()
	result, err := svc.List(context.Background(), models.RosterFilter{})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Len(t, result[0].Schedules, 2)
	// Students without entries get an empty slice, never nil.
	assert.NotNil(t, result[1].Schedules)
	assert.Len(t, result[1].Schedules, 0)
}

func TestRosterListNormalizesDateFilter(t *testing.T) {
	svc, _, schedules := newRosterServiceForTest()
	_, err := svc.List(context.Background(), models.RosterFilter{Date: "4/7"})
	require.NoError(t, err)
	assert.Equal(t, "2026-04-07", schedules.lastDate)

	_, err = svc.List(context.Background(), models.RosterFilter{Date: "yesterday"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestRosterSchedulesByStudentNumber(t *testing.T) {
	svc, _, _ := newRosterServiceForTest()
	entries, err := svc.SchedulesByStudentNumber(context.Background(), "2301001")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = svc.SchedulesByStudentNumber(context.Background(), "9999999")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)

	_, err = svc.SchedulesByStudentNumber(context.Background(), "123")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestRosterUpdateScheduleSymbol(t *testing.T) {
	svc, _, schedules := newRosterServiceForTest()
	entry, err := svc.UpdateScheduleSymbol(context.Background(), 10, UpdateScheduleRequest{Symbol: "半"})
	require.NoError(t, err)
	assert.Equal(t, "半", entry.Symbol)
	assert.Equal(t, "半日実習", entry.Description)
	assert.Equal(t, [2]string{"半", "半日実習"}, schedules.updated[10])
}

func TestRosterUpdateScheduleSymbolNotFound(t *testing.T) {
	svc, _, _ := newRosterServiceForTest()
	_, err := svc.UpdateScheduleSymbol(context.Background(), 999, UpdateScheduleRequest{Symbol: "半"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestRosterMarkScheduleAbsent(t *testing.T) {
	svc, _, _ := newRosterServiceForTest()
	entry, err := svc.MarkScheduleAbsent(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, models.SymbolAbsent, entry.Symbol)
	assert.Equal(t, "欠席", entry.Description)
}
