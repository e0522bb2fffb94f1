package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	"github.com/rescue-academy/internship-roster-api/internal/repository"
	"github.com/rescue-academy/internship-roster-api/internal/rostercsv"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
)

type importRepoStub struct {
	students []models.Student
	seeds    []repository.ScheduleSeed
	dropped  int
	deleted  bool
}

func (s *importRepoStub) ReplaceAll(ctx context.Context, students []models.Student, seeds []repository.ScheduleSeed) (int, int, error) {
	s.students = students
	s.seeds = seeds
	return len(seeds) - s.dropped, s.dropped, nil
}

func (s *importRepoStub) DeleteAll(ctx context.Context) error {
	s.deleted = true
	return nil
}

func newImportServiceForTest(repo *importRepoStub) *ImportService {
	return NewImportService(repo, nil, ImportConfig{CohortYear: 2026}, zap.NewNop())
}

func TestImportUnified(t *testing.T) {
	raw := strings.Join([]string{
		strings.Join(rostercsv.UnifiedHeader, ","),
		"2301001,山田 太郎,ヤマダ タロウ,男,2003-04-01,22,県立中央病院,A,1,4/7,〇,",
		"2301001,山田 太郎,ヤマダ タロウ,男,2003-04-01,22,県立中央病院,A,1,4/8,学,whatever the sheet says",
		"2301002,佐藤 花子,サトウ ハナコ,女,2003-05-02,22,市民病院,B,2,2026/4/7,半,",
		"2301002,佐藤 花子,サトウ ハナコ,女,2003-05-02,22,市民病院,B,2,,,",
		"notanum,壊れた行,,,,,,,,4/9,〇,",
	}, "\n")

	repo := &importRepoStub{}
	svc := newImportServiceForTest(repo)
	result, err := svc.ImportUnified(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 2, result.StudentsImported)
	assert.Equal(t, 3, result.SchedulesImported)
	assert.Equal(t, 0, result.SchedulesDropped)
	assert.Equal(t, 1, result.RowsSkipped)

	require.Len(t, repo.students, 2)
	assert.Equal(t, "2301001", repo.students[0].StudentNumber)
	assert.Equal(t, "山田 太郎", repo.students[0].Name)
	assert.Equal(t, "2301002", repo.students[1].StudentNumber)

	require.Len(t, repo.seeds, 3)
	assert.Equal(t, "2026-04-07", repo.seeds[0].Date)
	assert.Equal(t, "2026-04-08", repo.seeds[1].Date)
	assert.Equal(t, "2026-04-07", repo.seeds[2].Date)
	// Descriptions always come from the symbol catalog, not the sheet.
	assert.Equal(t, "病院実習当日", repo.seeds[0].Description)
	assert.Equal(t, "学校登校日", repo.seeds[1].Description)
	assert.Equal(t, "半日実習", repo.seeds[2].Description)
}

func TestImportUnifiedBadDateSkipsRow(t *testing.T) {
	raw := strings.Join([]string{
		strings.Join(rostercsv.UnifiedHeader, ","),
		"2301001,山田 太郎,ヤマダ タロウ,男,2003-04-01,22,県立中央病院,A,1,not-a-date,〇,",
	}, "\n")

	repo := &importRepoStub{}
	svc := newImportServiceForTest(repo)
	result, err := svc.ImportUnified(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 1, result.StudentsImported)
	assert.Equal(t, 0, result.SchedulesImported)
	assert.Equal(t, 1, result.RowsSkipped)
}

func TestImportUnifiedEmpty(t *testing.T) {
	svc := newImportServiceForTest(&importRepoStub{})

	_, err := svc.ImportUnified(context.Background(), "")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)

	// A lone header row is just as empty.
	_, err = svc.ImportUnified(context.Background(), strings.Join(rostercsv.UnifiedHeader, ","))
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestImportLegacy(t *testing.T) {
	raw := "\ufeff" + strings.Join([]string{
		"=== students ===",
		strings.Join(rostercsv.LegacyStudentHeader, ","),
		"2301001,山田 太郎,ヤマダ タロウ,男,2003-04-01,22,県立中央病院,A,1",
		"2301002,佐藤 花子,サトウ ハナコ,女,2003-05-02,22,市民病院,B,2",
		"",
		"=== schedules ===",
		strings.Join(rostercsv.LegacyScheduleHeader, ","),
		"2301001,4/7,〇,病院実習当日",
		"2301002,4/7,オリ,",
		"9999999,4/7,〇,",
	}, "\r\n")

	repo := &importRepoStub{dropped: 1}
	svc := newImportServiceForTest(repo)
	result, err := svc.ImportLegacy(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 2, result.StudentsImported)
	assert.Equal(t, 2, result.SchedulesImported)
	assert.Equal(t, 1, result.SchedulesDropped)
	assert.Equal(t, 0, result.RowsSkipped)

	require.Len(t, repo.seeds, 3)
	assert.Equal(t, "オリエンテーション", repo.seeds[1].Description)
	assert.Equal(t, "9999999", repo.seeds[2].StudentNumber)
}

func TestImportLegacyNoStudents(t *testing.T) {
	raw := strings.Join([]string{
		"=== students ===",
		strings.Join(rostercsv.LegacyStudentHeader, ","),
	}, "\n")

	svc := newImportServiceForTest(&importRepoStub{})
	_, err := svc.ImportLegacy(context.Background(), raw)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestImportDeleteAll(t *testing.T) {
	repo := &importRepoStub{}
	svc := newImportServiceForTest(repo)
	require.NoError(t, svc.DeleteAll(context.Background()))
	assert.True(t, repo.deleted)
}

func TestImportUnknownSymbolEchoesDescription(t *testing.T) {
	raw := strings.Join([]string{
		strings.Join(rostercsv.UnifiedHeader, ","),
		"2301001,山田 太郎,ヤマダ タロウ,男,2003-04-01,22,県立中央病院,A,1,4/7,謎,",
	}, "\n")

	repo := &importRepoStub{}
	svc := newImportServiceForTest(repo)
	_, err := svc.ImportUnified(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, repo.seeds, 1)
	assert.Equal(t, "謎", repo.seeds[0].Description)
}
