package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	"github.com/rescue-academy/internship-roster-api/pkg/export"
)

type exportStudentStub struct {
	students []models.Student
}

func (s exportStudentStub) ListForExport(ctx context.Context) ([]models.Student, error) {
	return s.students, nil
}

type exportScheduleStub struct {
	rows []models.ScheduleExportRow
}

func (s exportScheduleStub) ListForExport(ctx context.Context) ([]models.ScheduleExportRow, error) {
	return s.rows, nil
}

func exportRow(number, date, symbol, description string) models.ScheduleExportRow {
	return models.ScheduleExportRow{
		ScheduleEntry: models.ScheduleEntry{Date: date, Symbol: symbol, Description: description},
		StudentNumber: number,
	}
}

func newExportServiceForTest() *ExportService {
	students := exportStudentStub{students: []models.Student{
		{StudentNumber: "2301001", Name: "山田 太郎", Kana: "ヤマダ タロウ", Gender: "男", BirthDate: "2003-04-01", Age: "22", Hospital: "県立中央病院", Track: "A", Group: "1"},
		{StudentNumber: "2301002", Name: "佐藤 花子", Kana: "サトウ ハナコ", Gender: "女", BirthDate: "2003-05-02", Age: "22", Hospital: "市民病院", Track: "B", Group: "2"},
	}}
	schedules := exportScheduleStub{rows: []models.ScheduleExportRow{
		exportRow("2301001", "2026-04-07", "〇", "病院実習当日"),
		exportRow("2301001", "2026-04-08", "学", "学校登校日"),
	}}
	return NewExportService(students, schedules, export.NewCSVExporter(), zap.NewNop())
}

func TestExportUnified(t *testing.T) {
	svc := newExportServiceForTest()
	payload, err := svc.ExportUnified(context.Background())
	require.NoError(t, err)

	text := string(payload)
	require.True(t, strings.HasPrefix(text, export.UTF8BOM))

	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(text, export.UTF8BOM), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "student_number,name,kana,gender,birth_date,age,hospital,track,group,date,symbol,description", lines[0])
	assert.Contains(t, lines[1], "2026-04-07")
	assert.Contains(t, lines[2], "2026-04-08")
	// The student without schedules still appears, with blank schedule columns.
	assert.True(t, strings.HasSuffix(lines[3], ",,,"))
	assert.Contains(t, lines[3], "2301002")
}

func TestExportLegacy(t *testing.T) {
	svc := newExportServiceForTest()
	payload, err := svc.ExportLegacy(context.Background())
	require.NoError(t, err)

	text := string(payload)
	require.True(t, strings.HasPrefix(text, export.UTF8BOM))
	assert.Contains(t, text, legacyStudentSection)
	assert.Contains(t, text, legacyScheduleSection)

	sections := strings.SplitN(text, legacyScheduleSection, 2)
	require.Len(t, sections, 2)
	assert.Contains(t, sections[0], "2301002")
	assert.Contains(t, sections[1], "2301001,2026-04-07,〇,病院実習当日")
	assert.NotContains(t, sections[1], "2301002")
}

func TestExportTemplate(t *testing.T) {
	svc := newExportServiceForTest()
	payload, err := svc.ExportTemplate()
	require.NoError(t, err)

	text := strings.TrimPrefix(string(payload), export.UTF8BOM)
	assert.Equal(t, "student_number,name,kana,gender,birth_date,age,hospital,track,group,date,symbol,description\n", text)
}

// An exported unified CSV must survive a re-import without loss.
func TestExportImportRoundTrip(t *testing.T) {
	exportSvc := newExportServiceForTest()
	payload, err := exportSvc.ExportUnified(context.Background())
	require.NoError(t, err)

	repo := &importRepoStub{}
	importSvc := newImportServiceForTest(repo)
	result, err := importSvc.ImportUnified(context.Background(), string(payload))
	require.NoError(t, err)

	assert.Equal(t, 2, result.StudentsImported)
	assert.Equal(t, 2, result.SchedulesImported)
	assert.Equal(t, 0, result.RowsSkipped)
	require.Len(t, repo.students, 2)
	assert.Equal(t, "県立中央病院", repo.students[0].Hospital)
	require.Len(t, repo.seeds, 2)
	assert.Equal(t, "2026-04-07", repo.seeds[0].Date)
}
