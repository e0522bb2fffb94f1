package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rescue-academy/internship-roster-api/internal/models"
)

func attendanceColumns() []string {
	return []string{"id", "student_number", "attendance_date", "period", "status", "created_at", "updated_at"}
}

func TestAttendanceRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("INSERT INTO attendance_records").
		WithArgs(sqlmock.AnyArg(), "2420001", "2026-02-10", 1, "出席", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	record := &models.AttendanceRecord{
		StudentNumber: "2420001",
		Date:          "2026-02-10",
		Period:        1,
		Status:        models.AttendanceStatusPresent,
	}
	require.NoError(t, repo.Upsert(context.Background(), record))
	assert.NotEmpty(t, record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := sqlmock.NewRows(attendanceColumns()).
		AddRow("id-1", "2420001", "2026-02-10", 1, "遅刻", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("a.attendance_date = $1 AND a.period = $2 AND a.student_number = $3")).
		WithArgs("2026-02-10", 1, "2420001").
		WillReturnRows(rows)

	period := 1
	records, err := repo.List(context.Background(), models.AttendanceFilter{
		Date:          "2026-02-10",
		Period:        &period,
		StudentNumber: "2420001",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendanceStatusLate, records[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListWithTrackJoinsRoster(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN students s ON s.student_number = a.student_number WHERE s.track = $1")).
		WithArgs("昼間部").
		WillReturnRows(sqlmock.NewRows(attendanceColumns()))

	_, err := repo.List(context.Background(), models.AttendanceFilter{Track: "昼間部"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("DELETE FROM attendance_records").
		WithArgs("2420001", "2026-02-10", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "2420001", "2026-02-10", 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
