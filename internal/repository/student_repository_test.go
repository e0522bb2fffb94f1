package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rescue-academy/internship-roster-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentColumns() []string {
	return []string{"id", "student_number", "name", "kana", "gender", "birth_date", "age", "hospital", "track", "group_name", "created_at", "updated_at"}
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows(studentColumns()).
		AddRow(int64(1), "2420001", "山田 太郎", "やまだ たろう", "男", "2005/4/1", "20", "堺市立総合医療センター", "昼間部", "A", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, student_number, .* FROM students ORDER BY id").WillReturnRows(rows)

	students, err := repo.List(context.Background(), models.RosterFilter{})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "2420001", students[0].StudentNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListFiltersByNameAndHospital(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("(name ILIKE $1 OR kana ILIKE $1) AND hospital ILIKE $2")).
		WithArgs("%山田%", "%堺市%").
		WillReturnRows(sqlmock.NewRows(studentColumns()))

	_, err := repo.List(context.Background(), models.RosterFilter{Name: "山田", Hospital: "堺市"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListForExportOrdersByNumber(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows(studentColumns()).
		AddRow(int64(1), "2420001", "a", "a", "", "", "", "h", "", "", time.Now(), time.Now()).
		AddRow(int64(2), "2420002", "b", "b", "", "", "", "h", "", "", time.Now(), time.Now())
	mock.ExpectQuery("FROM students ORDER BY student_number").WillReturnRows(rows)

	students, err := repo.ListForExport(context.Background())
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCount(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
