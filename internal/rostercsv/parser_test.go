package rostercsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStudentRow(t *testing.T) {
	record := ParseStudentRow("2420001,山田 太郎,やまだ たろう,男,2005/4/1,20,堺市立総合医療センター,昼間部,A")
	require.NotNil(t, record)
	assert.Equal(t, "2420001", record.StudentNumber)
	assert.Equal(t, "山田 太郎", record.Name)
	assert.Equal(t, "堺市立総合医療センター", record.Hospital)
	assert.Equal(t, "昼間部", record.Track)
	assert.Equal(t, "A", record.Group)
}

func TestParseStudentRowRejectsShortNumber(t *testing.T) {
	assert.Nil(t, ParseStudentRow("123456,name,kana,男,2005/4/1,20,hospital,昼間部,A"))
}

func TestParseStudentRowRejectsShortRow(t *testing.T) {
	assert.Nil(t, ParseStudentRow("2420001,name,kana"))
}

func TestParseStudentRowStripsQuotes(t *testing.T) {
	record := ParseStudentRow(`"2420001","山田 太郎","やまだ たろう","男","2005/4/1","20","病院","昼間部","A"`)
	require.NotNil(t, record)
	assert.Equal(t, "山田 太郎", record.Name)
	assert.Equal(t, "病院", record.Hospital)
}

func TestParseScheduleRow(t *testing.T) {
	record := ParseScheduleRow("2420001,2026-01-22,学,学校登校日")
	require.NotNil(t, record)
	assert.Equal(t, "2420001", record.StudentNumber)
	assert.Equal(t, "2026-01-22", record.Date)
	assert.Equal(t, "学", record.Symbol)
	assert.Equal(t, "学校登校日", record.Description)
}

func TestParseScheduleRowWithoutDescription(t *testing.T) {
	record := ParseScheduleRow("2420001,2/10,〇")
	require.NotNil(t, record)
	assert.Empty(t, record.Description)
}

func TestParseScheduleRowDropsEmptyDateOrSymbol(t *testing.T) {
	assert.Nil(t, ParseScheduleRow("2420001,,学"))
	assert.Nil(t, ParseScheduleRow("2420001,2026-01-22,"))
	assert.Nil(t, ParseScheduleRow("2420001"))
}

func TestParseUnifiedRow(t *testing.T) {
	student, schedule := ParseUnifiedRow("2420001,山田 太郎,やまだ たろう,男,2005/4/1,20,病院,昼間部,A,2026-01-21,〇,病院実習当日")
	require.NotNil(t, student)
	require.NotNil(t, schedule)
	assert.Equal(t, "2420001", student.StudentNumber)
	assert.Equal(t, "2026-01-21", schedule.Date)
	assert.Equal(t, "〇", schedule.Symbol)
}

func TestParseUnifiedRowWithoutSchedule(t *testing.T) {
	student, schedule := ParseUnifiedRow("2420001,山田 太郎,やまだ たろう,男,2005/4/1,20,病院,昼間部,A,,,")
	require.NotNil(t, student)
	assert.Nil(t, schedule)
}

func TestParseUnifiedRowRejectsMalformed(t *testing.T) {
	student, schedule := ParseUnifiedRow("abc,name")
	assert.Nil(t, student)
	assert.Nil(t, schedule)

	student, schedule = ParseUnifiedRow("123456,n,k,g,b,a,h,t,g,2026-01-21,〇,desc")
	assert.Nil(t, student)
	assert.Nil(t, schedule)
}

func TestSplitFieldsSplitsInsideQuotes(t *testing.T) {
	fields := SplitFields(`2420001,"山田, 太郎",kana`)
	assert.Equal(t, []string{"2420001", `"山田`, `太郎"`, "kana"}, fields)
}

func TestValidStudentNumber(t *testing.T) {
	assert.True(t, ValidStudentNumber("2420001"))
	assert.False(t, ValidStudentNumber("123456"))
	assert.False(t, ValidStudentNumber("12345678"))
	assert.False(t, ValidStudentNumber("24a0001"))
}
