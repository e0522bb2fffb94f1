// Package rostercsv parses the loosely-structured spreadsheet exports that
// feed the roster: positional comma-separated columns, mixed date formats
// and symbol-coded schedule entries. Parsing is pure; malformed rows yield
// nil records and are counted by the caller, never errors.
package rostercsv

import (
	"regexp"
	"strings"
)

// Unified CSV column layout, shared by import and export.
var UnifiedHeader = []string{
	"student_number", "name", "kana", "gender", "birth_date", "age",
	"hospital", "track", "group", "date", "symbol", "description",
}

// Legacy section column layouts.
var (
	LegacyStudentHeader  = []string{"student_number", "name", "kana", "gender", "birth_date", "age", "hospital", "track", "group"}
	LegacyScheduleHeader = []string{"student_number", "date", "symbol", "description"}
)

var studentNumberPattern = regexp.MustCompile(`^\d{7}$`)

// StudentRecord is a parsed student row. All fields are free text except
// StudentNumber, which is guaranteed to match the 7-digit natural key.
type StudentRecord struct {
	StudentNumber string
	Name          string
	Kana          string
	Gender        string
	BirthDate     string
	Age           string
	Hospital      string
	Track         string
	Group         string
}

// ScheduleRecord is a parsed schedule row, still referencing its student by
// natural key. Date is raw as found in the source; the importer normalizes.
type ScheduleRecord struct {
	StudentNumber string
	Date          string
	Symbol        string
	Description   string
}

// ValidStudentNumber reports whether s is a 7-digit student number.
func ValidStudentNumber(s string) bool {
	return studentNumberPattern.MatchString(s)
}

// SplitFields splits one delimited line into trimmed, unquoted fields.
// Splitting is naive: quotes are stripped only when they wrap a whole
// field, so a comma inside a quoted field still splits it. Stored values
// stay comma-free because every write path runs through this parser or
// the symbol catalog.
func SplitFields(line string) []string {
	cols := strings.Split(line, ",")
	fields := make([]string, len(cols))
	for i, col := range cols {
		field := strings.TrimSpace(col)
		if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
			field = strings.TrimSpace(field[1 : len(field)-1])
		}
		fields[i] = field
	}
	return fields
}

// ParseStudentRow parses one legacy student-section row. Rows with fewer
// than 9 fields or a malformed student number are dropped (nil).
func ParseStudentRow(line string) *StudentRecord {
	fields := SplitFields(line)
	if len(fields) < 9 {
		return nil
	}
	if !ValidStudentNumber(fields[0]) {
		return nil
	}
	return &StudentRecord{
		StudentNumber: fields[0],
		Name:          fields[1],
		Kana:          fields[2],
		Gender:        fields[3],
		BirthDate:     fields[4],
		Age:           fields[5],
		Hospital:      fields[6],
		Track:         fields[7],
		Group:         fields[8],
	}
}

// ParseScheduleRow parses one legacy schedule-section row
// (student_number, date, symbol[, description]). Rows missing a date or
// symbol are dropped (nil).
func ParseScheduleRow(line string) *ScheduleRecord {
	fields := SplitFields(line)
	if len(fields) < 3 {
		return nil
	}
	if !ValidStudentNumber(fields[0]) {
		return nil
	}
	if fields[1] == "" || fields[2] == "" {
		return nil
	}
	record := &ScheduleRecord{
		StudentNumber: fields[0],
		Date:          fields[1],
		Symbol:        fields[2],
	}
	if len(fields) >= 4 {
		record.Description = fields[3]
	}
	return record
}

// ParseUnifiedRow parses one 12-column unified row into a student record
// and zero-or-one schedule record. The schedule is present only when both
// date and symbol are non-empty. Short or malformed rows yield nil, nil.
func ParseUnifiedRow(line string) (*StudentRecord, *ScheduleRecord) {
	fields := SplitFields(line)
	if len(fields) < 10 {
		return nil, nil
	}
	if !ValidStudentNumber(fields[0]) {
		return nil, nil
	}

	student := &StudentRecord{
		StudentNumber: fields[0],
		Name:          fields[1],
		Kana:          fields[2],
		Gender:        fields[3],
		BirthDate:     fields[4],
		Age:           fields[5],
		Hospital:      fields[6],
		Track:         fields[7],
		Group:         fields[8],
	}

	var schedule *ScheduleRecord
	if fields[9] != "" && len(fields) >= 11 && fields[10] != "" {
		schedule = &ScheduleRecord{
			StudentNumber: fields[0],
			Date:          fields[9],
			Symbol:        fields[10],
		}
		if len(fields) >= 12 {
			schedule.Description = fields[11]
		}
	}
	return student, schedule
}
