package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent   AttendanceStatus = "出席"
	AttendanceStatusAbsent    AttendanceStatus = "欠席"
	AttendanceStatusLate      AttendanceStatus = "遅刻"
	AttendanceStatusLeftEarly AttendanceStatus = "早退"
	AttendanceStatusExcused   AttendanceStatus = "公欠"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate,
		AttendanceStatusLeftEarly, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}

// Label returns the ASCII label for the status. Renderers limited to
// latin core fonts print this instead of the Japanese vocabulary.
func (s AttendanceStatus) Label() string {
	switch s {
	case AttendanceStatusPresent:
		return "Present"
	case AttendanceStatusAbsent:
		return "Absent"
	case AttendanceStatusLate:
		return "Late"
	case AttendanceStatusLeftEarly:
		return "Left Early"
	case AttendanceStatusExcused:
		return "Excused"
	default:
		return string(s)
	}
}

// AttendanceRecord is a single attendance mark, upsert-keyed by
// (student_number, attendance_date, period). Last write wins.
//
// The student number is deliberately not a foreign key: a record may
// outlive the student row it referenced after a roster re-import.
type AttendanceRecord struct {
	ID            string           `db:"id" json:"id"`
	StudentNumber string           `db:"student_number" json:"student_number"`
	Date          string           `db:"attendance_date" json:"attendance_date"`
	Period        int              `db:"period" json:"period"`
	Status        AttendanceStatus `db:"status" json:"status"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceFilter defines query filters for attendance listings.
type AttendanceFilter struct {
	Date          string
	Period        *int
	StudentNumber string
	Track         string
}
