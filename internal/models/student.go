package models

import "time"

// Student is one intern on the roster, keyed naturally by a 7-digit
// student number. Rows are replaced wholesale on every CSV import.
type Student struct {
	ID            int64     `db:"id" json:"id"`
	StudentNumber string    `db:"student_number" json:"student_number"`
	Name          string    `db:"name" json:"name"`
	Kana          string    `db:"kana" json:"kana"`
	Gender        string    `db:"gender" json:"gender"`
	BirthDate     string    `db:"birth_date" json:"birth_date"`
	Age           string    `db:"age" json:"age"`
	Hospital      string    `db:"hospital" json:"hospital"`
	Track         string    `db:"track" json:"track"`
	Group         string    `db:"group_name" json:"group_name"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// RosterFilter encapsulates allowed search parameters for the roster listing.
type RosterFilter struct {
	Name     string
	Hospital string
	Date     string
}

// StudentWithSchedules embeds the student's schedule entries ordered by date.
type StudentWithSchedules struct {
	Student
	Schedules []ScheduleEntry `json:"schedules"`
}
