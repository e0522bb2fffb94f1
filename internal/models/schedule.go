package models

import "time"

// ScheduleEntry is one dated, symbol-coded entry belonging to a student.
// Entries are bulk-replaced on import and individually editable afterwards.
type ScheduleEntry struct {
	ID          int64     `db:"id" json:"id"`
	StudentID   int64     `db:"student_id" json:"student_id"`
	Date        string    `db:"schedule_date" json:"schedule_date"`
	Symbol      string    `db:"symbol" json:"symbol"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleExportRow joins a schedule entry with its owner's student number
// for the legacy export, which references students by natural key.
type ScheduleExportRow struct {
	ScheduleEntry
	StudentNumber string `db:"student_number" json:"student_number"`
}
