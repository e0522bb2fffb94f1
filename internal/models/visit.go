package models

import "time"

// VisitRecord notes that a staff member confirmed a hospital site on a
// given date, independent of which students were present. Upsert-keyed by
// (hospital, visit_date); a repeat write updates comment and visitor.
type VisitRecord struct {
	ID        string    `db:"id" json:"id"`
	Hospital  string    `db:"hospital" json:"hospital"`
	Date      string    `db:"visit_date" json:"visit_date"`
	Comment   string    `db:"comment" json:"comment"`
	VisitedBy string    `db:"visited_by" json:"visited_by"`
	VisitedAt time.Time `db:"visited_at" json:"visited_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// VisitFilter scopes visit listings.
type VisitFilter struct {
	Date string
}
