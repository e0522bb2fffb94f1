package models

// Stats summarises the dataset for the dashboard.
type Stats struct {
	StudentCount  int               `json:"student_count"`
	HospitalCount int               `json:"hospital_count"`
	DateCount     int               `json:"date_count"`
	VisitCount    int               `json:"visit_count"`
	Symbols       map[string]string `json:"symbols"`
}
