package reports

import "time"

type ReportType struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Frequency  string    `json:"frequency"`
	Format     string    `json:"format"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Report struct {
	ID           string    `json:"id"`
	ReportTypeID string    `json:"reportTypeId"`
	Department   string    `json:"department"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	FileName     string    `json:"fileName,omitempty"`
	FilePath     string    `json:"-"`
	UploadedBy   string    `json:"uploadedBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

const (
	FrequencyDaily     = "Daily"
	FrequencyWeekly    = "Weekly"
	FrequencyMonthly   = "Monthly"
	FrequencyQuarterly = "Quarterly"
	FrequencyAnnually  = "Annually"

	StatusSubmitted = "Submitted"
	StatusPending   = "Pending"
	StatusLate      = "Late"
	StatusPlanned   = "Planned"
)

var Frequencies = []string{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually}
