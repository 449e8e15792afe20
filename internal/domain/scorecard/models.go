package scorecard

import "time"

type Scorecard struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Department        string    `json:"department"`
	ResponsiblePerson string    `json:"responsiblePerson,omitempty"`
	KPIs              []KPI     `json:"kpis,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type KPI struct {
	ID          string  `json:"id"`
	ScorecardID string  `json:"scorecardId"`
	Name        string  `json:"name"`
	Target      float64 `json:"target"`
	Weight      float64 `json:"weight"`
	Unit        string  `json:"unit,omitempty"`
}

// Assignment links a scorecard to a user. It is the fallback path used only
// when a scorecard has no responsible person configured.
type Assignment struct {
	ID          string `json:"id"`
	ScorecardID string `json:"scorecardId"`
	UserID      string `json:"userId"`
	Department  string `json:"department"`
	IsActive    bool   `json:"isActive"`
}

// Result is the persisted record of one submission cycle. At most one row
// exists per (scorecard, period month, period year).
type Result struct {
	ID          string             `json:"id"`
	ScorecardID string             `json:"scorecardId"`
	UserID      string             `json:"userId"`
	PeriodMonth int                `json:"periodMonth"`
	PeriodYear  int                `json:"periodYear"`
	KPIValues   map[string]float64 `json:"kpiValues"`
	Status      string             `json:"status"`
	SubmittedAt *time.Time         `json:"submittedAt,omitempty"`
	ApprovedAt  *time.Time         `json:"approvedAt,omitempty"`
	ApprovedBy  string             `json:"approvedBy,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// Task is a derived lifecycle item shown on the calendar. Tasks live for one
// render pass and are never persisted; their ids are deterministic so a
// caller can merge repeated generations.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Assigned    string    `json:"assigned"`
	Type        string    `json:"type"`
	PeriodMonth int       `json:"periodMonth"`
	PeriodYear  int       `json:"periodYear"`
}
