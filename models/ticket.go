package models

import "time"

type Ticket struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`   // Open, In Progress, Closed
	Priority  string    `json:"priority"` // High, Medium, Low
	Points    float64   `json:"points"`
	Assignee  string    `json:"assignee,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Story struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	Status    string    `json:"status"` // Draft, Ready, In Progress, Done
	Points    float64   `json:"points"`
	Owner     string    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TestCase struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	Status    string    `json:"status"` // Pass, Fail, Blocked, Untested
	Suite     string    `json:"suite"`
	Automated bool      `json:"automated"`
	LastRun   time.Time `json:"lastRun,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Record projects a ticket into the field map the filter engine evaluates.
// Keys match the JSON field names the frontend filters on.
func (t Ticket) Record() Record {
	rec := Record{
		"id":        t.ID,
		"key":       t.Key,
		"title":     t.Title,
		"status":    t.Status,
		"priority":  t.Priority,
		"points":    t.Points,
		"createdAt": t.CreatedAt,
		"updatedAt": t.UpdatedAt,
	}
	if t.Assignee != "" {
		rec["assignee"] = t.Assignee
	}
	return rec
}

// Record projects a story into the field map the filter engine evaluates.
func (s Story) Record() Record {
	rec := Record{
		"id":        s.ID,
		"key":       s.Key,
		"title":     s.Title,
		"status":    s.Status,
		"points":    s.Points,
		"createdAt": s.CreatedAt,
		"updatedAt": s.UpdatedAt,
	}
	if s.Owner != "" {
		rec["owner"] = s.Owner
	}
	return rec
}

// Record projects a test case into the field map the filter engine evaluates.
func (tc TestCase) Record() Record {
	rec := Record{
		"id":        tc.ID,
		"key":       tc.Key,
		"title":     tc.Title,
		"status":    tc.Status,
		"suite":     tc.Suite,
		"automated": tc.Automated,
		"createdAt": tc.CreatedAt,
	}
	if !tc.LastRun.IsZero() {
		rec["lastRun"] = tc.LastRun
	}
	return rec
}
