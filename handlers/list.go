package handlers

import (
	"net/http"

	"casetrack/backend/filter"
	"casetrack/backend/models"
)

// listResponse is the envelope of every list view: the surviving records
// plus one message per filter condition that could not be honored. A broken
// filter never breaks the screen; it only filters less than requested.
type listResponse struct {
	Items        []models.Record `json:"items"`
	FilterErrors []string        `json:"filterErrors,omitempty"`
}

// applyRequestFilters decodes the optional filters query parameter and
// applies it to the records. An absent parameter means no filter.
func applyRequestFilters(r *http.Request, reg *filter.FieldRegistry, records []models.Record) ([]models.Record, []string) {
	encoded := r.URL.Query().Get("filters")
	if encoded == "" {
		return records, nil
	}

	group, problems := filter.DecodeFiltersFromURL(encoded, reg)
	if group == nil {
		// not an envelope at all: treat as no filter
		return records, problems
	}
	return filter.ApplyFilters(records, group.Items, group.Logic), problems
}
