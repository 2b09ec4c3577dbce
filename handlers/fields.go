package handlers

import (
	"encoding/json"
	"net/http"

	"casetrack/backend/database"
	"casetrack/backend/filter"
	"casetrack/backend/models"
)

// TicketFields is the field registry of the tickets view. Kinds are static;
// open-ended enumerations are refreshed from the data for autocomplete.
func TicketFields() *filter.FieldRegistry {
	reg := filter.NewFieldRegistry(
		filter.Field{Name: "key", Kind: models.ValueKindString},
		filter.Field{Name: "title", Kind: models.ValueKindString},
		filter.Field{Name: "status", Kind: models.ValueKindEnum, Values: []string{"Open", "In Progress", "Closed"}},
		filter.Field{Name: "priority", Kind: models.ValueKindEnum, Values: []string{"High", "Medium", "Low"}},
		filter.Field{Name: "points", Kind: models.ValueKindNumber},
		filter.Field{Name: "assignee", Kind: models.ValueKindString},
		filter.Field{Name: "createdAt", Kind: models.ValueKindDate},
		filter.Field{Name: "updatedAt", Kind: models.ValueKindDate},
	)
	if values := distinctValues("tickets", "assignee"); len(values) > 0 {
		reg.SetValues("assignee", values)
	}
	return reg
}

// StoryFields is the field registry of the stories view.
func StoryFields() *filter.FieldRegistry {
	reg := filter.NewFieldRegistry(
		filter.Field{Name: "key", Kind: models.ValueKindString},
		filter.Field{Name: "title", Kind: models.ValueKindString},
		filter.Field{Name: "status", Kind: models.ValueKindEnum, Values: []string{"Draft", "Ready", "In Progress", "Done"}},
		filter.Field{Name: "points", Kind: models.ValueKindNumber},
		filter.Field{Name: "owner", Kind: models.ValueKindString},
		filter.Field{Name: "createdAt", Kind: models.ValueKindDate},
		filter.Field{Name: "updatedAt", Kind: models.ValueKindDate},
	)
	if values := distinctValues("stories", "owner"); len(values) > 0 {
		reg.SetValues("owner", values)
	}
	return reg
}

// TestCaseFields is the field registry of the test cases view.
func TestCaseFields() *filter.FieldRegistry {
	reg := filter.NewFieldRegistry(
		filter.Field{Name: "key", Kind: models.ValueKindString},
		filter.Field{Name: "title", Kind: models.ValueKindString},
		filter.Field{Name: "status", Kind: models.ValueKindEnum, Values: []string{"Pass", "Fail", "Blocked", "Untested"}},
		filter.Field{Name: "suite", Kind: models.ValueKindEnum},
		filter.Field{Name: "automated", Kind: models.ValueKindEnum, Values: []string{"true", "false"}},
		filter.Field{Name: "lastRun", Kind: models.ValueKindDate},
		filter.Field{Name: "createdAt", Kind: models.ValueKindDate},
	)
	if values := distinctValues("test_cases", "suite"); len(values) > 0 {
		reg.SetValues("suite", values)
	}
	return reg
}

// GetFields returns the filterable fields of a list view, for the filter
// editor's autocomplete
func GetFields(w http.ResponseWriter, r *http.Request) {
	resourceType := r.URL.Query().Get("resourceType")
	if resourceType == "" {
		http.Error(w, "resourceType query parameter is required", http.StatusBadRequest)
		return
	}

	var reg *filter.FieldRegistry
	switch resourceType {
	case models.ResourceTickets:
		reg = TicketFields()
	case models.ResourceStories:
		reg = StoryFields()
	case models.ResourceTestCases:
		reg = TestCaseFields()
	default:
		http.Error(w, "unknown resourceType: "+resourceType, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reg.Fields())
}

// distinctValues lists the distinct non-empty values of a column, for
// autocomplete. Best effort: on error the static registry values stand.
func distinctValues(table, column string) []string {
	rows, err := database.DB.Query(
		"SELECT DISTINCT " + column + " FROM " + table +
			" WHERE " + column + " IS NOT NULL AND " + column + " != '' ORDER BY " + column)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil
		}
		values = append(values, value)
	}
	return values
}
