package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"casetrack/backend/database"
	"casetrack/backend/filter"
)

func TestGetFieldsForTickets(t *testing.T) {
	setupHandlerTestDB(t)
	defer database.DB.Close()
	seedScenarioTickets(t)

	req := httptest.NewRequest("GET", "/fields?resourceType=tickets", nil)
	w := httptest.NewRecorder()

	GetFields(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var fields []filter.Field
	if err := json.NewDecoder(w.Body).Decode(&fields); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(fields) == 0 || fields[0].Name != "key" {
		t.Errorf("Expected declaration-ordered fields starting with key, got %+v", fields)
	}

	byName := make(map[string]filter.Field)
	for _, f := range fields {
		byName[f.Name] = f
	}
	if status, ok := byName["status"]; !ok || len(status.Values) == 0 {
		t.Errorf("Expected status field with enum values, got %+v", byName["status"])
	}
}

func TestGetFieldsRejectsUnknownResourceType(t *testing.T) {
	setupHandlerTestDB(t)
	defer database.DB.Close()

	for _, target := range []string{"/fields", "/fields?resourceType=widgets"} {
		req := httptest.NewRequest("GET", target, nil)
		w := httptest.NewRecorder()

		GetFields(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status code %d, got %d", target, http.StatusBadRequest, w.Code)
		}
	}
}
