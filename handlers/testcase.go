package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"casetrack/backend/database"
	"casetrack/backend/models"
)

func GetTestCases(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(`
		SELECT id, key, title, status, suite, automated, last_run, created_at
		FROM test_cases
		ORDER BY key
	`)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var tc models.TestCase
		var lastRun sql.NullTime
		err := rows.Scan(&tc.ID, &tc.Key, &tc.Title, &tc.Status, &tc.Suite, &tc.Automated, &lastRun, &tc.CreatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if lastRun.Valid {
			tc.LastRun = lastRun.Time
		}
		records = append(records, tc.Record())
	}

	filtered, problems := applyRequestFilters(r, TestCaseFields(), records)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listResponse{Items: filtered, FilterErrors: problems})
}

func AddTestCase(w http.ResponseWriter, r *http.Request) {
	var tc models.TestCase
	err := json.NewDecoder(r.Body).Decode(&tc)
	if err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if tc.Key == "" || tc.Title == "" {
		http.Error(w, "key and title are required", http.StatusBadRequest)
		return
	}
	if tc.Status == "" {
		tc.Status = "Untested"
	}

	now := time.Now()
	if tc.ID == "" {
		tc.ID = fmt.Sprintf("testcase-%d", now.UnixNano())
	}
	tc.CreatedAt = now

	var lastRun interface{}
	if !tc.LastRun.IsZero() {
		lastRun = tc.LastRun
	}

	_, err = database.DB.Exec(`
		INSERT INTO test_cases (id, key, title, status, suite, automated, last_run, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, tc.ID, tc.Key, tc.Title, tc.Status, tc.Suite, tc.Automated, lastRun, tc.CreatedAt)
	if err != nil {
		http.Error(w, "Failed to create test case: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tc)
}
