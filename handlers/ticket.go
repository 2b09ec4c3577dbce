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

func GetTickets(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(`
		SELECT id, key, title, status, priority, points, assignee, created_at, updated_at
		FROM tickets
		ORDER BY key
	`)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var t models.Ticket
		var assignee sql.NullString
		err := rows.Scan(&t.ID, &t.Key, &t.Title, &t.Status, &t.Priority, &t.Points, &assignee, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if assignee.Valid {
			t.Assignee = assignee.String
		}
		records = append(records, t.Record())
	}

	filtered, problems := applyRequestFilters(r, TicketFields(), records)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listResponse{Items: filtered, FilterErrors: problems})
}

func AddTicket(w http.ResponseWriter, r *http.Request) {
	var t models.Ticket
	err := json.NewDecoder(r.Body).Decode(&t)
	if err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if t.Key == "" || t.Title == "" {
		http.Error(w, "key and title are required", http.StatusBadRequest)
		return
	}
	if t.Status == "" {
		t.Status = "Open"
	}
	if t.Priority == "" {
		t.Priority = "Medium"
	}

	now := time.Now()
	if t.ID == "" {
		t.ID = fmt.Sprintf("ticket-%d", now.UnixNano())
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err = database.DB.Exec(`
		INSERT INTO tickets (id, key, title, status, priority, points, assignee, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Key, t.Title, t.Status, t.Priority, t.Points, t.Assignee, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		http.Error(w, "Failed to create ticket: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(t)
}
