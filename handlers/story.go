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

func GetStories(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(`
		SELECT id, key, title, status, points, owner, created_at, updated_at
		FROM stories
		ORDER BY key
	`)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var s models.Story
		var owner sql.NullString
		err := rows.Scan(&s.ID, &s.Key, &s.Title, &s.Status, &s.Points, &owner, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if owner.Valid {
			s.Owner = owner.String
		}
		records = append(records, s.Record())
	}

	filtered, problems := applyRequestFilters(r, StoryFields(), records)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listResponse{Items: filtered, FilterErrors: problems})
}

func AddStory(w http.ResponseWriter, r *http.Request) {
	var s models.Story
	err := json.NewDecoder(r.Body).Decode(&s)
	if err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if s.Key == "" || s.Title == "" {
		http.Error(w, "key and title are required", http.StatusBadRequest)
		return
	}
	if s.Status == "" {
		s.Status = "Draft"
	}

	now := time.Now()
	if s.ID == "" {
		s.ID = fmt.Sprintf("story-%d", now.UnixNano())
	}
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err = database.DB.Exec(`
		INSERT INTO stories (id, key, title, status, points, owner, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Key, s.Title, s.Status, s.Points, s.Owner, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		http.Error(w, "Failed to create story: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}
