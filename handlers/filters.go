package handlers

import (
	"encoding/json"
	"net/http"

	"casetrack/backend/middleware"
	"casetrack/backend/models"
	"casetrack/backend/services"

	"github.com/gorilla/mux"
)

// GetLastFilter returns the last-used filter group for a view, or null when
// there is none (a fresh profile and a discarded stale payload look the same)
func GetLastFilter(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	view := r.URL.Query().Get("view")
	if view == "" {
		http.Error(w, "view query parameter is required", http.StatusBadRequest)
		return
	}

	group := services.LoadFiltersFromStorage(userID, view)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(group)
}

// SaveLastFilter persists the last-used filter group for a view. The write is
// fire-and-forget; a storage failure never blocks the UI flow that saved.
func SaveLastFilter(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	view := r.URL.Query().Get("view")
	if view == "" {
		http.Error(w, "view query parameter is required", http.StatusBadRequest)
		return
	}

	var group models.FilterGroup
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	services.SaveFiltersToStorage(userID, view, group)
	w.WriteHeader(http.StatusNoContent)
}

// GetFilterPresets returns all saved filter presets for the current user
func GetFilterPresets(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	presets, err := services.ListFilterPresets(userID)
	if err != nil {
		http.Error(w, "Failed to get filter presets: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if presets == nil {
		presets = []models.FilterPreset{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(presets)
}

// CreateFilterPreset saves the posted filter group as a named preset
func CreateFilterPreset(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var request struct {
		Name  string             `json:"name"`
		Group models.FilterGroup `json:"group"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	preset, err := services.CreateFilterPreset(userID, request.Name, request.Group)
	if err != nil {
		http.Error(w, "Failed to create filter preset: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(preset)
}

// GetFilterPreset returns one preset by ID
func GetFilterPreset(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	presetID := vars["id"]
	if presetID == "" {
		http.Error(w, "Preset ID is required", http.StatusBadRequest)
		return
	}

	preset, err := services.GetFilterPreset(userID, presetID)
	if err != nil {
		http.Error(w, "Filter preset not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(preset)
}

// DeleteFilterPreset removes one preset by ID. Deleting an unknown ID is a
// no-op so the delete button is safely idempotent.
func DeleteFilterPreset(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	presetID := vars["id"]
	if presetID == "" {
		http.Error(w, "Preset ID is required", http.StatusBadRequest)
		return
	}

	if err := services.DeleteFilterPreset(userID, presetID); err != nil {
		http.Error(w, "Failed to delete filter preset: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
