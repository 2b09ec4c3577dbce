package services

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"casetrack/backend/database"
	"casetrack/backend/filter"
	"casetrack/backend/models"
)

// presetsKey is the single list-shaped client_state entry holding a user's
// filter presets.
const presetsKey = "filterPresets"

// CreateFilterPreset saves the given group under a new named preset and
// returns it. The group's conditions are shape-checked; field existence is
// the caller's concern since presets outlive registries.
func CreateFilterPreset(userID, name string, group models.FilterGroup) (*models.FilterPreset, error) {
	if name == "" {
		return nil, fmt.Errorf("preset name is required")
	}
	for _, cond := range group.Items {
		if err := filter.ValidateCondition(cond, nil); err != nil {
			return nil, fmt.Errorf("invalid filter condition: %w", err)
		}
	}

	id, err := generateID()
	if err != nil {
		return nil, err
	}

	preset := models.FilterPreset{
		ID:        id,
		Name:      name,
		Group:     group,
		CreatedAt: time.Now(),
	}

	presets := loadPresets(userID)
	presets = append(presets, preset)
	if err := savePresets(userID, presets); err != nil {
		return nil, err
	}

	return &preset, nil
}

// ListFilterPresets returns all presets of a user in creation order.
func ListFilterPresets(userID string) ([]models.FilterPreset, error) {
	return loadPresets(userID), nil
}

// GetFilterPreset retrieves a preset by ID.
func GetFilterPreset(userID, id string) (*models.FilterPreset, error) {
	for _, preset := range loadPresets(userID) {
		if preset.ID == id {
			return &preset, nil
		}
	}
	return nil, fmt.Errorf("filter preset not found")
}

// DeleteFilterPreset removes a preset by ID. Deleting an unknown ID is a
// no-op, not an error.
func DeleteFilterPreset(userID, id string) error {
	presets := loadPresets(userID)

	kept := presets[:0]
	for _, preset := range presets {
		if preset.ID != id {
			kept = append(kept, preset)
		}
	}
	if len(kept) == len(presets) {
		return nil
	}

	return savePresets(userID, kept)
}

// loadPresets reads the preset list. A missing or unreadable entry is an
// empty list: presets are a convenience, not correctness-critical.
func loadPresets(userID string) []models.FilterPreset {
	var value string
	err := database.DB.QueryRow(`
		SELECT value FROM client_state WHERE user_id = ? AND key = ?
	`, userID, presetsKey).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("Warning: failed to load filter presets: %v", err)
		}
		return nil
	}

	var presets []models.FilterPreset
	if err := json.Unmarshal([]byte(value), &presets); err != nil {
		log.Printf("Warning: discarding unreadable filter presets: %v", err)
		return nil
	}
	return presets
}

func savePresets(userID string, presets []models.FilterPreset) error {
	if presets == nil {
		presets = []models.FilterPreset{}
	}
	payload, err := json.Marshal(presets)
	if err != nil {
		return fmt.Errorf("failed to serialize filter presets: %w", err)
	}

	_, err = database.DB.Exec(`
		INSERT INTO client_state (user_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, userID, presetsKey, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save filter presets: %w", err)
	}
	return nil
}

// Helper function to generate a random ID
func generateID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
