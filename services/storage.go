package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"casetrack/backend/database"
	"casetrack/backend/filter"
	"casetrack/backend/models"
)

// filterStateKey is the client_state key of the last-used filter slot for a
// view. It embeds the format version so a grammar change orphans old slots
// instead of misreading them.
func filterStateKey(view string) string {
	return fmt.Sprintf("lastFilter.v%d.%s", filter.FormatVersion, view)
}

// SaveFiltersToStorage persists the last-used filter group for a view. One
// slot per (user, view); last write wins. Failures are logged and swallowed:
// filters are a convenience, and a full disk must never break the action
// that triggered the save.
func SaveFiltersToStorage(userID, view string, group models.FilterGroup) {
	env := models.StoredFilterEnvelope{
		FormatVersion: filter.FormatVersion,
		Group:         group,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		log.Printf("Warning: failed to serialize filter state for view %s: %v", view, err)
		return
	}

	_, err = database.DB.Exec(`
		INSERT INTO client_state (user_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, userID, filterStateKey(view), string(payload))
	if err != nil {
		log.Printf("Warning: failed to save filter state for view %s: %v", view, err)
	}
}

// LoadFiltersFromStorage returns the last-used filter group for a view, or
// nil when there is none. A missing slot, an unreadable payload, and a
// format version mismatch all look the same to the caller: no prior filter.
func LoadFiltersFromStorage(userID, view string) *models.FilterGroup {
	var value string
	err := database.DB.QueryRow(`
		SELECT value FROM client_state WHERE user_id = ? AND key = ?
	`, userID, filterStateKey(view)).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("Warning: failed to load filter state for view %s: %v", view, err)
		}
		return nil
	}

	var env models.StoredFilterEnvelope
	if err := json.Unmarshal([]byte(value), &env); err != nil {
		log.Printf("Warning: discarding unreadable filter state for view %s: %v", view, err)
		return nil
	}
	if env.FormatVersion != filter.FormatVersion {
		return nil
	}

	return &env.Group
}
