package migrations

import (
	"database/sql"
	"fmt"
)

// AddClientState creates the per-user key-value table backing the last-used
// filter slots and the filter preset list
func AddClientState(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS client_state (
			user_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, key)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create client_state table: %w", err)
	}

	return nil
}
