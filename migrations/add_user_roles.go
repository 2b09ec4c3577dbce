package migrations

import (
	"database/sql"
	"fmt"
	"log"
)

// AddUserRoles adds the role column used by the admin-only endpoints
func AddUserRoles(db *sql.DB) error {
	// Check if the column already exists
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('users') WHERE name = 'role'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to inspect users table: %w", err)
	}

	if count > 0 {
		log.Println("role column already exists, skipping")
		return nil
	}

	_, err = db.Exec(`ALTER TABLE users ADD COLUMN role TEXT NOT NULL DEFAULT 'user'`)
	if err != nil {
		return fmt.Errorf("failed to add role column: %w", err)
	}

	return nil
}
