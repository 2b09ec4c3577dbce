package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB() error {
	var dbPath string
	if os.Getenv("FLY_APP_NAME") != "" {
		// We're running on Fly.io, use the mounted volume
		dbPath = filepath.Join("/data", "casetrack.db")
	} else if os.Getenv("TEST_DB") == "1" {
		// We're running tests, use in-memory database
		dbPath = ":memory:"
	} else {
		// Local development
		dbPath = "./casetrack.db"
	}

	var err error
	// Add connection parameters to better handle concurrency
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	// Execute PRAGMA statements for better concurrency handling
	_, err = DB.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return err
	}

	_, err = DB.Exec("PRAGMA busy_timeout=5000;")
	if err != nil {
		return err
	}

	// Test the connection
	err = DB.Ping()
	if err != nil {
		return err
	}

	return CreateTables(DB)
}

// CreateTables creates the base schema. Safe to call repeatedly.
func CreateTables(db *sql.DB) error {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL
	);
	`
	_, err := db.Exec(createUsersTable)
	if err != nil {
		return err
	}

	createTicketsTable := `
	CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		key TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		status TEXT NOT NULL,
		priority TEXT NOT NULL,
		points REAL NOT NULL DEFAULT 0,
		assignee TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err = db.Exec(createTicketsTable)
	if err != nil {
		return err
	}

	createStoriesTable := `
	CREATE TABLE IF NOT EXISTS stories (
		id TEXT PRIMARY KEY,
		key TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		status TEXT NOT NULL,
		points REAL NOT NULL DEFAULT 0,
		owner TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err = db.Exec(createStoriesTable)
	if err != nil {
		return err
	}

	createTestCasesTable := `
	CREATE TABLE IF NOT EXISTS test_cases (
		id TEXT PRIMARY KEY,
		key TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		status TEXT NOT NULL,
		suite TEXT NOT NULL,
		automated BOOLEAN NOT NULL DEFAULT 0,
		last_run DATETIME,
		created_at DATETIME NOT NULL
	);
	`
	_, err = db.Exec(createTestCasesTable)
	if err != nil {
		return err
	}

	return nil
}
