package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"casetrack/backend/database"
	"casetrack/backend/middleware"
	"casetrack/backend/migrations"

	_ "github.com/mattn/go-sqlite3"
)

// setupHandlerTestDB points database.DB at a fresh in-memory database with
// the full schema applied.
func setupHandlerTestDB(t *testing.T) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	database.DB = db

	if err := database.CreateTables(db); err != nil {
		t.Fatal(err)
	}
	if err := migrations.AddUserRoles(db); err != nil {
		t.Fatal(err)
	}
	if err := migrations.AddClientState(db); err != nil {
		t.Fatal(err)
	}
}

// asUser attaches an authenticated user ID to the request context, the way
// the auth middleware would.
func asUser(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
	return r.WithContext(ctx)
}

// seedScenarioTickets inserts the three-ticket fixture used by the filter
// tests: A Open/High, B Closed/Low, C Open/Low.
func seedScenarioTickets(t *testing.T) {
	t.Helper()

	now := time.Now()
	tickets := []struct {
		key      string
		status   string
		priority string
	}{
		{"A", "Open", "High"},
		{"B", "Closed", "Low"},
		{"C", "Open", "Low"},
	}
	for i, tk := range tickets {
		_, err := database.DB.Exec(`
			INSERT INTO tickets (id, key, title, status, priority, points, assignee, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, tk.key, tk.key, "Ticket "+tk.key, tk.status, tk.priority, float64(i), "", now, now)
		if err != nil {
			t.Fatal(err)
		}
	}
}
