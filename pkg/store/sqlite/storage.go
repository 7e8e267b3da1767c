package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const TasksSchema = `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		assigned_to TEXT,
		status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'in_progress', 'overdue', 'done')),
		priority TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high')),
		created_by TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
`

const TimeEntriesSchema = `
	CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TIMESTAMP NOT NULL,
		clock_in TIMESTAMP NOT NULL,
		clock_out TIMESTAMP NULL,
		total_hours TEXT NULL,
		notes TEXT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_time_entries_user_date ON time_entries(user_id, date);
`

const ClientProjectsSchema = `
	CREATE TABLE IF NOT EXISTS client_projects (
		id TEXT PRIMARY KEY,
		project_name TEXT NOT NULL,
		client_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'planning' CHECK(status IN ('planning', 'in_progress', 'review', 'completed')),
		due_date TIMESTAMP NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
`

const IdeasSchema = `
	CREATE TABLE IF NOT EXISTS ideas (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'submitted',
		submitted_by TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
`

var bootQueries = []string{
	TasksSchema,
	TimeEntriesSchema,
	ClientProjectsSchema,
	IdeasSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the database and creates missing tables. An in-memory database
// lives on a single connection, so the pool is capped at one. Timestamps are
// written in the sqlite text format so range predicates compare correctly.
func NewDB(settings Settings) (*sql.DB, error) {
	dsn := settings.DbPath
	if !strings.Contains(dsn, "_time_format") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_time_format=sqlite"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, query := range bootQueries {
		if _, err := db.ExecContext(context.Background(), query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("boot schema: %w", err)
		}
	}

	return db, nil
}
