package db

import (
	"database/sql"
	"fmt"

	"lead-relay/config"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB() error {
	var err error
	connStr := config.GetDBConnString()

	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	err = DB.Ping()
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	// Create tables
	if err := createTables(); err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}

	return nil
}

func createTables() error {
	leadTable := `
	CREATE TABLE IF NOT EXISTS leads (
		id SERIAL PRIMARY KEY,
		unique_id TEXT NOT NULL,
		form_tag TEXT,
		name TEXT,
		email TEXT,
		phone TEXT,
		dial_code TEXT,
		city TEXT,
		location TEXT,
		message TEXT,
		page_url TEXT,
		utm_source TEXT,
		utm_campaign TEXT,
		utm_medium TEXT,
		utm_keyword TEXT,
		outcome TEXT,
		failure_reason TEXT,
		captured_date TEXT,
		captured_time TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	relayLogTable := `
	CREATE TABLE IF NOT EXISTS relay_log (
		id SERIAL PRIMARY KEY,
		lead_unique_id TEXT NOT NULL,
		backend TEXT NOT NULL,
		status TEXT NOT NULL,
		detail TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := DB.Exec(leadTable); err != nil {
		return fmt.Errorf("error creating leads table: %w", err)
	}

	if _, err := DB.Exec(relayLogTable); err != nil {
		return fmt.Errorf("error creating relay_log table: %w", err)
	}

	return nil
}
