package database

import (
	"database/sql"
	"fmt"
	"log"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS incidents (
		id TEXT PRIMARY KEY,
		crime_type TEXT NOT NULL,
		latitude REAL,
		longitude REAL,
		date TEXT,
		time TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_incidents_crime_type ON incidents(crime_type)`,
	`CREATE INDEX IF NOT EXISTS idx_incidents_created_at ON incidents(created_at)`,
	`CREATE TABLE IF NOT EXISTS analysis_runs (
		id TEXT PRIMARY KEY,
		generated_at TIMESTAMP NOT NULL,
		total_incidents INTEGER NOT NULL,
		report_json TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_runs_generated_at ON analysis_runs(generated_at)`,
}

// Migrate applies the schema migrations in order
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	log.Printf("Database migrations applied (%d statements)", len(migrations))
	return nil
}
