package database

import (
	"database/sql"
	"fmt"
)

// Migrate creates the tables the pipeline persists into. Idempotent, runs
// at startup.
func Migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_profiles (
		id SERIAL PRIMARY KEY,
		user_id INTEGER UNIQUE NOT NULL,
		full_name VARCHAR(255),
		email VARCHAR(255),
		phone VARCHAR(50),
		professional_summary TEXT,
		experience TEXT,
		career_goals TEXT,
		biggest_achievement TEXT,
		work_style TEXT,
		skills TEXT,
		certifications TEXT,
		languages TEXT,
		portfolio_links TEXT,
		needs_sponsorship BOOLEAN DEFAULT FALSE,
		willing_to_relocate BOOLEAN DEFAULT FALSE,
		available_start_date VARCHAR(20),
		resume_file_path TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS application_attempts (
		id SERIAL PRIMARY KEY,
		attempt_id VARCHAR(64) UNIQUE NOT NULL,
		user_id INTEGER NOT NULL,
		job_url TEXT NOT NULL,
		ats_variant VARCHAR(32),
		state VARCHAR(64),
		resume_uploaded BOOLEAN DEFAULT FALSE,
		identity_fields_filled BOOLEAN DEFAULT FALSE,
		total_questions INTEGER DEFAULT 0,
		questions_filled INTEGER DEFAULT 0,
		failed_labels TEXT[],
		submitted BOOLEAN DEFAULT FALSE,
		screenshot_key TEXT,
		started_at TIMESTAMP,
		finished_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_application_attempts_user
		ON application_attempts(user_id, started_at DESC);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run schema migration: %w", err)
	}
	return nil
}
