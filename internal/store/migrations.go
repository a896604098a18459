package store

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS review_submissions (
    review_id TEXT PRIMARY KEY,
    patient_id TEXT,
    patient_name TEXT,
    doctor_id TEXT,
    category TEXT NOT NULL,
    rating INTEGER,
    input_method TEXT,
    review_text TEXT NOT NULL,
    overall_score REAL NOT NULL,
    label TEXT NOT NULL,
    detected_language TEXT,
    emotions TEXT,
    keywords TEXT,
    submitted_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS duty_shifts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    doctor_id TEXT NOT NULL,
    shift_date TEXT NOT NULL,
    hours REAL NOT NULL,
    patient_count INTEGER NOT NULL,
    emergency_cases INTEGER NOT NULL,
    recorded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS complaints (
    complaint_id TEXT PRIMARY KEY,
    doctor_id TEXT NOT NULL,
    complaint_type TEXT,
    description TEXT,
    severity TEXT NOT NULL,
    status TEXT NOT NULL,
    filed_date TEXT NOT NULL,
    resolved_date TEXT
);

CREATE TABLE IF NOT EXISTS food_reviews (
    review_id TEXT PRIMARY KEY,
    quality_score REAL NOT NULL,
    aspects TEXT,
    comments TEXT,
    submitted_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS room_reviews (
    review_id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL,
    cleanliness_score REAL NOT NULL,
    aspects TEXT,
    comments TEXT,
    submitted_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_submitted ON review_submissions(submitted_at);
CREATE INDEX IF NOT EXISTS idx_shifts_doctor ON duty_shifts(doctor_id);
CREATE INDEX IF NOT EXISTS idx_complaints_doctor ON complaints(doctor_id);
CREATE INDEX IF NOT EXISTS idx_rooms_room ON room_reviews(room_id);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
