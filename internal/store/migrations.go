package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Athlete profile (singleton row)
		`CREATE TABLE IF NOT EXISTS profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			ftp_watts REAL,
			threshold_hr REAL,
			max_hr REAL,
			resting_hr REAL,
			weight_kg REAL,
			birth_date TEXT,
			starting_ctl REAL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Completed activities with measured training stress
		`CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			external_id TEXT NOT NULL,
			name TEXT NOT NULL,
			sport TEXT NOT NULL,
			start_date TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL,
			tss REAL NOT NULL,
			intensity_factor REAL NOT NULL,
			distance_meters REAL,
			avg_power REAL,
			avg_heartrate REAL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (source, external_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_start_date ON activities(start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_sport ON activities(sport)`,

		// Planned workouts awaiting estimation; structure is stored as the
		// step list JSON, routes as flat columns
		`CREATE TABLE IF NOT EXISTS planned_workouts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			sport TEXT NOT NULL,
			location TEXT NOT NULL,
			scheduled_date TEXT NOT NULL,
			structure_json TEXT,
			route_distance_m REAL,
			route_elevation_gain_m REAL,
			route_terrain TEXT,
			route_surface TEXT,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_planned_scheduled ON planned_workouts(scheduled_date)`,

		// Periodization plans; at most one is active
		`CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			start_ctl REAL NOT NULL,
			target_ctl REAL NOT NULL,
			start_date TEXT NOT NULL,
			target_date TEXT NOT NULL,
			weekly_ramp_pct REAL NOT NULL,
			active INTEGER NOT NULL DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Remote sync bookkeeping (singleton row)
		`CREATE TABLE IF NOT EXISTS sync_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			last_synced_at TEXT
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}
