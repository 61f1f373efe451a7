package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UpsertActivity inserts or replaces a completed activity, keyed by its
// source and external ID so re-syncs are idempotent.
func (s *Store) UpsertActivity(a *Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	_, err := s.db.Exec(`
		INSERT INTO activities (id, source, external_id, name, sport, start_date, duration_seconds,
			tss, intensity_factor, distance_meters, avg_power, avg_heartrate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (source, external_id) DO UPDATE SET
			name = excluded.name,
			sport = excluded.sport,
			start_date = excluded.start_date,
			duration_seconds = excluded.duration_seconds,
			tss = excluded.tss,
			intensity_factor = excluded.intensity_factor,
			distance_meters = excluded.distance_meters,
			avg_power = excluded.avg_power,
			avg_heartrate = excluded.avg_heartrate`,
		a.ID, a.Source, a.ExternalID, a.Name, a.Sport, a.StartDate.UTC().Format(dateLayout),
		a.DurationSeconds, a.TSS, a.IntensityFactor, a.DistanceMeters, a.AvgPower, a.AvgHeartrate)
	if err != nil {
		return fmt.Errorf("upserting activity %s/%s: %w", a.Source, a.ExternalID, err)
	}
	return nil
}

// ListActivities returns completed activities in the date range, oldest first
func (s *Store) ListActivities(from, to time.Time) ([]Activity, error) {
	rows, err := s.db.Query(`
		SELECT id, source, external_id, name, sport, start_date, duration_seconds,
			tss, intensity_factor, distance_meters, avg_power, avg_heartrate
		FROM activities
		WHERE start_date >= ? AND start_date < ?
		ORDER BY start_date ASC`,
		from.UTC().Format(dateLayout), to.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		var startDate string
		if err := rows.Scan(&a.ID, &a.Source, &a.ExternalID, &a.Name, &a.Sport, &startDate,
			&a.DurationSeconds, &a.TSS, &a.IntensityFactor, &a.DistanceMeters, &a.AvgPower, &a.AvgHeartrate); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		t, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return nil, fmt.Errorf("parsing activity start date: %w", err)
		}
		a.StartDate = t
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// ListAllActivities returns every completed activity, oldest first
func (s *Store) ListAllActivities() ([]Activity, error) {
	return s.ListActivities(time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))
}

// CountActivities returns the number of completed activities
func (s *Store) CountActivities() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting activities: %w", err)
	}
	return n, nil
}
