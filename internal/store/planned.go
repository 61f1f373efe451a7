package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreatePlannedWorkout inserts a planned workout, assigning it an ID
func (s *Store) CreatePlannedWorkout(w *PlannedWorkout) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO planned_workouts (id, name, sport, location, scheduled_date, structure_json,
			route_distance_m, route_elevation_gain_m, route_terrain, route_surface, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.Sport, w.Location, w.ScheduledDate.UTC().Format(dateLayout), w.StructureJSON,
		w.RouteDistanceM, w.RouteElevationGainM, w.RouteTerrain, w.RouteSurface,
		w.CreatedAt.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("creating planned workout: %w", err)
	}
	return nil
}

// GetPlannedWorkout fetches a single planned workout by ID
func (s *Store) GetPlannedWorkout(id string) (*PlannedWorkout, error) {
	row := s.db.QueryRow(`
		SELECT id, name, sport, location, scheduled_date, structure_json,
			route_distance_m, route_elevation_gain_m, route_terrain, route_surface, created_at
		FROM planned_workouts WHERE id = ?`, id)

	w, err := scanPlannedWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning planned workout: %w", err)
	}
	return w, nil
}

// ListPlannedWorkouts returns planned workouts scheduled in [from, to),
// soonest first
func (s *Store) ListPlannedWorkouts(from, to time.Time) ([]PlannedWorkout, error) {
	rows, err := s.db.Query(`
		SELECT id, name, sport, location, scheduled_date, structure_json,
			route_distance_m, route_elevation_gain_m, route_terrain, route_surface, created_at
		FROM planned_workouts
		WHERE scheduled_date >= ? AND scheduled_date < ?
		ORDER BY scheduled_date ASC`,
		from.UTC().Format(dateLayout), to.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("querying planned workouts: %w", err)
	}
	defer rows.Close()

	var workouts []PlannedWorkout
	for rows.Next() {
		w, err := scanPlannedWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning planned workout: %w", err)
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

// DeletePlannedWorkout removes a planned workout by ID
func (s *Store) DeletePlannedWorkout(id string) error {
	res, err := s.db.Exec(`DELETE FROM planned_workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting planned workout: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlannedWorkout(row rowScanner) (*PlannedWorkout, error) {
	var w PlannedWorkout
	var scheduledDate, createdAt string
	err := row.Scan(&w.ID, &w.Name, &w.Sport, &w.Location, &scheduledDate, &w.StructureJSON,
		&w.RouteDistanceM, &w.RouteElevationGainM, &w.RouteTerrain, &w.RouteSurface, &createdAt)
	if err != nil {
		return nil, err
	}

	t, err := time.Parse(dateLayout, scheduledDate)
	if err != nil {
		return nil, fmt.Errorf("parsing scheduled date: %w", err)
	}
	w.ScheduledDate = t
	if t, err := time.Parse(dateLayout, createdAt); err == nil {
		w.CreatedAt = t
	}
	return &w, nil
}
