package store

import "time"

// Profile is the stored athlete profile. Nullable fields stay nil when the
// athlete hasn't provided them; the engine degrades gracefully downstream.
type Profile struct {
	FTPWatts    *float64  `db:"ftp_watts"`
	ThresholdHR *float64  `db:"threshold_hr"`
	MaxHR       *float64  `db:"max_hr"`
	RestingHR   *float64  `db:"resting_hr"`
	WeightKg    *float64  `db:"weight_kg"`
	BirthDate   *time.Time `db:"birth_date"`
	StartingCTL *float64  `db:"starting_ctl"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Activity is a completed activity with its measured training stress.
// Measured TSS is the only load input the time-series engine replays;
// estimates for planned workouts are never persisted.
type Activity struct {
	ID              string    `db:"id"`
	Source          string    `db:"source"` // "remote", "fit", "manual"
	ExternalID      string    `db:"external_id"`
	Name            string    `db:"name"`
	Sport           string    `db:"sport"`
	StartDate       time.Time `db:"start_date"`
	DurationSeconds int       `db:"duration_seconds"`
	TSS             float64   `db:"tss"`
	IntensityFactor float64   `db:"intensity_factor"`
	DistanceMeters  *float64  `db:"distance_meters"`
	AvgPower        *float64  `db:"avg_power"`
	AvgHeartrate    *float64  `db:"avg_heartrate"`
}

// PlannedWorkout is a scheduled workout awaiting estimation. A workout may
// carry structure JSON, route columns, or neither (template-only).
type PlannedWorkout struct {
	ID                  string    `db:"id"`
	Name                string    `db:"name"`
	Sport               string    `db:"sport"`
	Location            string    `db:"location"`
	ScheduledDate       time.Time `db:"scheduled_date"`
	StructureJSON       *string   `db:"structure_json"`
	RouteDistanceM      *float64  `db:"route_distance_m"`
	RouteElevationGainM *float64  `db:"route_elevation_gain_m"`
	RouteTerrain        *string   `db:"route_terrain"`
	RouteSurface        *string   `db:"route_surface"`
	CreatedAt           time.Time `db:"created_at"`
}

// Plan is a stored periodization template
type Plan struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	StartCTL      float64   `db:"start_ctl"`
	TargetCTL     float64   `db:"target_ctl"`
	StartDate     time.Time `db:"start_date"`
	TargetDate    time.Time `db:"target_date"`
	WeeklyRampPct float64   `db:"weekly_ramp_pct"`
	Active        bool      `db:"active"`
}
