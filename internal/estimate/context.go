package estimate

import "time"

// Sport is the activity category
type Sport string

const (
	SportBike     Sport = "bike"
	SportRun      Sport = "run"
	SportSwim     Sport = "swim"
	SportStrength Sport = "strength"
)

// Valid reports whether the sport is one of the known categories
func (s Sport) Valid() bool {
	switch s {
	case SportBike, SportRun, SportSwim, SportStrength:
		return true
	}
	return false
}

// IsEndurance reports whether the sport accumulates distance
func (s Sport) IsEndurance() bool {
	return s == SportBike || s == SportRun || s == SportSwim
}

// Location is where the activity takes place
type Location string

const (
	LocationIndoor  Location = "indoor"
	LocationOutdoor Location = "outdoor"
)

// TargetKind identifies how a step's intensity target is expressed
type TargetKind int

const (
	TargetPercentFTP TargetKind = iota
	TargetPercentMaxHR
	TargetPercentThresholdHR
	TargetWatts
	TargetBPM
	TargetPace
	TargetCadence
	TargetRPE
)

// Target is one intensity target on a workout step.
// Value semantics depend on Kind: percentages are 0-100, watts and bpm are
// absolute, pace is seconds per kilometer, cadence is rpm (bike) or spm
// (run), RPE is the 1-10 Borg scale.
type Target struct {
	Kind  TargetKind `json:"kind"`
	Value float64    `json:"value"`
}

// Step is one entry in a structured workout.
// Exactly one of DurationSeconds, DistanceMeters, or Reps should be set;
// when several are set duration wins, then distance, then reps.
type Step struct {
	Name            string   `json:"name,omitempty"`
	DurationSeconds float64  `json:"durationSeconds,omitempty"`
	DistanceMeters  float64  `json:"distanceMeters,omitempty"`
	Reps            int      `json:"reps,omitempty"`
	Targets         []Target `json:"targets,omitempty"` // 0-2 intensity targets
}

// Terrain classifies a route's overall profile
type Terrain string

const (
	TerrainFlat     Terrain = "flat"
	TerrainRolling  Terrain = "rolling"
	TerrainHilly    Terrain = "hilly"
	TerrainMountain Terrain = "mountain"
)

// Route describes an activity defined by its course rather than by steps
type Route struct {
	DistanceMeters float64
	ElevationGainM float64
	Terrain        Terrain
	Surface        string // free-form hint: "road", "gravel", "trail"
}

// Activity is the workout being estimated. Structure, Route, or neither may
// be present; Sport and Location are always required.
type Activity struct {
	Sport     Sport
	Location  Location
	Structure []Step
	Route     *Route
}

// UserProfile is a snapshot of the athlete's physiology. All fields are
// optional; missing fields degrade estimate confidence instead of failing.
type UserProfile struct {
	FTPWatts    *float64
	ThresholdHR *float64
	WeightKg    *float64
	BirthDate   *time.Time
	CurrentCTL  *float64
}

// Age returns the athlete's age in whole years at the given time,
// or 0 and false when the birth date is unknown or implausible.
func (p UserProfile) Age(at time.Time) (int, bool) {
	if p.BirthDate == nil {
		return 0, false
	}
	age := at.Year() - p.BirthDate.Year()
	if at.Before(p.BirthDate.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 || age > 130 {
		return 0, false
	}
	return age, true
}

// Context is the immutable input for one estimation call. Callers assemble
// it from a single consistent read of profile and activity data; the engine
// never fetches anything itself.
type Context struct {
	Profile  UserProfile
	Activity Activity
}
