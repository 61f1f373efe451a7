package remote

import "time"

// Activity is the wire format for a completed activity. The platform
// reports intensity factor as an integer percent of threshold; it is
// converted to a decimal at the import boundary.
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Sport              string    `json:"sport"`
	StartDate          time.Time `json:"start_date"`
	DurationSeconds    int       `json:"duration_seconds"`
	TrainingStress     float64   `json:"training_stress"`
	IntensityPct       int       `json:"intensity_pct"`
	DistanceMeters     float64   `json:"distance_meters"`
	AverageWatts       float64   `json:"average_watts"`
	AverageHeartrate   float64   `json:"average_heartrate"`
	ElevationGainM     float64   `json:"elevation_gain_m"`
	HasPowerMeter      bool      `json:"has_power_meter"`
	HasHeartrateSensor bool      `json:"has_heartrate_sensor"`
}

// IntensityFactor returns the decimal intensity factor, where 1.0 is
// threshold effort.
func (a Activity) IntensityFactor() float64 {
	return float64(a.IntensityPct) / 100.0
}

// sportNames maps the platform's sport strings to the engine's
// classification. Unknown sports map to empty string and are skipped
// by the sync service.
var sportNames = map[string]string{
	"Ride":           "bike",
	"VirtualRide":    "bike",
	"GravelRide":     "bike",
	"MountainBike":   "bike",
	"Run":            "run",
	"TrailRun":       "run",
	"VirtualRun":     "run",
	"Swim":           "swim",
	"OpenWaterSwim":  "swim",
	"WeightTraining": "strength",
	"Crossfit":       "strength",
}

// NormalizedSport returns the engine sport name, or "" if unsupported
func (a Activity) NormalizedSport() string {
	return sportNames[a.Sport]
}
