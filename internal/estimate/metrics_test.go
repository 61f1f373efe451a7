package estimate

import (
	"math"
	"testing"
	"time"
)

func TestEstimateMetricsPowerTierCalories(t *testing.T) {
	ctx := Context{
		Profile:  profileWithFTP(250),
		Activity: Activity{Sport: SportBike, Location: LocationOutdoor},
	}
	res := Result{TSS: 70, DurationSeconds: 3600, IntensityFactor: 0.85}

	m := EstimateMetrics(res, ctx)

	if m.AvgPowerWatts == nil {
		t.Fatal("expected average power with FTP set")
	}
	if math.Abs(*m.AvgPowerWatts-212.5) > 0.1 {
		t.Errorf("AvgPowerWatts = %v, want 212.5", *m.AvgPowerWatts)
	}
	// kcal ~= kJ for cycling: 212.5 W * 3600 s / 1000
	if math.Abs(m.Calories-765) > 1 {
		t.Errorf("Calories = %v, want ~765", m.Calories)
	}
	if len(m.Warnings) != 0 {
		t.Errorf("power tier should not warn, got %v", m.Warnings)
	}
}

func TestEstimateMetricsHRTierCalories(t *testing.T) {
	birth := time.Now().AddDate(-35, 0, 0)
	ctx := Context{
		Profile: UserProfile{
			ThresholdHR: floatPtr(165),
			WeightKg:    floatPtr(70),
			BirthDate:   &birth,
		},
		// Running has no power tier without FTP
		Activity: Activity{Sport: SportRun, Location: LocationOutdoor},
	}
	res := Result{TSS: 60, DurationSeconds: 3600, IntensityFactor: 0.80}

	m := EstimateMetrics(res, ctx)

	if m.AvgHeartRate == nil {
		t.Fatal("expected average HR with threshold HR set")
	}
	if math.Abs(*m.AvgHeartRate-132) > 0.1 {
		t.Errorf("AvgHeartRate = %v, want 132", *m.AvgHeartRate)
	}
	if m.Calories <= 0 {
		t.Errorf("Calories = %v, want > 0 from the HR tier", m.Calories)
	}
	if m.AvgPowerWatts != nil {
		t.Error("AvgPowerWatts must be nil without FTP")
	}
}

func TestEstimateMetricsFallbackTierWarns(t *testing.T) {
	ctx := Context{Activity: Activity{Sport: SportRun, Location: LocationOutdoor}}
	res := Result{TSS: 60, DurationSeconds: 3600, IntensityFactor: 0.72}

	m := EstimateMetrics(res, ctx)

	if m.Calories <= 0 {
		t.Errorf("Calories = %v, want > 0 from the TSS heuristic", m.Calories)
	}
	if len(m.Warnings) == 0 {
		t.Error("falling to the TSS tier must warn")
	}
}

func TestEstimateMetricsDistance(t *testing.T) {
	res := Result{TSS: 60, DurationSeconds: 3600, IntensityFactor: 0.75}

	tests := []struct {
		name         string
		sport        Sport
		wantDistance bool
	}{
		{"bike gets a distance", SportBike, true},
		{"run gets a distance", SportRun, true},
		{"swim gets a distance", SportSwim, true},
		{"strength never gets a distance", SportStrength, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Context{Activity: Activity{Sport: tt.sport, Location: LocationOutdoor}}
			m := EstimateMetrics(res, ctx)
			if tt.wantDistance {
				if m.DistanceMeters == nil || *m.DistanceMeters <= 0 {
					t.Error("expected a positive distance estimate")
				}
			} else if m.DistanceMeters != nil {
				t.Errorf("DistanceMeters = %v, want nil for strength", *m.DistanceMeters)
			}
		})
	}
}

func TestEstimateMetricsRouteDistanceWins(t *testing.T) {
	ctx := Context{Activity: Activity{
		Sport: SportBike, Location: LocationOutdoor,
		Route: &Route{DistanceMeters: 42000, Terrain: TerrainFlat},
	}}
	res := Result{TSS: 80, DurationSeconds: 5000, IntensityFactor: 0.72}

	m := EstimateMetrics(res, ctx)
	if m.DistanceMeters == nil || *m.DistanceMeters != 42000 {
		t.Errorf("DistanceMeters = %v, want the route's 42000", m.DistanceMeters)
	}
}

func TestZoneDistributionFromStructure(t *testing.T) {
	ctx := Context{
		Profile: profileWithFTP(250),
		Activity: Activity{
			Sport: SportBike, Location: LocationIndoor,
			Structure: []Step{
				{DurationSeconds: 1200, Targets: []Target{{Kind: TargetPercentFTP, Value: 50}}},  // recovery
				{DurationSeconds: 1800, Targets: []Target{{Kind: TargetPercentFTP, Value: 90}}},  // threshold
				{DurationSeconds: 600, Targets: []Target{{Kind: TargetPercentFTP, Value: 110}}},  // anaerobic
			},
		},
	}
	res, err := Estimate(ctx)
	if err != nil {
		t.Fatal(err)
	}

	m := EstimateMetrics(res, ctx)

	var total float64
	for _, s := range m.ZoneSeconds {
		total += s
	}
	if math.Abs(total-res.DurationSeconds) > 1 {
		t.Errorf("zone seconds sum to %v, want duration %v", total, res.DurationSeconds)
	}
	if m.ZoneSeconds[ZoneRecovery] <= 0 || m.ZoneSeconds[ZoneThreshold] <= 0 || m.ZoneSeconds[ZoneAnaerobic] <= 0 {
		t.Errorf("expected time in recovery, threshold, and anaerobic zones, got %v", m.ZoneSeconds)
	}
}

func TestZoneDistributionWithoutStructure(t *testing.T) {
	ctx := Context{Activity: Activity{Sport: SportRun, Location: LocationOutdoor}}
	res := Result{TSS: 60, DurationSeconds: 3000, IntensityFactor: 0.72}

	m := EstimateMetrics(res, ctx)
	if m.ZoneSeconds[ZoneEndurance] != 3000 {
		t.Errorf("whole duration should land in endurance, got %v", m.ZoneSeconds)
	}
}
