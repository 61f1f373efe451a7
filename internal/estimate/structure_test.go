package estimate

import (
	"math"
	"testing"
)

func TestTargetIFConversions(t *testing.T) {
	withProfile := Context{
		Profile:  UserProfile{FTPWatts: floatPtr(250), ThresholdHR: floatPtr(160)},
		Activity: Activity{Sport: SportBike, Location: LocationOutdoor},
	}
	bare := Context{Activity: Activity{Sport: SportRun, Location: LocationOutdoor}}

	tests := []struct {
		name       string
		ctx        Context
		target     Target
		want       float64
		delta      float64
		wantAssume bool // conversion had to assume a default
	}{
		{"percent FTP", withProfile, Target{Kind: TargetPercentFTP, Value: 85}, 0.85, 0.001, false},
		{"percent threshold HR", withProfile, Target{Kind: TargetPercentThresholdHR, Value: 92}, 0.92, 0.001, false},
		{"percent max HR maps through threshold fraction", withProfile, Target{Kind: TargetPercentMaxHR, Value: 81}, 0.90, 0.001, false},
		{"watts with FTP", withProfile, Target{Kind: TargetWatts, Value: 200}, 0.80, 0.001, false},
		{"watts without FTP uses default", bare, Target{Kind: TargetWatts, Value: 200}, 1.0, 0.001, true},
		{"bpm with threshold", withProfile, Target{Kind: TargetBPM, Value: 144}, 0.90, 0.001, false},
		{"bpm without threshold uses default", bare, Target{Kind: TargetBPM, Value: 160}, 1.0, 0.001, true},
		{"run pace at threshold", bare, Target{Kind: TargetPace, Value: 255}, 1.0, 0.001, false},
		{"run pace slower than threshold", bare, Target{Kind: TargetPace, Value: 340}, 0.75, 0.001, false},
		{"rpe mid scale", withProfile, Target{Kind: TargetRPE, Value: 5}, 0.72, 0.001, false},
		{"rpe maximal", withProfile, Target{Kind: TargetRPE, Value: 10}, 1.20, 0.001, false},
		{"rpe clamped above scale", withProfile, Target{Kind: TargetRPE, Value: 14}, 1.20, 0.001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warning := targetIF(tt.ctx, tt.target)
			if math.Abs(got-tt.want) > tt.delta {
				t.Errorf("targetIF() = %v, want %v (±%v)", got, tt.want, tt.delta)
			}
			if tt.wantAssume && warning == "" {
				t.Error("expected a warning about an assumed default")
			}
		})
	}
}

func TestCadenceTargetIsWeakSignal(t *testing.T) {
	ctx := Context{Activity: Activity{Sport: SportBike, Location: LocationIndoor}}
	got, warning := targetIF(ctx, Target{Kind: TargetCadence, Value: 90})
	if got < 0.50 || got > 1.10 {
		t.Errorf("cadence IF = %v, want within [0.50, 1.10]", got)
	}
	if warning == "" {
		t.Error("cadence conversion should warn that it is approximate")
	}
}

func TestStepDurationResolution(t *testing.T) {
	ctx := Context{
		Profile:  profileWithFTP(250),
		Activity: Activity{Sport: SportRun, Location: LocationOutdoor},
	}

	tests := []struct {
		name  string
		step  Step
		want  float64
		delta float64
	}{
		{"explicit duration wins", Step{DurationSeconds: 600, DistanceMeters: 99999}, 600, 0},
		// 5 km at threshold run pace (255 s/km) at IF 1.0
		{"distance at threshold pace", Step{DistanceMeters: 5000}, 1275, 1},
		{"reps at assumed per-rep time", Step{Reps: 10}, 60, 0},
		{"empty step resolves to zero", Step{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stepDuration(ctx, tt.step, 1.0)
			if math.Abs(got-tt.want) > tt.delta {
				t.Errorf("stepDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStructureWeightsHardStepsMore(t *testing.T) {
	// Same total time; the fourth-power average must pull the mixed
	// workout's IF above the plain time-weighted mean.
	profile := profileWithFTP(250)
	mixed, _ := Estimate(Context{Profile: profile, Activity: Activity{
		Sport: SportBike, Location: LocationIndoor,
		Structure: []Step{
			{DurationSeconds: 1800, Targets: []Target{{Kind: TargetPercentFTP, Value: 50}}},
			{DurationSeconds: 1800, Targets: []Target{{Kind: TargetPercentFTP, Value: 110}}},
		},
	}})

	linearMean := (0.50 + 1.10) / 2
	if mixed.IntensityFactor <= linearMean {
		t.Errorf("IF = %v, want above the linear mean %v", mixed.IntensityFactor, linearMean)
	}
}

func TestStructureWithoutProfileWarnsAndDowngrades(t *testing.T) {
	res, err := Estimate(structuredContext(UserProfile{}))
	if err != nil {
		t.Fatal(err)
	}
	if res.Confidence != ConfidenceMedium {
		t.Errorf("Confidence = %q, want medium without FTP or threshold HR", res.Confidence)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning about missing threshold data")
	}
}

func TestRouteEstimate(t *testing.T) {
	profile := profileWithFTP(250)

	flat, _ := Estimate(Context{Profile: profile, Activity: Activity{
		Sport: SportBike, Location: LocationOutdoor,
		Route: &Route{DistanceMeters: 40000, Terrain: TerrainFlat},
	}})
	climb, _ := Estimate(Context{Profile: profile, Activity: Activity{
		Sport: SportBike, Location: LocationOutdoor,
		Route: &Route{DistanceMeters: 40000, ElevationGainM: 1200, Terrain: TerrainMountain},
	}})

	if flat.IntensityFactor < 0.65 || flat.IntensityFactor > 0.75 {
		t.Errorf("flat route IF = %v, want a moderate endurance value", flat.IntensityFactor)
	}
	if climb.IntensityFactor <= flat.IntensityFactor {
		t.Errorf("climbing IF (%v) should exceed flat IF (%v)", climb.IntensityFactor, flat.IntensityFactor)
	}
	if climb.DurationSeconds <= flat.DurationSeconds {
		t.Errorf("climbing duration (%v) should exceed flat duration (%v) over the same distance",
			climb.DurationSeconds, flat.DurationSeconds)
	}
}

func TestTemplateCTLAdjustment(t *testing.T) {
	base := Activity{Sport: SportBike, Location: LocationOutdoor}

	low, _ := Estimate(Context{
		Profile:  UserProfile{CurrentCTL: floatPtr(10)},
		Activity: base,
	})
	high, _ := Estimate(Context{
		Profile:  UserProfile{CurrentCTL: floatPtr(90)},
		Activity: base,
	})

	if high.IntensityFactor <= low.IntensityFactor {
		t.Errorf("fitter athlete template IF (%v) should exceed unfit (%v)",
			high.IntensityFactor, low.IntensityFactor)
	}
}
