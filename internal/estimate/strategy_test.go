package estimate

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func profileWithFTP(ftp float64) UserProfile {
	return UserProfile{FTPWatts: floatPtr(ftp), ThresholdHR: floatPtr(165)}
}

func structuredContext(profile UserProfile) Context {
	return Context{
		Profile: profile,
		Activity: Activity{
			Sport:    SportBike,
			Location: LocationOutdoor,
			Structure: []Step{
				{DurationSeconds: 1200, Targets: []Target{{Kind: TargetPercentFTP, Value: 60}}},
				{DurationSeconds: 1800, Targets: []Target{{Kind: TargetPercentFTP, Value: 90}}},
				{DurationSeconds: 600, Targets: []Target{{Kind: TargetPercentFTP, Value: 50}}},
			},
		},
	}
}

func TestEstimateStrategySelection(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		want     Strategy
	}{
		{
			name: "structure wins over route",
			activity: Activity{
				Sport:     SportBike,
				Location:  LocationOutdoor,
				Structure: []Step{{DurationSeconds: 600, Targets: []Target{{Kind: TargetPercentFTP, Value: 70}}}},
				Route:     &Route{DistanceMeters: 40000, Terrain: TerrainFlat},
			},
			want: StrategyStructure,
		},
		{
			name: "route when no structure",
			activity: Activity{
				Sport:    SportBike,
				Location: LocationOutdoor,
				Route:    &Route{DistanceMeters: 40000, Terrain: TerrainFlat},
			},
			want: StrategyRoute,
		},
		{
			name:     "template as fallback",
			activity: Activity{Sport: SportRun, Location: LocationOutdoor},
			want:     StrategyTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Estimate(Context{Profile: profileWithFTP(250), Activity: tt.activity})
			if err != nil {
				t.Fatalf("Estimate() error: %v", err)
			}
			if res.Strategy != tt.want {
				t.Errorf("Strategy = %q, want %q", res.Strategy, tt.want)
			}
		})
	}
}

func TestEstimateNoSportClassification(t *testing.T) {
	_, err := Estimate(Context{Activity: Activity{Sport: "", Location: LocationOutdoor}})
	if err == nil {
		t.Fatal("expected error for missing sport classification")
	}
}

func TestEstimateOutputContract(t *testing.T) {
	// Every valid context must produce finite, non-negative TSS, positive
	// duration and IF, regardless of how little data is present.
	contexts := []Context{
		structuredContext(profileWithFTP(250)),
		structuredContext(UserProfile{}),
		{Activity: Activity{Sport: SportBike, Location: LocationOutdoor, Route: &Route{DistanceMeters: 80000, ElevationGainM: 1500, Terrain: TerrainMountain}}},
		{Activity: Activity{Sport: SportSwim, Location: LocationIndoor}},
		{Activity: Activity{Sport: SportStrength, Location: LocationIndoor}},
		{Activity: Activity{Sport: SportRun, Location: LocationOutdoor, Structure: []Step{{Reps: 20}, {DistanceMeters: 5000}}}},
	}

	for i, ctx := range contexts {
		res, err := Estimate(ctx)
		if err != nil {
			t.Fatalf("context %d: unexpected error: %v", i, err)
		}
		if math.IsNaN(res.TSS) || math.IsInf(res.TSS, 0) || res.TSS < 0 {
			t.Errorf("context %d: TSS = %v, want finite and >= 0", i, res.TSS)
		}
		if res.DurationSeconds <= 0 {
			t.Errorf("context %d: DurationSeconds = %v, want > 0", i, res.DurationSeconds)
		}
		if res.IntensityFactor <= 0 {
			t.Errorf("context %d: IntensityFactor = %v, want > 0", i, res.IntensityFactor)
		}
		if confidenceFromScore(res.ConfidenceScore) != res.Confidence {
			t.Errorf("context %d: confidence %q disagrees with score %v", i, res.Confidence, res.ConfidenceScore)
		}
	}
}

func TestCanonicalTSSRoundTrip(t *testing.T) {
	res, err := Estimate(structuredContext(profileWithFTP(250)))
	if err != nil {
		t.Fatal(err)
	}
	want := res.DurationSeconds / 3600 * res.IntensityFactor * res.IntensityFactor * 100
	if math.Abs(res.TSS-want) > 0.01 {
		t.Errorf("TSS = %v, canonical formula gives %v", res.TSS, want)
	}
}

func TestConfidenceOrderingMatchesDataRichness(t *testing.T) {
	profile := profileWithFTP(250)

	structure, _ := Estimate(structuredContext(profile))
	route, _ := Estimate(Context{Profile: profile, Activity: Activity{
		Sport: SportBike, Location: LocationOutdoor,
		Route: &Route{DistanceMeters: 40000, Terrain: TerrainFlat},
	}})
	template, _ := Estimate(Context{Activity: Activity{Sport: SportBike, Location: LocationOutdoor}})

	if structure.Confidence != ConfidenceHigh {
		t.Errorf("structure confidence = %q, want high", structure.Confidence)
	}
	if route.Confidence != ConfidenceMedium {
		t.Errorf("route confidence = %q, want medium", route.Confidence)
	}
	if template.Confidence != ConfidenceLow {
		t.Errorf("template confidence = %q, want low", template.Confidence)
	}
	if !(structure.ConfidenceScore > route.ConfidenceScore && route.ConfidenceScore > template.ConfidenceScore) {
		t.Errorf("scores not ordered: structure=%v route=%v template=%v",
			structure.ConfidenceScore, route.ConfidenceScore, template.ConfidenceScore)
	}
}

func TestTSSScalesWithAthleteNotPlan(t *testing.T) {
	// A plan prescribed in absolute watts stresses a 250 W athlete more
	// than a 300 W athlete.
	plan := Activity{
		Sport:    SportBike,
		Location: LocationIndoor,
		Structure: []Step{
			{DurationSeconds: 3600, Targets: []Target{{Kind: TargetWatts, Value: 200}}},
		},
	}

	weaker, _ := Estimate(Context{Profile: profileWithFTP(250), Activity: plan})
	stronger, _ := Estimate(Context{Profile: profileWithFTP(300), Activity: plan})

	if weaker.TSS <= stronger.TSS {
		t.Errorf("TSS for FTP 250 (%v) should exceed TSS for FTP 300 (%v)", weaker.TSS, stronger.TSS)
	}
}

func TestEstimateIdempotent(t *testing.T) {
	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	ctx := Context{
		Profile: UserProfile{
			FTPWatts:    floatPtr(265),
			ThresholdHR: floatPtr(168),
			WeightKg:    floatPtr(72),
			BirthDate:   &birth,
			CurrentCTL:  floatPtr(55),
		},
		Activity: Activity{
			Sport:    SportBike,
			Location: LocationOutdoor,
			Structure: []Step{
				{DurationSeconds: 900, Targets: []Target{{Kind: TargetPercentFTP, Value: 55}}},
				{DurationSeconds: 2400, Targets: []Target{{Kind: TargetWatts, Value: 240}, {Kind: TargetRPE, Value: 7}}},
			},
		},
	}

	first, err := Estimate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Estimate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated estimation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestTemplateEstimateBareContext(t *testing.T) {
	res, err := Estimate(Context{Activity: Activity{Sport: SportRun, Location: LocationOutdoor}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Confidence != ConfidenceLow {
		t.Errorf("Confidence = %q, want low", res.Confidence)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected warnings for a bare template estimate")
	}
	found := false
	for _, w := range res.Warnings {
		if containsString(w, "FTP") || containsString(w, "threshold") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings should mention missing profile data, got %v", res.Warnings)
	}
}

func TestBatchEstimation(t *testing.T) {
	ctxs := []Context{
		structuredContext(profileWithFTP(250)),
		{Activity: Activity{Sport: SportSwim, Location: LocationIndoor}},
	}
	results, err := Batch(ctxs)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Strategy != StrategyStructure || results[1].Strategy != StrategyTemplate {
		t.Errorf("unexpected strategies: %q, %q", results[0].Strategy, results[1].Strategy)
	}
}

func containsString(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
