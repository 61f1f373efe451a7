package trainload

import (
	"math"
	"testing"
	"time"
)

// buildHistory lays down steady training ending the day before weekStart,
// then heavier days inside the week.
func buildHistory(weekStart time.Time, baseDays int, baseTSS float64, weekTSS []float64) []DailyTSS {
	var days []DailyTSS
	for i := baseDays; i > 0; i-- {
		days = append(days, DailyTSS{Date: weekStart.AddDate(0, 0, -i), TSS: baseTSS})
	}
	for i, tss := range weekTSS {
		days = append(days, DailyTSS{Date: weekStart.AddDate(0, 0, i), TSS: tss})
	}
	return days
}

func TestPredictFatigueAppliesOneRecurrenceStep(t *testing.T) {
	weekStart := baseDate // Monday
	history := buildHistory(weekStart, 28, 40, nil)
	scheduled := weekStart // schedule on the Monday right after the block

	pred, err := PredictFatigue(history, 100, scheduled)
	if err != nil {
		t.Fatal(err)
	}

	// After = the EMA recurrence applied to Before with the workout's TSS
	wantCTL := pred.Before.CTL + (100-pred.Before.CTL)/CTLDays
	wantATL := pred.Before.ATL + (100-pred.Before.ATL)/ATLDays
	if math.Abs(pred.After.CTL-wantCTL) > 0.001 {
		t.Errorf("After.CTL = %v, want %v", pred.After.CTL, wantCTL)
	}
	if math.Abs(pred.After.ATL-wantATL) > 0.001 {
		t.Errorf("After.ATL = %v, want %v", pred.After.ATL, wantATL)
	}
	if math.Abs(pred.After.TSB-(pred.After.CTL-pred.After.ATL)) > 0.001 {
		t.Errorf("After.TSB = %v, want CTL-ATL", pred.After.TSB)
	}
	if pred.Before.Form == "" || pred.After.Form == "" {
		t.Error("snapshots must carry form labels")
	}
}

func TestPredictFatigueSafeWeek(t *testing.T) {
	weekStart := baseDate
	// Long steady base, one moderate session early in the week
	history := buildHistory(weekStart, 120, 50, []float64{50, 50})
	scheduled := weekStart.AddDate(0, 0, 3) // Thursday

	pred, err := PredictFatigue(history, 50, scheduled)
	if err != nil {
		t.Fatal(err)
	}

	if !pred.Weekly.IsSafe {
		t.Errorf("steady-state week flagged unsafe: ramp %v%%", pred.Weekly.RampRatePct)
	}
	if pred.Weekly.TotalTSS != 150 {
		t.Errorf("weekly TotalTSS = %v, want 150", pred.Weekly.TotalTSS)
	}
	if len(pred.Recommendations) == 0 {
		t.Error("recommendations must never be empty")
	}
}

func TestPredictFatigueUnsafeRamp(t *testing.T) {
	weekStart := baseDate
	// A week already loaded well above the athlete's base, then another
	// 150 TSS on Sunday.
	history := buildHistory(weekStart, 60, 40, []float64{80, 80, 80, 80, 80, 80})
	scheduled := weekStart.AddDate(0, 0, 6) // Sunday

	pred, err := PredictFatigue(history, 150, scheduled)
	if err != nil {
		t.Fatal(err)
	}

	if pred.Weekly.IsSafe {
		t.Errorf("ramp %v%% should be flagged unsafe", pred.Weekly.RampRatePct)
	}
	if pred.Weekly.RampRatePct <= MaxWeeklyRampPct {
		t.Errorf("RampRatePct = %v, want above %v", pred.Weekly.RampRatePct, MaxWeeklyRampPct)
	}
	if len(pred.Warnings) == 0 {
		t.Fatal("unsafe ramp must produce warnings")
	}
	if len(pred.Recommendations) == 0 {
		t.Fatal("unsafe ramp must produce recommendations")
	}
	wantTotal := 6*80.0 + 150
	if math.Abs(pred.Weekly.TotalTSS-wantTotal) > 0.001 {
		t.Errorf("weekly TotalTSS = %v, want %v", pred.Weekly.TotalTSS, wantTotal)
	}
}

func TestPredictFatigueOverreachingWarning(t *testing.T) {
	weekStart := baseDate
	// Heavy recent loading has form already deep in the hole
	history := buildHistory(weekStart, 14, 130, nil)
	scheduled := weekStart

	pred, err := PredictFatigue(history, 180, scheduled)
	if err != nil {
		t.Fatal(err)
	}

	if pred.After.Form != FormOverreaching {
		t.Fatalf("After.Form = %q, want overreaching (TSB %v)", pred.After.Form, pred.After.TSB)
	}
	if len(pred.Warnings) == 0 {
		t.Error("overreaching projection must warn")
	}
}

func TestPredictFatigueNoHistory(t *testing.T) {
	pred, err := PredictFatigue(nil, 60, baseDate)
	if err != nil {
		t.Fatal(err)
	}
	if pred.Before.CTL != 0 || pred.Before.ATL != 0 {
		t.Errorf("Before = %+v, want zero state with no history", pred.Before)
	}
	if pred.After.CTL <= 0 {
		t.Errorf("After.CTL = %v, want positive after the first workout", pred.After.CTL)
	}
}

func TestPredictFatigueDecaysThroughGap(t *testing.T) {
	// Training stopped two weeks before the scheduled date; Before must
	// reflect the decay, not the last recorded day.
	history := steadyDays(baseDate, 28, 60)
	scheduled := baseDate.AddDate(0, 0, 42)

	pred, err := PredictFatigue(history, 60, scheduled)
	if err != nil {
		t.Fatal(err)
	}

	points, _ := ComputeSeries(history, 0, 0)
	lastRecorded := points[len(points)-1]
	if pred.Before.CTL >= lastRecorded.CTL {
		t.Errorf("Before.CTL = %v, want below last recorded %v after the gap", pred.Before.CTL, lastRecorded.CTL)
	}
	if pred.Before.ATL >= lastRecorded.ATL {
		t.Errorf("Before.ATL = %v, want below last recorded %v after the gap", pred.Before.ATL, lastRecorded.ATL)
	}
}

func TestPredictFatigueRejectsBadHistory(t *testing.T) {
	history := []DailyTSS{
		{Date: baseDate, TSS: 50},
		{Date: baseDate, TSS: 50},
	}
	if _, err := PredictFatigue(history, 60, baseDate.AddDate(0, 0, 7)); err == nil {
		t.Fatal("expected error for duplicate-dated history")
	}
}
