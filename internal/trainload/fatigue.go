package trainload

import (
	"fmt"
	"time"
)

// MaxWeeklyRampPct is the safety ceiling for week-over-week CTL growth.
// Ramp rates above it correlate with overuse injury and overtraining.
const MaxWeeklyRampPct = 8.0

// Snapshot is the training-load state at one instant
type Snapshot struct {
	CTL  float64
	ATL  float64
	TSB  float64
	Form FormLabel
}

func snapshotOf(p Point) Snapshot {
	return Snapshot{CTL: p.CTL, ATL: p.ATL, TSB: p.TSB, Form: p.Form()}
}

// WeeklyProjection summarizes the ISO week a prospective activity lands in
type WeeklyProjection struct {
	TotalTSS    float64
	RampRatePct float64
	IsSafe      bool
}

// Prediction is the forward-looking assessment for one prospective activity
type Prediction struct {
	Before          Snapshot
	After           Snapshot
	Weekly          WeeklyProjection
	Recommendations []string
	Warnings        []string
}

// PredictFatigue projects the effect of scheduling an activity with the
// given TSS on the athlete's form. The prospective TSS is fed through the
// same EMA recurrence as the historical series, as if it had happened on
// its scheduled date. History must be chronological.
func PredictFatigue(history []DailyTSS, prospectiveTSS float64, scheduledDate time.Time) (Prediction, error) {
	scheduled := midnight(scheduledDate)

	// Clip history to what is known before the scheduled day; anything on
	// the day itself still counts toward that day's total.
	var past []DailyTSS
	tssOnDay := 0.0
	for _, d := range history {
		day := midnight(d.Date)
		switch {
		case day.Before(scheduled):
			past = append(past, d)
		case day.Equal(scheduled):
			tssOnDay += d.TSS
		}
	}

	points, err := ComputeSeries(past, 0, 0)
	if err != nil {
		return Prediction{}, fmt.Errorf("computing baseline series: %w", err)
	}

	// Decay through any gap between the last recorded day and the
	// scheduled date.
	var before Point
	if len(points) > 0 {
		before = points[len(points)-1]
		for d := before.Date.AddDate(0, 0, 1); d.Before(scheduled); d = d.AddDate(0, 0, 1) {
			before = Advance(before, d, 0)
		}
	} else {
		before = Point{Date: scheduled.AddDate(0, 0, -1)}
	}

	after := Advance(before, scheduled, tssOnDay+prospectiveTSS)

	weekly := projectWeek(history, prospectiveTSS, scheduled)

	pred := Prediction{
		Before: snapshotOf(before),
		After:  snapshotOf(after),
		Weekly: weekly,
	}
	pred.Recommendations, pred.Warnings = evaluateRules(pred)
	return pred, nil
}

// projectWeek totals the ISO week containing the scheduled date and
// projects the CTL ramp from the start of that week to its end, carrying
// known history plus the prospective activity.
func projectWeek(history []DailyTSS, prospectiveTSS float64, scheduled time.Time) WeeklyProjection {
	weekStart := WeekStart(scheduled)
	weekEnd := weekStart.AddDate(0, 0, 6)

	byDay := make(map[string]float64)
	total := prospectiveTSS
	for _, d := range history {
		day := midnight(d.Date)
		if day.Before(weekStart) || day.After(weekEnd) {
			continue
		}
		byDay[dayKey(day)] += d.TSS
		total += d.TSS
	}
	byDay[dayKey(scheduled)] += prospectiveTSS

	// Walk the recurrence across the week from the state at its start
	start := rewindToWeekStart(history, weekStart)
	startCTL := start.CTL
	p := start
	for d := weekStart; !d.After(weekEnd); d = d.AddDate(0, 0, 1) {
		p = Advance(p, d, byDay[dayKey(d)])
	}

	ramp := 0.0
	switch {
	case startCTL > 0:
		ramp = (p.CTL - startCTL) / startCTL * 100
	case p.CTL > 0:
		ramp = 100
	}

	return WeeklyProjection{
		TotalTSS:    total,
		RampRatePct: ramp,
		IsSafe:      ramp <= MaxWeeklyRampPct,
	}
}

// rewindToWeekStart recomputes the load state as of the day before the
// given week start, from the full history.
func rewindToWeekStart(history []DailyTSS, weekStart time.Time) Point {
	var past []DailyTSS
	for _, d := range history {
		if midnight(d.Date).Before(weekStart) {
			past = append(past, d)
		}
	}
	points, err := ComputeSeries(past, 0, 0)
	if err != nil || len(points) == 0 {
		return Point{Date: weekStart.AddDate(0, 0, -1)}
	}
	p := points[len(points)-1]
	for d := p.Date.AddDate(0, 0, 1); d.Before(weekStart); d = d.AddDate(0, 0, 1) {
		p = Advance(p, d, 0)
	}
	return p
}

// evaluateRules produces the deterministic recommendation and warning set
// for a prediction. Rules are fixed and enumerable, not generated.
func evaluateRules(pred Prediction) (recommendations, warnings []string) {
	if !pred.Weekly.IsSafe {
		warnings = append(warnings, fmt.Sprintf(
			"weekly CTL ramp of %.1f%% exceeds the %.0f%% safety ceiling",
			pred.Weekly.RampRatePct, MaxWeeklyRampPct))
		recommendations = append(recommendations,
			"add a recovery day this week or move this workout to next week")
	}

	if pred.After.Form == FormOverreaching {
		warnings = append(warnings, "this workout would push form into overreaching")
		recommendations = append(recommendations,
			"lower the intensity or shorten the session to limit additional fatigue")
	} else if pred.After.Form == FormTired && pred.Before.Form != FormTired {
		recommendations = append(recommendations,
			"form will drop into the tired band; plan an easier day to follow")
	}

	if pred.After.TSB < pred.Before.TSB-15 {
		warnings = append(warnings, "this single workout drops form sharply")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "training load looks sustainable, proceed as planned")
	}
	return recommendations, warnings
}
