package trainload

import (
	"errors"
	"time"
)

// PlanTemplate is a periodization target: ramp CTL from a starting value to
// a target value by a target date, limited to a weekly ramp percentage.
type PlanTemplate struct {
	StartCTL      float64
	TargetCTL     float64
	StartDate     time.Time
	TargetDate    time.Time
	WeeklyRampPct float64
}

var ErrInvalidPlan = errors.New("trainload: plan target date must be after start date")

// IdealSeries synthesizes the "ideal" training-load curve for a plan: the
// daily TSS progression that walks CTL toward the target at the requested
// ramp, capped so CTL never overshoots the target ahead of schedule. The
// returned points run the same recurrence as the actual series, so the two
// curves are directly comparable.
func IdealSeries(plan PlanTemplate) ([]Point, error) {
	start := midnight(plan.StartDate)
	end := midnight(plan.TargetDate)
	if !end.After(start) {
		return nil, ErrInvalidPlan
	}

	ramp := plan.WeeklyRampPct
	if ramp <= 0 {
		ramp = MaxWeeklyRampPct
	}
	dailyGrowth := ramp / 100 / 7

	desired := plan.StartCTL
	ctl := plan.StartCTL
	atl := plan.StartCTL // assume the plan starts from a balanced state

	var points []Point
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if plan.TargetCTL >= plan.StartCTL {
			desired += desired * dailyGrowth
			if desired > plan.TargetCTL {
				desired = plan.TargetCTL
			}
		} else {
			desired -= desired * dailyGrowth
			if desired < plan.TargetCTL {
				desired = plan.TargetCTL
			}
		}

		// Invert the recurrence: the TSS needed today to land CTL on the
		// desired value.
		tss := ctl + (desired-ctl)*CTLDays
		if tss < 0 {
			tss = 0
		}

		ctl += (tss - ctl) / CTLDays
		atl += (tss - atl) / ATLDays
		points = append(points, Point{Date: d, CTL: ctl, ATL: atl, TSB: ctl - atl})
	}
	return points, nil
}
