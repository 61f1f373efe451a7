package trainload

import (
	"sort"
	"time"
)

// Status grades a week's completion against its plan
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusPoor    Status = "poor"
)

// WeekSummary aggregates one ISO week of daily TSS
type WeekSummary struct {
	WeekStart time.Time // Monday
	TotalTSS  float64
	Days      int // days with nonzero load
}

// WeekStart returns the Monday of the ISO week containing t, at midnight.
// AddDate handles month and year boundaries safely.
func WeekStart(t time.Time) time.Time {
	t = midnight(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// SameISOWeek reports whether two dates fall in the same ISO week
func SameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// GroupByWeek buckets daily TSS totals into ISO weeks, ordered by week start
func GroupByWeek(days []DailyTSS) []WeekSummary {
	byWeek := make(map[string]*WeekSummary)
	for _, d := range days {
		start := WeekStart(d.Date)
		key := dayKey(start)
		ws, ok := byWeek[key]
		if !ok {
			ws = &WeekSummary{WeekStart: start}
			byWeek[key] = ws
		}
		ws.TotalTSS += d.TSS
		if d.TSS > 0 {
			ws.Days++
		}
	}

	summaries := make([]WeekSummary, 0, len(byWeek))
	for _, ws := range byWeek {
		summaries = append(summaries, *ws)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].WeekStart.Before(summaries[j].WeekStart)
	})
	return summaries
}

// WeekComparison grades completed training against the plan for one week.
// TSS and workout count are graded independently and combined by taking the
// worse of the two.
type WeekComparison struct {
	PlannedTSS        float64
	CompletedTSS      float64
	PlannedWorkouts   int
	CompletedWorkouts int
	TSSStatus         Status
	CountStatus       Status
	Overall           Status
}

// CompareWeek builds the planned-vs-actual grade for one week
func CompareWeek(plannedTSS, completedTSS float64, plannedWorkouts, completedWorkouts int) WeekComparison {
	c := WeekComparison{
		PlannedTSS:        plannedTSS,
		CompletedTSS:      completedTSS,
		PlannedWorkouts:   plannedWorkouts,
		CompletedWorkouts: completedWorkouts,
	}
	c.TSSStatus = completionStatus(completedTSS, plannedTSS)
	c.CountStatus = completionStatus(float64(completedWorkouts), float64(plannedWorkouts))
	c.Overall = worseStatus(c.TSSStatus, c.CountStatus)
	return c
}

// completionStatus grades a completed-over-planned percentage:
// good at 90% and up, warning from 70%, poor below.
func completionStatus(completed, planned float64) Status {
	if planned <= 0 {
		return StatusGood
	}
	pct := completed / planned * 100
	switch {
	case pct >= 90:
		return StatusGood
	case pct >= 70:
		return StatusWarning
	default:
		return StatusPoor
	}
}

func worseStatus(a, b Status) Status {
	rank := map[Status]int{StatusGood: 0, StatusWarning: 1, StatusPoor: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
