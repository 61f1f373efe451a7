package trainload

import (
	"errors"
	"fmt"
	"time"
)

// EMA time constants in days. The recurrence is
// today = yesterday + (todayTSS - yesterday) / timeConstant.
const (
	CTLDays = 42.0
	ATLDays = 7.0
)

// DailyTSS is one day's total training stress
type DailyTSS struct {
	Date time.Time
	TSS  float64
}

// Point is one day's fitness/fatigue/form snapshot. Points are derived
// purely from the daily TSS inputs and are always recomputable.
type Point struct {
	Date time.Time
	CTL  float64
	ATL  float64
	TSB  float64
}

// Form returns the point's form label
func (p Point) Form() FormLabel {
	return FormForTSB(p.TSB)
}

// ErrNonChronological is returned for out-of-order or duplicate-dated
// input. That is a caller contract violation, not degradable data.
var ErrNonChronological = errors.New("trainload: daily TSS series must be strictly chronological")

// ComputeSeries runs the CTL/ATL recurrence over a chronological list of
// daily TSS totals, starting from the given prior loads (zero when the
// athlete has no history). Days absent from the input still produce a
// point with zero TSS, so fitness decays through gaps.
func ComputeSeries(days []DailyTSS, startCTL, startATL float64) ([]Point, error) {
	if len(days) == 0 {
		return nil, nil
	}

	byDay := make(map[string]float64, len(days))
	var prev time.Time
	for i, d := range days {
		day := midnight(d.Date)
		if i > 0 && !day.After(prev) {
			return nil, fmt.Errorf("%w: %s after %s",
				ErrNonChronological, day.Format("2006-01-02"), prev.Format("2006-01-02"))
		}
		prev = day
		byDay[dayKey(day)] = d.TSS
	}

	start := midnight(days[0].Date)
	end := midnight(days[len(days)-1].Date)

	ctl, atl := startCTL, startATL
	var points []Point
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		tss := byDay[dayKey(d)]
		ctl += (tss - ctl) / CTLDays
		atl += (tss - atl) / ATLDays
		points = append(points, Point{Date: d, CTL: ctl, ATL: atl, TSB: ctl - atl})
	}
	return points, nil
}

// Advance applies one recurrence step to a prior point, producing the next
// day's point for the given TSS.
func Advance(prev Point, date time.Time, tss float64) Point {
	ctl := prev.CTL + (tss-prev.CTL)/CTLDays
	atl := prev.ATL + (tss-prev.ATL)/ATLDays
	return Point{Date: midnight(date), CTL: ctl, ATL: atl, TSB: ctl - atl}
}

// Latest returns the most recent point at or before the given date, or
// ok=false when the series has nothing that early.
func Latest(points []Point, at time.Time) (Point, bool) {
	at = midnight(at)
	for i := len(points) - 1; i >= 0; i-- {
		if !points[i].Date.After(at) {
			return points[i], true
		}
	}
	return Point{}, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
