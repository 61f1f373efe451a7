package service

import (
	"fmt"
	"time"

	"trainlab/internal/estimate"
	"trainlab/internal/store"
	"trainlab/internal/trainload"
)

// QueryService provides read-only queries for the TUI
type QueryService struct {
	store      *store.Store
	estimation *EstimationService
}

// NewQueryService creates a new query service
func NewQueryService(s *store.Store, est *EstimationService) *QueryService {
	return &QueryService{store: s, estimation: est}
}

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	// Current fitness state
	Current         trainload.Point
	FormDescription string

	// For the load chart
	History []trainload.Point

	// Ideal curve from the active plan, nil when no plan is set
	Ideal []trainload.Point

	// This week versus plan
	Week *trainload.WeekComparison

	// Time in zone over the recent window
	ZoneSeconds [estimate.ZoneCount]float64

	// Fatigue preview of the next planned workout, nil when none
	NextWorkout *WorkoutEstimate
	Prediction  *trainload.Prediction
}

// GetDashboardData assembles the dashboard view model as of now
func (q *QueryService) GetDashboardData(now time.Time) (*DashboardData, error) {
	history, err := q.DailyLoad(now.AddDate(0, 0, -HistoryDays), now)
	if err != nil {
		return nil, err
	}

	startCTL, startATL := q.startingLoads()
	points, err := trainload.ComputeSeries(history, startCTL, startATL)
	if err != nil {
		return nil, fmt.Errorf("computing load series: %w", err)
	}

	data := &DashboardData{History: points}
	if current, ok := trainload.Latest(points, now); ok {
		data.Current = current
		data.FormDescription = current.Form().Description()
	}

	if ideal, err := q.idealCurve(); err == nil {
		data.Ideal = ideal
	}

	if week, err := q.CompareCurrentWeek(now); err == nil {
		data.Week = week
	}

	zones, err := q.ZoneDistribution(now.AddDate(0, 0, -ZoneWindowDays), now)
	if err == nil {
		data.ZoneSeconds = zones
	}

	q.attachNextWorkoutPreview(data, history, now)

	return data, nil
}

// DailyLoad aggregates completed activities into per-day training
// stress totals, oldest first.
func (q *QueryService) DailyLoad(from, to time.Time) ([]trainload.DailyTSS, error) {
	activities, err := q.store.ListActivities(from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]float64)
	var order []time.Time
	for _, a := range activities {
		d := a.StartDate.UTC().Truncate(day)
		if _, seen := byDay[d]; !seen {
			order = append(order, d)
		}
		byDay[d] += a.TSS
	}

	// Activities come back sorted by start date, so the day order is
	// already chronological
	days := make([]trainload.DailyTSS, 0, len(order))
	for _, d := range order {
		days = append(days, trainload.DailyTSS{Date: d, TSS: byDay[d]})
	}
	return days, nil
}

// CompareCurrentWeek compares this week's planned load against what
// has been completed so far.
func (q *QueryService) CompareCurrentWeek(now time.Time) (*trainload.WeekComparison, error) {
	weekStart := trainload.WeekStart(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	plannedTSS, plannedCount, err := q.plannedWeekTSS(weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	activities, err := q.store.ListActivities(weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	var actual float64
	for _, a := range activities {
		actual += a.TSS
	}

	cmp := trainload.CompareWeek(plannedTSS, actual, plannedCount, len(activities))
	return &cmp, nil
}

// plannedWeekTSS sums the estimated stress of planned workouts in the
// week window.
func (q *QueryService) plannedWeekTSS(from, to time.Time) (float64, int, error) {
	workouts, err := q.store.ListPlannedWorkouts(from, to)
	if err != nil {
		return 0, 0, err
	}
	estimates, err := q.estimation.EstimateWorkouts(workouts)
	if err != nil {
		return 0, 0, err
	}
	var total float64
	for _, e := range estimates {
		total += e.Result.TSS
	}
	return total, len(estimates), nil
}

// ZoneDistribution sums estimated time in zone across completed
// activities in the window. Completed activities carry a single
// overall intensity, so each lands wholly in its zone.
func (q *QueryService) ZoneDistribution(from, to time.Time) ([estimate.ZoneCount]float64, error) {
	var zones [estimate.ZoneCount]float64

	activities, err := q.store.ListActivities(from, to)
	if err != nil {
		return zones, err
	}
	for _, a := range activities {
		z := estimate.ClassifyIF(a.IntensityFactor)
		zones[z] += float64(a.DurationSeconds)
	}
	return zones, nil
}

// IdealCurve returns the active plan's target CTL progression, or
// store.ErrNoPlan when no plan is active.
func (q *QueryService) idealCurve() ([]trainload.Point, error) {
	plan, err := q.store.GetActivePlan()
	if err != nil {
		return nil, err
	}
	template := trainload.PlanTemplate{
		StartCTL:      plan.StartCTL,
		TargetCTL:     plan.TargetCTL,
		StartDate:     plan.StartDate,
		TargetDate:    plan.TargetDate,
		WeeklyRampPct: plan.WeeklyRampPct,
	}
	return trainload.IdealSeries(template)
}

// attachNextWorkoutPreview estimates the next upcoming workout and
// predicts its fatigue impact. Missing data leaves the preview nil.
func (q *QueryService) attachNextWorkoutPreview(data *DashboardData, history []trainload.DailyTSS, now time.Time) {
	upcoming, err := q.store.ListPlannedWorkouts(now, now.AddDate(0, 0, UpcomingDays))
	if err != nil || len(upcoming) == 0 {
		return
	}

	we, err := q.estimation.EstimateWorkout(upcoming[0].ID)
	if err != nil {
		return
	}
	data.NextWorkout = we

	pred, err := trainload.PredictFatigue(history, we.Result.TSS, we.Workout.ScheduledDate)
	if err != nil {
		return
	}
	data.Prediction = &pred
}

// startingLoads reads the profile's starting CTL, defaulting to zero
// when no profile or no value is stored.
func (q *QueryService) startingLoads() (ctl, atl float64) {
	p, err := q.store.GetProfile()
	if err != nil {
		return 0, 0
	}
	if p.StartingCTL != nil {
		return *p.StartingCTL, *p.StartingCTL
	}
	return 0, 0
}
