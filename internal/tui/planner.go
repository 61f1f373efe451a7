package tui

import (
	"fmt"
	"strings"
	"time"

	"trainlab/internal/service"
	"trainlab/internal/store"
	"trainlab/internal/trainload"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PlannerModel is the planner screen: upcoming workouts with their
// estimates and the fatigue preview for each.
type PlannerModel struct {
	store        *store.Store
	estimation   *service.EstimationService
	queryService *service.QueryService

	estimates []service.WorkoutEstimate
	history   []trainload.DailyTSS

	viewport viewport.Model
	loading  bool
	err      error
	width    int
	height   int
	ready    bool
}

// NewPlannerModel creates a new planner model
func NewPlannerModel(s *store.Store, est *service.EstimationService, qs *service.QueryService) PlannerModel {
	return PlannerModel{
		store:        s,
		estimation:   est,
		queryService: qs,
		loading:      true,
	}
}

// Init initializes the planner screen
func (m PlannerModel) Init() tea.Cmd {
	return m.loadWorkouts
}

type plannerLoadedMsg struct {
	estimates []service.WorkoutEstimate
	history   []trainload.DailyTSS
	err       error
}

func (m PlannerModel) loadWorkouts() tea.Msg {
	now := time.Now()

	workouts, err := m.store.ListPlannedWorkouts(now, now.AddDate(0, 0, service.UpcomingDays))
	if err != nil {
		return plannerLoadedMsg{err: err}
	}
	estimates, err := m.estimation.EstimateWorkouts(workouts)
	if err != nil {
		return plannerLoadedMsg{err: err}
	}
	history, err := m.queryService.DailyLoad(now.AddDate(0, 0, -service.HistoryDays), now)
	if err != nil {
		return plannerLoadedMsg{err: err}
	}
	return plannerLoadedMsg{estimates: estimates, history: history}
}

// Update handles messages
func (m PlannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case plannerLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.estimates = msg.estimates
		m.history = msg.history
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		m.viewport.SetContent(m.renderContent())

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadWorkouts
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the planner
func (m PlannerModel) View() string {
	if m.loading {
		return "\n  Loading planned workouts..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if !m.ready {
		return m.renderContent()
	}
	return m.viewport.View()
}

func (m PlannerModel) renderContent() string {
	if len(m.estimates) == 0 {
		return "\n  No planned workouts in the next two weeks."
	}

	var sections []string
	for _, we := range m.estimates {
		sections = append(sections, m.renderWorkoutCard(we))
	}
	sections = append(sections, statusStyle.Render("j/k to scroll, 'r' to refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PlannerModel) renderWorkoutCard(we service.WorkoutEstimate) string {
	title := cardTitleStyle.Render(fmt.Sprintf("%s - %s", we.Workout.ScheduledDate.Format("Mon Jan 02"), we.Workout.Name))

	lines := []string{
		RenderMetric("Sport", fmt.Sprintf("%s (%s)", we.Workout.Sport, we.Workout.Location)),
		RenderMetric("Strategy", string(we.Result.Strategy)),
		RenderMetric("Duration", formatDuration(int(we.Result.DurationSeconds))),
		RenderMetric("Intensity", fmt.Sprintf("%.2f", we.Result.IntensityFactor)),
		RenderMetric("Estimated TSS", fmt.Sprintf("%.0f", we.Result.TSS)),
		RenderMetric("Confidence", fmt.Sprintf("%s (%.0f)", we.Result.Confidence, we.Result.ConfidenceScore)),
	}

	if we.Metrics.Calories > 0 {
		lines = append(lines, RenderMetric("Calories", fmt.Sprintf("%.0f kcal", we.Metrics.Calories)))
	}
	if we.Metrics.DistanceMeters != nil {
		lines = append(lines, RenderMetric("Distance", fmt.Sprintf("%.1f km", *we.Metrics.DistanceMeters/1000)))
	}

	if pred, err := trainload.PredictFatigue(m.history, we.Result.TSS, we.Workout.ScheduledDate); err == nil {
		lines = append(lines, "",
			RenderMetric("Form after", fmt.Sprintf("%+.1f (%s)", pred.After.TSB, pred.After.Form)),
			RenderMetric("Week ramp", fmt.Sprintf("%.1f%%", pred.Weekly.RampRatePct)))
		for _, w := range pred.Warnings {
			lines = append(lines, warningStyle.Render("! "+w))
		}
	}

	if len(we.Result.Warnings) > 0 {
		lines = append(lines, "", statusStyle.Render(strings.Join(we.Result.Warnings, "; ")))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(70).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}
