package tui

import (
	"fmt"
	"time"

	"trainlab/internal/estimate"
	"trainlab/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService) DashboardModel {
	return DashboardModel{
		queryService: qs,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.GetDashboardData(time.Now())
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{data: data}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil || len(m.data.History) == 0 {
		return "\n  No training data yet. Press '3' to sync activities."
	}

	var sections []string

	// Top row: current load state and this week side by side
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, m.renderLoadCard(), "  ", m.renderWeekCard())
	sections = append(sections, topRow)

	if len(m.data.History) > 2 {
		sections = append(sections, m.renderChart())
	}

	sections = append(sections, m.renderZoneCard())

	if m.data.NextWorkout != nil {
		sections = append(sections, m.renderNextWorkoutCard())
	}

	sections = append(sections, statusStyle.Render("Press 'r' to refresh, '2' for the planner"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderLoadCard() string {
	title := cardTitleStyle.Render("Training Load")

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.1f", m.data.Current.CTL)),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.1f", m.data.Current.ATL)),
		RenderMetric("Form (TSB)", fmt.Sprintf("%+.1f", m.data.Current.TSB)),
		"",
		statusStyle.Render(m.data.FormDescription),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderWeekCard() string {
	title := cardTitleStyle.Render("This Week vs Plan")

	if m.data.Week == nil {
		return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, title, "No plan this week"))
	}

	w := m.data.Week
	pct := "-"
	if w.PlannedTSS > 0 {
		pct = fmt.Sprintf("%.0f%%", w.CompletedTSS/w.PlannedTSS*100)
	}

	lines := []string{
		RenderMetric("Planned TSS", fmt.Sprintf("%.0f", w.PlannedTSS)),
		RenderMetric("Completed TSS", fmt.Sprintf("%.0f", w.CompletedTSS)),
		RenderMetric("Completion", pct),
		RenderMetric("Workouts", fmt.Sprintf("%d of %d", w.CompletedWorkouts, w.PlannedWorkouts)),
		"",
		statusStyleFor(string(w.Overall)).Render("Status: " + string(w.Overall)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render("Fitness (CTL) - Recent Trend")

	ctl := make([]float64, len(m.data.History))
	for i, p := range m.data.History {
		ctl[i] = p.CTL
	}

	graph := asciigraph.Plot(ctl,
		asciigraph.Height(8),
		asciigraph.Width(64),
		asciigraph.Precision(1),
	)

	legend := ""
	if len(m.data.Ideal) > 0 {
		final := m.data.Ideal[len(m.data.Ideal)-1]
		legend = statusStyle.Render(fmt.Sprintf("Plan targets CTL %.0f by %s", final.CTL, final.Date.Format("Jan 02")))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, legend))
}

func (m DashboardModel) renderZoneCard() string {
	title := cardTitleStyle.Render("Time in Zone (28 days)")

	var total float64
	for _, secs := range m.data.ZoneSeconds {
		total += secs
	}
	if total == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No completed activities"))
	}

	var lines []string
	for i, secs := range m.data.ZoneSeconds {
		if secs == 0 {
			continue
		}
		zone := estimate.Zone(i)
		share := secs / total * 100
		lines = append(lines, fmt.Sprintf("%-14s %6s  %4.0f%%", zone.String(), formatDuration(int(secs)), share))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderNextWorkoutCard() string {
	title := cardTitleStyle.Render("Next Workout")

	we := m.data.NextWorkout
	lines := []string{
		RenderMetric("Name", we.Workout.Name),
		RenderMetric("When", we.Workout.ScheduledDate.Format("Mon Jan 02")),
		RenderMetric("Estimated TSS", fmt.Sprintf("%.0f (%s confidence)", we.Result.TSS, we.Result.Confidence)),
	}

	if pred := m.data.Prediction; pred != nil {
		lines = append(lines,
			RenderMetric("Form after", fmt.Sprintf("%+.1f (%s)", pred.After.TSB, pred.After.Form)))
		for _, w := range pred.Warnings {
			lines = append(lines, warningStyle.Render("! "+w))
		}
		for _, r := range pred.Recommendations {
			lines = append(lines, statusStyle.Render("- "+r))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	min := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, min)
	}
	return fmt.Sprintf("%dm", min)
}
