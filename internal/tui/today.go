package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/output"
	"github.com/manav03panchal/dayaim/internal/planner"
)

// tickMsg is sent when the refresh timer fires.
type tickMsg time.Time

// refreshMsg asks the model to reload the current day.
type refreshMsg struct{}

// messageExpiredMsg is sent when a status message's display time is up.
type messageExpiredMsg struct{}

// TodayConfig holds configuration for the dashboard.
type TodayConfig struct {
	Planner *planner.Planner
	// Today returns the current planning date.
	Today func() model.Date
	// Now is used for message expiry. Nil uses time.Now.
	Now             func() time.Time
	RefreshInterval time.Duration
}

// TodayModel is the bubbletea model for the day dashboard.
type TodayModel struct {
	planner *planner.Planner
	today   func() model.Date
	now     func() time.Time

	// lastToday is the planning date seen at the previous tick.
	lastToday model.Date
	date      model.Date
	day       *planner.Day
	cursor    int

	keys KeyMap
	help help.Model

	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	refreshInterval time.Duration
}

// NewTodayModel creates a dashboard opened on the current planning date.
func NewTodayModel(cfg TodayConfig) *TodayModel {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	today := cfg.Today()
	m := &TodayModel{
		planner:         cfg.Planner,
		today:           cfg.Today,
		now:             cfg.Now,
		lastToday:       today,
		date:            today,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		refreshInterval: cfg.RefreshInterval,
	}
	m.loadData()
	return m
}

// Date returns the date being shown.
func (m *TodayModel) Date() model.Date {
	return m.date
}

// Day returns the loaded day view.
func (m *TodayModel) Day() *planner.Day {
	return m.day
}

// Init initializes the model.
func (m *TodayModel) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.refreshCmd())
}

// Update handles messages and updates the model.
func (m *TodayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.tickCmd(), m.checkRollover())

	case messageExpiredMsg:
		// A later message may have replaced the one this timer was for.
		if !m.messageExp.IsZero() && !m.now().Before(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, nil

	case refreshMsg:
		m.loadData()
		return m, nil
	}

	return m, nil
}

// checkRollover follows the planning date forward when the day changes,
// unless the user has stepped to another date.
func (m *TodayModel) checkRollover() tea.Cmd {
	today := m.today()
	if today == m.lastToday {
		return nil
	}
	var cmd tea.Cmd
	if m.date == m.lastToday {
		m.date = today
		m.cursor = 0
		cmd = m.setMessage("New day: "+output.FormatDayHeading(today), 5*time.Second)
	}
	m.lastToday = today
	m.loadData()
	return cmd
}

func (m *TodayModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()

	case key.Matches(msg, m.keys.Missed):
		return m, m.markMissed()

	case key.Matches(msg, m.keys.PrevDay):
		m.setDate(m.date.AddDays(-1))

	case key.Matches(msg, m.keys.NextDay):
		m.setDate(m.date.AddDays(1))

	case key.Matches(msg, m.keys.Today):
		m.setDate(m.today())

	case key.Matches(msg, m.keys.Refresh):
		m.loadData()
		return m, m.setMessage("Refreshed", time.Second)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *TodayModel) setDate(d model.Date) {
	m.date = d
	m.cursor = 0
	m.loadData()
}

func (m *TodayModel) itemCount() int {
	if m.day == nil {
		return 0
	}
	return len(m.day.Tasks) + len(m.day.Habits)
}

// selected returns the task or habit under the cursor.
func (m *TodayModel) selected() (*planner.TaskView, *planner.HabitView) {
	if m.day == nil || m.cursor < 0 {
		return nil, nil
	}
	if m.cursor < len(m.day.Tasks) {
		return &m.day.Tasks[m.cursor], nil
	}
	if i := m.cursor - len(m.day.Tasks); i < len(m.day.Habits) {
		return nil, &m.day.Habits[i]
	}
	return nil, nil
}

func (m *TodayModel) toggleSelected() {
	task, habit := m.selected()
	var err error
	switch {
	case task != nil:
		_, err = m.planner.SetTaskDone(task.Task.ID, !task.Task.IsDone)
	case habit != nil && habit.Done():
		err = m.planner.ClearHabitLog(habit.Habit.ID, m.date)
	case habit != nil:
		_, err = m.planner.LogHabit(habit.Habit.ID, m.date, model.HabitLogDone)
	default:
		return
	}
	m.afterAction(err)
}

func (m *TodayModel) markMissed() tea.Cmd {
	_, habit := m.selected()
	if habit == nil {
		return m.setMessage("Select a habit to mark it missed", 2*time.Second)
	}
	_, err := m.planner.LogHabit(habit.Habit.ID, m.date, model.HabitLogMissed)
	m.afterAction(err)
	return nil
}

func (m *TodayModel) afterAction(err error) {
	if err != nil {
		m.err = err
		return
	}
	m.loadData()
}

// View renders the dashboard.
func (m *TodayModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{m.renderHeader()}

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	if m.day != nil {
		plan := &PlanComponent{Day: m.day, Today: m.lastToday, Width: m.width}
		list := &ListComponent{Day: m.day, Cursor: m.cursor, Width: m.width}
		sections = append(sections, plan.View(), list.View())
	}

	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *TodayModel) renderHeader() string {
	title := StyleTitle.Render("dayaim")
	date := StyleSubtitle.Render(output.FormatDayHeading(m.date))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", date) + "\n"
}

// loadData reloads the day view from the store.
func (m *TodayModel) loadData() {
	m.day = m.planner.Day(m.date)
	if n := m.itemCount(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.err = nil
}

// setMessage shows msg for d and returns the timer that clears it.
func (m *TodayModel) setMessage(msg string, d time.Duration) tea.Cmd {
	m.message = msg
	m.messageExp = m.now().Add(d)
	return tea.Tick(d, func(time.Time) tea.Msg {
		return messageExpiredMsg{}
	})
}

func (m *TodayModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *TodayModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard TUI.
func Run(cfg TodayConfig) error {
	p := tea.NewProgram(NewTodayModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
