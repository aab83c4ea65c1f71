package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/render"
	"github.com/julianstephens/onehabit/internal/tracker"
	"github.com/julianstephens/onehabit/internal/tui/components/calendar"
	"github.com/julianstephens/onehabit/internal/tui/components/today"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateWeek
	StateMonth
)

var tabTitles = []string{"Today", "Week", "Month"}

type Model struct {
	svc               *tracker.Service
	user              models.User
	state             SessionState
	keys              KeyMap
	help              help.Model
	todayModel        today.Model
	weekModel         calendar.Model
	monthModel        calendar.Model
	date              string
	status            string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(svc *tracker.Service, user models.User) Model {
	m := Model{
		svc:        svc,
		user:       user,
		state:      StateToday,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		todayModel: today.New(nil, 0, 0),
		weekModel:  calendar.New("No habits to chart yet.", 0, 0),
		monthModel: calendar.New("No habits to chart yet.", 0, 0),
	}
	m.refresh()
	return m
}

// Run shows the board full screen until the user quits
func Run(svc *tracker.Service, user models.User) error {
	p := tea.NewProgram(NewModel(svc, user), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateToday {
		keys = append(keys, m.keys.Toggle)
	}
	return append(keys, m.keys.Refresh)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateToday {
		actions = []key.Binding{m.keys.Toggle}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads every tab from the store. Errors end up in the status line.
func (m *Model) refresh() {
	day, err := m.svc.Today(m.user)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.date = day.Format("2006-01-02")

	items, err := m.loadBoard()
	if err != nil {
		m.status = fmt.Sprintf("failed to load habits: %v", err)
		return
	}
	m.todayModel.SetItems(items)

	if len(items) == 0 {
		m.weekModel.SetContent("")
		m.monthModel.SetContent("")
	} else {
		if trend, err := m.svc.WeeklyTrend(m.user.ID); err == nil {
			m.weekModel.SetContent(render.Trend(trend))
		}
		if report, err := m.svc.MonthStats(m.user.ID, 0, 0); err == nil {
			m.monthModel.SetContent(render.MonthCalendar(report.Year, report.Month, report.Stats) +
				"\n\n" + render.Weeks(report.Weeks))
		}
	}

	m.updateValidationStatus()
}

func (m *Model) loadBoard() ([]today.Item, error) {
	habits, err := m.svc.UserHabits(m.user.ID)
	if err != nil {
		return nil, err
	}
	checkIns, err := m.svc.TodaysCheckInsForPair(m.user.ID)
	if err != nil {
		return nil, err
	}

	mine := map[string]bool{}
	partner := map[string]bool{}
	for _, ci := range checkIns {
		if !ci.Checked {
			continue
		}
		if ci.UserID == m.user.ID {
			mine[ci.HabitID] = true
		} else {
			partner[ci.HabitID] = true
		}
	}

	items := make([]today.Item, 0, len(habits))
	for _, h := range habits {
		item := today.Item{
			Habit:       h,
			Done:        mine[h.ID],
			PartnerDone: h.IsShared() && partner[h.ID],
			Partner:     h.OwnerID != m.user.ID,
		}
		if stats, err := m.svc.HabitStats(h.ID, m.user.ID); err == nil {
			item.Streak = stats.CurrentStreak
		}
		items = append(items, item)
	}
	return items, nil
}

// updateValidationStatus runs the integrity check and updates the warning message
func (m *Model) updateValidationStatus() {
	result, err := m.svc.Check(m.user.ID)
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d integrity warning(s), run 'onehabit validate'", len(result.Conflicts))
		return
	}
	m.validationWarning = ""
}
