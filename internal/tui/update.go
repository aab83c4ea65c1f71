package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/onehabit/internal/tracker"
	"github.com/julianstephens/onehabit/internal/tui/components/today"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, status line and help
		contentHeight := msg.Height - 5

		h, v := docStyle.GetFrameSize()
		m.todayModel.SetSize(msg.Width-h, contentHeight-v)
		m.weekModel.SetSize(msg.Width-h, contentHeight-v)
		m.monthModel.SetSize(msg.Width-h, contentHeight-v)
		return m, nil

	case today.ToggleHabitMsg:
		checkIn, err := m.svc.ToggleCheckIn(tracker.Toggle{HabitID: msg.ID, UserID: m.user.ID})
		if err != nil {
			m.status = fmt.Sprintf("check-in failed: %v", err)
			return m, nil
		}
		m.refresh()
		if checkIn.Checked {
			m.status = fmt.Sprintf("Checked in %q for %s", msg.Title, checkIn.Date)
		} else {
			m.status = fmt.Sprintf("Unchecked %q for %s", msg.Title, checkIn.Date)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case StateWeek:
		m.weekModel, cmd = m.weekModel.Update(msg)
	case StateMonth:
		m.monthModel, cmd = m.monthModel.Update(msg)
	}
	return m, cmd
}
