package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.todayModel.View()
	case StateWeek:
		content = m.weekModel.View()
	case StateMonth:
		content = m.monthModel.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	done, total := m.todayModel.Completed()
	summary := statusStyle.Render(fmt.Sprintf("%s · %s · %d/%d done", m.user.Label(), m.date, done, total))
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, summary)...)
}

func (m Model) viewStatus() string {
	line := statusStyle.Render(m.status)
	if m.validationWarning != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, warningStyle.Render(m.validationWarning), "  ", line)
	}
	return line
}
