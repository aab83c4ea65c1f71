package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/onehabit/internal/models"
)

// ToggleHabitMsg asks the board to flip today's check-in for a habit
type ToggleHabitMsg struct {
	ID    string
	Title string
}

// Item is one visible habit with today's state
type Item struct {
	Habit       models.Habit
	Done        bool
	PartnerDone bool
	Partner     bool // owned by the partner
	Streak      int
}

func (i Item) Title() string {
	if i.Done {
		return "✓ " + i.Habit.Title
	}
	return "○ " + i.Habit.Title
}

func (i Item) Description() string {
	parts := []string{"not done today"}
	if i.Done {
		parts[0] = "done today"
	}
	if i.Streak > 0 {
		parts = append(parts, fmt.Sprintf("%d day streak", i.Streak))
	}
	if i.Partner {
		parts = append(parts, "partner's habit")
	}
	if i.PartnerDone {
		parts = append(parts, "partner done")
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("x", "enter"),
			key.WithHelp("x/enter", "check in"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// SetItems replaces the board, keeping the cursor where it was
func (m *Model) SetItems(items []Item) {
	idx := m.list.Index()
	m.list.SetItems(toListItems(items))
	if idx < len(items) {
		m.list.Select(idx)
	}
}

func (m Model) Items() []Item {
	out := make([]Item, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok {
			out = append(out, i)
		}
	}
	return out
}

// Completed returns how many habits are done today and how many are shown
func (m Model) Completed() (int, int) {
	done := 0
	items := m.Items()
	for _, it := range items {
		if it.Done {
			done++
		}
	}
	return done, len(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, m.keys.Toggle) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID, Title: i.Habit.Title} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Add one with 'onehabit habit add <title>'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
