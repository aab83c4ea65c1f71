package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/onehabit/internal/cli/clitest"
	"github.com/julianstephens/onehabit/internal/tui/components/today"
)

func TestNewModel_LoadsBoard(t *testing.T) {
	env := clitest.New(t)
	alice := env.Register(t, "alice")
	bob := env.Register(t, "bob")
	if _, err := env.Ctx.Tracker.CreatePair(alice.ID, "ABC123"); err != nil {
		t.Fatalf("CreatePair failed: %v", err)
	}
	if _, err := env.Ctx.Tracker.JoinPair(bob.ID, "ABC123"); err != nil {
		t.Fatalf("JoinPair failed: %v", err)
	}
	read := env.Habit(t, alice.ID, "Read", false)
	walk := env.Habit(t, bob.ID, "Walk", true)
	env.CheckIn(t, read.ID, alice.ID, "2025-03-09")
	env.CheckIn(t, read.ID, alice.ID, "2025-03-10")
	env.CheckIn(t, walk.ID, bob.ID, "2025-03-10")

	user, err := env.Ctx.Tracker.ResolveUser("alice")
	if err != nil {
		t.Fatalf("ResolveUser failed: %v", err)
	}
	m := NewModel(env.Ctx.Tracker, user)

	if m.date != "2025-03-10" {
		t.Errorf("date = %q, want 2025-03-10", m.date)
	}
	items := m.todayModel.Items()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	byTitle := map[string]today.Item{}
	for _, it := range items {
		byTitle[it.Habit.Title] = it
	}
	if r := byTitle["Read"]; !r.Done || r.Streak != 2 || r.Partner {
		t.Errorf("Read item = %+v", r)
	}
	if w := byTitle["Walk"]; w.Done || !w.Partner || !w.PartnerDone {
		t.Errorf("Walk item = %+v", w)
	}
	if done, total := m.todayModel.Completed(); done != 1 || total != 2 {
		t.Errorf("Completed() = %d/%d, want 1/2", done, total)
	}
	if m.weekModel.Content() == "" || m.monthModel.Content() == "" {
		t.Error("expected week and month content")
	}
	if m.validationWarning != "" {
		t.Errorf("validationWarning = %q, want none", m.validationWarning)
	}
}

func TestModel_ToggleHabit(t *testing.T) {
	env := clitest.New(t)
	alice := env.Register(t, "alice")
	read := env.Habit(t, alice.ID, "Read", false)

	m := NewModel(env.Ctx.Tracker, alice)

	updated, _ := m.Update(today.ToggleHabitMsg{ID: read.ID, Title: read.Title})
	m = updated.(Model)
	if m.status != `Checked in "Read" for 2025-03-10` {
		t.Errorf("status = %q", m.status)
	}
	if done, _ := m.todayModel.Completed(); done != 1 {
		t.Errorf("done = %d after check-in, want 1", done)
	}

	updated, _ = m.Update(today.ToggleHabitMsg{ID: read.ID, Title: read.Title})
	m = updated.(Model)
	if m.status != `Unchecked "Read" for 2025-03-10` {
		t.Errorf("status = %q", m.status)
	}
	if done, _ := m.todayModel.Completed(); done != 0 {
		t.Errorf("done = %d after uncheck, want 0", done)
	}

	updated, _ = m.Update(today.ToggleHabitMsg{ID: "missing", Title: "Gone"})
	m = updated.(Model)
	if !strings.HasPrefix(m.status, "check-in failed:") {
		t.Errorf("status = %q, want a failure", m.status)
	}
}

func TestModel_TabCycling(t *testing.T) {
	env := clitest.New(t)
	alice := env.Register(t, "alice")
	m := NewModel(env.Ctx.Tracker, alice)

	steps := []struct {
		msg  tea.KeyMsg
		want SessionState
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, StateWeek},
		{tea.KeyMsg{Type: tea.KeyTab}, StateMonth},
		{tea.KeyMsg{Type: tea.KeyTab}, StateToday},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, StateMonth},
	}
	for i, step := range steps {
		updated, _ := m.Update(step.msg)
		m = updated.(Model)
		if m.state != step.want {
			t.Errorf("step %d: state = %d, want %d", i, m.state, step.want)
		}
	}
}

func TestModel_HelpAndQuit(t *testing.T) {
	env := clitest.New(t)
	alice := env.Register(t, "alice")
	m := NewModel(env.Ctx.Tracker, alice)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = updated.(Model)
	if !m.help.ShowAll {
		t.Error("help.ShowAll = false after '?'")
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)
	if !m.quitting {
		t.Error("quitting = false after 'q'")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("command returned %T, want tea.QuitMsg", cmd())
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModel_View(t *testing.T) {
	env := clitest.New(t)
	alice := env.Register(t, "alice")
	env.Habit(t, alice.ID, "Read", false)

	m := NewModel(env.Ctx.Tracker, alice)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"Today", "Week", "Month", "alice", "2025-03-10", "0/1 done", "Read"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModel_EmptyBoard(t *testing.T) {
	env := clitest.New(t)
	alice := env.Register(t, "alice")
	m := NewModel(env.Ctx.Tracker, alice)

	if !strings.Contains(m.View(), "No habits yet.") {
		t.Errorf("View() = %q", m.View())
	}
	if m.weekModel.Content() != "" {
		t.Errorf("week content = %q, want empty", m.weekModel.Content())
	}
}
