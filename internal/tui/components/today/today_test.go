package today

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/onehabit/internal/models"
)

func TestItem(t *testing.T) {
	tests := []struct {
		name      string
		item      Item
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "open",
			item:      Item{Habit: models.Habit{Title: "Read"}},
			wantTitle: "○ Read",
			wantDesc:  "not done today",
		},
		{
			name:      "done with streak",
			item:      Item{Habit: models.Habit{Title: "Read"}, Done: true, Streak: 4},
			wantTitle: "✓ Read",
			wantDesc:  "done today · 4 day streak",
		},
		{
			name:      "partner habit",
			item:      Item{Habit: models.Habit{Title: "Walk"}, Partner: true, PartnerDone: true},
			wantTitle: "○ Walk",
			wantDesc:  "not done today · partner's habit · partner done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Title(); got != tt.wantTitle {
				t.Errorf("Title() = %q, want %q", got, tt.wantTitle)
			}
			if got := tt.item.Description(); got != tt.wantDesc {
				t.Errorf("Description() = %q, want %q", got, tt.wantDesc)
			}
			if got := tt.item.FilterValue(); got != tt.item.Habit.Title {
				t.Errorf("FilterValue() = %q", got)
			}
		})
	}
}

func TestModel_ToggleEmitsMessage(t *testing.T) {
	m := New([]Item{
		{Habit: models.Habit{ID: "habit-1", Title: "Read"}},
		{Habit: models.Habit{ID: "habit-2", Title: "Run"}, Done: true},
	}, 80, 20)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd == nil {
		t.Fatal("expected a command for the toggle key")
	}
	msg, ok := cmd().(ToggleHabitMsg)
	if !ok {
		t.Fatalf("command returned %T, want ToggleHabitMsg", cmd())
	}
	if msg.ID != "habit-1" || msg.Title != "Read" {
		t.Errorf("ToggleHabitMsg = %+v", msg)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command for enter")
	}
	if _, ok := cmd().(ToggleHabitMsg); !ok {
		t.Error("enter did not toggle")
	}
}

func TestModel_ToggleOnEmptyBoard(t *testing.T) {
	m := New(nil, 80, 20)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}); cmd != nil {
		t.Error("expected no command without habits")
	}
	if !strings.Contains(m.View(), "No habits yet.") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestModel_Completed(t *testing.T) {
	m := New(nil, 80, 20)
	m.SetItems([]Item{
		{Habit: models.Habit{ID: "habit-1"}, Done: true},
		{Habit: models.Habit{ID: "habit-2"}},
		{Habit: models.Habit{ID: "habit-3"}, Done: true},
	})

	done, total := m.Completed()
	if done != 2 || total != 3 {
		t.Errorf("Completed() = %d/%d, want 2/3", done, total)
	}
	if len(m.Items()) != 3 {
		t.Errorf("len(Items()) = %d, want 3", len(m.Items()))
	}
}
