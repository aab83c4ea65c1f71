package tracker

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestGoalLifecycle(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")
	read := mustHabit(t, svc, alice.ID, "Read", false)

	for d := 1; d <= 5; d++ {
		mustToggle(t, svc, read.ID, alice.ID, fmt.Sprintf("2025-03-%02d", d))
	}
	mustToggle(t, svc, read.ID, alice.ID, "2025-02-28") // previous month

	goal, err := svc.CreateGoal(alice.ID, GoalInput{Title: "Read daily", TargetValue: 5, RelatedHabits: []string{read.ID}})
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	if goal.Month != "2025-03" || goal.Unit != "check-ins" || goal.CurrentValue != 0 || goal.Completed {
		t.Errorf("CreateGoal() = %+v", goal)
	}

	p, err := svc.RecalculateGoal(goal.ID, alice.ID)
	if err != nil {
		t.Fatalf("RecalculateGoal failed: %v", err)
	}
	if p.CurrentValue != 5 || !p.Completed || p.Percent != 100 {
		t.Errorf("RecalculateGoal() = %+v", p)
	}

	target := 10.0
	updated, err := svc.UpdateGoal(goal.ID, alice.ID, GoalUpdate{TargetValue: &target})
	if err != nil {
		t.Fatalf("UpdateGoal failed: %v", err)
	}
	if updated.Completed || updated.CurrentValue != 5 {
		t.Errorf("UpdateGoal(raise target) = %+v, want incomplete with value 5", updated)
	}

	p, err = svc.SetGoalProgress(goal.ID, alice.ID, 10)
	if err != nil || !p.Completed {
		t.Errorf("SetGoalProgress() = %+v, %v", p, err)
	}

	goals, err := svc.Goals(alice.ID, "")
	if err != nil || len(goals) != 1 {
		t.Fatalf("Goals() = %+v, %v", goals, err)
	}
	if !goals[0].Completed || goals[0].TargetValue != 10 || goals[0].RelatedHabits[0] != read.ID {
		t.Errorf("stored goal = %+v", goals[0])
	}

	summary, err := svc.GoalSummary(alice.ID, "")
	if err != nil {
		t.Fatalf("GoalSummary failed: %v", err)
	}
	if summary.TotalGoals != 1 || summary.CompletedGoals != 1 || summary.DaysRemaining != 21 {
		t.Errorf("GoalSummary() = %+v", summary)
	}

	if _, err := svc.RecalculateGoal(goal.ID, bob.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("RecalculateGoal(other user) error = %v, want ErrNotAuthorized", err)
	}
	if err := svc.DeleteGoal(goal.ID, bob.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("DeleteGoal(other user) error = %v, want ErrNotAuthorized", err)
	}

	if err := svc.DeleteGoal(goal.ID, alice.ID); err != nil {
		t.Fatalf("DeleteGoal failed: %v", err)
	}
	goals, err = svc.Goals(alice.ID, "2025-03")
	if err != nil || len(goals) != 0 {
		t.Errorf("Goals() after delete = %+v, %v", goals, err)
	}
}

func TestCreateGoal_Invalid(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")
	bobs := mustHabit(t, svc, bob.ID, "Run", false)

	if _, err := svc.CreateGoal(alice.ID, GoalInput{Title: "Zero", TargetValue: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("CreateGoal(zero target) error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateGoal(alice.ID, GoalInput{Title: " ", TargetValue: 3}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("CreateGoal(empty title) error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateGoal(alice.ID, GoalInput{Title: "Steal", TargetValue: 3, RelatedHabits: []string{bobs.ID}}); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("CreateGoal(other's habit) error = %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.Goals(alice.ID, "March"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Goals(bad month) error = %v, want ErrInvalidInput", err)
	}
}

func TestRecalculateGoals(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	read := mustHabit(t, svc, alice.ID, "Read", false)
	mustToggle(t, svc, read.ID, alice.ID, "2025-03-02")

	linked, err := svc.CreateGoal(alice.ID, GoalInput{Title: "Read", TargetValue: 2, RelatedHabits: []string{read.ID}})
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	manual, err := svc.CreateGoal(alice.ID, GoalInput{Title: "Books", TargetValue: 2, Unit: "books"})
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	if _, err := svc.SetGoalProgress(manual.ID, alice.ID, 1); err != nil {
		t.Fatalf("SetGoalProgress failed: %v", err)
	}

	goals, err := svc.RecalculateGoals(alice.ID, "")
	if err != nil {
		t.Fatalf("RecalculateGoals failed: %v", err)
	}
	values := map[string]float64{}
	for _, g := range goals {
		values[g.ID] = g.CurrentValue
	}
	if values[linked.ID] != 1 || values[manual.ID] != 1 {
		t.Errorf("values = %v, want 1 for both", values)
	}
}

func TestGoalSuggestions(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")

	none, err := svc.GoalSuggestions(alice.ID)
	if err != nil || len(none) != 0 {
		t.Errorf("GoalSuggestions(no habits) = %v, %v", none, err)
	}

	read := mustHabit(t, svc, alice.ID, "Read", false)
	mustHabit(t, svc, alice.ID, "Run", false)
	mustToggle(t, svc, read.ID, alice.ID, "2025-03-01")

	got, err := svc.GoalSuggestions(alice.ID)
	if err != nil {
		t.Fatalf("GoalSuggestions failed: %v", err)
	}
	if len(got) != 4 || got[0].TargetValue != 50 || got[2].TargetValue != 14 {
		t.Errorf("GoalSuggestions() = %+v", got)
	}
}

func TestPacingDate(t *testing.T) {
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		month string
		want  string
	}{
		{"2025-03", "2025-03-10"},
		{"2025-02", "2025-02-28"},
		{"2025-04", "2025-04-01"},
	}
	for _, tt := range tests {
		if got := pacingDate(tt.month, today).Format("2006-01-02"); got != tt.want {
			t.Errorf("pacingDate(%s) = %s, want %s", tt.month, got, tt.want)
		}
	}
}
