package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/onehabit/internal/models"
)

func TestValidateTitle(t *testing.T) {
	got, err := ValidateTitle("  Read 20 pages ")
	if err != nil || got != "Read 20 pages" {
		t.Errorf("ValidateTitle() = %q, %v", got, err)
	}

	for _, bad := range []string{"", "   ", strings.Repeat("x", 101)} {
		if _, err := ValidateTitle(bad); !errors.Is(err, ErrInvalid) {
			t.Errorf("ValidateTitle(%q) error = %v, want ErrInvalid", bad, err)
		}
	}
}

func TestInputValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"valid date", ValidateDate("2025-02-28"), false},
		{"impossible date", ValidateDate("2025-02-30"), true},
		{"wrong date format", ValidateDate("02/28/2025"), true},
		{"valid month", ValidateMonth("2025-12"), false},
		{"invalid month", ValidateMonth("2025-13"), true},
		{"numeric invite code", ValidateInviteCode("123456"), false},
		{"alphanumeric invite code", ValidateInviteCode("ab12CD"), false},
		{"short invite code", ValidateInviteCode("12345"), true},
		{"invite code with symbol", ValidateInviteCode("12345!"), true},
		{"positive target", ValidateGoalTarget(1), false},
		{"zero target", ValidateGoalTarget(0), true},
		{"zero progress", ValidateProgress(0), false},
		{"negative progress", ValidateProgress(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", tt.err, tt.wantErr)
			}
			if tt.err != nil && !errors.Is(tt.err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", tt.err)
			}
		})
	}
}

func hasConflict(result ValidationResult, ct ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == ct {
			return true
		}
	}
	return false
}

func TestValidate_Clean(t *testing.T) {
	result := New().Validate(Snapshot{
		User:     models.User{ID: "alice"},
		Habits:   []models.Habit{{ID: "h1", OwnerID: "alice", Title: "Read", Active: true}},
		CheckIns: []models.CheckIn{{ID: "c1", HabitID: "h1", Date: "2025-03-01", Mood: models.MoodPtr(models.MoodGood)}},
		Goals:    []models.MonthlyGoal{{ID: "g1", Title: "Read", Month: "2025-03", RelatedHabits: []string{"h1"}}},
	})

	if result.HasConflicts() {
		t.Errorf("unexpected conflicts: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}
}

func TestValidate_DetectsConflicts(t *testing.T) {
	pair := "pair-1"
	result := New().Validate(Snapshot{
		User: models.User{ID: "alice"},
		Habits: []models.Habit{
			{ID: "h1", OwnerID: "alice", Title: "Read", Active: true},
			{ID: "h2", OwnerID: "alice", Title: " read ", Active: true},
			{ID: "h3", OwnerID: "alice", Title: "Walk", Active: true, PairID: &pair},
		},
		CheckIns: []models.CheckIn{
			{ID: "c1", HabitID: "h1", Date: "2025-3-1"},
			{ID: "c2", HabitID: "h1", Date: "2025-03-02", Mood: models.MoodPtr(models.Mood("ecstatic"))},
			{ID: "c3", HabitID: "gone", Date: "2025-03-02"},
		},
		Goals: []models.MonthlyGoal{
			{ID: "g1", Title: "Bad month", Month: "March"},
			{ID: "g2", Title: "Missing habit", Month: "2025-03", RelatedHabits: []string{"gone"}},
		},
	})

	for _, ct := range []ConflictType{
		ConflictDuplicateHabitTitle,
		ConflictStalePairHabit,
		ConflictInvalidDate,
		ConflictInvalidMood,
		ConflictOrphanCheckIn,
		ConflictInvalidGoalMonth,
		ConflictUnknownGoalHabit,
	} {
		if !hasConflict(result, ct) {
			t.Errorf("expected a %s conflict", ct)
		}
	}

	if !strings.HasPrefix(result.FormatReport(), "Conflicts detected:\n") {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}
}
