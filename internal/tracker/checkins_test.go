package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/onehabit/internal/models"
)

func TestToggleCheckIn_Semantics(t *testing.T) {
	svc, clock := setupService(t)
	alice := mustRegister(t, svc, "alice")
	habit := mustHabit(t, svc, alice.ID, "Read", false)

	first, err := svc.ToggleCheckIn(Toggle{
		HabitID: habit.ID,
		UserID:  alice.ID,
		Date:    "2025-03-09",
		Note:    "chapter 3",
		Mood:    models.MoodPtr(models.MoodGood),
	})
	if err != nil {
		t.Fatalf("ToggleCheckIn failed: %v", err)
	}
	if !first.Checked || first.Note != "chapter 3" || first.SyncedWithPartner {
		t.Errorf("new check-in = %+v", first)
	}
	if first.Mood == nil || *first.Mood != models.MoodGood {
		t.Errorf("new check-in mood = %v, want good", first.Mood)
	}
	if first.CompletedAt == nil || !first.CompletedAt.Equal(testNow) {
		t.Errorf("CompletedAt = %v, want %v", first.CompletedAt, testNow)
	}

	// Turning off keeps the mood and note, ignoring the new mood
	clock.Set(testNow.Add(time.Hour))
	second, err := svc.ToggleCheckIn(Toggle{
		HabitID: habit.ID,
		UserID:  alice.ID,
		Date:    "2025-03-09",
		Mood:    models.MoodPtr(models.MoodBad),
		Synced:  true,
	})
	if err != nil {
		t.Fatalf("second ToggleCheckIn failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("toggle created a new row: %s != %s", second.ID, first.ID)
	}
	if second.Checked {
		t.Error("second toggle left the check-in checked")
	}
	if second.Note != "chapter 3" || *second.Mood != models.MoodGood || second.SyncedWithPartner {
		t.Errorf("unchecking changed fields: %+v", second)
	}
	if !second.CompletedAt.Equal(testNow) {
		t.Errorf("CompletedAt changed on uncheck: %v", second.CompletedAt)
	}

	// Turning back on stamps completion, mood and sync
	third, err := svc.ToggleCheckIn(Toggle{
		HabitID: habit.ID,
		UserID:  alice.ID,
		Date:    "2025-03-09",
		Note:    "chapter 4",
		Mood:    models.MoodPtr(models.MoodExcellent),
		Synced:  true,
	})
	if err != nil {
		t.Fatalf("third ToggleCheckIn failed: %v", err)
	}
	if !third.Checked || third.Note != "chapter 4" || *third.Mood != models.MoodExcellent || !third.SyncedWithPartner {
		t.Errorf("re-checked check-in = %+v", third)
	}
	if !third.CompletedAt.Equal(testNow.Add(time.Hour)) {
		t.Errorf("CompletedAt = %v, want %v", third.CompletedAt, testNow.Add(time.Hour))
	}
}

func TestToggleCheckIn_DefaultsToToday(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	habit := mustHabit(t, svc, alice.ID, "Read", false)

	c := mustToggle(t, svc, habit.ID, alice.ID, "")
	if c.Date != "2025-03-10" {
		t.Errorf("Date = %s, want 2025-03-10", c.Date)
	}

	today, err := svc.TodaysCheckIns(alice.ID)
	if err != nil {
		t.Fatalf("TodaysCheckIns failed: %v", err)
	}
	if len(today) != 1 || today[0].ID != c.ID {
		t.Errorf("TodaysCheckIns() = %+v", today)
	}
}

func TestToggleCheckIn_Invalid(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")
	habit := mustHabit(t, svc, alice.ID, "Read", false)

	tests := []struct {
		name string
		in   Toggle
		want error
	}{
		{"bad date", Toggle{HabitID: habit.ID, UserID: alice.ID, Date: "2025-13-01"}, ErrInvalidInput},
		{"bad mood", Toggle{HabitID: habit.ID, UserID: alice.ID, Mood: models.MoodPtr("meh")}, ErrInvalidInput},
		{"other user's habit", Toggle{HabitID: habit.ID, UserID: bob.ID}, ErrNotAuthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ToggleCheckIn(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("ToggleCheckIn() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateNoteAndMood(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")
	habit := mustHabit(t, svc, alice.ID, "Read", false)
	c := mustToggle(t, svc, habit.ID, alice.ID, "2025-03-10")

	updated, err := svc.UpdateNote(c.ID, alice.ID, "finished the book")
	if err != nil || updated.Note != "finished the book" {
		t.Errorf("UpdateNote() = %+v, %v", updated, err)
	}
	updated, err = svc.UpdateMood(c.ID, alice.ID, models.MoodExcellent)
	if err != nil || updated.Mood == nil || *updated.Mood != models.MoodExcellent {
		t.Errorf("UpdateMood() = %+v, %v", updated, err)
	}
	if !updated.Checked {
		t.Error("UpdateMood unchecked the check-in")
	}

	if _, err := svc.UpdateNote(c.ID, bob.ID, "hijack"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("UpdateNote(other user) error = %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.UpdateMood(c.ID, alice.ID, models.Mood("meh")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("UpdateMood(unknown) error = %v, want ErrInvalidInput", err)
	}
}

func TestMonthCheckIns(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	habit := mustHabit(t, svc, alice.ID, "Read", false)
	for _, d := range []string{"2025-02-28", "2025-03-01", "2025-03-31", "2025-04-01"} {
		mustToggle(t, svc, habit.ID, alice.ID, d)
	}

	march, err := svc.MonthCheckIns(alice.ID, 2025, time.March)
	if err != nil {
		t.Fatalf("MonthCheckIns failed: %v", err)
	}
	if len(march) != 2 || march[0].Date != "2025-03-01" || march[1].Date != "2025-03-31" {
		t.Errorf("MonthCheckIns() = %+v", march)
	}

	onDate, err := svc.CheckInsForDate(alice.ID, "2025-02-28")
	if err != nil || len(onDate) != 1 {
		t.Errorf("CheckInsForDate() = %+v, %v", onDate, err)
	}

	if _, err := svc.MonthCheckIns(alice.ID, 2025, 13); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("MonthCheckIns(13) error = %v, want ErrInvalidInput", err)
	}
}

func TestTodaysCheckInsForPair(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")

	solo := mustHabit(t, svc, alice.ID, "Read", false)
	mustToggle(t, svc, solo.ID, alice.ID, "")

	before, err := svc.TodaysCheckInsForPair(alice.ID)
	if err != nil || len(before) != 1 {
		t.Fatalf("TodaysCheckInsForPair(unpaired) = %+v, %v", before, err)
	}

	if _, err := svc.CreatePair(alice.ID, "654321"); err != nil {
		t.Fatalf("CreatePair failed: %v", err)
	}
	if _, err := svc.JoinPair(bob.ID, "654321"); err != nil {
		t.Fatalf("JoinPair failed: %v", err)
	}
	shared := mustHabit(t, svc, alice.ID, "Walk", true)
	mustToggle(t, svc, shared.ID, bob.ID, "")
	mustToggle(t, svc, shared.ID, bob.ID, "2025-03-09") // not today

	all, err := svc.TodaysCheckInsForPair(alice.ID)
	if err != nil {
		t.Fatalf("TodaysCheckInsForPair failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(TodaysCheckInsForPair) = %d, want 2", len(all))
	}
}
