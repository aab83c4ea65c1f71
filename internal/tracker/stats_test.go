package tracker

import (
	"errors"
	"testing"
	"time"
)

func TestHabitStats(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	habit := mustHabit(t, svc, alice.ID, "Read", false)

	for _, d := range []string{"2025-03-10", "2025-03-09", "2025-03-08", "2025-03-07"} {
		mustToggle(t, svc, habit.ID, alice.ID, d)
	}
	mustToggle(t, svc, habit.ID, alice.ID, "2025-03-07") // now unchecked

	stats, err := svc.HabitStats(habit.ID, alice.ID)
	if err != nil {
		t.Fatalf("HabitStats failed: %v", err)
	}
	if stats.TotalCheckIns != 4 || stats.CompletedCount != 3 || stats.CompletionRate != 75 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.CurrentStreak != 3 || stats.BestStreak != 3 {
		t.Errorf("streaks current=%d best=%d, want 3 and 3", stats.CurrentStreak, stats.BestStreak)
	}
}

func TestHabitInsights(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	habit := mustHabit(t, svc, alice.ID, "Read", false)
	mustToggle(t, svc, habit.ID, alice.ID, "2025-03-10")
	mustToggle(t, svc, habit.ID, alice.ID, "2025-01-01") // outside the window

	report, err := svc.HabitInsights(habit.ID, alice.ID)
	if err != nil {
		t.Fatalf("HabitInsights failed: %v", err)
	}
	if report.WindowDays != 30 {
		t.Errorf("WindowDays = %d, want 30", report.WindowDays)
	}
	if report.DayPatterns["monday"].Total != 1 || len(report.DayPatterns) != 1 {
		t.Errorf("DayPatterns = %v", report.DayPatterns)
	}
	if report.RecentCompletionRate != 100 {
		t.Errorf("RecentCompletionRate = %d, want 100", report.RecentCompletionRate)
	}
}

func TestMonthStats_CountsVisibleHabitsOnly(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	read := mustHabit(t, svc, alice.ID, "Read", false)
	run := mustHabit(t, svc, alice.ID, "Run", false)
	old := mustHabit(t, svc, alice.ID, "Old", false)

	for _, d := range []string{"2025-03-01", "2025-03-02", "2025-03-03"} {
		mustToggle(t, svc, read.ID, alice.ID, d)
		mustToggle(t, svc, run.ID, alice.ID, d)
	}
	mustToggle(t, svc, old.ID, alice.ID, "2025-03-04")
	if err := svc.DeleteHabit(old.ID, alice.ID); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}

	report, err := svc.MonthStats(alice.ID, 0, 0)
	if err != nil {
		t.Fatalf("MonthStats failed: %v", err)
	}
	if report.Year != 2025 || report.Month != time.March {
		t.Errorf("month = %d-%d, want 2025-3", report.Year, report.Month)
	}
	if len(report.Habits) != 2 {
		t.Errorf("len(Habits) = %d, want 2", len(report.Habits))
	}
	if report.Stats.PerfectDays != 3 || report.Stats.TotalCompleted != 6 {
		t.Errorf("PerfectDays=%d TotalCompleted=%d, want 3 and 6", report.Stats.PerfectDays, report.Stats.TotalCompleted)
	}
	if report.Stats.DaysInMonth != 31 || len(report.Weeks) == 0 {
		t.Errorf("DaysInMonth=%d weeks=%d", report.Stats.DaysInMonth, len(report.Weeks))
	}
}

func TestWeeklyTrend(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	read := mustHabit(t, svc, alice.ID, "Read", false)
	mustHabit(t, svc, alice.ID, "Run", false)
	mustToggle(t, svc, read.ID, alice.ID, "2025-03-10")
	mustToggle(t, svc, read.ID, alice.ID, "2025-03-03") // before the window

	trend, err := svc.WeeklyTrend(alice.ID)
	if err != nil {
		t.Fatalf("WeeklyTrend failed: %v", err)
	}
	if len(trend) != 7 {
		t.Fatalf("len(trend) = %d, want 7", len(trend))
	}
	if trend[0].Date != "2025-03-04" || trend[0].Rate != 0 {
		t.Errorf("trend[0] = %+v", trend[0])
	}
	if trend[6].Date != "2025-03-10" || trend[6].Rate != 50 {
		t.Errorf("trend[6] = %+v", trend[6])
	}
}

func TestProfileStats(t *testing.T) {
	svc, clock := setupService(t)
	clock.Set(time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC))
	alice := mustRegister(t, svc, "alice")
	habit := mustHabit(t, svc, alice.ID, "Read", false)
	clock.Set(testNow)

	mustToggle(t, svc, habit.ID, alice.ID, "2025-03-10")
	mustToggle(t, svc, habit.ID, alice.ID, "2025-03-09")

	stats, err := svc.ProfileStats(alice.ID)
	if err != nil {
		t.Fatalf("ProfileStats failed: %v", err)
	}
	if stats.TotalHabits != 1 || stats.TotalCheckIns != 2 {
		t.Errorf("totals = %+v", stats)
	}
	if stats.CurrentStreak != 2 || stats.BestStreak != 2 {
		t.Errorf("streaks = %+v", stats)
	}
	if stats.DaysSinceJoining != 9 {
		t.Errorf("DaysSinceJoining = %d, want 9", stats.DaysSinceJoining)
	}
	// 2 / (1 * 9) = 22%
	if stats.CompletionRate != 22 {
		t.Errorf("CompletionRate = %d, want 22", stats.CompletionRate)
	}

	consistency, err := svc.Consistency(alice.ID)
	if err != nil {
		t.Fatalf("Consistency failed: %v", err)
	}
	if consistency.MostConsistent == nil || consistency.MostConsistent.HabitID != habit.ID {
		t.Errorf("MostConsistent = %+v", consistency.MostConsistent)
	}
}

func TestPartnerSync(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")
	solo := mustHabit(t, svc, alice.ID, "Read", false)

	if _, err := svc.PartnerSync(solo.ID, alice.ID); !errors.Is(err, ErrNotPaired) {
		t.Errorf("PartnerSync(unpaired) error = %v, want ErrNotPaired", err)
	}

	if _, err := svc.CreatePair(alice.ID, "111111"); err != nil {
		t.Fatalf("CreatePair failed: %v", err)
	}
	shared := mustHabit(t, svc, alice.ID, "Walk", true)

	if _, err := svc.PartnerSync(shared.ID, alice.ID); !errors.Is(err, ErrNotPaired) {
		t.Errorf("PartnerSync(no partner yet) error = %v, want ErrNotPaired", err)
	}

	if _, err := svc.JoinPair(bob.ID, "111111"); err != nil {
		t.Fatalf("JoinPair failed: %v", err)
	}
	if _, err := svc.PartnerSync(solo.ID, alice.ID); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("PartnerSync(solo habit) error = %v, want ErrInvalidInput", err)
	}

	mustToggle(t, svc, shared.ID, alice.ID, "")
	report, err := svc.PartnerSync(shared.ID, alice.ID)
	if err != nil {
		t.Fatalf("PartnerSync failed: %v", err)
	}
	if !report.UserCompleted || report.PartnerCompleted || report.BothCompleted {
		t.Errorf("before partner = %+v", report.SyncStatus)
	}
	if report.Partner.Name != "bob" || report.Date != "2025-03-10" {
		t.Errorf("partner=%s date=%s", report.Partner.Name, report.Date)
	}

	mustToggle(t, svc, shared.ID, bob.ID, "")
	report, err = svc.PartnerSync(shared.ID, bob.ID)
	if err != nil {
		t.Fatalf("PartnerSync failed: %v", err)
	}
	if !report.BothCompleted || report.Partner.Name != "alice" {
		t.Errorf("after both = %+v partner=%s", report.SyncStatus, report.Partner.Name)
	}
}
