package render

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/onehabit/internal/analytics"
	"github.com/julianstephens/onehabit/internal/models"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent float64
		width   int
		want    string
	}{
		{50, 10, "█████░░░░░"},
		{0, 4, "░░░░"},
		{100, 4, "████"},
		{150, 4, "████"},
		{-5, 4, "░░░░"},
		{33, 3, "█░░"},
		{80, 0, ""},
	}

	for _, tt := range tests {
		if got := ProgressBar(tt.percent, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%v, %d) = %q, want %q", tt.percent, tt.width, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Read", 17); got != "Read" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("Meditate for twenty minutes", 10); got != "Meditate …" {
		t.Errorf("truncate() = %q", got)
	}
}

func TestMonthCalendar(t *testing.T) {
	var history []models.CheckIn
	for _, d := range []string{"2025-04-01", "2025-04-02"} {
		history = append(history, models.CheckIn{HabitID: "h1", Date: d, Checked: true})
	}
	history = append(history, models.CheckIn{HabitID: "h1", Date: "2025-04-05", Checked: true})
	stats := analytics.ComputeMonthStats(history, 1, 2025, time.April)

	out := MonthCalendar(2025, time.April, stats)

	for _, want := range []string{"April 2025", "Su  Mo  Tu  We  Th  Fr  Sa", " 30", "Perfect days", "3/30", "Longest streak", "2 days"} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "Streak broken") {
		t.Errorf("calendar should flag the broken streak:\n%s", out)
	}
}

func TestMonthCalendar_NoBrokenStreakWarning(t *testing.T) {
	stats := analytics.ComputeMonthStats(nil, 1, 2025, time.February)

	out := MonthCalendar(2025, time.February, stats)

	if strings.Contains(out, "Streak broken") {
		t.Errorf("unexpected broken streak warning:\n%s", out)
	}
	if !strings.Contains(out, "0/28") {
		t.Errorf("calendar missing 0/28:\n%s", out)
	}
}

func TestHabitStats(t *testing.T) {
	avg := 4.3
	out := HabitStats("Read", analytics.HabitStats{
		TotalCheckIns:  4,
		CompletedCount: 3,
		CompletionRate: 75,
		CurrentStreak:  1,
		BestStreak:     3,
		AverageMood:    &avg,
		MoodEntries:    3,
	})

	for _, want := range []string{"Read", "1 day", "3 days", "3 of 4", "75%", "4.3 / 5 over 3 check-ins"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats card missing %q:\n%s", want, out)
		}
	}
}

func TestInsights(t *testing.T) {
	good := models.MoodGood
	out := Insights("Read", analytics.HabitInsights{
		WindowDays:           30,
		BestDays:             []string{"monday", "friday"},
		DominantMood:         &good,
		RecentCompletionRate: 80,
		MoodDistribution:     []analytics.MoodShare{{Mood: models.MoodGood, Count: 2, Percent: 100}},
	}, []analytics.MoodCompletion{{Mood: models.MoodGood, Entries: 2, AverageStreak: 2.5}})

	for _, want := range []string{"30 days", "80%", "monday, friday", "good", "2.5 days"} {
		if !strings.Contains(out, want) {
			t.Errorf("insights missing %q:\n%s", want, out)
		}
	}

	empty := Insights("Read", analytics.HabitInsights{WindowDays: 30}, nil)
	if !strings.Contains(empty, "not enough data yet") {
		t.Errorf("insights without best days:\n%s", empty)
	}
}

func TestGoal(t *testing.T) {
	done := Goal(models.MonthlyGoal{Title: "Read", TargetValue: 10, CurrentValue: 12, Unit: "check-ins", Completed: true})
	if !strings.Contains(done, "12/10 check-ins (100%)") || !strings.Contains(done, "completed") {
		t.Errorf("Goal() = %q", done)
	}

	open := Goal(models.MonthlyGoal{Title: "Run", TargetValue: 4, CurrentValue: 1, Unit: "runs"})
	if !strings.Contains(open, "1/4 runs (25%)") || !strings.Contains(open, "in progress") {
		t.Errorf("Goal() = %q", open)
	}
}

func TestSync(t *testing.T) {
	both := Sync("Walk", "bob", analytics.SyncStatus{Date: "2025-03-10", UserCompleted: true, PartnerCompleted: true, BothCompleted: true})
	if !strings.Contains(both, "In sync!") || !strings.Contains(both, "2025-03-10") {
		t.Errorf("Sync() = %q", both)
	}

	one := Sync("Walk", "bob", analytics.SyncStatus{Date: "2025-03-10", UserCompleted: true})
	if strings.Contains(one, "In sync!") || !strings.Contains(one, "not yet") {
		t.Errorf("Sync() = %q", one)
	}
}

func TestConsistency(t *testing.T) {
	if got := Consistency(analytics.Consistency{}); !strings.Contains(got, "No habits yet.") {
		t.Errorf("Consistency(empty) = %q", got)
	}

	c := analytics.ComputeConsistency(
		[]models.Habit{{ID: "h1", Title: "Read"}, {ID: "h2", Title: "Run"}},
		[]models.CheckIn{{HabitID: "h1", Checked: true}, {HabitID: "h2", Checked: false}},
	)
	out := Consistency(c)
	if !strings.Contains(out, "100%") || !strings.Contains(out, "Needs attention") {
		t.Errorf("Consistency() = %q", out)
	}
}
