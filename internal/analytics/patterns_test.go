package analytics

import (
	"reflect"
	"testing"

	"github.com/julianstephens/onehabit/internal/models"
)

func TestComputeDayOfWeekPatterns_Window(t *testing.T) {
	// 2025-03-10 is a Monday; a 30-day window starts on 2025-02-09
	history := []models.CheckIn{
		checkIn("2025-03-10", true),  // monday
		checkIn("2025-03-03", false), // monday
		checkIn("2025-03-09", true),  // sunday
		checkIn("2025-02-09", true),  // sunday, first day of the window
		checkIn("2025-02-08", true),  // saturday, outside
		checkIn("2025-03-11", true),  // after the reference date
	}

	patterns := ComputeDayOfWeekPatterns(history, day("2025-03-10"), 30)

	want := DayPatterns{
		"monday": {Completed: 1, Total: 2},
		"sunday": {Completed: 2, Total: 2},
	}
	if !reflect.DeepEqual(patterns, want) {
		t.Errorf("ComputeDayOfWeekPatterns() = %v, want %v", patterns, want)
	}
}

func TestComputeDayOfWeekPatterns_DefaultWindow(t *testing.T) {
	history := []models.CheckIn{
		checkIn("2025-02-09", true),
		checkIn("2025-02-08", true),
	}

	patterns := ComputeDayOfWeekPatterns(history, day("2025-03-10"), 0)

	if len(patterns) != 1 || patterns["sunday"].Total != 1 {
		t.Errorf("ComputeDayOfWeekPatterns() with default window = %v", patterns)
	}
}

func TestBestDays(t *testing.T) {
	tests := []struct {
		name       string
		patterns   DayPatterns
		minSamples int
		want       []string
	}{
		{
			name:       "empty",
			patterns:   DayPatterns{},
			minSamples: 3,
			want:       []string{},
		},
		{
			name: "sample floor",
			patterns: DayPatterns{
				"monday":  {Completed: 2, Total: 2},
				"tuesday": {Completed: 1, Total: 3},
			},
			minSamples: 3,
			want:       []string{"tuesday"},
		},
		{
			name: "ordered by rate and capped at three",
			patterns: DayPatterns{
				"sunday":    {Completed: 1, Total: 4},
				"monday":    {Completed: 4, Total: 4},
				"tuesday":   {Completed: 3, Total: 4},
				"wednesday": {Completed: 2, Total: 4},
				"friday":    {Completed: 4, Total: 5},
			},
			minSamples: 3,
			want:       []string{"monday", "friday", "tuesday"},
		},
		{
			name: "ties keep weekday order",
			patterns: DayPatterns{
				"saturday": {Completed: 3, Total: 3},
				"monday":   {Completed: 3, Total: 3},
				"sunday":   {Completed: 3, Total: 3},
				"thursday": {Completed: 3, Total: 3},
			},
			minSamples: 3,
			want:       []string{"sunday", "monday", "thursday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BestDays(tt.patterns, tt.minSamples)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BestDays() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeHabitInsights(t *testing.T) {
	history := []models.CheckIn{
		withMood(checkIn("2025-03-10", true), models.MoodGood),
		withMood(checkIn("2025-03-09", true), models.MoodGood),
		withMood(checkIn("2025-03-08", true), models.MoodExcellent),
		withMood(checkIn("2025-03-07", false), models.MoodBad),     // unchecked mood is ignored
		withMood(checkIn("2025-01-01", true), models.MoodTerrible), // outside the window
	}

	insights := ComputeHabitInsights(history, day("2025-03-10"), 30, 3)

	if insights.WindowDays != 30 {
		t.Errorf("WindowDays = %d, want 30", insights.WindowDays)
	}
	if insights.TotalMoodEntries != 3 {
		t.Errorf("TotalMoodEntries = %d, want 3", insights.TotalMoodEntries)
	}
	if insights.MoodStats[models.MoodGood] != 2 || insights.MoodStats[models.MoodExcellent] != 1 {
		t.Errorf("MoodStats = %v", insights.MoodStats)
	}
	if _, ok := insights.MoodStats[models.MoodTerrible]; ok {
		t.Error("MoodStats includes a mood from outside the window")
	}
	if insights.DominantMood == nil || *insights.DominantMood != models.MoodGood {
		t.Errorf("DominantMood = %v, want good", insights.DominantMood)
	}
	if insights.RecentCompletionRate != 75 {
		t.Errorf("RecentCompletionRate = %d, want 75", insights.RecentCompletionRate)
	}
	if len(insights.BestDays) != 0 {
		t.Errorf("BestDays = %v, want none below the sample floor", insights.BestDays)
	}
	if len(insights.MoodDistribution) != 2 || insights.MoodDistribution[0].Mood != models.MoodExcellent {
		t.Errorf("MoodDistribution = %+v", insights.MoodDistribution)
	}
}

func TestComputeHabitInsights_NoMoods(t *testing.T) {
	insights := ComputeHabitInsights([]models.CheckIn{checkIn("2025-03-10", true)}, day("2025-03-10"), 30, 3)

	if insights.DominantMood != nil {
		t.Errorf("DominantMood = %v, want nil", *insights.DominantMood)
	}
	if insights.RecentCompletionRate != 100 {
		t.Errorf("RecentCompletionRate = %d, want 100", insights.RecentCompletionRate)
	}
}

func TestDominantMood_TieGoesToBetterMood(t *testing.T) {
	stats := map[models.Mood]int{
		models.MoodBad:     2,
		models.MoodNeutral: 2,
	}
	got := dominantMood(stats)
	if got == nil || *got != models.MoodNeutral {
		t.Errorf("dominantMood() = %v, want neutral", got)
	}
}

func TestMoodDistribution(t *testing.T) {
	history := []models.CheckIn{
		withMood(checkIn("2025-03-01", true), models.MoodGood),
		withMood(checkIn("2025-03-02", true), models.MoodGood),
		withMood(checkIn("2025-03-03", true), models.MoodTerrible),
	}

	got := MoodDistribution(history)
	want := []MoodShare{
		{Mood: models.MoodGood, Count: 2, Percent: 67},
		{Mood: models.MoodTerrible, Count: 1, Percent: 33},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MoodDistribution() = %+v, want %+v", got, want)
	}
}

func TestMoodCorrelation(t *testing.T) {
	history := []models.CheckIn{
		withMood(checkIn("2025-03-01", true), models.MoodNeutral), // run 1
		withMood(checkIn("2025-03-02", true), models.MoodGood),    // run 2
		withMood(checkIn("2025-03-03", true), models.MoodGood),    // run 3
		checkIn("2025-03-04", false),
		withMood(checkIn("2025-03-05", true), models.MoodNeutral), // run 1
	}

	got := MoodCorrelation(history)
	want := []MoodCompletion{
		{Mood: models.MoodGood, Entries: 2, AverageStreak: 2.5},
		{Mood: models.MoodNeutral, Entries: 2, AverageStreak: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MoodCorrelation() = %+v, want %+v", got, want)
	}
}
