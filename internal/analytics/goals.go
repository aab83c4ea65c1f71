package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/onehabit/internal/constants"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/utils"
)

// GoalProgress is the derived progress of a monthly goal
type GoalProgress struct {
	CurrentValue float64 `json:"current_value"`
	Completed    bool    `json:"completed"`
	Percent      float64 `json:"percent"`
}

// EvaluateProgress reports whether value meets the goal's target.
func EvaluateProgress(goal models.MonthlyGoal, value float64) GoalProgress {
	p := GoalProgress{
		CurrentValue: value,
		Completed:    value >= goal.TargetValue,
	}
	if goal.TargetValue > 0 {
		p.Percent = value / goal.TargetValue * 100
	}
	return p
}

// RecomputeGoalProgress counts the goal owner's checked check-ins on the goal's
// related habits within the goal's month. Dates are matched against the
// "YYYY-MM-01".."YYYY-MM-31" string range. A goal without related habits keeps its
// current value.
func RecomputeGoalProgress(goal models.MonthlyGoal, checkIns []models.CheckIn) GoalProgress {
	if len(goal.RelatedHabits) == 0 {
		return EvaluateProgress(goal, goal.CurrentValue)
	}

	related := make(map[string]struct{}, len(goal.RelatedHabits))
	for _, id := range goal.RelatedHabits {
		related[id] = struct{}{}
	}
	start, end := utils.MonthDateRange(goal.Month)

	total := 0
	for _, c := range checkIns {
		if !c.Checked || c.UserID != goal.UserID {
			continue
		}
		if _, ok := related[c.HabitID]; !ok {
			continue
		}
		if c.Date < start || c.Date > end {
			continue
		}
		total++
	}

	return EvaluateProgress(goal, float64(total))
}

// GoalSummary aggregates a month's goals for a dashboard
type GoalSummary struct {
	TotalGoals      int `json:"total_goals"`
	CompletedGoals  int `json:"completed_goals"`
	ActiveGoals     int `json:"active_goals"`
	CompletionRate  int `json:"completion_rate"`
	AverageProgress int `json:"average_progress"`
	OnTrack         int `json:"on_track"`
	DaysRemaining   int `json:"days_remaining"`
}

// SummarizeGoals reports completion and pacing for goals of the reference month.
// An active goal is on track when its progress is at least 80% of the progress
// expected by this day of the month.
func SummarizeGoals(goals []models.MonthlyGoal, referenceDate time.Time) GoalSummary {
	daysInMonth := utils.DaysInMonth(referenceDate.Year(), referenceDate.Month())
	day := referenceDate.Day()

	summary := GoalSummary{
		TotalGoals:    len(goals),
		DaysRemaining: daysInMonth - day,
	}
	if len(goals) == 0 {
		return summary
	}

	expected := float64(day) / float64(daysInMonth) * 100
	progressSum := 0.0
	for _, g := range goals {
		progressSum += g.Progress()
		if g.Completed {
			summary.CompletedGoals++
			continue
		}
		summary.ActiveGoals++
		if g.Progress() >= expected*constants.OnTrackThreshold {
			summary.OnTrack++
		}
	}

	summary.CompletionRate = percent(summary.CompletedGoals, len(goals))
	summary.AverageProgress = int(math.Round(progressSum / float64(len(goals))))

	return summary
}

// GoalSuggestion is a template goal derived from current habits
type GoalSuggestion struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TargetValue   float64  `json:"target_value"`
	Unit          string   `json:"unit"`
	RelatedHabits []string `json:"related_habits"`
}

// SuggestGoals proposes goals for the reference month from the user's active habits
// and the checked check-ins recorded so far this month.
func SuggestGoals(habits []models.Habit, checkIns []models.CheckIn, referenceDate time.Time) []GoalSuggestion {
	if len(habits) == 0 {
		return nil
	}

	start, end := utils.MonthDateRange(utils.MonthKey(referenceDate.Year(), referenceDate.Month()))
	monthTotal := 0
	for _, c := range checkIns {
		if c.Checked && c.Date >= start && c.Date <= end {
			monthTotal++
		}
	}

	allIDs := make([]string, 0, len(habits))
	for _, h := range habits {
		allIDs = append(allIDs, h.ID)
	}

	checkInTarget := monthTotal + 30
	if checkInTarget < 50 {
		checkInTarget = 50
	}

	return []GoalSuggestion{
		{
			Title:         fmt.Sprintf("Complete %d habit check-ins", checkInTarget),
			Description:   "Build consistency across all your habits",
			TargetValue:   float64(checkInTarget),
			Unit:          "check-ins",
			RelatedHabits: allIDs,
		},
		{
			Title:         "Maintain 7-day streak",
			Description:   "Keep at least one habit going for a full week",
			TargetValue:   7,
			Unit:          "consecutive days",
			RelatedHabits: allIDs[:1],
		},
		{
			Title:         "Perfect week challenge",
			Description:   "Complete all habits for 7 consecutive days",
			TargetValue:   float64(len(habits) * 7),
			Unit:          "perfect days",
			RelatedHabits: allIDs,
		},
		{
			Title:         "Try 2 new habits",
			Description:   "Expand your routine with new healthy habits",
			TargetValue:   2,
			Unit:          "new habits",
			RelatedHabits: []string{},
		},
	}
}
