package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/onehabit/internal/analytics"
	"github.com/julianstephens/onehabit/internal/logger"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/utils"
	"github.com/julianstephens/onehabit/internal/validation"
)

const defaultGoalUnit = "check-ins"

type GoalInput struct {
	Title         string
	Description   string
	TargetValue   float64
	Unit          string
	RelatedHabits []string
}

// CreateGoal adds a goal for the user's current month with no progress
func (s *Service) CreateGoal(userID string, in GoalInput) (models.MonthlyGoal, error) {
	title, err := validation.ValidateTitle(in.Title)
	if err != nil {
		return models.MonthlyGoal{}, err
	}
	if err := validation.ValidateGoalTarget(in.TargetValue); err != nil {
		return models.MonthlyGoal{}, err
	}
	user, err := s.store.GetUser(userID)
	if err != nil {
		return models.MonthlyGoal{}, err
	}
	for _, habitID := range in.RelatedHabits {
		if _, _, err := s.accessibleHabit(habitID, userID); err != nil {
			return models.MonthlyGoal{}, fmt.Errorf("related habit %s: %w", habitID, err)
		}
	}
	today, err := s.Today(user)
	if err != nil {
		return models.MonthlyGoal{}, err
	}

	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = defaultGoalUnit
	}
	related := in.RelatedHabits
	if related == nil {
		related = []string{}
	}

	goal := models.MonthlyGoal{
		ID:            s.newID(),
		UserID:        userID,
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		TargetValue:   in.TargetValue,
		Unit:          unit,
		Month:         utils.MonthKey(today.Year(), today.Month()),
		RelatedHabits: related,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.AddGoal(goal); err != nil {
		return models.MonthlyGoal{}, fmt.Errorf("failed to add goal: %w", err)
	}
	logger.Debug("Created goal", "id", goal.ID, "month", goal.Month)
	return goal, nil
}

// Goals lists the user's goals for a YYYY-MM month; empty means the current month
func (s *Service) Goals(userID, month string) ([]models.MonthlyGoal, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	month, err = s.resolveMonth(user, month)
	if err != nil {
		return nil, err
	}
	return s.store.GetGoalsForUserMonth(userID, month)
}

func (s *Service) resolveMonth(user models.User, month string) (string, error) {
	if month != "" {
		if err := validation.ValidateMonth(month); err != nil {
			return "", err
		}
		return month, nil
	}
	today, err := s.Today(user)
	if err != nil {
		return "", err
	}
	return utils.MonthKey(today.Year(), today.Month()), nil
}

func (s *Service) ownGoal(goalID, userID string) (models.MonthlyGoal, error) {
	goal, err := s.store.GetGoal(goalID)
	if err != nil {
		return models.MonthlyGoal{}, err
	}
	if goal.UserID != userID {
		return models.MonthlyGoal{}, fmt.Errorf("goal %s: %w", goalID, ErrNotAuthorized)
	}
	return goal, nil
}

func (s *Service) saveProgress(goal models.MonthlyGoal, p analytics.GoalProgress) (analytics.GoalProgress, error) {
	goal.CurrentValue = p.CurrentValue
	goal.Completed = p.Completed
	if err := s.store.UpdateGoal(goal); err != nil {
		return analytics.GoalProgress{}, fmt.Errorf("failed to update goal: %w", err)
	}
	return p, nil
}

// SetGoalProgress records a manual progress value
func (s *Service) SetGoalProgress(goalID, userID string, value float64) (analytics.GoalProgress, error) {
	if err := validation.ValidateProgress(value); err != nil {
		return analytics.GoalProgress{}, err
	}
	goal, err := s.ownGoal(goalID, userID)
	if err != nil {
		return analytics.GoalProgress{}, err
	}
	return s.saveProgress(goal, analytics.EvaluateProgress(goal, value))
}

// RecalculateGoal recounts progress from the related habits' check-ins in the
// goal's month and stores the result.
func (s *Service) RecalculateGoal(goalID, userID string) (analytics.GoalProgress, error) {
	goal, err := s.ownGoal(goalID, userID)
	if err != nil {
		return analytics.GoalProgress{}, err
	}

	start, end := utils.MonthDateRange(goal.Month)
	checkIns, err := s.store.GetCheckInsForUserRange(goal.UserID, start, end)
	if err != nil {
		return analytics.GoalProgress{}, fmt.Errorf("failed to load check-ins: %w", err)
	}
	return s.saveProgress(goal, analytics.RecomputeGoalProgress(goal, checkIns))
}

// RecalculateGoals recomputes every goal of the month that has related habits
func (s *Service) RecalculateGoals(userID, month string) ([]models.MonthlyGoal, error) {
	goals, err := s.Goals(userID, month)
	if err != nil {
		return nil, err
	}
	for i, g := range goals {
		if len(g.RelatedHabits) == 0 {
			continue
		}
		p, err := s.RecalculateGoal(g.ID, userID)
		if err != nil {
			return nil, err
		}
		goals[i].CurrentValue = p.CurrentValue
		goals[i].Completed = p.Completed
	}
	return goals, nil
}

// GoalUpdate holds optional goal changes; nil fields are left alone
type GoalUpdate struct {
	Title       *string
	Description *string
	TargetValue *float64
	Unit        *string
}

// UpdateGoal edits the goal. Changing the target re-evaluates completion
// against the stored current value.
func (s *Service) UpdateGoal(goalID, userID string, in GoalUpdate) (models.MonthlyGoal, error) {
	goal, err := s.ownGoal(goalID, userID)
	if err != nil {
		return models.MonthlyGoal{}, err
	}

	if in.Title != nil {
		title, err := validation.ValidateTitle(*in.Title)
		if err != nil {
			return models.MonthlyGoal{}, err
		}
		goal.Title = title
	}
	if in.Description != nil {
		goal.Description = strings.TrimSpace(*in.Description)
	}
	if in.TargetValue != nil {
		if err := validation.ValidateGoalTarget(*in.TargetValue); err != nil {
			return models.MonthlyGoal{}, err
		}
		goal.TargetValue = *in.TargetValue
		goal.Completed = analytics.EvaluateProgress(goal, goal.CurrentValue).Completed
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) != "" {
		goal.Unit = strings.TrimSpace(*in.Unit)
	}

	if err := s.store.UpdateGoal(goal); err != nil {
		return models.MonthlyGoal{}, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

func (s *Service) DeleteGoal(goalID, userID string) error {
	if _, err := s.ownGoal(goalID, userID); err != nil {
		return err
	}
	if err := s.store.DeleteGoal(goalID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

// GoalSummary summarizes a month's goals. Pacing uses today for the current
// month, the last day for past months and the first day for future months.
func (s *Service) GoalSummary(userID, month string) (analytics.GoalSummary, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return analytics.GoalSummary{}, err
	}
	month, err = s.resolveMonth(user, month)
	if err != nil {
		return analytics.GoalSummary{}, err
	}
	today, err := s.Today(user)
	if err != nil {
		return analytics.GoalSummary{}, err
	}

	goals, err := s.store.GetGoalsForUserMonth(userID, month)
	if err != nil {
		return analytics.GoalSummary{}, err
	}
	return analytics.SummarizeGoals(goals, pacingDate(month, today)), nil
}

func pacingDate(month string, today time.Time) time.Time {
	current := utils.MonthKey(today.Year(), today.Month())
	year, m, _ := utils.ParseMonthKey(month)
	switch {
	case month == current:
		return today
	case month < current:
		return time.Date(year, m, utils.DaysInMonth(year, m), 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	}
}

// GoalSuggestions proposes goals from the user's own active habits and this
// month's check-ins.
func (s *Service) GoalSuggestions(userID string) ([]analytics.GoalSuggestion, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	today, err := s.Today(user)
	if err != nil {
		return nil, err
	}

	habits, err := s.store.GetHabitsByOwner(userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	start, end := utils.MonthDateRange(utils.MonthKey(today.Year(), today.Month()))
	checkIns, err := s.store.GetCheckInsForUserRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-ins: %w", err)
	}
	return analytics.SuggestGoals(habits, checkIns, today), nil
}
