package models

import "time"

// MonthlyGoal is a numeric target for a calendar month
type MonthlyGoal struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	TargetValue   float64   `json:"target_value"`
	CurrentValue  float64   `json:"current_value"`
	Unit          string    `json:"unit"`  // "check-ins", "days", "books", etc.
	Month         string    `json:"month"` // YYYY-MM format
	RelatedHabits []string  `json:"related_habits"`
	Completed     bool      `json:"completed"`
	CreatedAt     time.Time `json:"created_at"`
}

// Progress returns the current value as a percentage of the target.
// A non-positive target yields 0.
func (g MonthlyGoal) Progress() float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	return g.CurrentValue / g.TargetValue * 100
}

func (g MonthlyGoal) RelatesTo(habitID string) bool {
	for _, id := range g.RelatedHabits {
		if id == habitID {
			return true
		}
	}
	return false
}
