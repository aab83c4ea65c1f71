package analytics

import (
	"time"

	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/utils"
)

// ProfileStats summarizes a user's activity across all active habits
type ProfileStats struct {
	TotalHabits      int `json:"total_habits"`
	TotalCheckIns    int `json:"total_checkins"`
	CurrentStreak    int `json:"current_streak"` // sum of per-habit current streaks
	BestStreak       int `json:"best_streak"`
	DaysSinceJoining int `json:"days_since_joining"`
	CompletionRate   int `json:"completion_rate"`
}

// ComputeProfileStats aggregates the user's check-ins. habits are the user's active
// habits; checkIns are all of the user's check-ins.
func ComputeProfileStats(habits []models.Habit, checkIns []models.CheckIn, joinedAt, referenceDate time.Time) ProfileStats {
	stats := ProfileStats{TotalHabits: len(habits)}

	byHabit := make(map[string][]models.CheckIn)
	for _, c := range checkIns {
		if c.Checked {
			stats.TotalCheckIns++
		}
		byHabit[c.HabitID] = append(byHabit[c.HabitID], c)
	}

	for _, h := range habits {
		history := byHabit[h.ID]
		stats.CurrentStreak += CurrentStreak(history, referenceDate)
		if best := BestStreak(history); best > stats.BestStreak {
			stats.BestStreak = best
		}
	}

	if !joinedAt.IsZero() && referenceDate.After(joinedAt) {
		stats.DaysSinceJoining = int(referenceDate.Sub(joinedAt).Hours() / 24)
	}

	if len(habits) > 0 {
		possible := len(habits) * stats.DaysSinceJoining
		if possible == 0 {
			possible = 1
		}
		stats.CompletionRate = percent(stats.TotalCheckIns, possible)
	}

	return stats
}

// HabitConsistency is one habit's completion rate over the supplied check-ins
type HabitConsistency struct {
	HabitID        string `json:"habit_id"`
	Title          string `json:"title"`
	TotalCheckIns  int    `json:"total_checkins"`
	Completed      int    `json:"completed_checkins"`
	CompletionRate int    `json:"completion_rate"`
}

// Consistency ranks habits by completion rate
type Consistency struct {
	Habits          []HabitConsistency `json:"habits"`
	MostConsistent  *HabitConsistency  `json:"most_consistent"`
	LeastConsistent *HabitConsistency  `json:"least_consistent"`
}

// ComputeConsistency computes per-habit completion rates. On equal rates the habit
// appearing later in habits is reported as most and least consistent.
func ComputeConsistency(habits []models.Habit, checkIns []models.CheckIn) Consistency {
	var out Consistency
	if len(habits) == 0 {
		return out
	}

	type tally struct{ total, completed int }
	byHabit := make(map[string]tally)
	for _, c := range checkIns {
		t := byHabit[c.HabitID]
		t.total++
		if c.Checked {
			t.completed++
		}
		byHabit[c.HabitID] = t
	}

	out.Habits = make([]HabitConsistency, 0, len(habits))
	for _, h := range habits {
		t := byHabit[h.ID]
		out.Habits = append(out.Habits, HabitConsistency{
			HabitID:        h.ID,
			Title:          h.Title,
			TotalCheckIns:  t.total,
			Completed:      t.completed,
			CompletionRate: percent(t.completed, t.total),
		})
	}

	most, least := 0, 0
	for i := 1; i < len(out.Habits); i++ {
		if out.Habits[most].CompletionRate <= out.Habits[i].CompletionRate {
			most = i
		}
		if out.Habits[least].CompletionRate >= out.Habits[i].CompletionRate {
			least = i
		}
	}
	out.MostConsistent = &out.Habits[most]
	out.LeastConsistent = &out.Habits[least]

	return out
}

// SyncStatus reports whether both partners completed a shared habit on a day
type SyncStatus struct {
	Date             string `json:"date"`
	UserCompleted    bool   `json:"user_completed"`
	PartnerCompleted bool   `json:"partner_completed"`
	BothCompleted    bool   `json:"both_completed"`
}

// PartnerSync evaluates the sync bonus for one day. Either check-in may be nil.
func PartnerSync(date time.Time, userCheckIn, partnerCheckIn *models.CheckIn) SyncStatus {
	s := SyncStatus{
		Date:             utils.FormatDate(date),
		UserCompleted:    userCheckIn != nil && userCheckIn.Checked,
		PartnerCompleted: partnerCheckIn != nil && partnerCheckIn.Checked,
	}
	s.BothCompleted = s.UserCompleted && s.PartnerCompleted
	return s
}
