package models

import "time"

// Habit represents a recurring practice owned by a user, optionally shared with a pair
type Habit struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	PairID    *string   `json:"pair_id,omitempty"` // nil = solo habit
	Title     string    `json:"title"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// IsShared reports whether the habit belongs to a pair
func (h Habit) IsShared() bool {
	return h.PairID != nil && *h.PairID != ""
}

// CheckIn represents a single day's record of a habit for one user.
// At most one check-in exists per (habit, user, date).
type CheckIn struct {
	ID                string     `json:"id"`
	HabitID           string     `json:"habit_id"`
	UserID            string     `json:"user_id"`
	Date              string     `json:"date"` // YYYY-MM-DD format
	Checked           bool       `json:"checked"`
	Note              string     `json:"note,omitempty"`
	Mood              *Mood      `json:"mood,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	SyncedWithPartner bool       `json:"synced_with_partner"`
}
