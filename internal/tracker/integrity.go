package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/onehabit/internal/storage"
	"github.com/julianstephens/onehabit/internal/utils"
	"github.com/julianstephens/onehabit/internal/validation"
)

// Snapshot gathers every record of the user that the integrity checks look at.
// Goals are collected month by month from the month the user joined through
// the month after today.
func (s *Service) Snapshot(userID string) (validation.Snapshot, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return validation.Snapshot{}, err
	}
	snap := validation.Snapshot{User: user}

	own, err := s.store.GetHabitsByOwner(userID, true)
	if err != nil {
		return validation.Snapshot{}, fmt.Errorf("failed to load habits: %w", err)
	}
	seen := make(map[string]bool)
	for _, h := range own {
		seen[h.ID] = true
		snap.Habits = append(snap.Habits, h)
	}
	if user.InPair() {
		shared, err := s.store.GetHabitsByPair(*user.PairID)
		if err != nil {
			return validation.Snapshot{}, fmt.Errorf("failed to load shared habits: %w", err)
		}
		for _, h := range shared {
			if !seen[h.ID] {
				seen[h.ID] = true
				snap.Habits = append(snap.Habits, h)
			}
		}
	}

	snap.CheckIns, err = s.store.GetCheckInsForUserRange(userID, historyStart, historyEnd)
	if err != nil {
		return validation.Snapshot{}, fmt.Errorf("failed to load check-ins: %w", err)
	}
	// Check-ins on a former partner's habits still point at real habits
	for _, c := range snap.CheckIns {
		if seen[c.HabitID] {
			continue
		}
		seen[c.HabitID] = true
		h, err := s.store.GetHabit(c.HabitID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return validation.Snapshot{}, err
		}
		snap.Habits = append(snap.Habits, h)
	}

	today, err := s.Today(user)
	if err != nil {
		return validation.Snapshot{}, err
	}
	last := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	for m := time.Date(user.CreatedAt.Year(), user.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC); !m.After(last); m = m.AddDate(0, 1, 0) {
		goals, err := s.store.GetGoalsForUserMonth(userID, utils.MonthKey(m.Year(), m.Month()))
		if err != nil {
			return validation.Snapshot{}, fmt.Errorf("failed to load goals: %w", err)
		}
		snap.Goals = append(snap.Goals, goals...)
	}
	return snap, nil
}

// Check runs the integrity checks over the user's records
func (s *Service) Check(userID string) (validation.ValidationResult, error) {
	snap, err := s.Snapshot(userID)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	return validation.New().Validate(snap), nil
}
