package tracker

import (
	"fmt"

	"github.com/julianstephens/onehabit/internal/constants"
	"github.com/julianstephens/onehabit/internal/logger"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/validation"
)

// CreateHabit adds an active habit. A shared habit is linked to the owner's pair;
// the flag is ignored when the owner has no pair.
func (s *Service) CreateHabit(ownerID, title string, shared bool) (models.Habit, error) {
	title, err := validation.ValidateTitle(title)
	if err != nil {
		return models.Habit{}, err
	}
	owner, err := s.store.GetUser(ownerID)
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		ID:        s.newID(),
		OwnerID:   owner.ID,
		Title:     title,
		Active:    true,
		CreatedAt: s.now().UTC(),
	}
	if shared {
		if owner.InPair() {
			pairID := *owner.PairID
			habit.PairID = &pairID
		} else {
			logger.Warn("Habit created as solo, user has no pair", "user", owner.ID)
		}
	}

	if err := s.store.AddHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to add habit: %w", err)
	}
	logger.Debug("Created habit", "id", habit.ID, "shared", habit.IsShared())
	return habit, nil
}

// UserHabits returns the user's own active habits followed by the active habits
// their partner shares with the pair.
func (s *Service) UserHabits(userID string) ([]models.Habit, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return s.visibleHabits(user)
}

func (s *Service) visibleHabits(user models.User) ([]models.Habit, error) {
	habits, err := s.store.GetHabitsByOwner(user.ID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	if !user.InPair() {
		return habits, nil
	}

	shared, err := s.store.GetHabitsByPair(*user.PairID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shared habits: %w", err)
	}
	for _, h := range shared {
		if h.OwnerID != user.ID && h.Active {
			habits = append(habits, h)
		}
	}
	return habits, nil
}

// HabitUpdate holds optional habit changes; nil fields are left alone
type HabitUpdate struct {
	Title  *string
	Active *bool
}

// UpdateHabit edits a habit the user owns or shares through their pair
func (s *Service) UpdateHabit(habitID, userID string, in HabitUpdate) (models.Habit, error) {
	habit, _, err := s.accessibleHabit(habitID, userID)
	if err != nil {
		return models.Habit{}, err
	}

	if in.Title != nil {
		title, err := validation.ValidateTitle(*in.Title)
		if err != nil {
			return models.Habit{}, err
		}
		habit.Title = title
	}
	if in.Active != nil {
		habit.Active = *in.Active
	}

	if err := s.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to update habit: %w", err)
	}
	return habit, nil
}

// DeleteHabit deactivates the habit. Only the owner may delete it.
func (s *Service) DeleteHabit(habitID, userID string) error {
	habit, err := s.store.GetHabit(habitID)
	if err != nil {
		return err
	}
	if habit.OwnerID != userID {
		return fmt.Errorf("only the owner can delete habit %s: %w", habitID, ErrNotAuthorized)
	}

	habit.Active = false
	if err := s.store.UpdateHabit(habit); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	logger.Info("Deactivated habit", "id", habitID)
	return nil
}

type HabitDetails struct {
	Habit    models.Habit
	CheckIns []models.CheckIn // newest first, any pair member
}

func (s *Service) HabitDetails(habitID, userID string) (HabitDetails, error) {
	habit, _, err := s.accessibleHabit(habitID, userID)
	if err != nil {
		return HabitDetails{}, err
	}

	checkIns, err := s.store.GetRecentCheckInsForHabit(habitID, constants.RecentCheckInsLimit)
	if err != nil {
		return HabitDetails{}, fmt.Errorf("failed to load check-ins: %w", err)
	}
	return HabitDetails{Habit: habit, CheckIns: checkIns}, nil
}
