package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/onehabit/internal/logger"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/storage"
	"github.com/julianstephens/onehabit/internal/utils"
	"github.com/julianstephens/onehabit/internal/validation"
)

// Toggle describes a check-in toggle. An empty Date means the user's today.
type Toggle struct {
	HabitID string
	UserID  string
	Date    string
	Note    string
	Mood    *models.Mood
	Synced  bool
}

// ToggleCheckIn creates a checked check-in for the day, or flips the existing one.
// Completion time, mood and the partner sync flag are only written when the
// check-in turns on; a non-empty note replaces the stored note either way.
func (s *Service) ToggleCheckIn(in Toggle) (models.CheckIn, error) {
	if in.Mood != nil && !in.Mood.Valid() {
		return models.CheckIn{}, fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, string(*in.Mood))
	}
	_, user, err := s.accessibleHabit(in.HabitID, in.UserID)
	if err != nil {
		return models.CheckIn{}, err
	}

	date := in.Date
	if date == "" {
		if date, err = s.todayString(user); err != nil {
			return models.CheckIn{}, err
		}
	} else if err := validation.ValidateDate(date); err != nil {
		return models.CheckIn{}, err
	}

	now := s.now().UTC()
	existing, err := s.store.GetCheckInByKey(in.HabitID, in.UserID, date)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		checkIn := models.CheckIn{
			ID:                s.newID(),
			HabitID:           in.HabitID,
			UserID:            in.UserID,
			Date:              date,
			Checked:           true,
			Note:              in.Note,
			Mood:              in.Mood,
			CompletedAt:       &now,
			SyncedWithPartner: in.Synced,
		}
		return s.saveCheckIn(checkIn)
	case err != nil:
		return models.CheckIn{}, err
	}

	turningOn := !existing.Checked
	existing.Checked = turningOn
	if in.Note != "" {
		existing.Note = in.Note
	}
	if turningOn {
		existing.CompletedAt = &now
		if in.Mood != nil {
			existing.Mood = in.Mood
		}
		if in.Synced {
			existing.SyncedWithPartner = true
		}
	}
	return s.saveCheckIn(existing)
}

func (s *Service) saveCheckIn(c models.CheckIn) (models.CheckIn, error) {
	saved, err := s.store.UpsertCheckIn(c)
	if err != nil {
		return models.CheckIn{}, fmt.Errorf("failed to save check-in: %w", err)
	}
	logger.Debug("Saved check-in", "habit", saved.HabitID, "date", saved.Date, "checked", saved.Checked)
	return saved, nil
}

// ownCheckIn loads a check-in that must belong to userID
func (s *Service) ownCheckIn(checkInID, userID string) (models.CheckIn, error) {
	c, err := s.store.GetCheckIn(checkInID)
	if err != nil {
		return models.CheckIn{}, err
	}
	if c.UserID != userID {
		return models.CheckIn{}, fmt.Errorf("check-in %s: %w", checkInID, ErrNotAuthorized)
	}
	return c, nil
}

func (s *Service) UpdateNote(checkInID, userID, note string) (models.CheckIn, error) {
	c, err := s.ownCheckIn(checkInID, userID)
	if err != nil {
		return models.CheckIn{}, err
	}
	c.Note = note
	return s.saveCheckIn(c)
}

func (s *Service) UpdateMood(checkInID, userID string, mood models.Mood) (models.CheckIn, error) {
	if !mood.Valid() {
		return models.CheckIn{}, fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, string(mood))
	}
	c, err := s.ownCheckIn(checkInID, userID)
	if err != nil {
		return models.CheckIn{}, err
	}
	c.Mood = models.MoodPtr(mood)
	return s.saveCheckIn(c)
}

// CheckInFor returns the user's check-in for a habit on a date, or ErrNotFound
func (s *Service) CheckInFor(habitID, userID, date string) (models.CheckIn, error) {
	if date == "" {
		user, err := s.store.GetUser(userID)
		if err != nil {
			return models.CheckIn{}, err
		}
		if date, err = s.todayString(user); err != nil {
			return models.CheckIn{}, err
		}
	}
	return s.store.GetCheckInByKey(habitID, userID, date)
}

func (s *Service) TodaysCheckIns(userID string) ([]models.CheckIn, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	today, err := s.todayString(user)
	if err != nil {
		return nil, err
	}
	return s.store.GetCheckInsForUserDate(userID, today)
}

// TodaysCheckInsForPair returns today's check-ins of the user and, when paired,
// of every pair member. "Today" is the requesting user's date.
func (s *Service) TodaysCheckInsForPair(userID string) ([]models.CheckIn, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	today, err := s.todayString(user)
	if err != nil {
		return nil, err
	}
	if !user.InPair() {
		return s.store.GetCheckInsForUserDate(userID, today)
	}

	pair, err := s.store.GetPair(*user.PairID)
	if errors.Is(err, storage.ErrNotFound) {
		return s.store.GetCheckInsForUserDate(userID, today)
	}
	if err != nil {
		return nil, err
	}

	var out []models.CheckIn
	for _, member := range pair.Members {
		checkIns, err := s.store.GetCheckInsForUserDate(member, today)
		if err != nil {
			return nil, err
		}
		out = append(out, checkIns...)
	}
	return out, nil
}

func (s *Service) CheckInsForDate(userID, date string) ([]models.CheckIn, error) {
	if err := validation.ValidateDate(date); err != nil {
		return nil, err
	}
	return s.store.GetCheckInsForUserDate(userID, date)
}

// MonthCheckIns returns the user's check-ins dated YYYY-MM-01 through YYYY-MM-31
func (s *Service) MonthCheckIns(userID string, year int, month time.Month) ([]models.CheckIn, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d out of range", ErrInvalidInput, int(month))
	}
	start, end := utils.MonthDateRange(utils.MonthKey(year, month))
	return s.store.GetCheckInsForUserRange(userID, start, end)
}
