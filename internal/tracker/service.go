// Package tracker implements onehabit's operations on top of a record store:
// it fetches records, checks who may see or change them, runs the analytics
// and writes recomputed values back.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/onehabit/internal/constants"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/storage"
	"github.com/julianstephens/onehabit/internal/utils"
	"github.com/julianstephens/onehabit/internal/validation"
)

var (
	ErrNotAuthorized = errors.New("not authorized")
	ErrNotPaired     = errors.New("user is not in a pair")
	// ErrInvalidInput is the same sentinel the validation package wraps
	ErrInvalidInput = validation.ErrInvalid
)

// Settings tune the analytics windows
type Settings struct {
	PatternWindowDays int
	BestDayMinSamples int
	TrendDays         int
}

func DefaultSettings() Settings {
	return Settings{
		PatternWindowDays: constants.DefaultPatternWindowDays,
		BestDayMinSamples: constants.BestDayMinSamples,
		TrendDays:         constants.WeeklyTrendDays,
	}
}

type Option func(*Service)

// WithClock replaces time.Now as the source of "today"
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces random UUIDs for new records
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func WithSettings(settings Settings) Option {
	return func(s *Service) { s.settings = settings }
}

type Service struct {
	store    storage.Provider
	now      func() time.Time
	newID    func() string
	settings Settings
}

func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{
		store:    store,
		now:      time.Now,
		newID:    uuid.NewString,
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying record store
func (s *Service) Store() storage.Provider {
	return s.store
}

// nowFor returns the current instant in the user's timezone
func (s *Service) nowFor(user models.User) (time.Time, error) {
	loc, err := utils.LoadLocation(user.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("user %s has invalid timezone %q: %w", user.ID, user.Timezone, err)
	}
	return s.now().In(loc), nil
}

// Today returns the user's current calendar date as a midnight UTC value
func (s *Service) Today(user models.User) (time.Time, error) {
	now, err := s.nowFor(user)
	if err != nil {
		return time.Time{}, err
	}
	return utils.DateOnly(now), nil
}

func (s *Service) todayString(user models.User) (string, error) {
	today, err := s.Today(user)
	if err != nil {
		return "", err
	}
	return utils.FormatDate(today), nil
}

func canAccess(habit models.Habit, user models.User) bool {
	if habit.OwnerID == user.ID {
		return true
	}
	return habit.IsShared() && user.InPair() && *habit.PairID == *user.PairID
}

// accessibleHabit loads the habit and the user and checks the user may use it
func (s *Service) accessibleHabit(habitID, userID string) (models.Habit, models.User, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return models.Habit{}, models.User{}, err
	}
	habit, err := s.store.GetHabit(habitID)
	if err != nil {
		return models.Habit{}, models.User{}, err
	}
	if !canAccess(habit, user) {
		return models.Habit{}, models.User{}, fmt.Errorf("habit %s for user %s: %w", habitID, userID, ErrNotAuthorized)
	}
	return habit, user, nil
}
