package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/onehabit/internal/analytics"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/storage"
	"github.com/julianstephens/onehabit/internal/utils"
)

const (
	historyStart = "0000-01-01"
	historyEnd   = "9999-12-31"
)

func (s *Service) HabitStats(habitID, userID string) (analytics.HabitStats, error) {
	_, user, err := s.accessibleHabit(habitID, userID)
	if err != nil {
		return analytics.HabitStats{}, err
	}
	today, err := s.Today(user)
	if err != nil {
		return analytics.HabitStats{}, err
	}

	checkIns, err := s.store.GetCheckInsForHabit(habitID, userID)
	if err != nil {
		return analytics.HabitStats{}, fmt.Errorf("failed to load check-ins: %w", err)
	}
	return analytics.ComputeHabitStats(checkIns, today), nil
}

// InsightsReport is the habit insights plus the longer-run mood breakdown
type InsightsReport struct {
	analytics.HabitInsights
	MoodCorrelation []analytics.MoodCompletion
}

func (s *Service) HabitInsights(habitID, userID string) (InsightsReport, error) {
	_, user, err := s.accessibleHabit(habitID, userID)
	if err != nil {
		return InsightsReport{}, err
	}
	today, err := s.Today(user)
	if err != nil {
		return InsightsReport{}, err
	}

	checkIns, err := s.store.GetCheckInsForHabit(habitID, userID)
	if err != nil {
		return InsightsReport{}, fmt.Errorf("failed to load check-ins: %w", err)
	}
	return InsightsReport{
		HabitInsights:   analytics.ComputeHabitInsights(checkIns, today, s.settings.PatternWindowDays, s.settings.BestDayMinSamples),
		MoodCorrelation: analytics.MoodCorrelation(checkIns),
	}, nil
}

// MonthReport is a calendar month across all of the user's visible habits
type MonthReport struct {
	Year   int
	Month  time.Month
	Habits []models.Habit
	Stats  analytics.MonthStats
	Weeks  []analytics.WeekStat
}

// MonthStats computes the month calendar. A zero year or month means the user's
// current month. Only check-ins on currently visible habits are counted.
func (s *Service) MonthStats(userID string, year int, month time.Month) (MonthReport, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return MonthReport{}, err
	}
	if year == 0 || month == 0 {
		today, err := s.Today(user)
		if err != nil {
			return MonthReport{}, err
		}
		if year == 0 {
			year = today.Year()
		}
		if month == 0 {
			month = today.Month()
		}
	}

	habits, err := s.visibleHabits(user)
	if err != nil {
		return MonthReport{}, err
	}
	checkIns, err := s.MonthCheckIns(userID, year, month)
	if err != nil {
		return MonthReport{}, err
	}
	checkIns = onHabits(checkIns, habits)

	return MonthReport{
		Year:   year,
		Month:  month,
		Habits: habits,
		Stats:  analytics.ComputeMonthStats(checkIns, len(habits), year, month),
		Weeks:  analytics.ComputeMonthWeeks(checkIns, len(habits), year, month),
	}, nil
}

// WeeklyTrend returns the daily completion rate of the trailing trend window
func (s *Service) WeeklyTrend(userID string) ([]analytics.TrendDay, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	today, err := s.Today(user)
	if err != nil {
		return nil, err
	}
	habits, err := s.visibleHabits(user)
	if err != nil {
		return nil, err
	}

	days := s.settings.TrendDays
	start := utils.FormatDate(today.AddDate(0, 0, -(days - 1)))
	checkIns, err := s.store.GetCheckInsForUserRange(userID, start, utils.FormatDate(today))
	if err != nil {
		return nil, fmt.Errorf("failed to load check-ins: %w", err)
	}
	return analytics.ComputeTrend(onHabits(checkIns, habits), len(habits), today, days), nil
}

func (s *Service) ProfileStats(userID string) (analytics.ProfileStats, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return analytics.ProfileStats{}, err
	}
	now, err := s.nowFor(user)
	if err != nil {
		return analytics.ProfileStats{}, err
	}

	habits, err := s.store.GetHabitsByOwner(userID, false)
	if err != nil {
		return analytics.ProfileStats{}, fmt.Errorf("failed to load habits: %w", err)
	}
	checkIns, err := s.store.GetCheckInsForUserRange(userID, historyStart, historyEnd)
	if err != nil {
		return analytics.ProfileStats{}, fmt.Errorf("failed to load check-ins: %w", err)
	}
	return analytics.ComputeProfileStats(habits, checkIns, user.CreatedAt, now), nil
}

// Consistency ranks the user's own active habits by completion rate
func (s *Service) Consistency(userID string) (analytics.Consistency, error) {
	habits, err := s.store.GetHabitsByOwner(userID, false)
	if err != nil {
		return analytics.Consistency{}, fmt.Errorf("failed to load habits: %w", err)
	}
	checkIns, err := s.store.GetCheckInsForUserRange(userID, historyStart, historyEnd)
	if err != nil {
		return analytics.Consistency{}, fmt.Errorf("failed to load check-ins: %w", err)
	}
	return analytics.ComputeConsistency(habits, checkIns), nil
}

type PartnerSyncReport struct {
	analytics.SyncStatus
	Partner models.User
}

// PartnerSync reports whether both pair members completed a shared habit today
func (s *Service) PartnerSync(habitID, userID string) (PartnerSyncReport, error) {
	habit, user, err := s.accessibleHabit(habitID, userID)
	if err != nil {
		return PartnerSyncReport{}, err
	}
	if !user.InPair() {
		return PartnerSyncReport{}, ErrNotPaired
	}
	if !habit.IsShared() || *habit.PairID != *user.PairID {
		return PartnerSyncReport{}, fmt.Errorf("%w: habit %q is not shared with your pair", ErrInvalidInput, habit.Title)
	}

	pair, err := s.store.GetPair(*user.PairID)
	if err != nil {
		return PartnerSyncReport{}, err
	}
	partnerID, ok := pair.Partner(userID)
	if !ok {
		return PartnerSyncReport{}, fmt.Errorf("pair %s has no partner yet: %w", pair.ID, ErrNotPaired)
	}
	partner, err := s.store.GetUser(partnerID)
	if err != nil {
		return PartnerSyncReport{}, err
	}

	today, err := s.Today(user)
	if err != nil {
		return PartnerSyncReport{}, err
	}
	date := utils.FormatDate(today)

	mine, err := s.optionalCheckIn(habitID, userID, date)
	if err != nil {
		return PartnerSyncReport{}, err
	}
	theirs, err := s.optionalCheckIn(habitID, partnerID, date)
	if err != nil {
		return PartnerSyncReport{}, err
	}

	return PartnerSyncReport{
		SyncStatus: analytics.PartnerSync(today, mine, theirs),
		Partner:    partner,
	}, nil
}

func (s *Service) optionalCheckIn(habitID, userID, date string) (*models.CheckIn, error) {
	c, err := s.store.GetCheckInByKey(habitID, userID, date)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func onHabits(checkIns []models.CheckIn, habits []models.Habit) []models.CheckIn {
	ids := make(map[string]struct{}, len(habits))
	for _, h := range habits {
		ids[h.ID] = struct{}{}
	}
	out := make([]models.CheckIn, 0, len(checkIns))
	for _, c := range checkIns {
		if _, ok := ids[c.HabitID]; ok {
			out = append(out, c)
		}
	}
	return out
}
