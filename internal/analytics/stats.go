// Package analytics derives streaks, completion rates, mood and goal statistics
// from check-in history. Every function is pure: callers fetch the records, pass an
// explicit reference date, and receive read-only results.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/utils"
)

// HabitStats summarizes one user's check-in history for one habit
type HabitStats struct {
	TotalCheckIns  int      `json:"total_checkins"`
	CompletedCount int      `json:"completed_checkins"`
	CompletionRate int      `json:"completion_rate"`
	CurrentStreak  int      `json:"current_streak"`
	BestStreak     int      `json:"best_streak"`
	AverageMood    *float64 `json:"average_mood"`
	MoodEntries    int      `json:"mood_entries"`
}

// ComputeHabitStats computes statistics for all check-ins of one (habit, user).
// The input may be unsorted and is never modified.
func ComputeHabitStats(checkIns []models.CheckIn, referenceDate time.Time) HabitStats {
	stats := HabitStats{TotalCheckIns: len(checkIns)}
	if len(checkIns) == 0 {
		return stats
	}

	for _, c := range checkIns {
		if c.Checked {
			stats.CompletedCount++
		}
	}

	stats.CompletionRate = percent(stats.CompletedCount, stats.TotalCheckIns)
	stats.CurrentStreak = CurrentStreak(checkIns, referenceDate)
	stats.BestStreak = BestStreak(checkIns)
	stats.AverageMood, stats.MoodEntries = AverageMood(checkIns)

	return stats
}

// CurrentStreak walks backward one calendar day at a time from referenceDate
// (inclusive). A checked record extends the streak, an unchecked record is skipped
// without ending it, and a day with no record at all ends the scan.
func CurrentStreak(checkIns []models.CheckIn, referenceDate time.Time) int {
	byDate := indexByDate(checkIns)
	day := utils.DateOnly(referenceDate)

	streak := 0
	for {
		checked, ok := byDate[utils.FormatDate(day)]
		if !ok {
			break
		}
		if checked {
			streak++
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// BestStreak returns the longest run of checked records in date order.
// Only existing rows are scanned; calendar gaps neither extend nor reset a run.
func BestStreak(checkIns []models.CheckIn) int {
	best, run := 0, 0
	for _, c := range sortedByDate(checkIns) {
		if !c.Checked {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best
}

// AverageMood averages the mood score of checked records that carry a mood,
// rounded to one decimal. It returns nil when no record has mood data, along with
// the number of records that contributed.
func AverageMood(checkIns []models.CheckIn) (*float64, int) {
	sum, count := 0, 0
	for _, c := range checkIns {
		if !c.Checked || c.Mood == nil || !c.Mood.Valid() {
			continue
		}
		sum += c.Mood.Score()
		count++
	}
	if count == 0 {
		return nil, 0
	}
	avg := roundTo(float64(sum)/float64(count), 1)
	return &avg, count
}

// indexByDate maps each date to whether any record on that date is checked.
func indexByDate(checkIns []models.CheckIn) map[string]bool {
	byDate := make(map[string]bool, len(checkIns))
	for _, c := range checkIns {
		byDate[c.Date] = byDate[c.Date] || c.Checked
	}
	return byDate
}

// sortedByDate returns a date-ascending copy of checkIns.
func sortedByDate(checkIns []models.CheckIn) []models.CheckIn {
	sorted := make([]models.CheckIn, len(checkIns))
	copy(sorted, checkIns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

// percent returns part/whole as a rounded percentage, or 0 when whole is 0.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
