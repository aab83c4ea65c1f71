package analytics

import (
	"time"

	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/utils"
)

// DayStat is one calendar day of a month view
type DayStat struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Rate      int    `json:"rate"`
	Perfect   bool   `json:"perfect"`
}

// MonthStats aggregates a user's check-ins across one calendar month
type MonthStats struct {
	Month                  string    `json:"month"`
	DaysInMonth            int       `json:"days_in_month"`
	PerfectDays            int       `json:"perfect_days"`
	MissedDays             int       `json:"missed_days"`
	TotalCompleted         int       `json:"total_completed"`
	TotalCompletionPercent int       `json:"total_completion_percent"`
	CurrentStreak          int       `json:"current_streak"`
	LongestStreak          int       `json:"longest_streak"`
	StreakBroken           bool      `json:"streak_broken"`
	Days                   []DayStat `json:"days"`
}

// WeekStat is one week slice of a month, clamped to the month's boundaries
type WeekStat struct {
	Week      int    `json:"week"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Rate      int    `json:"rate"`
}

// ComputeMonthStats scans every day of the month. A day is perfect when the number of
// checked records on it equals habitCount (and habitCount > 0); perfect days form the
// running streak.
func ComputeMonthStats(checkIns []models.CheckIn, habitCount int, year int, month time.Month) MonthStats {
	daysInMonth := utils.DaysInMonth(year, month)
	completedByDate := countCheckedByDate(checkIns)

	stats := MonthStats{
		Month:       utils.MonthKey(year, month),
		DaysInMonth: daysInMonth,
		Days:        make([]DayStat, 0, daysInMonth),
	}

	run := 0
	reset := false
	for day := 1; day <= daysInMonth; day++ {
		date := utils.FormatDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		completed := completedByDate[date]
		perfect := habitCount > 0 && completed == habitCount

		stats.TotalCompleted += completed
		stats.Days = append(stats.Days, DayStat{
			Date:      date,
			Completed: completed,
			Total:     habitCount,
			Rate:      percent(completed, habitCount),
			Perfect:   perfect,
		})

		switch {
		case perfect:
			stats.PerfectDays++
			run++
			if run > stats.LongestStreak {
				stats.LongestStreak = run
			}
			continue
		case completed == 0:
			stats.MissedDays++
		}

		if run > 0 {
			reset = true
		}
		run = 0
	}

	stats.CurrentStreak = run
	stats.StreakBroken = reset && run == 0
	stats.TotalCompletionPercent = percent(stats.TotalCompleted, habitCount*daysInMonth)

	return stats
}

// ComputeMonthWeeks splits a month into Sunday-started weeks and reports completion
// for each. The first and last weeks are clamped to the month.
func ComputeMonthWeeks(checkIns []models.CheckIn, habitCount int, year int, month time.Month) []WeekStat {
	daysInMonth := utils.DaysInMonth(year, month)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())
	weeks := (daysInMonth + offset + 6) / 7

	completedByDate := countCheckedByDate(checkIns)

	out := make([]WeekStat, 0, weeks)
	for w := 0; w < weeks; w++ {
		startDay := 1 + w*7 - offset
		endDay := startDay + 6
		if startDay < 1 {
			startDay = 1
		}
		if endDay > daysInMonth {
			endDay = daysInMonth
		}

		ws := WeekStat{Week: w + 1}
		for d := startDay; d <= endDay; d++ {
			date := utils.FormatDate(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
			if ws.Start == "" {
				ws.Start = date
			}
			ws.End = date
			ws.Completed += completedByDate[date]
			ws.Total += habitCount
		}
		ws.Rate = percent(ws.Completed, ws.Total)
		out = append(out, ws)
	}
	return out
}

// TrendDay is one day of a trailing completion trend
type TrendDay struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Rate      int    `json:"rate"`
}

// ComputeTrend reports per-day completion for the last days calendar days ending at
// referenceDate, oldest first.
func ComputeTrend(checkIns []models.CheckIn, habitCount int, referenceDate time.Time, days int) []TrendDay {
	if days <= 0 {
		return nil
	}
	completedByDate := countCheckedByDate(checkIns)
	ref := utils.DateOnly(referenceDate)

	out := make([]TrendDay, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i)
		date := utils.FormatDate(day)
		completed := completedByDate[date]
		out = append(out, TrendDay{
			Date:      date,
			Weekday:   day.Weekday().String()[:3],
			Completed: completed,
			Total:     habitCount,
			Rate:      percent(completed, habitCount),
		})
	}
	return out
}

func countCheckedByDate(checkIns []models.CheckIn) map[string]int {
	counts := make(map[string]int)
	for _, c := range checkIns {
		if c.Checked {
			counts[c.Date]++
		}
	}
	return counts
}
