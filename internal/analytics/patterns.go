package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/onehabit/internal/constants"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/utils"
)

// DayPattern counts completions for one weekday
type DayPattern struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Rate returns the completion ratio in [0, 1]
func (p DayPattern) Rate() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// DayPatterns maps lowercase weekday names ("sunday".."saturday") to their counts.
// Weekdays without data are absent.
type DayPatterns map[string]DayPattern

// MoodShare is one mood's slice of a mood distribution
type MoodShare struct {
	Mood    models.Mood `json:"mood"`
	Count   int         `json:"count"`
	Percent int         `json:"percent"`
}

// HabitInsights describes recent patterns for one (habit, user)
type HabitInsights struct {
	WindowDays           int                 `json:"window_days"`
	DayPatterns          DayPatterns         `json:"day_patterns"`
	BestDays             []string            `json:"best_days"`
	MoodStats            map[models.Mood]int `json:"mood_stats"`
	MoodDistribution     []MoodShare         `json:"mood_distribution"`
	DominantMood         *models.Mood        `json:"dominant_mood"`
	TotalMoodEntries     int                 `json:"total_mood_entries"`
	RecentCompletionRate int                 `json:"recent_completion_rate"`
}

// ComputeDayOfWeekPatterns buckets the check-ins dated within the trailing window
// (referenceDate and the windowDays-1 days before it) by weekday.
// A non-positive windowDays uses the default of 30.
func ComputeDayOfWeekPatterns(checkIns []models.CheckIn, referenceDate time.Time, windowDays int) DayPatterns {
	patterns := make(DayPatterns)
	for _, c := range inWindow(checkIns, referenceDate, windowDays) {
		day, err := utils.ParseDate(c.Date)
		if err != nil {
			continue
		}
		name := weekdayName(day.Weekday())
		p := patterns[name]
		p.Total++
		if c.Checked {
			p.Completed++
		}
		patterns[name] = p
	}
	return patterns
}

// BestDays returns up to three weekdays with at least minSamples data points,
// ordered by completion rate (highest first). Ties keep calendar order starting
// from Sunday. The sample floor filters out noise from weekdays seen only once or twice.
func BestDays(patterns DayPatterns, minSamples int) []string {
	type ranked struct {
		day  string
		rate float64
	}

	var candidates []ranked
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := weekdayName(wd)
		p, ok := patterns[name]
		if !ok || p.Total < minSamples {
			continue
		}
		candidates = append(candidates, ranked{day: name, rate: p.Rate()})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rate > candidates[j].rate
	})

	if len(candidates) > constants.MaxBestDays {
		candidates = candidates[:constants.MaxBestDays]
	}

	days := make([]string, 0, len(candidates))
	for _, c := range candidates {
		days = append(days, c.day)
	}
	return days
}

// ComputeHabitInsights analyzes the trailing window of one habit's check-ins:
// weekday patterns, best days, mood statistics and recent completion rate.
func ComputeHabitInsights(checkIns []models.CheckIn, referenceDate time.Time, windowDays int, minSamples int) HabitInsights {
	if windowDays <= 0 {
		windowDays = constants.DefaultPatternWindowDays
	}
	recent := inWindow(checkIns, referenceDate, windowDays)
	patterns := ComputeDayOfWeekPatterns(checkIns, referenceDate, windowDays)

	insights := HabitInsights{
		WindowDays:  windowDays,
		DayPatterns: patterns,
		BestDays:    BestDays(patterns, minSamples),
		MoodStats:   make(map[models.Mood]int),
	}

	completed := 0
	for _, c := range recent {
		if !c.Checked {
			continue
		}
		completed++
		if c.Mood != nil && c.Mood.Valid() {
			insights.MoodStats[*c.Mood]++
			insights.TotalMoodEntries++
		}
	}

	insights.DominantMood = dominantMood(insights.MoodStats)
	insights.MoodDistribution = MoodDistribution(recent)
	insights.RecentCompletionRate = percent(completed, len(recent))

	return insights
}

// MoodDistribution reports how often each mood was recorded on checked records,
// best mood first. Moods that never occur are omitted.
func MoodDistribution(checkIns []models.CheckIn) []MoodShare {
	counts := make(map[models.Mood]int)
	total := 0
	for _, c := range checkIns {
		if !c.Checked || c.Mood == nil || !c.Mood.Valid() {
			continue
		}
		counts[*c.Mood]++
		total++
	}

	var shares []MoodShare
	for _, m := range models.Moods {
		if counts[m] == 0 {
			continue
		}
		shares = append(shares, MoodShare{Mood: m, Count: counts[m], Percent: percent(counts[m], total)})
	}
	return shares
}

// MoodCompletion correlates mood with streak momentum: for each mood, the average
// length of the checked run (in records) that the mood was logged in.
type MoodCompletion struct {
	Mood          models.Mood `json:"mood"`
	Entries       int         `json:"entries"`
	AverageStreak float64     `json:"average_streak"`
}

// MoodCorrelation walks the check-ins in date order, tracking the running checked
// streak, and averages the streak length at which each mood was logged.
func MoodCorrelation(checkIns []models.CheckIn) []MoodCompletion {
	sums := make(map[models.Mood]int)
	counts := make(map[models.Mood]int)

	run := 0
	for _, c := range sortedByDate(checkIns) {
		if !c.Checked {
			run = 0
			continue
		}
		run++
		if c.Mood == nil || !c.Mood.Valid() {
			continue
		}
		sums[*c.Mood] += run
		counts[*c.Mood]++
	}

	var out []MoodCompletion
	for _, m := range models.Moods {
		if counts[m] == 0 {
			continue
		}
		out = append(out, MoodCompletion{
			Mood:          m,
			Entries:       counts[m],
			AverageStreak: roundTo(float64(sums[m])/float64(counts[m]), 1),
		})
	}
	return out
}

// dominantMood returns the most frequent mood; ties go to the better mood.
func dominantMood(stats map[models.Mood]int) *models.Mood {
	var best *models.Mood
	bestCount := 0
	for _, m := range models.Moods {
		if stats[m] > bestCount {
			bestCount = stats[m]
			best = models.MoodPtr(m)
		}
	}
	return best
}

// inWindow returns the check-ins dated from referenceDate-(windowDays-1) through
// referenceDate, inclusive.
func inWindow(checkIns []models.CheckIn, referenceDate time.Time, windowDays int) []models.CheckIn {
	if windowDays <= 0 {
		windowDays = constants.DefaultPatternWindowDays
	}
	ref := utils.DateOnly(referenceDate)
	start := utils.FormatDate(ref.AddDate(0, 0, -(windowDays - 1)))
	end := utils.FormatDate(ref)

	var out []models.CheckIn
	for _, c := range checkIns {
		if c.Date >= start && c.Date <= end {
			out = append(out, c)
		}
	}
	return out
}

func weekdayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}
