// Package render formats analytics results for the terminal.
package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/onehabit/internal/analytics"
	"github.com/julianstephens/onehabit/internal/models"
)

const barWidth = 20

// ProgressBar draws percent (clamped to 0..100) as a bar of width cells
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	p := math.Max(0, math.Min(100, percent))
	filled := int(math.Round(p / 100 * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func card(title string, rows ...string) string {
	body := append([]string{titleStyle.Render(title), ""}, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// HabitStats renders the stats card for one habit
func HabitStats(title string, s analytics.HabitStats) string {
	mood := "-"
	if s.AverageMood != nil {
		mood = fmt.Sprintf("%.1f / 5 over %s", *s.AverageMood, plural(s.MoodEntries, "check-in"))
	}
	return card(title,
		row("Current streak", plural(s.CurrentStreak, "day")),
		row("Best streak", plural(s.BestStreak, "day")),
		row("Check-ins", fmt.Sprintf("%d of %d", s.CompletedCount, s.TotalCheckIns)),
		row("Completion", fmt.Sprintf("%s %d%%", ProgressBar(float64(s.CompletionRate), barWidth), s.CompletionRate)),
		row("Average mood", mood),
	)
}

// Insights renders the recent patterns of one habit
func Insights(title string, in analytics.HabitInsights, correlation []analytics.MoodCompletion) string {
	rows := []string{
		row("Window", plural(in.WindowDays, "day")),
		row("Recent completion", fmt.Sprintf("%d%%", in.RecentCompletionRate)),
	}

	best := "not enough data yet"
	if len(in.BestDays) > 0 {
		best = strings.Join(in.BestDays, ", ")
	}
	rows = append(rows, row("Best days", best))

	if in.DominantMood != nil {
		rows = append(rows, row("Usual mood", string(*in.DominantMood)))
	}
	for _, share := range in.MoodDistribution {
		rows = append(rows, row("  "+string(share.Mood), fmt.Sprintf("%s %d%%", ProgressBar(float64(share.Percent), 10), share.Percent)))
	}
	if len(correlation) > 0 {
		rows = append(rows, "", mutedStyle.Render("Average streak by mood"))
		for _, mc := range correlation {
			rows = append(rows, row("  "+string(mc.Mood), fmt.Sprintf("%.1f days", mc.AverageStreak)))
		}
	}
	return card(title, rows...)
}

// MonthCalendar renders a Sunday-first calendar grid. Perfect days are green,
// partially completed days amber and empty days muted.
func MonthCalendar(year int, month time.Month, stats analytics.MonthStats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", month, year)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")

	offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	b.WriteString(strings.Repeat("    ", offset))
	for i, d := range stats.Days {
		cell := fmt.Sprintf("%3d", i+1)
		switch {
		case d.Perfect:
			cell = perfectDayStyle.Render(cell)
		case d.Completed > 0:
			cell = partialDayStyle.Render(cell)
		default:
			cell = emptyDayStyle.Render(cell)
		}
		b.WriteString(cell)
		if (offset+i+1)%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	if (offset+len(stats.Days))%7 != 0 {
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(row("Perfect days", fmt.Sprintf("%d/%d", stats.PerfectDays, stats.DaysInMonth)) + "\n")
	b.WriteString(row("Completion", fmt.Sprintf("%s %d%%", ProgressBar(float64(stats.TotalCompletionPercent), barWidth), stats.TotalCompletionPercent)) + "\n")
	b.WriteString(row("Current streak", plural(stats.CurrentStreak, "day")) + "\n")
	b.WriteString(row("Longest streak", plural(stats.LongestStreak, "day")))
	if stats.StreakBroken {
		b.WriteString("\n" + warningStyle.Render("Streak broken, start a new one today"))
	}
	return b.String()
}

// Weeks renders the per-week completion of a month
func Weeks(weeks []analytics.WeekStat) string {
	lines := make([]string, 0, len(weeks))
	for _, w := range weeks {
		lines = append(lines, fmt.Sprintf("%s %s %3d%%",
			labelStyle.Render(fmt.Sprintf("Week %d", w.Week)),
			ProgressBar(float64(w.Rate), barWidth),
			w.Rate))
	}
	return strings.Join(lines, "\n")
}

// Trend renders one bar per day, oldest first
func Trend(days []analytics.TrendDay) string {
	lines := make([]string, 0, len(days))
	for _, d := range days {
		lines = append(lines, fmt.Sprintf("%s %s %s %d/%d",
			mutedStyle.Render(d.Weekday),
			d.Date,
			ProgressBar(float64(d.Rate), barWidth),
			d.Completed, d.Total))
	}
	return strings.Join(lines, "\n")
}

// Goal renders one goal as a single progress line
func Goal(g models.MonthlyGoal) string {
	status := mutedStyle.Render("in progress")
	if g.Completed {
		status = successStyle.Render("completed")
	}
	return fmt.Sprintf("%s\n  %s %.0f/%.0f %s (%.0f%%) %s",
		valueStyle.Render(g.Title),
		ProgressBar(g.Progress(), barWidth),
		g.CurrentValue, g.TargetValue, g.Unit, math.Min(100, g.Progress()),
		status)
}

func GoalSummary(month string, s analytics.GoalSummary) string {
	return card("Goals for "+month,
		row("Goals", fmt.Sprintf("%d (%d completed, %d active)", s.TotalGoals, s.CompletedGoals, s.ActiveGoals)),
		row("Completion", fmt.Sprintf("%d%%", s.CompletionRate)),
		row("Average progress", fmt.Sprintf("%s %d%%", ProgressBar(float64(s.AverageProgress), barWidth), s.AverageProgress)),
		row("On track", fmt.Sprintf("%d of %d active", s.OnTrack, s.ActiveGoals)),
		row("Days remaining", fmt.Sprintf("%d", s.DaysRemaining)),
	)
}

func Profile(u models.User, s analytics.ProfileStats) string {
	rows := []string{
		row("Name", u.Name),
		row("Timezone", u.Timezone),
	}
	if u.Bio != "" {
		rows = append(rows, row("Bio", u.Bio))
	}
	rows = append(rows,
		row("Active habits", fmt.Sprintf("%d", s.TotalHabits)),
		row("Check-ins", fmt.Sprintf("%d", s.TotalCheckIns)),
		row("Current streaks", plural(s.CurrentStreak, "day")),
		row("Best streak", plural(s.BestStreak, "day")),
		row("Member for", plural(s.DaysSinceJoining, "day")),
		row("Completion", fmt.Sprintf("%d%%", s.CompletionRate)),
	)
	return card(u.Label(), rows...)
}

func Consistency(c analytics.Consistency) string {
	if len(c.Habits) == 0 {
		return mutedStyle.Render("No habits yet.")
	}
	lines := make([]string, 0, len(c.Habits)+2)
	for _, h := range c.Habits {
		lines = append(lines, fmt.Sprintf("%s %s %3d%%", labelStyle.Render(truncate(h.Title, 17)), ProgressBar(float64(h.CompletionRate), barWidth), h.CompletionRate))
	}
	lines = append(lines,
		"",
		row("Most consistent", c.MostConsistent.Title),
		row("Needs attention", c.LeastConsistent.Title))
	return strings.Join(lines, "\n")
}

// Sync renders the partner sync state of a shared habit
func Sync(title, partner string, s analytics.SyncStatus) string {
	mark := func(done bool) string {
		if done {
			return successStyle.Render("done")
		}
		return mutedStyle.Render("not yet")
	}
	out := fmt.Sprintf("%s on %s\n  %s %s\n  %s %s",
		valueStyle.Render(title), s.Date,
		labelStyle.Render("You"), mark(s.UserCompleted),
		labelStyle.Render(truncate(partner, 17)), mark(s.PartnerCompleted))
	if s.BothCompleted {
		out += "\n" + successStyle.Render("In sync! You both showed up today.")
	}
	return out
}
