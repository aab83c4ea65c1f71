package stats

import (
	"fmt"
	"time"

	"github.com/julianstephens/onehabit/internal/cli"
	"github.com/julianstephens/onehabit/internal/render"
)

type StatsCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(user, c.Habit)
	if err != nil {
		return err
	}
	s, err := ctx.Tracker.HabitStats(habit.ID, user.ID)
	if err != nil {
		return err
	}
	ctx.Println(render.HabitStats(habit.Title, s))
	return nil
}

type InsightsCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(user, c.Habit)
	if err != nil {
		return err
	}
	report, err := ctx.Tracker.HabitInsights(habit.ID, user.ID)
	if err != nil {
		return err
	}
	ctx.Println(render.Insights(habit.Title, report.HabitInsights, report.MoodCorrelation))
	return nil
}

// MonthCmd shows the month calendar across all visible habits
type MonthCmd struct {
	Year  int  `help:"Year (default: this year)."`
	Month int  `help:"Month number 1-12 (default: this month)."`
	Weeks bool `help:"Also show per-week completion."`
}

func (c *MonthCmd) Validate() error {
	if c.Month < 0 || c.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	return nil
}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	report, err := ctx.Tracker.MonthStats(user.ID, c.Year, time.Month(c.Month))
	if err != nil {
		return err
	}
	if len(report.Habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	ctx.Println(render.MonthCalendar(report.Year, report.Month, report.Stats))
	if c.Weeks {
		ctx.Println()
		ctx.Println(render.Weeks(report.Weeks))
	}
	return nil
}

// WeekCmd shows the daily completion trend
type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	trend, err := ctx.Tracker.WeeklyTrend(user.ID)
	if err != nil {
		return err
	}
	ctx.Println(render.Trend(trend))
	return nil
}
