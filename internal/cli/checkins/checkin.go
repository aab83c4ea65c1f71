package checkins

import (
	"errors"
	"fmt"

	"github.com/julianstephens/onehabit/internal/cli"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/storage"
	"github.com/julianstephens/onehabit/internal/tracker"
	"github.com/julianstephens/onehabit/internal/validation"
)

// CheckInCmd toggles the habit for a day
type CheckInCmd struct {
	Habit  string `arg:"" help:"Habit ID or title."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today in your timezone)."`
	Note   string `help:"Note for this day."`
	Mood   string `help:"How it felt: excellent, good, neutral, bad or terrible."`
	Synced bool   `help:"Mark as done together with your partner."`
}

func (c *CheckInCmd) Run(ctx *cli.Context) error {
	mood, err := cli.ParseMood(c.Mood)
	if err != nil {
		return err
	}
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(user, c.Habit)
	if err != nil {
		return err
	}

	checkIn, err := ctx.Tracker.ToggleCheckIn(tracker.Toggle{
		HabitID: habit.ID,
		UserID:  user.ID,
		Date:    c.Date,
		Note:    c.Note,
		Mood:    mood,
		Synced:  c.Synced,
	})
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	if checkIn.Checked {
		ctx.Printf("Checked in %q for %s\n", habit.Title, checkIn.Date)
		stats, err := ctx.Tracker.HabitStats(habit.ID, user.ID)
		if err == nil && stats.CurrentStreak > 1 {
			ctx.Printf("Streak: %d days\n", stats.CurrentStreak)
		}
		return nil
	}
	ctx.Printf("Unchecked %q for %s\n", habit.Title, checkIn.Date)
	return nil
}

// lookup finds the caller's check-in for a habit and day
func lookup(ctx *cli.Context, habitRef, date string) (models.CheckIn, error) {
	if date != "" {
		if err := validation.ValidateDate(date); err != nil {
			return models.CheckIn{}, err
		}
	}
	user, err := ctx.CurrentUser()
	if err != nil {
		return models.CheckIn{}, err
	}
	habit, err := ctx.ResolveHabit(user, habitRef)
	if err != nil {
		return models.CheckIn{}, err
	}
	checkIn, err := ctx.Tracker.CheckInFor(habit.ID, user.ID, date)
	if errors.Is(err, storage.ErrNotFound) {
		return models.CheckIn{}, fmt.Errorf("no check-in for %q on that day - run 'onehabit checkin' first", habit.Title)
	}
	return checkIn, err
}

type NoteCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
	Note  string `arg:"" help:"Note text; empty clears it."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *NoteCmd) Run(ctx *cli.Context) error {
	checkIn, err := lookup(ctx, c.Habit, c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker.UpdateNote(checkIn.ID, checkIn.UserID, c.Note); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ctx.Printf("Updated note for %s\n", checkIn.Date)
	return nil
}

type MoodCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
	Mood  string `arg:"" help:"excellent, good, neutral, bad or terrible."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *MoodCmd) Run(ctx *cli.Context) error {
	mood, err := cli.ParseMood(c.Mood)
	if err != nil {
		return err
	}
	if mood == nil {
		return fmt.Errorf("%w: mood is required", validation.ErrInvalid)
	}
	checkIn, err := lookup(ctx, c.Habit, c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker.UpdateMood(checkIn.ID, checkIn.UserID, *mood); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ctx.Printf("Recorded mood %s for %s\n", *mood, checkIn.Date)
	return nil
}

// TodayCmd lists every visible habit with today's state for you and your partner
type TodayCmd struct {
	Date string `help:"Show another day (YYYY-MM-DD)."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	habits, err := ctx.Tracker.UserHabits(user.ID)
	if err != nil {
		return err
	}

	date := c.Date
	var checkIns []models.CheckIn
	if date == "" {
		today, err := ctx.Tracker.Today(user)
		if err != nil {
			return err
		}
		date = today.Format("2006-01-02")
		checkIns, err = ctx.Tracker.TodaysCheckInsForPair(user.ID)
		if err != nil {
			return err
		}
	} else {
		checkIns, err = ctx.Tracker.CheckInsForDate(user.ID, date)
		if err != nil {
			return err
		}
	}

	if len(habits) == 0 {
		ctx.Println("No habits found. Add one with 'onehabit habit add'.")
		return nil
	}

	mine := map[string]bool{}
	partner := map[string]bool{}
	for _, ci := range checkIns {
		if !ci.Checked {
			continue
		}
		if ci.UserID == user.ID {
			mine[ci.HabitID] = true
		} else {
			partner[ci.HabitID] = true
		}
	}

	ctx.Printf("Habits for %s:\n\n", date)
	done := 0
	for _, h := range habits {
		line := cli.CheckMark(mine[h.ID]) + " " + h.Title
		if h.IsShared() && partner[h.ID] {
			line += " (partner done)"
		}
		if mine[h.ID] {
			done++
		}
		ctx.Println(line)
	}
	ctx.Printf("\nCompleted: %d/%d\n", done, len(habits))
	return nil
}
