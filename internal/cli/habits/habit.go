package habits

import (
	"fmt"

	"github.com/julianstephens/onehabit/internal/cli"
	"github.com/julianstephens/onehabit/internal/tracker"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List your habits and your partner's shared habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Rename, pause or resume a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit (soft delete)."`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit with its recent check-ins."`
}

type HabitAddCmd struct {
	Title  string `arg:"" help:"Habit title."`
	Shared bool   `help:"Share the habit with your pair."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	habit, err := ctx.Tracker.CreateHabit(user.ID, c.Title, c.Shared)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ctx.Printf("Added habit: %s (ID: %s)\n", habit.Title, habit.ID)
	if c.Shared && !habit.IsShared() {
		ctx.Println("You are not in a pair, so the habit was added as a solo habit.")
	}
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	habits, err := ctx.Tracker.UserHabits(user.ID)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		tag := ""
		switch {
		case h.OwnerID != user.ID:
			tag = " [partner]"
		case h.IsShared():
			tag = " [shared]"
		}
		ctx.Printf("%s  %s%s\n", h.ID, h.Title, tag)
	}
	return nil
}

type HabitEditCmd struct {
	Habit  string  `arg:"" help:"Habit ID or title."`
	Title  *string `help:"New title."`
	Pause  bool    `help:"Mark the habit inactive." xor:"state"`
	Resume bool    `help:"Mark the habit active again." xor:"state"`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(user, c.Habit)
	if err != nil {
		return err
	}

	in := tracker.HabitUpdate{Title: c.Title}
	if c.Pause || c.Resume {
		active := c.Resume
		in.Active = &active
	}
	if in.Title == nil && in.Active == nil {
		ctx.Println("No changes specified. Use --title, --pause or --resume.")
		return nil
	}

	habit, err = ctx.Tracker.UpdateHabit(habit.ID, user.ID, in)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	state := "active"
	if !habit.Active {
		state = "paused"
	}
	ctx.Printf("Updated habit: %s (%s)\n", habit.Title, state)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(user, c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteHabit(habit.ID, user.ID); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ctx.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(user, c.Habit)
	if err != nil {
		return err
	}
	details, err := ctx.Tracker.HabitDetails(habit.ID, user.ID)
	if err != nil {
		return err
	}

	h := details.Habit
	kind := "solo"
	if h.IsShared() {
		kind = "shared"
	}
	state := "active"
	if !h.Active {
		state = "inactive"
	}
	ctx.Printf("%s\n  ID:      %s\n  Type:    %s\n  State:   %s\n  Created: %s\n",
		h.Title, h.ID, kind, state, h.CreatedAt.Format("2006-01-02"))

	if len(details.CheckIns) == 0 {
		ctx.Println("\nNo check-ins yet.")
		return nil
	}
	ctx.Println("\nRecent check-ins:")
	for _, ci := range details.CheckIns {
		line := fmt.Sprintf("  %s %s", ci.Date, cli.CheckMark(ci.Checked))
		if ci.UserID != user.ID {
			line += " (partner)"
		}
		if ci.Mood != nil {
			line += " " + string(*ci.Mood)
		}
		if ci.Note != "" {
			line += " - " + ci.Note
		}
		ctx.Println(line)
	}
	return nil
}
