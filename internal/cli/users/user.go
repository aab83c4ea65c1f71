package users

import (
	"fmt"

	"github.com/julianstephens/onehabit/internal/cli"
	"github.com/julianstephens/onehabit/internal/render"
	"github.com/julianstephens/onehabit/internal/tracker"
)

type UserCmd struct {
	Add     UserAddCmd     `cmd:"" help:"Register a user."`
	List    UserListCmd    `cmd:"" help:"List users."`
	Profile UserProfileCmd `cmd:"" help:"Show a user's profile."`
	Update  UserUpdateCmd  `cmd:"" help:"Update your profile."`
}

type UserAddCmd struct {
	Name        string `arg:"" help:"Unique user name (no spaces)."`
	DisplayName string `help:"Display name."`
	Email       string `help:"Email address."`
	Timezone    string `help:"IANA timezone, e.g. Europe/Berlin (default: profile.timezone or UTC)."`
}

func (c *UserAddCmd) Run(ctx *cli.Context) error {
	tz := c.Timezone
	if tz == "" {
		tz = ctx.Config.Profile.Timezone
	}
	user, err := ctx.Tracker.RegisterUser(tracker.NewUser{
		Name:        c.Name,
		DisplayName: c.DisplayName,
		Email:       c.Email,
		Timezone:    tz,
	})
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ctx.Printf("Added user: %s (ID: %s, timezone %s)\n", user.Name, user.ID, user.Timezone)
	if ctx.Config.Profile.User == "" && ctx.UserRef == "" {
		ctx.Printf("Set profile.user: %s in your config or pass --user %s to act as this user.\n", user.Name, user.Name)
	}
	return nil
}

type UserListCmd struct{}

func (c *UserListCmd) Run(ctx *cli.Context) error {
	users, err := ctx.Tracker.Users()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		ctx.Println("No users found.")
		return nil
	}
	for _, u := range users {
		paired := ""
		if u.InPair() {
			paired = " [paired]"
		}
		ctx.Printf("%s  %s (%s)%s\n", u.ID, u.Label(), u.Name, paired)
	}
	return nil
}

type UserProfileCmd struct {
	Name string `arg:"" optional:"" help:"User name or ID (default: you)."`
}

func (c *UserProfileCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if c.Name != "" {
		user, err = ctx.Tracker.ResolveUser(c.Name)
	}
	if err != nil {
		return err
	}

	ctx.Printf("%s (%s)\n", user.Label(), user.Name)
	if user.Email != "" {
		ctx.Printf("  Email:    %s\n", user.Email)
	}
	if user.Bio != "" {
		ctx.Printf("  Bio:      %s\n", user.Bio)
	}
	ctx.Printf("  Timezone: %s\n", user.Timezone)
	ctx.Printf("  Joined:   %s\n", user.CreatedAt.Format("2006-01-02"))
	return nil
}

type UserUpdateCmd struct {
	DisplayName *string `help:"Display name."`
	Email       *string `help:"Email address."`
	Bio         *string `help:"Short bio."`
	Timezone    *string `help:"IANA timezone."`
}

func (c *UserUpdateCmd) Run(ctx *cli.Context) error {
	if c.DisplayName == nil && c.Email == nil && c.Bio == nil && c.Timezone == nil {
		ctx.Println("No changes specified. Use --display-name, --email, --bio or --timezone.")
		return nil
	}

	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	user, err = ctx.Tracker.UpdateProfile(user.ID, tracker.ProfileUpdate{
		DisplayName: c.DisplayName,
		Email:       c.Email,
		Bio:         c.Bio,
		Timezone:    c.Timezone,
	})
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ctx.Printf("Updated profile for %s\n", user.Name)
	return nil
}

// ProfileCmd shows the acting user's overall stats
type ProfileCmd struct{}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	stats, err := ctx.Tracker.ProfileStats(user.ID)
	if err != nil {
		return fmt.Errorf("failed to compute profile stats: %w", err)
	}
	consistency, err := ctx.Tracker.Consistency(user.ID)
	if err != nil {
		return fmt.Errorf("failed to compute consistency: %w", err)
	}

	ctx.Println(render.Profile(user, stats))
	ctx.Println()
	ctx.Println(render.Consistency(consistency))
	return nil
}
