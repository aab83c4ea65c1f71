package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/onehabit/internal/cli"
	"github.com/julianstephens/onehabit/internal/cli/backups"
	"github.com/julianstephens/onehabit/internal/cli/checkins"
	"github.com/julianstephens/onehabit/internal/cli/goals"
	"github.com/julianstephens/onehabit/internal/cli/habits"
	"github.com/julianstephens/onehabit/internal/cli/pairs"
	"github.com/julianstephens/onehabit/internal/cli/stats"
	"github.com/julianstephens/onehabit/internal/cli/system"
	"github.com/julianstephens/onehabit/internal/cli/users"
	"github.com/julianstephens/onehabit/internal/config"
	"github.com/julianstephens/onehabit/internal/constants"
	apperrors "github.com/julianstephens/onehabit/internal/errors"
	"github.com/julianstephens/onehabit/internal/logger"
	"github.com/julianstephens/onehabit/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite database path, PostgreSQL connection string without password, or 'postgres' to use the keyring. Overrides database.path." type:"string"`
	Settings string `help:"YAML settings file." default:"${settings}"`
	As       string `name:"user" short:"u" help:"Act as this user (name or ID). Overrides profile.user."`
	Debug    bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize onehabit storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored records for integrity problems."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection in the OS keyring."`

	User    users.UserCmd    `cmd:"" help:"Manage users and profiles."`
	Profile users.ProfileCmd `cmd:"" help:"Show your stats across all habits."`

	Habit   habits.HabitCmd     `cmd:"" help:"Manage habits."`
	Checkin checkins.CheckInCmd `cmd:"" help:"Toggle a habit for a day."`
	Note    checkins.NoteCmd    `cmd:"" help:"Set the note of a check-in."`
	Mood    checkins.MoodCmd    `cmd:"" help:"Set the mood of a check-in."`
	Today   checkins.TodayCmd   `cmd:"" help:"Show today's habits." default:"1"`
	Tui     system.TuiCmd       `cmd:"" help:"Open the interactive habit board."`

	Stats    stats.StatsCmd    `cmd:"" help:"Show streaks and completion for a habit."`
	Insights stats.InsightsCmd `cmd:"" help:"Show best days and mood patterns for a habit."`
	Month    stats.MonthCmd    `cmd:"" help:"Show the month calendar."`
	Week     stats.WeekCmd     `cmd:"" help:"Show the daily completion trend."`

	Pair pairs.PairCmd `cmd:"" help:"Track habits together with a partner."`
	Goal goals.GoalCmd `cmd:"" help:"Manage monthly goals."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

// skipsStore lists commands that manage the store themselves or do not use it
func skipsStore(command string) bool {
	for _, prefix := range []string{"keyring"} {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}
	return false
}

// skipsLoad lists commands that open the store without the schema check
func skipsLoad(command string) bool {
	for _, prefix := range []string{"init", "migrate", "doctor"} {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}
	return false
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track one habit at a time, alone or with a partner"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":  constants.Version,
			"settings": constants.DefaultSettings,
		},
	)

	cfg, err := config.Load(CLI.Settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, apperrors.Format(err))
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(config.ExpandHome(CLI.Settings)),
		Level:     cfg.Log.Level,
		JSON:      cfg.Log.JSON,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := ctx.Command()
	var store storage.Provider
	if !skipsStore(command) {
		ref := CLI.Config
		if ref == "" {
			ref = cfg.Database.Path
		}
		store, err = cli.OpenStore(ref)
		if err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()

		if !skipsLoad(command) {
			if err := store.Load(); err != nil {
				apperrors.Fatal(err)
			}
		}
	}

	appCtx := cli.NewContext(store, cfg, CLI.As)
	logger.Debug("Running command", "command", command)
	if err := ctx.Run(appCtx); err != nil {
		if store != nil {
			store.Close()
		}
		apperrors.Fatal(err)
	}
}
