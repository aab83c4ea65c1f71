package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/julianstephens/onehabit/internal/backup"
	"github.com/julianstephens/onehabit/internal/config"
	"github.com/julianstephens/onehabit/internal/keyring"
	"github.com/julianstephens/onehabit/internal/logger"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/storage"
	"github.com/julianstephens/onehabit/internal/storage/postgres"
	"github.com/julianstephens/onehabit/internal/storage/sqlite"
	"github.com/julianstephens/onehabit/internal/tracker"
)

// PostgresKeyringRef selects the PostgreSQL connection stored in the keyring or environment
const PostgresKeyringRef = "postgres"

var ErrNoUser = errors.New("no user selected: pass --user or set profile.user in the config file")

type Context struct {
	Store    storage.Provider
	Tracker  *tracker.Service
	Config   *config.Config
	UserRef  string
	Out      io.Writer
	Prompter Prompter
}

// NewContext wires a tracker over store using the analytics settings from cfg
func NewContext(store storage.Provider, cfg *config.Config, userRef string, opts ...tracker.Option) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	settings := tracker.Settings{
		PatternWindowDays: cfg.Analytics.PatternWindowDays,
		BestDayMinSamples: cfg.Analytics.BestDayMinSamples,
		TrendDays:         cfg.Analytics.TrendDays,
	}
	opts = append([]tracker.Option{tracker.WithSettings(settings)}, opts...)
	return &Context{
		Store:    store,
		Tracker:  tracker.New(store, opts...),
		Config:   cfg,
		UserRef:  userRef,
		Out:      os.Stdout,
		Prompter: HuhPrompter{},
	}
}

// OpenStore picks the storage backend for ref: a PostgreSQL URL or DSN, the
// literal "postgres" for a keyring/environment connection, or a SQLite path.
func OpenStore(ref string) (storage.Provider, error) {
	switch {
	case ref == PostgresKeyringRef:
		connStr, source, err := keyring.ResolveConnectionString("")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve PostgreSQL connection: %w", err)
		}
		logger.Debug("Using PostgreSQL connection", "source", source)
		return postgres.New(connStr), nil
	case postgres.IsConnString(ref) || strings.Contains(ref, "host="):
		if _, err := postgres.ValidateConnString(ref); err != nil {
			return nil, err
		}
		return postgres.New(ref), nil
	}
	return sqlite.NewStore(config.ExpandHome(ref)), nil
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// CurrentUser resolves the acting user from --user or profile.user
func (c *Context) CurrentUser() (models.User, error) {
	ref := c.UserRef
	if ref == "" && c.Config != nil {
		ref = c.Config.Profile.User
	}
	if ref == "" {
		return models.User{}, ErrNoUser
	}
	user, err := c.Tracker.ResolveUser(ref)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, fmt.Errorf("user %q not found - run 'onehabit user add %s' first", ref, ref)
		}
		return models.User{}, err
	}
	return user, nil
}

// PerformAutomaticBackup snapshots SQLite databases after writes when enabled
func (c *Context) PerformAutomaticBackup() {
	if c.Config == nil || !c.Config.Backup.Enabled {
		return
	}
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath(), backup.WithKeep(c.Config.Backup.Keep))
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseMood accepts an empty string as "no mood"
func ParseMood(s string) (*models.Mood, error) {
	if s == "" {
		return nil, nil
	}
	m, err := models.ParseMood(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tracker.ErrInvalidInput, err)
	}
	return &m, nil
}

// ParseTarget parses a positive goal target
func ParseTarget(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: target must be a positive number", tracker.ErrInvalidInput)
	}
	return v, nil
}

// CheckMark renders a check-in state like a task list item
func CheckMark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// ResolveHabit finds a habit the user can see by ID or, case-insensitively, by title
func (c *Context) ResolveHabit(user models.User, ref string) (models.Habit, error) {
	habits, err := c.Tracker.UserHabits(user.ID)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range habits {
		if strings.EqualFold(h.Title, ref) {
			return h, nil
		}
	}
	// Inactive habits are only reachable by ID
	details, err := c.Tracker.HabitDetails(ref, user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, fmt.Errorf("habit %q not found", ref)
		}
		return models.Habit{}, err
	}
	return details.Habit, nil
}
