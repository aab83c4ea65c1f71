// Package clitest builds command contexts over a throwaway SQLite store.
package clitest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/onehabit/internal/cli"
	"github.com/julianstephens/onehabit/internal/config"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/storage/sqlite"
	"github.com/julianstephens/onehabit/internal/tracker"
)

// Now is the fixed clock every Env starts at, a Monday afternoon in UTC
var Now = time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)

// Prompter answers prompts from canned values and records the questions asked
type Prompter struct {
	Answer    bool
	Goal      tracker.GoalInput
	GoalErr   error
	Questions []string
}

func (p *Prompter) Confirm(title, _ string) (bool, error) {
	p.Questions = append(p.Questions, title)
	return p.Answer, nil
}

func (p *Prompter) GoalForm(in *tracker.GoalInput) error {
	p.Questions = append(p.Questions, "goal")
	if p.GoalErr != nil {
		return p.GoalErr
	}
	*in = p.Goal
	return nil
}

type Env struct {
	Ctx      *cli.Context
	Out      *bytes.Buffer
	Prompter *Prompter
	DBPath   string
	now      time.Time
}

// New returns an Env with an initialized store, a fixed clock and sequential IDs
func New(t *testing.T) *Env {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "onehabit.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	cfg := config.Default()
	cfg.Database.Path = dbPath

	env := &Env{
		Out:      &bytes.Buffer{},
		Prompter: &Prompter{},
		DBPath:   dbPath,
		now:      Now,
	}
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	env.Ctx = cli.NewContext(store, cfg, "",
		tracker.WithClock(func() time.Time { return env.now }),
		tracker.WithIDGenerator(ids))
	env.Ctx.Out = env.Out
	env.Ctx.Prompter = env.Prompter
	return env
}

// SetNow moves the clock
func (e *Env) SetNow(t time.Time) {
	e.now = t
}

// Output returns everything printed since the last call
func (e *Env) Output() string {
	s := e.Out.String()
	e.Out.Reset()
	return s
}

// Register adds a UTC user
func (e *Env) Register(t *testing.T, name string) models.User {
	t.Helper()
	u, err := e.Ctx.Tracker.RegisterUser(tracker.NewUser{Name: name})
	if err != nil {
		t.Fatalf("RegisterUser(%s) error = %v", name, err)
	}
	return u
}

// Login registers name and makes it the acting user
func (e *Env) Login(t *testing.T, name string) models.User {
	t.Helper()
	u := e.Register(t, name)
	e.Ctx.UserRef = name
	return u
}

// Habit creates a habit owned by ownerID
func (e *Env) Habit(t *testing.T, ownerID, title string, shared bool) models.Habit {
	t.Helper()
	h, err := e.Ctx.Tracker.CreateHabit(ownerID, title, shared)
	if err != nil {
		t.Fatalf("CreateHabit(%s) error = %v", title, err)
	}
	return h
}

// CheckIn toggles a check-in on for date
func (e *Env) CheckIn(t *testing.T, habitID, userID, date string) models.CheckIn {
	t.Helper()
	c, err := e.Ctx.Tracker.ToggleCheckIn(tracker.Toggle{HabitID: habitID, UserID: userID, Date: date})
	if err != nil {
		t.Fatalf("ToggleCheckIn(%s, %s) error = %v", habitID, date, err)
	}
	return c
}
