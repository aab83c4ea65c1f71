package tracker

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/storage"
	"github.com/julianstephens/onehabit/internal/storage/sqlite"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Set(t time.Time) { c.now = t }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var testNow = time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*Service, *fakeClock) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := &fakeClock{now: testNow}
	svc := New(store, WithClock(clock.Now), WithIDGenerator(sequentialIDs()))
	return svc, clock
}

func mustRegister(t *testing.T, svc *Service, name string) models.User {
	t.Helper()
	u, err := svc.RegisterUser(NewUser{Name: name})
	if err != nil {
		t.Fatalf("RegisterUser(%s) failed: %v", name, err)
	}
	return u
}

func mustHabit(t *testing.T, svc *Service, ownerID, title string, shared bool) models.Habit {
	t.Helper()
	h, err := svc.CreateHabit(ownerID, title, shared)
	if err != nil {
		t.Fatalf("CreateHabit(%s) failed: %v", title, err)
	}
	return h
}

func mustToggle(t *testing.T, svc *Service, habitID, userID, date string) models.CheckIn {
	t.Helper()
	c, err := svc.ToggleCheckIn(Toggle{HabitID: habitID, UserID: userID, Date: date})
	if err != nil {
		t.Fatalf("ToggleCheckIn(%s, %s) failed: %v", habitID, date, err)
	}
	return c
}

func TestRegisterUser(t *testing.T) {
	svc, _ := setupService(t)

	alice, err := svc.RegisterUser(NewUser{Name: " alice ", DisplayName: "Alice"})
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if alice.Name != "alice" || alice.Timezone != "UTC" || !alice.CreatedAt.Equal(testNow) {
		t.Errorf("RegisterUser() = %+v", alice)
	}

	tests := []struct {
		name string
		in   NewUser
	}{
		{"duplicate name", NewUser{Name: "alice"}},
		{"empty name", NewUser{Name: "  "}},
		{"name with space", NewUser{Name: "alice smith"}},
		{"bad timezone", NewUser{Name: "carol", Timezone: "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.RegisterUser(tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("RegisterUser() error = %v, want ErrInvalidInput", err)
			}
		})
	}

	byName, err := svc.ResolveUser("alice")
	if err != nil || byName.ID != alice.ID {
		t.Errorf("ResolveUser(name) = %+v, %v", byName, err)
	}
	byID, err := svc.ResolveUser(alice.ID)
	if err != nil || byID.Name != "alice" {
		t.Errorf("ResolveUser(id) = %+v, %v", byID, err)
	}
	if _, err := svc.ResolveUser("nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("ResolveUser(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := setupService(t)
	alice := mustRegister(t, svc, "alice")

	display, bio, tz := "  Ali  ", " reads a lot ", "Europe/Paris"
	updated, err := svc.UpdateProfile(alice.ID, ProfileUpdate{DisplayName: &display, Bio: &bio, Timezone: &tz})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.DisplayName != "Ali" || updated.Bio != "reads a lot" || updated.Timezone != tz {
		t.Errorf("UpdateProfile() = %+v", updated)
	}
	if updated.UpdatedAt == nil {
		t.Error("UpdatedAt not set")
	}

	stored, err := svc.ResolveUser(alice.ID)
	if err != nil {
		t.Fatalf("ResolveUser failed: %v", err)
	}
	if stored.Label() != "Ali" {
		t.Errorf("stored label = %q, want Ali", stored.Label())
	}

	bad := "Nowhere/Land"
	if _, err := svc.UpdateProfile(alice.ID, ProfileUpdate{Timezone: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("UpdateProfile(bad timezone) error = %v, want ErrInvalidInput", err)
	}
}

func TestToday_UsesUserTimezone(t *testing.T) {
	svc, clock := setupService(t)
	alice := mustRegister(t, svc, "alice")
	tz := "America/New_York"
	if _, err := svc.UpdateProfile(alice.ID, ProfileUpdate{Timezone: &tz}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	habit := mustHabit(t, svc, alice.ID, "Read", false)

	// 02:00 UTC is still the previous evening in New York
	clock.Set(time.Date(2025, time.March, 10, 2, 0, 0, 0, time.UTC))

	c := mustToggle(t, svc, habit.ID, alice.ID, "")
	if c.Date != "2025-03-09" {
		t.Errorf("check-in date = %s, want 2025-03-09", c.Date)
	}
}
