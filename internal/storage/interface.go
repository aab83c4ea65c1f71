package storage

import (
	"errors"

	"github.com/julianstephens/onehabit/internal/models"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrPairFull        = errors.New("pair already has two members")
	ErrAlreadyPaired   = errors.New("user already belongs to a pair")
	ErrInviteCodeTaken = errors.New("invite code already in use")
)

// Provider is the record store behind the tracker. Implementations return
// ErrNotFound (wrapped) when a lookup by key matches nothing.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	AddUser(models.User) error
	GetUser(id string) (models.User, error)
	GetUserByName(name string) (models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateUser(models.User) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitsByOwner(ownerID string, includeInactive bool) ([]models.Habit, error)
	GetHabitsByPair(pairID string) ([]models.Habit, error)
	UpdateHabit(models.Habit) error

	// Check-ins
	// UpsertCheckIn inserts the check-in or, when one already exists for the same
	// (habit, user, date), updates that row in place and keeps its ID.
	UpsertCheckIn(models.CheckIn) (models.CheckIn, error)
	GetCheckIn(id string) (models.CheckIn, error)
	GetCheckInByKey(habitID, userID, date string) (models.CheckIn, error)
	GetCheckInsForUserDate(userID, date string) ([]models.CheckIn, error)
	// GetCheckInsForUserRange returns the user's check-ins with start <= date <= end,
	// compared as strings.
	GetCheckInsForUserRange(userID, start, end string) ([]models.CheckIn, error)
	GetCheckInsForHabit(habitID, userID string) ([]models.CheckIn, error)
	// GetRecentCheckInsForHabit returns up to limit check-ins of any user, newest first.
	GetRecentCheckInsForHabit(habitID string, limit int) ([]models.CheckIn, error)

	// Pairs
	// CreatePair stores the pair with its first member and links the user to it.
	CreatePair(pair models.Pair) error
	GetPair(id string) (models.Pair, error)
	GetPairByInviteCode(code string) (models.Pair, error)
	// JoinPair adds userID to the pair with the given invite code in a single
	// transaction, failing with ErrPairFull at capacity.
	JoinPair(code, userID string) (models.Pair, error)
	// LeavePair removes userID from its pair and deletes the pair when it empties.
	LeavePair(userID string) error

	// Goals
	AddGoal(models.MonthlyGoal) error
	GetGoal(id string) (models.MonthlyGoal, error)
	GetGoalsForUserMonth(userID, month string) ([]models.MonthlyGoal, error)
	UpdateGoal(models.MonthlyGoal) error
	DeleteGoal(id string) error

	// Utils
	GetConfigPath() string
}
