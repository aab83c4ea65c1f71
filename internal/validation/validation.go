package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/onehabit/internal/constants"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/utils"
)

const maxTitleLength = 100

// ErrInvalid is wrapped by every input validation failure
var ErrInvalid = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// ValidateTitle trims title and checks it is non-empty and at most 100 characters
func ValidateTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", invalid("title cannot be empty")
	}
	if utf8.RuneCountInString(t) > maxTitleLength {
		return "", invalid("title must be at most %d characters", maxTitleLength)
	}
	return t, nil
}

// ValidateDate checks a YYYY-MM-DD calendar date
func ValidateDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return invalid("date %q must be YYYY-MM-DD", date)
	}
	return nil
}

// ValidateMonth checks a YYYY-MM month key
func ValidateMonth(month string) error {
	if _, _, err := utils.ParseMonthKey(month); err != nil {
		return invalid("month %q must be YYYY-MM", month)
	}
	return nil
}

// ValidateInviteCode checks that code is exactly six letters or digits
func ValidateInviteCode(code string) error {
	if len(code) != constants.InviteCodeLength {
		return invalid("invite code must be %d characters", constants.InviteCodeLength)
	}
	for _, r := range code {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return invalid("invite code may only contain letters and digits")
		}
	}
	return nil
}

// ValidateGoalTarget requires a strictly positive target
func ValidateGoalTarget(target float64) error {
	if target <= 0 {
		return invalid("goal target must be greater than zero")
	}
	return nil
}

// ValidateProgress rejects negative progress values
func ValidateProgress(value float64) error {
	if value < 0 {
		return invalid("progress cannot be negative")
	}
	return nil
}

// ConflictType represents the type of data integrity problem
type ConflictType string

const (
	ConflictDuplicateHabitTitle ConflictType = "duplicate_habit_title"
	ConflictInvalidDate         ConflictType = "invalid_date"
	ConflictInvalidMood         ConflictType = "invalid_mood"
	ConflictOrphanCheckIn       ConflictType = "orphan_checkin"
	ConflictInvalidGoalMonth    ConflictType = "invalid_goal_month"
	ConflictUnknownGoalHabit    ConflictType = "unknown_goal_habit"
	ConflictStalePairHabit      ConflictType = "stale_pair_habit"
)

// Conflict represents a detected problem in stored records
type Conflict struct {
	Type        ConflictType
	Description string
	IDs         []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t ConflictType, ids []string, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		IDs:         ids,
	})
}

// Snapshot is the slice of a user's records checked for integrity
type Snapshot struct {
	User     models.User
	Habits   []models.Habit // all habits the user can see, including inactive
	CheckIns []models.CheckIn
	Goals    []models.MonthlyGoal
}

// Validator checks stored records for integrity problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Validate runs every integrity check over the snapshot
func (v *Validator) Validate(s Snapshot) ValidationResult {
	var result ValidationResult
	v.checkHabits(s, &result)
	v.checkCheckIns(s, &result)
	v.checkGoals(s, &result)
	return result
}

func (v *Validator) checkHabits(s Snapshot, result *ValidationResult) {
	seen := make(map[string]string)
	for _, h := range s.Habits {
		if !h.Active || h.OwnerID != s.User.ID {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(h.Title))
		if first, ok := seen[key]; ok {
			result.add(ConflictDuplicateHabitTitle, []string{first, h.ID},
				"Duplicate active habit title: %q", h.Title)
			continue
		}
		seen[key] = h.ID
	}

	for _, h := range s.Habits {
		if !h.Active || !h.IsShared() || h.OwnerID != s.User.ID {
			continue
		}
		if !s.User.InPair() || *s.User.PairID != *h.PairID {
			result.add(ConflictStalePairHabit, []string{h.ID},
				"Habit %q is shared with a pair you no longer belong to", h.Title)
		}
	}
}

func (v *Validator) checkCheckIns(s Snapshot, result *ValidationResult) {
	known := make(map[string]bool, len(s.Habits))
	for _, h := range s.Habits {
		known[h.ID] = true
	}

	for _, c := range s.CheckIns {
		if err := ValidateDate(c.Date); err != nil {
			result.add(ConflictInvalidDate, []string{c.ID}, "Check-in %s has invalid date %q", c.ID, c.Date)
		}
		if c.Mood != nil && !c.Mood.Valid() {
			result.add(ConflictInvalidMood, []string{c.ID}, "Check-in %s has unknown mood %q", c.ID, string(*c.Mood))
		}
		if !known[c.HabitID] {
			result.add(ConflictOrphanCheckIn, []string{c.ID}, "Check-in %s references missing habit %s", c.ID, c.HabitID)
		}
	}
}

func (v *Validator) checkGoals(s Snapshot, result *ValidationResult) {
	known := make(map[string]bool, len(s.Habits))
	for _, h := range s.Habits {
		known[h.ID] = true
	}

	for _, g := range s.Goals {
		if err := ValidateMonth(g.Month); err != nil {
			result.add(ConflictInvalidGoalMonth, []string{g.ID}, "Goal %q has invalid month %q", g.Title, g.Month)
		}
		for _, id := range g.RelatedHabits {
			if !known[id] {
				result.add(ConflictUnknownGoalHabit, []string{g.ID, id}, "Goal %q references missing habit %s", g.Title, id)
			}
		}
	}
}
