package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/onehabit/internal/models"
)

const habitColumns = `id, owner_id, pair_id, title, active, created_at`

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.OwnerID, nullString(habit.PairID), habit.Title, habit.Active,
		formatTime(habit.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, notFound(err, "habit", id)
	}
	return h, nil
}

func (s *Store) GetHabitsByOwner(ownerID string, includeInactive bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE owner_id = ?`
	if !includeInactive {
		query += ` AND active = 1`
	}
	query += ` ORDER BY created_at, id`
	return s.queryHabits(query, ownerID)
}

// GetHabitsByPair returns the active habits shared with the pair
func (s *Store) GetHabitsByPair(pairID string) ([]models.Habit, error) {
	return s.queryHabits(`
		SELECT `+habitColumns+` FROM habits
		WHERE pair_id = ? AND active = 1
		ORDER BY created_at, id`, pairID)
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	res, err := s.db.Exec(`
		UPDATE habits SET owner_id = ?, pair_id = ?, title = ?, active = ?
		WHERE id = ?`,
		habit.OwnerID, nullString(habit.PairID), habit.Title, habit.Active, habit.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res, "habit", habit.ID)
}

func (s *Store) queryHabits(query string, args ...any) ([]models.Habit, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var pairID sql.NullString
	var createdAt string

	if err := row.Scan(&h.ID, &h.OwnerID, &pairID, &h.Title, &h.Active, &createdAt); err != nil {
		return models.Habit{}, err
	}

	var err error
	h.PairID = stringPtr(pairID)
	if h.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, err)
	}
	return h, nil
}
