package postgres

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/onehabit/internal/models"
)

const goalColumns = `id, user_id, title, description, target_value, current_value, unit, month, completed, created_at`

func (s *Store) AddGoal(goal models.MonthlyGoal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO monthly_goals (`+goalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.TargetValue, goal.CurrentValue,
		goal.Unit, goal.Month, goal.Completed, formatTime(goal.CreatedAt)); err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}
	if err := replaceGoalHabits(tx, goal); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) GetGoal(id string) (models.MonthlyGoal, error) {
	row := s.db.QueryRow(`SELECT `+goalColumns+` FROM monthly_goals WHERE id = $1`, id)
	g, err := scanGoal(row)
	if err != nil {
		return models.MonthlyGoal{}, notFound(err, "goal", id)
	}
	if g.RelatedHabits, err = s.goalHabits(g.ID); err != nil {
		return models.MonthlyGoal{}, err
	}
	return g, nil
}

func (s *Store) GetGoalsForUserMonth(userID, month string) ([]models.MonthlyGoal, error) {
	rows, err := s.db.Query(`
		SELECT `+goalColumns+` FROM monthly_goals
		WHERE user_id = $1 AND month = $2
		ORDER BY created_at, id`, userID, month)
	if err != nil {
		return nil, err
	}

	var goals []models.MonthlyGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range goals {
		if goals[i].RelatedHabits, err = s.goalHabits(goals[i].ID); err != nil {
			return nil, err
		}
	}
	return goals, nil
}

func (s *Store) UpdateGoal(goal models.MonthlyGoal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		UPDATE monthly_goals SET title = $1, description = $2, target_value = $3, current_value = $4,
			unit = $5, month = $6, completed = $7
		WHERE id = $8`,
		goal.Title, goal.Description, goal.TargetValue, goal.CurrentValue,
		goal.Unit, goal.Month, goal.Completed, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if err := requireRow(res, "goal", goal.ID); err != nil {
		return err
	}
	if err := replaceGoalHabits(tx, goal); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) DeleteGoal(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM monthly_goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if err := requireRow(res, "goal", id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM goal_habits WHERE goal_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete goal habits: %w", err)
	}

	return tx.Commit()
}

func (s *Store) goalHabits(goalID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT habit_id FROM goal_habits WHERE goal_id = $1 ORDER BY position`, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func replaceGoalHabits(tx *sql.Tx, goal models.MonthlyGoal) error {
	if _, err := tx.Exec(`DELETE FROM goal_habits WHERE goal_id = $1`, goal.ID); err != nil {
		return fmt.Errorf("failed to clear goal habits: %w", err)
	}
	for i, habitID := range goal.RelatedHabits {
		if _, err := tx.Exec(`INSERT INTO goal_habits (goal_id, habit_id, position) VALUES ($1, $2, $3)`,
			goal.ID, habitID, i); err != nil {
			return fmt.Errorf("failed to link goal habit: %w", err)
		}
	}
	return nil
}

func scanGoal(row rowScanner) (models.MonthlyGoal, error) {
	var g models.MonthlyGoal
	var createdAt string

	if err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.TargetValue, &g.CurrentValue,
		&g.Unit, &g.Month, &g.Completed, &createdAt); err != nil {
		return models.MonthlyGoal{}, err
	}

	var err error
	if g.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.MonthlyGoal{}, fmt.Errorf("goal %s: %w", g.ID, err)
	}
	return g, nil
}
