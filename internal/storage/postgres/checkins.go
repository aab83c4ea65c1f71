package postgres

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/onehabit/internal/models"
)

const checkInColumns = `id, habit_id, user_id, date, checked, note, mood, completed_at, synced_with_partner`

func (s *Store) UpsertCheckIn(c models.CheckIn) (models.CheckIn, error) {
	var mood sql.NullString
	if c.Mood != nil {
		mood = sql.NullString{String: string(*c.Mood), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO checkins (`+checkInColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT(habit_id, user_id, date) DO UPDATE SET
			checked = excluded.checked,
			note = excluded.note,
			mood = excluded.mood,
			completed_at = excluded.completed_at,
			synced_with_partner = excluded.synced_with_partner`,
		c.ID, c.HabitID, c.UserID, c.Date, c.Checked, c.Note, mood,
		nullTime(c.CompletedAt), c.SyncedWithPartner)
	if err != nil {
		return models.CheckIn{}, fmt.Errorf("failed to upsert check-in: %w", err)
	}

	return s.GetCheckInByKey(c.HabitID, c.UserID, c.Date)
}

func (s *Store) GetCheckIn(id string) (models.CheckIn, error) {
	row := s.db.QueryRow(`SELECT `+checkInColumns+` FROM checkins WHERE id = $1`, id)
	c, err := scanCheckIn(row)
	if err != nil {
		return models.CheckIn{}, notFound(err, "check-in", id)
	}
	return c, nil
}

func (s *Store) GetCheckInByKey(habitID, userID, date string) (models.CheckIn, error) {
	row := s.db.QueryRow(`
		SELECT `+checkInColumns+` FROM checkins
		WHERE habit_id = $1 AND user_id = $2 AND date = $3`, habitID, userID, date)
	c, err := scanCheckIn(row)
	if err != nil {
		return models.CheckIn{}, notFound(err, "check-in", habitID+"/"+userID+"/"+date)
	}
	return c, nil
}

func (s *Store) GetCheckInsForUserDate(userID, date string) ([]models.CheckIn, error) {
	return s.queryCheckIns(`
		SELECT `+checkInColumns+` FROM checkins
		WHERE user_id = $1 AND date = $2
		ORDER BY habit_id`, userID, date)
}

func (s *Store) GetCheckInsForUserRange(userID, start, end string) ([]models.CheckIn, error) {
	return s.queryCheckIns(`
		SELECT `+checkInColumns+` FROM checkins
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, habit_id`, userID, start, end)
}

func (s *Store) GetCheckInsForHabit(habitID, userID string) ([]models.CheckIn, error) {
	return s.queryCheckIns(`
		SELECT `+checkInColumns+` FROM checkins
		WHERE habit_id = $1 AND user_id = $2
		ORDER BY date`, habitID, userID)
}

func (s *Store) GetRecentCheckInsForHabit(habitID string, limit int) ([]models.CheckIn, error) {
	return s.queryCheckIns(`
		SELECT `+checkInColumns+` FROM checkins
		WHERE habit_id = $1
		ORDER BY date DESC, user_id
		LIMIT $2`, habitID, limit)
}

func (s *Store) queryCheckIns(query string, args ...any) ([]models.CheckIn, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCheckIn(row rowScanner) (models.CheckIn, error) {
	var c models.CheckIn
	var mood, completedAt sql.NullString

	if err := row.Scan(&c.ID, &c.HabitID, &c.UserID, &c.Date, &c.Checked, &c.Note,
		&mood, &completedAt, &c.SyncedWithPartner); err != nil {
		return models.CheckIn{}, err
	}

	if mood.Valid && mood.String != "" {
		c.Mood = models.MoodPtr(models.Mood(mood.String))
	}
	var err error
	if c.CompletedAt, err = parseNullTime("completed_at", completedAt); err != nil {
		return models.CheckIn{}, fmt.Errorf("check-in %s: %w", c.ID, err)
	}
	return c, nil
}
