package postgres

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/onehabit/internal/models"
)

const userColumns = `id, name, display_name, email, bio, timezone, pair_id, created_at, updated_at`

func (s *Store) AddUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Name, user.DisplayName, user.Email, user.Bio, user.Timezone,
		nullString(user.PairID), formatTime(user.CreatedAt), nullTime(user.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return models.User{}, notFound(err, "user", id)
	}
	return u, nil
}

func (s *Store) GetUserByName(name string) (models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE name = $1`, name)
	u, err := scanUser(row)
	if err != nil {
		return models.User{}, notFound(err, "user", name)
	}
	return u, nil
}

func (s *Store) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUser(user models.User) error {
	res, err := s.db.Exec(`
		UPDATE users SET name = $1, display_name = $2, email = $3, bio = $4, timezone = $5,
			pair_id = $6, updated_at = $7
		WHERE id = $8`,
		user.Name, user.DisplayName, user.Email, user.Bio, user.Timezone,
		nullString(user.PairID), nullTime(user.UpdatedAt), user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRow(res, "user", user.ID)
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	var pairID, updatedAt sql.NullString
	var createdAt string

	if err := row.Scan(&u.ID, &u.Name, &u.DisplayName, &u.Email, &u.Bio, &u.Timezone,
		&pairID, &createdAt, &updatedAt); err != nil {
		return models.User{}, err
	}

	var err error
	u.PairID = stringPtr(pairID)
	if u.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.User{}, err
	}
	if u.UpdatedAt, err = parseNullTime("updated_at", updatedAt); err != nil {
		return models.User{}, err
	}
	return u, nil
}
