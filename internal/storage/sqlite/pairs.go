package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/onehabit/internal/constants"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/storage"
)

// CreatePair stores a new pair whose only member is pair.Members[0]
func (s *Store) CreatePair(pair models.Pair) error {
	if len(pair.Members) != 1 {
		return fmt.Errorf("new pair must have exactly one member, got %d", len(pair.Members))
	}
	owner := pair.Members[0]

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := ensureUnpaired(tx, owner); err != nil {
		return err
	}

	var existing int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM pairs WHERE invite_code = ?`, pair.InviteCode).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return fmt.Errorf("code %s: %w", pair.InviteCode, storage.ErrInviteCodeTaken)
	}

	if _, err := tx.Exec(`INSERT INTO pairs (id, invite_code, created_at) VALUES (?, ?, ?)`,
		pair.ID, pair.InviteCode, formatTime(pair.CreatedAt)); err != nil {
		return fmt.Errorf("failed to create pair: %w", err)
	}
	if err := addMember(tx, pair.ID, owner, 0, pair.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) GetPair(id string) (models.Pair, error) {
	return getPair(s.db, `SELECT id, invite_code, created_at FROM pairs WHERE id = ?`, id)
}

func (s *Store) GetPairByInviteCode(code string) (models.Pair, error) {
	return getPair(s.db, `SELECT id, invite_code, created_at FROM pairs WHERE invite_code = ?`, code)
}

func (s *Store) JoinPair(code, userID string) (models.Pair, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Pair{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	pair, err := getPair(tx, `SELECT id, invite_code, created_at FROM pairs WHERE invite_code = ?`, code)
	if err != nil {
		return models.Pair{}, err
	}
	if err := ensureUnpaired(tx, userID); err != nil {
		return models.Pair{}, err
	}
	if len(pair.Members) >= constants.MaxPairMembers {
		return models.Pair{}, fmt.Errorf("pair %s: %w", pair.ID, storage.ErrPairFull)
	}

	if err := addMember(tx, pair.ID, userID, len(pair.Members), time.Now()); err != nil {
		return models.Pair{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Pair{}, fmt.Errorf("failed to commit join: %w", err)
	}

	pair.Members = append(pair.Members, userID)
	return pair, nil
}

func (s *Store) LeavePair(userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var pairID string
	err = tx.QueryRow(`SELECT pair_id FROM pair_members WHERE user_id = ?`, userID).Scan(&pairID)
	if err != nil {
		return notFound(err, "pair membership", userID)
	}

	if _, err := tx.Exec(`DELETE FROM pair_members WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if _, err := tx.Exec(`UPDATE users SET pair_id = NULL WHERE id = ?`, userID); err != nil {
		return fmt.Errorf("failed to unlink user: %w", err)
	}

	var remaining int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM pair_members WHERE pair_id = ?`, pairID).Scan(&remaining); err != nil {
		return err
	}
	if remaining == 0 {
		if _, err := tx.Exec(`DELETE FROM pairs WHERE id = ?`, pairID); err != nil {
			return fmt.Errorf("failed to delete empty pair: %w", err)
		}
	}

	return tx.Commit()
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

func getPair(q querier, query string, key string) (models.Pair, error) {
	var p models.Pair
	var createdAt string
	if err := q.QueryRow(query, key).Scan(&p.ID, &p.InviteCode, &createdAt); err != nil {
		return models.Pair{}, notFound(err, "pair", key)
	}

	var err error
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Pair{}, err
	}

	rows, err := q.Query(`SELECT user_id FROM pair_members WHERE pair_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return models.Pair{}, err
	}
	defer rows.Close()

	p.Members = []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return models.Pair{}, err
		}
		p.Members = append(p.Members, id)
	}
	return p, rows.Err()
}

// ensureUnpaired fails with ErrNotFound for an unknown user and ErrAlreadyPaired
// for a user who is already a member of a pair.
func ensureUnpaired(tx *sql.Tx, userID string) error {
	var pairID sql.NullString
	err := tx.QueryRow(`SELECT pair_id FROM users WHERE id = ?`, userID).Scan(&pairID)
	if err != nil {
		return notFound(err, "user", userID)
	}

	var memberOf string
	err = tx.QueryRow(`SELECT pair_id FROM pair_members WHERE user_id = ?`, userID).Scan(&memberOf)
	switch {
	case err == nil:
		return fmt.Errorf("user %s: %w", userID, storage.ErrAlreadyPaired)
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}
	if pairID.Valid && pairID.String != "" {
		return fmt.Errorf("user %s: %w", userID, storage.ErrAlreadyPaired)
	}
	return nil
}

func addMember(tx *sql.Tx, pairID, userID string, position int, joinedAt time.Time) error {
	if _, err := tx.Exec(`INSERT INTO pair_members (pair_id, user_id, position, joined_at) VALUES (?, ?, ?, ?)`,
		pairID, userID, position, formatTime(joinedAt)); err != nil {
		return fmt.Errorf("failed to add pair member: %w", err)
	}
	if _, err := tx.Exec(`UPDATE users SET pair_id = ? WHERE id = ?`, pairID, userID); err != nil {
		return fmt.Errorf("failed to link user to pair: %w", err)
	}
	return nil
}
