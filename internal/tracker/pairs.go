package tracker

import (
	"fmt"

	"github.com/julianstephens/onehabit/internal/logger"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/validation"
)

// CreatePair starts a pair with the user as its first member. The invite code
// is chosen by the caller.
func (s *Service) CreatePair(userID, inviteCode string) (models.Pair, error) {
	if err := validation.ValidateInviteCode(inviteCode); err != nil {
		return models.Pair{}, err
	}
	if _, err := s.store.GetUser(userID); err != nil {
		return models.Pair{}, err
	}

	pair := models.Pair{
		ID:         s.newID(),
		Members:    []string{userID},
		InviteCode: inviteCode,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.CreatePair(pair); err != nil {
		return models.Pair{}, fmt.Errorf("failed to create pair: %w", err)
	}
	logger.Info("Created pair", "id", pair.ID, "user", userID)
	return pair, nil
}

func (s *Service) JoinPair(userID, inviteCode string) (models.Pair, error) {
	if err := validation.ValidateInviteCode(inviteCode); err != nil {
		return models.Pair{}, err
	}
	pair, err := s.store.JoinPair(inviteCode, userID)
	if err != nil {
		return models.Pair{}, fmt.Errorf("failed to join pair: %w", err)
	}
	logger.Info("Joined pair", "id", pair.ID, "user", userID)
	return pair, nil
}

// LeavePair removes the user from their pair; the pair is deleted once empty.
// Habits the user shared keep their pair link.
func (s *Service) LeavePair(userID string) error {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return err
	}
	if !user.InPair() {
		return ErrNotPaired
	}
	if err := s.store.LeavePair(userID); err != nil {
		return fmt.Errorf("failed to leave pair: %w", err)
	}
	logger.Info("Left pair", "id", *user.PairID, "user", userID)
	return nil
}

type PairInfo struct {
	Pair    models.Pair
	Members []models.User
}

func (s *Service) PairInfo(userID string) (PairInfo, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return PairInfo{}, err
	}
	if !user.InPair() {
		return PairInfo{}, ErrNotPaired
	}

	pair, err := s.store.GetPair(*user.PairID)
	if err != nil {
		return PairInfo{}, err
	}
	info := PairInfo{Pair: pair}
	for _, id := range pair.Members {
		member, err := s.store.GetUser(id)
		if err != nil {
			return PairInfo{}, err
		}
		info.Members = append(info.Members, member)
	}
	return info, nil
}
