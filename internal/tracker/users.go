package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/onehabit/internal/constants"
	"github.com/julianstephens/onehabit/internal/logger"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/storage"
	"github.com/julianstephens/onehabit/internal/utils"
)

type NewUser struct {
	Name        string
	DisplayName string
	Email       string
	Timezone    string
}

func (s *Service) RegisterUser(in NewUser) (models.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.User{}, fmt.Errorf("%w: user name cannot be empty", ErrInvalidInput)
	}
	if strings.ContainsAny(name, " \t\n") {
		return models.User{}, fmt.Errorf("%w: user name cannot contain whitespace", ErrInvalidInput)
	}

	tz := in.Timezone
	if tz == "" {
		tz = constants.DefaultTimezone
	}
	if !utils.ValidateTimezone(tz) {
		return models.User{}, fmt.Errorf("%w: invalid timezone %q", ErrInvalidInput, tz)
	}

	if _, err := s.store.GetUserByName(name); err == nil {
		return models.User{}, fmt.Errorf("%w: user %q already exists", ErrInvalidInput, name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, err
	}

	user := models.User{
		ID:          s.newID(),
		Name:        name,
		DisplayName: strings.TrimSpace(in.DisplayName),
		Email:       strings.TrimSpace(in.Email),
		Timezone:    tz,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.AddUser(user); err != nil {
		return models.User{}, fmt.Errorf("failed to add user: %w", err)
	}
	logger.Info("Registered user", "id", user.ID, "name", user.Name)
	return user, nil
}

// ResolveUser finds a user by ID, falling back to name
func (s *Service) ResolveUser(ref string) (models.User, error) {
	user, err := s.store.GetUser(ref)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, err
	}
	return s.store.GetUserByName(ref)
}

func (s *Service) Users() ([]models.User, error) {
	return s.store.GetAllUsers()
}

// ProfileUpdate holds optional profile changes; nil fields are left alone
type ProfileUpdate struct {
	DisplayName *string
	Email       *string
	Bio         *string
	Timezone    *string
}

func (s *Service) UpdateProfile(userID string, in ProfileUpdate) (models.User, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return models.User{}, err
	}

	if in.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.Bio != nil {
		user.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Timezone != nil {
		if !utils.ValidateTimezone(*in.Timezone) {
			return models.User{}, fmt.Errorf("%w: invalid timezone %q", ErrInvalidInput, *in.Timezone)
		}
		user.Timezone = *in.Timezone
	}

	now := s.now().UTC()
	user.UpdatedAt = &now
	if err := s.store.UpdateUser(user); err != nil {
		return models.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
