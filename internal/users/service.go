// Package users enforces the credential policy for user records: username
// uniqueness, length bounds, and the no-whitespace rule, delegating storage
// to a UserStore.
package users

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/model"
	"github.com/tellerdesk-dev/tellerdesk/internal/store"
)

const (
	maxUsernameLength = 50
	minPasswordLength = 8
	maxPasswordLength = 50
)

// Service validates user operations and delegates to a UserStore.
type Service struct {
	users store.UserStore
	log   *zap.Logger
}

// NewService creates a user Service.
func NewService(users store.UserStore, log *zap.Logger) *Service {
	return &Service{users: users, log: log}
}

// Users returns every user in the store.
func (s *Service) Users() ([]model.User, error) {
	return s.users.Users()
}

// UserByID returns the user with the given ID, if any.
func (s *Service) UserByID(id int) (model.User, bool, error) {
	return s.users.UserByID(id)
}

// UserByUsername returns the user with the given username, if any.
func (s *Service) UserByUsername(username string) (model.User, bool, error) {
	return s.users.UserByUsername(username)
}

// Create validates and registers a new user, returning its ID. Uniqueness is
// checked before format, matching the order callers see messages in.
func (s *Service) Create(username, password string) (int, error) {
	s.log.Debug("creating user", zap.String("username", username))

	_, exists, err := s.users.UserByUsername(username)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrUserExists
	}

	if err := validateUsername(username); err != nil {
		return 0, err
	}
	if err := validatePassword(password); err != nil {
		return 0, err
	}

	return s.users.CreateUser(username, password)
}

// Login checks the credentials against the store and returns the matching
// user's ID, or ErrInvalidCredentials when nothing matches.
func (s *Service) Login(username, password string) (int, error) {
	s.log.Debug("logging in", zap.String("username", username))

	id, err := s.users.Login(username, password)
	if err != nil {
		return 0, err
	}
	if id == store.LoginFailed {
		return 0, ErrInvalidCredentials
	}
	return id, nil
}

// UpdatePassword replaces a user's password after the same policy checks as
// registration.
func (s *Service) UpdatePassword(userID int, password string) (store.Status, error) {
	s.log.Debug("updating password", zap.Int("user_id", userID))

	_, found, err := s.users.UserByID(userID)
	if err != nil {
		return store.StatusFailed, err
	}
	if !found {
		return store.StatusFailed, ErrUserNotFound
	}

	if err := validatePassword(password); err != nil {
		return store.StatusFailed, err
	}

	return s.users.UpdatePassword(userID, password)
}

// Delete removes a user.
func (s *Service) Delete(userID int) (store.Status, error) {
	s.log.Debug("deleting user", zap.Int("user_id", userID))

	_, found, err := s.users.UserByID(userID)
	if err != nil {
		return store.StatusFailed, err
	}
	if !found {
		return store.StatusFailed, ErrUserNotFound
	}

	return s.users.DeleteUser(userID)
}

func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username must not be empty", ErrInvalidInput)
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be %d characters or less", ErrInvalidInput, maxUsernameLength)
	}
	if containsWhitespace(username) {
		return fmt.Errorf("%w: username must not contain whitespace", ErrInvalidInput)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be between %d and %d characters",
			ErrInvalidInput, minPasswordLength, maxPasswordLength)
	}
	if containsWhitespace(password) {
		return fmt.Errorf("%w: password must not contain whitespace", ErrInvalidInput)
	}
	return nil
}

func containsWhitespace(s string) bool {
	return strings.ContainsFunc(s, unicode.IsSpace)
}
