package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/papershare/papershare/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Signup registers a user. The insert and the uniqueness check are a
// single statement, so two concurrent signups for the same name cannot
// both succeed.
func (s *SQLiteStore) Signup(ctx context.Context, username, password string) error {
	if username == "" || len(username) > models.MaxUsernameLen {
		return fmt.Errorf("%w: username", ErrInvalidInput)
	}
	if password == "" || len(password) > models.MaxPasswordLen {
		return fmt.Errorf("%w: password", ErrInvalidInput)
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.User{Username: username, Password: password})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("signup: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDuplicateUser
	}

	return nil
}

// Login checks the password of an existing user. The two failure modes
// are distinct so callers can prompt differently.
func (s *SQLiteStore) Login(ctx context.Context, username, password string) error {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUnknownUser
	}
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if user.Password != password {
		return ErrWrongPassword
	}

	return nil
}
