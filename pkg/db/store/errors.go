package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors returned by store operations. Callers distinguish
// business outcomes with errors.Is; anything else is a store failure.
var (
	// ErrStoreUnavailable indicates the database itself could not be
	// reached, as opposed to an operation-level failure.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidInput covers oversized fields, empty identifiers and
	// constraint violations caught before or during a write.
	ErrInvalidInput = errors.New("invalid input")

	ErrDuplicateUser = errors.New("username already taken")
	ErrUnknownUser   = errors.New("no such user")
	ErrWrongPassword = errors.New("password mismatch")

	ErrPaperNotFound = errors.New("paper not found")

	ErrOwnPaper     = errors.New("cannot like own paper")
	ErrAlreadyLiked = errors.New("paper already liked")
	ErrNotLiked     = errors.New("paper not liked")
)

// isDuplicate reports whether err is a unique-key violation. GORM's
// TranslateError covers the common case; the string check catches driver
// errors raised inside a transaction before translation applies.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}
