package store

import (
	"errors"
)

// Status is the numeric result code every operation exposes to callers
// that speak the (status, payload) protocol. Zero always means success;
// positive codes are operation-specific outcomes, negative codes are
// store-level failures a caller may retry.
type Status int

const (
	StatusSuccess Status = 0
	StatusFailure Status = 1

	StatusDBError         Status = -1
	StatusConnectionError Status = -2
)

// Signup outcome codes.
const (
	SignupDuplicate Status = 1
	SignupRejected  Status = 2
)

// Login outcome codes, ordered so callers can present different prompts.
const (
	LoginUnknownUser Status = 1
	LoginBadPassword Status = 2
	LoginError       Status = 3
)

// StatusOf maps an operation error to the generic status code: 0 on nil,
// 1 for any business-rule or validation outcome, -2 when the store is
// unreachable and -1 for unexpected store errors. Signup and Login carry
// extra outcome codes and have their own mappings below.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrStoreUnavailable):
		return StatusConnectionError
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrPaperNotFound),
		errors.Is(err, ErrOwnPaper),
		errors.Is(err, ErrAlreadyLiked),
		errors.Is(err, ErrNotLiked),
		errors.Is(err, ErrDuplicateUser),
		errors.Is(err, ErrUnknownUser),
		errors.Is(err, ErrWrongPassword):
		return StatusFailure
	default:
		return StatusDBError
	}
}

// SignupStatus maps a Signup error to its outcome code: a taken username
// is 1 and every other rejection, validation failures included, is 2.
func SignupStatus(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrDuplicateUser):
		return SignupDuplicate
	case errors.Is(err, ErrStoreUnavailable):
		return StatusConnectionError
	default:
		return SignupRejected
	}
}

// LoginStatus maps a Login error to one of the three ordered outcomes.
func LoginStatus(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrUnknownUser):
		return LoginUnknownUser
	case errors.Is(err, ErrWrongPassword):
		return LoginBadPassword
	case errors.Is(err, ErrStoreUnavailable):
		return StatusConnectionError
	default:
		return LoginError
	}
}
