package service

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by a service wraps at most one of
// these so callers can classify it with errors.Is.
var (
	ErrConnection  = errors.New("store unreachable")
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("failed to persist changes")
)

var (
	ErrUserNotFound    = fmt.Errorf("%w: user does not exist", ErrNotFound)
	ErrItemNotFound    = fmt.Errorf("%w: item does not exist", ErrNotFound)
	ErrCommandNotFound = fmt.Errorf("%w: command does not exist", ErrNotFound)
	ErrKeyNotFound     = fmt.Errorf("%w: premium key does not exist", ErrNotFound)
	ErrCodeNotFound    = fmt.Errorf("%w: riot auth code does not exist", ErrNotFound)

	ErrInsufficientBalance = fmt.Errorf("%w: insufficient cakes", ErrValidation)
	ErrAlreadyOwned        = fmt.Errorf("%w: item already owned", ErrValidation)
	ErrNotOwned            = fmt.Errorf("%w: item not owned", ErrValidation)
	ErrDailyNotReady       = fmt.Errorf("%w: daily reward already claimed", ErrValidation)
	ErrNoSpins             = fmt.Errorf("%w: no roulette spins available", ErrValidation)
	ErrRouletteDisabled    = fmt.Errorf("%w: roulette is disabled", ErrValidation)
	ErrKeyUsed             = fmt.Errorf("%w: premium key already used", ErrValidation)
	ErrKeyExpired          = fmt.Errorf("%w: premium key expired", ErrValidation)
	ErrKeyNotOwned         = fmt.Errorf("%w: premium key belongs to another user", ErrValidation)
	ErrInvalidUserID       = fmt.Errorf("%w: user id is required", ErrValidation)

	// ErrVersionConflict is returned when a document changed between read and write
	ErrVersionConflict = fmt.Errorf("%w: document was modified concurrently", ErrPersistence)
)
