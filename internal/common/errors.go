// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Classification errors.
	// ErrUnattributedEvent marks a message that matches an incident pattern
	// but names no specific driver. It is a skip signal, never a failure.
	ErrUnattributedEvent = errors.New("no driver could be attributed")
	// ErrMalformedEvent marks a structurally broken message; fatal to that
	// record only.
	ErrMalformedEvent = errors.New("malformed event message")

	// Labeling errors.
	ErrNoSeedLabels      = errors.New("no seed labels supplied")
	ErrNoVectors         = errors.New("no feature vectors to label")
	ErrInsufficientSeeds = errors.New("seed labels cover fewer than two classes")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IncompleteFeatureVectorError reports a driver missing one or more of the
// three feature sources. Such drivers are excluded from labeling and flagged;
// zero-filling would bias the classifier toward "no incidents/no deficit".
type IncompleteFeatureVectorError struct {
	DriverID string
	Missing  []string
}

func (e *IncompleteFeatureVectorError) Error() string {
	return fmt.Sprintf("driver %s: incomplete feature vector, missing %s",
		e.DriverID, strings.Join(e.Missing, ", "))
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
