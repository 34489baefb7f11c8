package storage

import (
	"context"
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string cannot be empty")
	ErrInvalidSeason = errors.New("season must be a four-digit year")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s, name string) error {
	if s == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, name)
	}
	return nil
}

func validateSeason(season int) error {
	if season < 1950 || season > 9999 {
		return fmt.Errorf("%w: got %d", ErrInvalidSeason, season)
	}
	return nil
}
