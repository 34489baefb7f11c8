package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	err := NewUserError("no data stored for season 2025", ErrNotFound)

	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "no data stored for season 2025", userErr.UserMessage)
	assert.Equal(t, "no data stored for season 2025: not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUserError_NoWrapped(t *testing.T) {
	err := NewUserError("configuration file unreadable", nil)
	assert.Equal(t, "configuration file unreadable", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestIncompleteFeatureVectorError(t *testing.T) {
	err := &IncompleteFeatureVectorError{
		DriverID: "DOO",
		Missing:  []string{"teammate_delta", "race_features"},
	}
	assert.Equal(t,
		"driver DOO: incomplete feature vector, missing teammate_delta, race_features",
		err.Error())
}
