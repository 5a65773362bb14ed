package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	err := NewUserError("please log in first", ErrNotLoggedIn)

	assert.Equal(t, "please log in first: not logged in", err.Error())
	assert.True(t, errors.Is(err, ErrNotLoggedIn))

	var userErr *UserError
	assert.True(t, errors.As(err, &userErr))
	assert.Equal(t, "please log in first", userErr.UserMessage)
}

func TestUserErrorWithoutCause(t *testing.T) {
	err := &UserError{UserMessage: "something went wrong"}
	assert.Equal(t, "something went wrong", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestSentinelWrapping(t *testing.T) {
	err := fmt.Errorf("filing 123: %w", ErrNotFound)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrNotReady))
}
