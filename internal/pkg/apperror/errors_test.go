package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMatching(t *testing.T) {
	err := NewValidation("title must not be empty")
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "title must not be empty", err.Error())

	wrapped := fmt.Errorf("handling request: %w", err)
	assert.True(t, IsValidation(wrapped))
}

func TestNotFoundMatching(t *testing.T) {
	assert.True(t, IsNotFound(ErrNoteNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("show: %w", ErrNoteNotFound)))
	assert.False(t, IsValidation(ErrNoteNotFound))
}

func TestStorageErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorage("create note", cause)

	assert.True(t, IsStorage(err))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "create note")
	assert.False(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
}
