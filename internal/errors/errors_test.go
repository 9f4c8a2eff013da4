package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "item type not found")
	assert.Equal(t, ErrCodeNotFound, err.Code)
	assert.Equal(t, "item type not found", err.Message)
	assert.Nil(t, err.Cause)
}

func TestNewWithContext(t *testing.T) {
	err := NewWithContext(ErrCodeInvalidSchema, "unknown validator", map[string]any{"validator": "x"})
	assert.Equal(t, "x", err.Context["validator"])
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInvalidSchema, "bad regex", errors.New("missing )")),
			expected: "[INVALID_SCHEMA] bad regex: missing )",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestIsCode(t *testing.T) {
	err := New(ErrCodeNotFound, "missing")
	wrapped := fmt.Errorf("lookup: %w", err)

	assert.True(t, IsCode(err, ErrCodeNotFound))
	assert.True(t, IsCode(wrapped, ErrCodeNotFound))
	assert.False(t, IsCode(wrapped, ErrCodeInvalidSchema))
	assert.False(t, IsCode(errors.New("plain"), ErrCodeNotFound))
	assert.False(t, IsCode(nil, ErrCodeNotFound))
}
