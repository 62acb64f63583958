// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "resource not found",
			wantStr: "[NOT_FOUND] resource not found",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "empty version name",
			wantStr: "[INVALID_INPUT] empty version name",
		},
		{
			name:    "invalid_operation_error",
			code:    errors.ErrInvalidOperation,
			message: "cannot delete current version",
			wantStr: "[INVALID_OPERATION] cannot delete current version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details, "details should be initialized")
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrAlreadyExists, "resource %q already tracked", "vimrc")
	assert.Equal(t, `[ALREADY_EXISTS] resource "vimrc" already tracked`, err.Error())
}

func TestWrap(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := errors.Wrap(underlying, errors.ErrIOFailure, "failed to write index")

	require.NotNil(t, err)
	assert.Equal(t, "[IO_FAILURE] failed to write index: permission denied", err.Error())
	assert.Equal(t, underlying, stderrors.Unwrap(err))

	assert.Nil(t, errors.Wrap(nil, errors.ErrIOFailure, "no-op"))
}

func TestIs(t *testing.T) {
	err := errors.New(errors.ErrNotFound, "missing")
	target := errors.New(errors.ErrNotFound, "different message, same code")

	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrAlreadyExists, "missing")))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrInvalidOperation, "last version")
	wrapped := fmt.Errorf("outer: %w", err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidOperation))
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrInvalidOperation))
	assert.False(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.False(t, errors.IsErrorCode(fmt.Errorf("plain"), errors.ErrInvalidOperation))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrNotFound, errors.GetErrorCode(errors.New(errors.ErrNotFound, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrNotFound, "version missing").
		WithDetail("resource", "vimrc").
		WithDetail("version", "2.0")

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "vimrc", details["resource"])
	assert.Equal(t, "2.0", details["version"])

	assert.Nil(t, errors.GetErrorDetails(fmt.Errorf("plain")))
}
