package svcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr *ServiceError
		wantOk  bool
	}{
		{
			name:    "nil input",
			err:     nil,
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "regular error",
			err:     errors.New("x"),
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "direct ServiceError",
			err:     NewInvalidArgumentError("CMP_1000", "validation failed", nil),
			wantErr: NewInvalidArgumentError("CMP_1000", "validation failed", nil),
			wantOk:  true,
		},
		{
			name:    "wrapped ServiceError",
			err:     fmt.Errorf("wrap: %w", NewInternalError("CMP_9000", nil)),
			wantErr: NewInternalError("CMP_9000", nil),
			wantOk:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr, gotOk := AsServiceError(tt.err)

			assert.Equal(t, tt.wantOk, gotOk, "AsServiceError() ok value mismatch")

			if tt.wantErr == nil {
				assert.Nil(t, gotErr, "AsServiceError() should return nil error")
			} else {
				require.NotNil(t, gotErr, "AsServiceError() should return non-nil error")
				assert.Equal(t, tt.wantErr.Category, gotErr.Category, "Category mismatch")
				assert.Equal(t, tt.wantErr.Code, gotErr.Code, "Code mismatch")
				assert.Equal(t, tt.wantErr.Message, gotErr.Message, "Message mismatch")
			}
		})
	}
}

func TestServiceError_UnwrapAndMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk gone")
	err := NewInternalError("CMP_9001", cause)

	assert.Equal(t, "CMP_9001: internal server error", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, err.IsInternalError())
}

func TestServiceError_ExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ServiceError
		want int
	}{
		{name: "invalid argument", err: NewInvalidArgumentError("CMP_1000", "bad", nil), want: 2},
		{name: "not found", err: NewNotFoundError("CMP_1001", "none", nil), want: 3},
		{name: "conflict", err: NewResourceConflictError("CMP_1002", "dup", nil), want: 4},
		{name: "payload too large", err: NewPayloadTooLargeError("HTTP_1000", "too big", nil), want: 2},
		{name: "internal", err: NewInternalErrorUndefined(nil), want: 1},
		{name: "panic", err: NewInternalErrorPanic(nil), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.ExitCode())
		})
	}
}

func TestNewNotFoundError(t *testing.T) {
	t.Parallel()

	err := NewNotFoundError("CMP_1001", "no inputs matched", nil)
	assert.Equal(t, "not_found", err.Category)
	assert.Equal(t, 404, err.HttpStatusCode)
	assert.False(t, err.IsInternalError())
	assert.True(t, err.IsNotFound())
}

func TestNewPayloadTooLargeError(t *testing.T) {
	t.Parallel()

	err := NewPayloadTooLargeError("HTTP_1000", "log body exceeds 4 bytes", nil)
	assert.Equal(t, "payload_too_large", err.Category)
	assert.Equal(t, 413, err.HttpStatusCode)
	assert.True(t, err.IsPayloadTooLarge())
	assert.False(t, err.IsNotFound())
}
