// Copyright 2026 NetApp, Inc. All Rights Reserved.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedErrorKinds(t *testing.T) {
	tests := []struct {
		name      string
		construct func(string, ...any) error
		wrap      func(error, string, ...any) error
		is        func(error) bool
	}{
		{"notFound", NotFoundError, WrapWithNotFoundError, IsNotFoundError},
		{"alreadyExists", AlreadyExistsError, WrapWithAlreadyExistsError, IsAlreadyExistsError},
		{"volumeNotFound", VolumeNotFoundError, WrapWithVolumeNotFoundError, IsVolumeNotFoundError},
		{"backendBusy", BackendBusyError, WrapWithBackendBusyError, IsBackendBusyError},
		{
			"snapshotsLimitExceeded", SnapshotsLimitExceededError, WrapWithSnapshotsLimitExceededError,
			IsSnapshotsLimitExceededError,
		},
		{"cloneLimitExceeded", CloneLimitExceededError, WrapWithCloneLimitExceededError, IsCloneLimitExceededError},
		{"invalidReference", InvalidReferenceError, WrapWithInvalidReferenceError, IsInvalidReferenceError},
		{"driver", DriverError, WrapWithDriverError, IsDriverError},
		{"connection", ConnectionError, WrapWithConnectionError, IsConnectionError},
		{"tooManyRequests", TooManyRequestsError, WrapWithTooManyRequestsError, IsTooManyRequestsError},
		{"backendAPI", BackendAPIError, WrapWithBackendAPIError, IsBackendAPIError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.construct("volume %s failed", "vol1")
			assert.Equal(t, "volume vol1 failed", err.Error())
			assert.True(t, tc.is(err))
			assert.False(t, tc.is(nil))
			assert.False(t, tc.is(New("plain")))

			// Raw messages with format verbs and no args are left untouched.
			assert.Equal(t, "100% busy", tc.construct("100% busy").Error())

			inner := New("inner")
			wrapped := tc.wrap(inner, "outer %d", 1)
			assert.Equal(t, "outer 1; inner", wrapped.Error())
			assert.True(t, Is(wrapped, inner))
			assert.True(t, tc.is(fmt.Errorf("context: %w", wrapped)))

			assert.Equal(t, "inner", tc.wrap(inner, "").Error())
			assert.Equal(t, "outer", tc.wrap(nil, "outer").Error())
		})
	}
}

func TestSimpleErrorKinds(t *testing.T) {
	tests := []struct {
		name      string
		construct func(string, ...any) error
		is        func(error) bool
	}{
		{"alreadyMapped", AlreadyMappedError, IsAlreadyMappedError},
		{"invalidInput", InvalidInputError, IsInvalidInputError},
		{"unsupported", UnsupportedError, IsUnsupportedError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.construct("group %s", "cg1")
			assert.Equal(t, "group cg1", err.Error())
			assert.True(t, tc.is(err))
			assert.True(t, tc.is(fmt.Errorf("wrapped: %w", err)))
			assert.False(t, tc.is(nil))
			assert.False(t, tc.is(NotFoundError("x")))
		})
	}
}

func TestBackendAPIStatusCode(t *testing.T) {
	code, ok := BackendAPIStatusCode(BackendAPIErrorWithStatus(400, "bad request"))
	assert.True(t, ok)
	assert.Equal(t, 400, code)

	_, ok = BackendAPIStatusCode(BackendAPIError("no status"))
	assert.False(t, ok)

	_, ok = BackendAPIStatusCode(NotFoundError("other"))
	assert.False(t, ok)
}

func TestIsResourceNotFoundError(t *testing.T) {
	assert.True(t, IsResourceNotFoundError(NotFoundError("a")))
	assert.True(t, IsResourceNotFoundError(VolumeNotFoundError("b")))
	assert.False(t, IsResourceNotFoundError(AlreadyExistsError("c")))
}

func TestAppendKeepsPrimaryError(t *testing.T) {
	primary := BackendAPIError("rename failed")
	cleanup := NotFoundError("orphan vanished")

	combined := Append(primary, cleanup)
	assert.True(t, IsBackendAPIError(combined))
	assert.True(t, IsNotFoundError(combined))
	assert.Len(t, Errors(combined), 2)
	assert.Contains(t, combined.Error(), "rename failed")

	assert.Equal(t, primary, Append(primary, nil))
}

func TestStandardLibraryWrappers(t *testing.T) {
	base := New("base")
	wrapped := fmt.Errorf("wrapped: %w", base)

	assert.True(t, Is(wrapped, base))
	assert.Equal(t, base, Unwrap(wrapped))

	var target *notFoundError
	assert.True(t, As(WrapWithNotFoundError(base, "nf"), &target))

	joined := Join(base, NotFoundError("nf"))
	assert.True(t, Is(joined, base))
	assert.True(t, IsNotFoundError(joined))
}
