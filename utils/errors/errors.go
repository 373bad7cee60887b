// Copyright 2026 NetApp, Inc. All Rights Reserved.

package errors

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ///////////////////////////////////////////////////////////////////////////
// Wrappers for standard library errors package
// ///////////////////////////////////////////////////////////////////////////

func New(message string) error {
	return errors.New(message)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Append combines a primary error with a secondary one, such as a failed cleanup. Predicates keep
// matching the primary error after it has been combined.
func Append(err, other error) error {
	return multierr.Append(err, other)
}

// Errors returns the individual errors combined by Append.
func Errors(err error) []error {
	return multierr.Errors(err)
}

func formatMessage(message string, a ...any) string {
	if len(a) == 0 {
		return message
	}
	return fmt.Sprintf(message, a...)
}

func formatWrapped(message string, inner error) string {
	if inner == nil || inner.Error() == "" {
		return message
	} else if message == "" {
		return inner.Error()
	}
	return fmt.Sprintf("%v; %v", message, inner.Error())
}

// ///////////////////////////////////////////////////////////////////////////
// notFoundError
// ///////////////////////////////////////////////////////////////////////////

type notFoundError struct {
	inner   error
	message string
}

func (e *notFoundError) Error() string { return formatWrapped(e.message, e.inner) }

func (e *notFoundError) Unwrap() error { return e.inner }

func NotFoundError(message string, a ...any) error {
	return &notFoundError{message: formatMessage(message, a...)}
}

func WrapWithNotFoundError(err error, message string, a ...any) error {
	return &notFoundError{
		inner:   err,
		message: fmt.Sprintf(message, a...),
	}
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *notFoundError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// alreadyExistsError
// ///////////////////////////////////////////////////////////////////////////

type alreadyExistsError struct {
	inner   error
	message string
}

func (e *alreadyExistsError) Error() string { return formatWrapped(e.message, e.inner) }

func (e *alreadyExistsError) Unwrap() error { return e.inner }

func AlreadyExistsError(message string, a ...any) error {
	return &alreadyExistsError{message: formatMessage(message, a...)}
}

func WrapWithAlreadyExistsError(err error, message string, a ...any) error {
	return &alreadyExistsError{
		inner:   err,
		message: fmt.Sprintf(message, a...),
	}
}

func IsAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *alreadyExistsError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// volumeNotFoundError
// ///////////////////////////////////////////////////////////////////////////

// volumeNotFoundError is a NotFound condition raised when a volume the caller named is absent.
type volumeNotFoundError struct {
	inner   error
	message string
}

func (e *volumeNotFoundError) Error() string { return formatWrapped(e.message, e.inner) }

func (e *volumeNotFoundError) Unwrap() error { return e.inner }

func VolumeNotFoundError(message string, a ...any) error {
	return &volumeNotFoundError{message: formatMessage(message, a...)}
}

func WrapWithVolumeNotFoundError(err error, message string, a ...any) error {
	return &volumeNotFoundError{
		inner:   err,
		message: fmt.Sprintf(message, a...),
	}
}

func IsVolumeNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *volumeNotFoundError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// backendBusyError
// ///////////////////////////////////////////////////////////////////////////

// backendBusyError reports that the array stayed busy after every retry.
type backendBusyError struct {
	inner   error
	message string
}

func (e *backendBusyError) Error() string { return formatWrapped(e.message, e.inner) }

func (e *backendBusyError) Unwrap() error { return e.inner }

func BackendBusyError(message string, a ...any) error {
	return &backendBusyError{message: formatMessage(message, a...)}
}

func WrapWithBackendBusyError(err error, message string, a ...any) error {
	return &backendBusyError{
		inner:   err,
		message: fmt.Sprintf(message, a...),
	}
}

func IsBackendBusyError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *backendBusyError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// snapshotsLimitExceededError
// ///////////////////////////////////////////////////////////////////////////

// snapshotsLimitExceededError reports that the array refused a snapshot because a per-volume or
// system-wide object limit was reached.
type snapshotsLimitExceededError struct {
	inner   error
	message string
}

func (e *snapshotsLimitExceededError) Error() string { return formatWrapped(e.message, e.inner) }

func (e *snapshotsLimitExceededError) Unwrap() error { return e.inner }

func SnapshotsLimitExceededError(message string, a ...any) error {
	return &snapshotsLimitExceededError{message: formatMessage(message, a...)}
}

func WrapWithSnapshotsLimitExceededError(err error, message string, a ...any) error {
	return &snapshotsLimitExceededError{
		inner:   err,
		message: fmt.Sprintf(message, a...),
	}
}

func IsSnapshotsLimitExceededError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *snapshotsLimitExceededError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// cloneLimitExceededError
// ///////////////////////////////////////////////////////////////////////////

type cloneLimitExceededError struct {
	inner   error
	message string
}

func (e *cloneLimitExceededError) Error() string { return formatWrapped(e.message, e.inner) }

func (e *cloneLimitExceededError) Unwrap() error { return e.inner }

func CloneLimitExceededError(message string, a ...any) error {
	return &cloneLimitExceededError{message: formatMessage(message, a...)}
}

func WrapWithCloneLimitExceededError(err error, message string, a ...any) error {
	return &cloneLimitExceededError{
		inner:   err,
		message: fmt.Sprintf(message, a...),
	}
}

func IsCloneLimitExceededError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *cloneLimitExceededError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// invalidReferenceError
// ///////////////////////////////////////////////////////////////////////////

// invalidReferenceError is returned when a manage-existing reference cannot be resolved.
type invalidReferenceError struct {
	inner   error
	message string
}

func (e *invalidReferenceError) Error() string { return formatWrapped(e.message, e.inner) }

func (e *invalidReferenceError) Unwrap() error { return e.inner }

func InvalidReferenceError(message string, a ...any) error {
	return &invalidReferenceError{message: formatMessage(message, a...)}
}

func WrapWithInvalidReferenceError(err error, message string, a ...any) error {
	return &invalidReferenceError{
		inner:   err,
		message: fmt.Sprintf(message, a...),
	}
}

func IsInvalidReferenceError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *invalidReferenceError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// driverError
// ///////////////////////////////////////////////////////////////////////////

// driverError marks fatal misconfiguration, such as an array with no clusters or no iSCSI portals.
type driverError struct {
	inner   error
	message string
}

func (e *driverError) Error() string { return formatWrapped(e.message, e.inner) }

func (e *driverError) Unwrap() error { return e.inner }

func DriverError(message string, a ...any) error {
	return &driverError{message: formatMessage(message, a...)}
}

func WrapWithDriverError(err error, message string, a ...any) error {
	return &driverError{
		inner:   err,
		message: fmt.Sprintf(message, a...),
	}
}

func IsDriverError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *driverError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// connectionError
// ///////////////////////////////////////////////////////////////////////////

type connectionError struct {
	inner   error
	message string
}

func (e *connectionError) Error() string { return formatWrapped(e.message, e.inner) }

func (e *connectionError) Unwrap() error { return e.inner }

func ConnectionError(message string, a ...any) error {
	return &connectionError{message: formatMessage(message, a...)}
}

func WrapWithConnectionError(err error, message string, a ...any) error {
	return &connectionError{
		inner:   err,
		message: fmt.Sprintf(message, a...),
	}
}

func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *connectionError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// tooManyRequestsError
// ///////////////////////////////////////////////////////////////////////////

type tooManyRequestsError struct {
	inner   error
	message string
}

func (e *tooManyRequestsError) Error() string { return formatWrapped(e.message, e.inner) }

func (e *tooManyRequestsError) Unwrap() error { return e.inner }

func TooManyRequestsError(message string, a ...any) error {
	return &tooManyRequestsError{message: formatMessage(message, a...)}
}

func WrapWithTooManyRequestsError(err error, message string, a ...any) error {
	return &tooManyRequestsError{
		inner:   err,
		message: fmt.Sprintf(message, a...),
	}
}

func IsTooManyRequestsError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *tooManyRequestsError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// alreadyMappedError
// ///////////////////////////////////////////////////////////////////////////

type alreadyMappedError struct {
	message string
}

func (e *alreadyMappedError) Error() string { return e.message }

func AlreadyMappedError(message string, a ...any) error {
	return &alreadyMappedError{message: formatMessage(message, a...)}
}

func IsAlreadyMappedError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *alreadyMappedError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// invalidInputError
// ///////////////////////////////////////////////////////////////////////////

type invalidInputError struct {
	message string
}

func (e *invalidInputError) Error() string { return e.message }

func InvalidInputError(message string, a ...any) error {
	return &invalidInputError{message: formatMessage(message, a...)}
}

func IsInvalidInputError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *invalidInputError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// unsupportedError
// ///////////////////////////////////////////////////////////////////////////

type unsupportedError struct {
	message string
}

func (e *unsupportedError) Error() string { return e.message }

func UnsupportedError(message string, a ...any) error {
	return &unsupportedError{message: formatMessage(message, a...)}
}

func IsUnsupportedError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *unsupportedError
	return errors.As(err, &errPtr)
}

// ///////////////////////////////////////////////////////////////////////////
// backendAPIError
// ///////////////////////////////////////////////////////////////////////////

// backendAPIError is the catch-all for a request the array rejected. It keeps the HTTP status and the
// array's own message so callers can surface it unchanged.
type backendAPIError struct {
	inner      error
	message    string
	statusCode int
}

func (e *backendAPIError) Error() string { return formatWrapped(e.message, e.inner) }

func (e *backendAPIError) Unwrap() error { return e.inner }

func BackendAPIError(message string, a ...any) error {
	return &backendAPIError{message: formatMessage(message, a...)}
}

func BackendAPIErrorWithStatus(statusCode int, message string, a ...any) error {
	return &backendAPIError{message: formatMessage(message, a...), statusCode: statusCode}
}

func WrapWithBackendAPIError(err error, message string, a ...any) error {
	return &backendAPIError{
		inner:   err,
		message: fmt.Sprintf(message, a...),
	}
}

func IsBackendAPIError(err error) bool {
	if err == nil {
		return false
	}
	var errPtr *backendAPIError
	return errors.As(err, &errPtr)
}

// BackendAPIStatusCode returns the HTTP status carried by a backendAPIError, if any.
func BackendAPIStatusCode(err error) (int, bool) {
	var errPtr *backendAPIError
	if !errors.As(err, &errPtr) || errPtr.statusCode == 0 {
		return 0, false
	}
	return errPtr.statusCode, true
}

// IsResourceNotFoundError matches both generic and volume-specific not-found conditions.
func IsResourceNotFoundError(err error) bool {
	return IsNotFoundError(err) || IsVolumeNotFoundError(err)
}
