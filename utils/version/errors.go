// Copyright 2026 NetApp, Inc. All Rights Reserved.

package version

import (
	"errors"
	"fmt"
)

// ///////////////////////////////////////////////////////////////////////////
// unsupportedArrayVersionError
// ///////////////////////////////////////////////////////////////////////////

type unsupportedArrayVersionError struct {
	message string
}

func (e *unsupportedArrayVersionError) Error() string { return e.message }

func UnsupportedArrayVersionError(current, minimum string) error {
	return &unsupportedArrayVersionError{
		message: fmt.Sprintf("invalid XtremIO version %s, version %s or up is required", current, minimum),
	}
}

func IsUnsupportedArrayVersionError(err error) bool {
	if err == nil {
		return false
	}
	var versionErr *unsupportedArrayVersionError
	return errors.As(err, &versionErr)
}
