// Copyright 2026 NetApp, Inc. All Rights Reserved.

// Package convert holds small conversions shared by the driver, its configuration and the CLI.
package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToTitle capitalizes every word and leaves the rest of each word alone, so acronyms survive.
func ToTitle(str string) string {
	return cases.Title(language.Und, cases.NoLower).String(str)
}

func ToPtr[T any](v T) *T {
	return &v
}

// ToVal dereferences a pointer, returning the zero value for nil.
func ToVal[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// ToPositiveInt parses a count from a configuration string. Zero is allowed.
func ToPositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if i < 0 {
		return 0, fmt.Errorf("%d must be greater than or equal to 0", i)
	}
	return i, nil
}

// ToPositiveDuration parses an interval such as "1s" or "250ms" from a configuration string.
func ToPositiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%v must be greater than 0", d)
	}
	return d, nil
}
