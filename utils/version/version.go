// Copyright 2026 NetApp, Inc. All Rights Reserved.

package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is a parsed dotted version such as the XMS "sys-sw-version" value "4.0.2-80".
type Version struct {
	components []uint
	buildInfo  string
}

var genericVersionRegex = regexp.MustCompile(`^v?([0-9]+(?:\.[0-9]+)*)(?:[-_+](.*))?$`)

// ParseGeneric parses a version with at least a major component. Anything after the first '-', '_'
// or '+' is kept as build information and ignored when comparing.
func ParseGeneric(str string) (*Version, error) {
	submatches := genericVersionRegex.FindStringSubmatch(strings.TrimSpace(str))
	if submatches == nil {
		return nil, fmt.Errorf("could not parse %q as version", str)
	}

	parts := strings.Split(submatches[1], ".")
	v := &Version{components: make([]uint, len(parts)), buildInfo: submatches[2]}
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("illegal version component %q in %q: %v", part, str, err)
		}
		v.components[i] = uint(n)
	}
	return v, nil
}

// MustParseGeneric is ParseGeneric for constants; it panics on malformed input.
func MustParseGeneric(str string) *Version {
	v, err := ParseGeneric(str)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Version) component(i int) uint {
	if i < len(v.components) {
		return v.components[i]
	}
	return 0
}

func (v *Version) MajorVersion() uint { return v.component(0) }

func (v *Version) MinorVersion() uint { return v.component(1) }

func (v *Version) PatchVersion() uint { return v.component(2) }

func (v *Version) BuildInfo() string { return v.buildInfo }

// Compare returns -1, 0 or 1 as v is older than, equal to, or newer than other.
func (v *Version) Compare(other *Version) int {
	n := len(v.components)
	if len(other.components) > n {
		n = len(other.components)
	}
	for i := 0; i < n; i++ {
		switch a, b := v.component(i), other.component(i); {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

func (v *Version) AtLeast(min *Version) bool {
	return v.Compare(min) >= 0
}

func (v *Version) LessThan(other *Version) bool {
	return v.Compare(other) < 0
}

func (v *Version) String() string {
	parts := make([]string, len(v.components))
	for i, c := range v.components {
		parts[i] = strconv.FormatUint(uint64(c), 10)
	}
	s := strings.Join(parts, ".")
	if v.buildInfo != "" {
		s += "-" + v.buildInfo
	}
	return s
}
