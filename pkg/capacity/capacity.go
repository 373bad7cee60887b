// Copyright 2026 NetApp, Inc. All Rights Reserved.

package capacity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	OneKiB = uint64(1024)
	OneMiB = uint64(1048576)
	OneGiB = uint64(1073741824)
)

// sizeHasUnits checks whether a size string includes a units suffix.
func sizeHasUnits(size string) bool {
	size = strings.TrimSpace(size)
	if size == "" {
		return false
	}
	last := size[len(size)-1]
	return last < '0' || last > '9'
}

// ToBytes parses a size such as "10Gi", "10G" or "512MiB" into bytes. A single-letter suffix is read as
// a binary unit, the way the array reports sizes. A bare number is already in bytes.
func ToBytes(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid size value ''")
	}
	if !sizeHasUnits(s) {
		b, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size value '%s': %v", s, err)
		}
		return b, nil
	}

	lower := strings.ToLower(s)
	switch lower[len(lower)-1] {
	case 'k', 'm', 'g', 't', 'p':
		s += "i"
	}
	b, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size value '%s': %v", s, err)
	}
	return b, nil
}

// ToGiB parses a size and rounds it up to whole GiB. A bare number with no units is taken as GiB.
func ToGiB(size string) (uint64, error) {
	size = strings.TrimSpace(size)
	if size != "" && !sizeHasUnits(size) {
		size += "G"
	}
	b, err := ToBytes(size)
	if err != nil {
		return 0, err
	}
	return BytesToGiBCeil(b), nil
}

// BytesToGiBCeil converts bytes to GiB, rounding up.
func BytesToGiBCeil(b uint64) uint64 {
	return (b + OneGiB - 1) / OneGiB
}

// KiBToGiBCeil converts KiB, the unit the array reports sizes in, to GiB rounding up.
func KiBToGiBCeil(kib uint64) uint64 {
	return BytesToGiBCeil(kib * OneKiB)
}

// KiBToGiB converts KiB to fractional GiB.
func KiBToGiB(kib uint64) float64 {
	return float64(kib) / float64(OneMiB)
}

// KiBString renders a KiB quantity for humans, e.g. "1.5 TiB".
func KiBString(kib uint64) string {
	return humanize.IBytes(kib * OneKiB)
}

// GiBToArraySize renders a size in the array's request format.
func GiBToArraySize(gib uint64) string {
	return strconv.FormatUint(gib, 10) + "g"
}
