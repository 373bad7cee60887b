// Copyright 2026 NetApp, Inc. All Rights Reserved.

package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToBytes(t *testing.T) {
	tests := []struct {
		in       string
		expected uint64
		wantErr  bool
	}{
		{"1073741824", OneGiB, false},
		{"1G", OneGiB, false},
		{"1Gi", OneGiB, false},
		{"1GiB", OneGiB, false},
		{"512M", 512 * OneMiB, false},
		{"2k", 2048, false},
		{"1GB", 1000000000, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			b, err := ToBytes(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, b)
		})
	}
}

func TestToGiB(t *testing.T) {
	gib, err := ToGiB("3")
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), gib)

	gib, err = ToGiB("1536Mi")
	assert.NoError(t, err)
	assert.Equal(t, uint64(2), gib)

	_, err = ToGiB("lots")
	assert.Error(t, err)
}

func TestKiBConversions(t *testing.T) {
	assert.Equal(t, uint64(1), KiBToGiBCeil(1))
	assert.Equal(t, uint64(1), KiBToGiBCeil(OneMiB))
	assert.Equal(t, uint64(2), KiBToGiBCeil(OneMiB+1))
	assert.Equal(t, 1.5, KiBToGiB(OneMiB+OneMiB/2))
	assert.Equal(t, "1.0 GiB", KiBString(OneMiB))
	assert.Equal(t, "10g", GiBToArraySize(10))
}
