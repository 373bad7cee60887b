// Copyright 2026 NetApp, Inc. All Rights Reserved.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidProtocol(t *testing.T) {
	assert.True(t, IsValidProtocol(ISCSI))
	assert.True(t, IsValidProtocol(FCP))
	assert.False(t, IsValidProtocol(ProtocolAny))
	assert.False(t, IsValidProtocol("nvme"))
}

func TestDriverNameForProtocol(t *testing.T) {
	assert.Equal(t, XtremIOISCSIStorageDriverName, DriverNameForProtocol(ISCSI))
	assert.Equal(t, XtremIOFCStorageDriverName, DriverNameForProtocol(FCP))
	assert.Equal(t, UnknownDriver, DriverNameForProtocol("nvme"))
}

func TestProtocolForDriverName(t *testing.T) {
	for _, protocol := range []Protocol{ISCSI, FCP} {
		got, ok := ProtocolForDriverName(DriverNameForProtocol(protocol))
		assert.True(t, ok)
		assert.Equal(t, protocol, got)
	}

	_, ok := ProtocolForDriverName("ontap-san")
	assert.False(t, ok)
}

func TestVersion(t *testing.T) {
	defer func(buildType, hash string) {
		BuildType = buildType
		BuildHash = hash
	}(BuildType, BuildHash)

	BuildType = "stable"
	assert.Equal(t, orchestratorVersion, version())

	BuildType = "custom"
	BuildHash = "abc123"
	assert.Equal(t, orchestratorVersion+"-custom+abc123", version())

	BuildType = "beta"
	BuildTypeRev = "2"
	assert.Equal(t, orchestratorVersion+"-beta.2+abc123", version())
}
