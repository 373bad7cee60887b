// Copyright 2026 NetApp, Inc. All Rights Reserved.

package config

import (
	"fmt"
	"time"
)

type (
	Protocol      string
	DriverContext string
)

const (
	/* Misc. orchestrator constants */
	OrchestratorName    = "xtremio_driver"
	orchestratorVersion = "1.0.7"

	/* Protocol constants */
	ISCSI       Protocol = "iscsi"
	FCP         Protocol = "fc"
	ProtocolAny Protocol = ""

	/* Driver-related constants */
	XtremIOISCSIStorageDriverName = "xtremio-iscsi"
	XtremIOFCStorageDriverName    = "xtremio-fc"
	DefaultBackendName            = "XtremIO"
	VendorName                    = "Dell EMC"
	UnknownDriver                 = "UnknownDriver"

	// StorageAPITimeoutSeconds bounds every individual call to the array
	StorageAPITimeoutSeconds = 90

	ContextCLI    DriverContext = "cli"
	ContextDriver DriverContext = "driver"

	/* Busy retry defaults */
	DefaultBusyRetries         = 5
	DefaultBusyInitialInterval = 1 * time.Second
	DefaultBusyMaxInterval     = 10 * time.Second
)

var (
	validProtocols = map[Protocol]bool{
		ISCSI: true,
		FCP:   true,
	}

	// BuildHash is the git hash the binary was built from
	BuildHash = "unknown"

	// BuildType is the type of build: custom, beta or stable
	BuildType = "custom"

	// BuildTypeRev is the revision of the build
	BuildTypeRev = "0"

	// BuildTime is the time the binary was built
	BuildTime = "unknown"

	DriverVersion = version()
)

func IsValidProtocol(p Protocol) bool {
	_, ok := validProtocols[p]
	return ok
}

// DriverNameForProtocol maps a storage protocol to the driver that serves it.
func DriverNameForProtocol(p Protocol) string {
	switch p {
	case ISCSI:
		return XtremIOISCSIStorageDriverName
	case FCP:
		return XtremIOFCStorageDriverName
	default:
		return UnknownDriver
	}
}

// ProtocolForDriverName maps a storage driver name back to its protocol.
func ProtocolForDriverName(name string) (Protocol, bool) {
	switch name {
	case XtremIOISCSIStorageDriverName:
		return ISCSI, true
	case XtremIOFCStorageDriverName:
		return FCP, true
	default:
		return ProtocolAny, false
	}
}

func version() string {
	var version string

	if BuildType != "stable" {
		if BuildType == "custom" {
			version = fmt.Sprintf("%v-%v+%v", orchestratorVersion, BuildType, BuildHash)
		} else {
			version = fmt.Sprintf("%v-%v.%v+%v", orchestratorVersion, BuildType, BuildTypeRev, BuildHash)
		}
	} else {
		version = orchestratorVersion
	}

	return version
}
