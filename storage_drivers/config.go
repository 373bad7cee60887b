// Copyright 2026 NetApp, Inc. All Rights Reserved.

package storagedrivers

import (
	"github.com/netapp/xtremio-driver/config"
)

// ConfigVersion is the expected version specified in the config file
const ConfigVersion = 1

// Storage driver names specified in the config file, etc.
const (
	XtremIOISCSIStorageDriverName = config.XtremIOISCSIStorageDriverName
	XtremIOFCStorageDriverName    = config.XtremIOFCStorageDriverName
)

// Backend defaults
const (
	DefaultMaxOverSubscriptionRatio    = 20.0
	DefaultVolumesPerImageCache        = 100
	DefaultCleanupEmptyInitiatorGroups = "true"
	DefaultVolumeSize                  = "1G"
)

// Credentials and secrets kept out of logs
const (
	KeyUsername = "Username"
	KeyPassword = "Password"
)
