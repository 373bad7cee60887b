// Copyright 2026 NetApp, Inc. All Rights Reserved.

package storagedrivers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/netapp/xtremio-driver/config"
)

// CommonStorageDriverConfig holds settings in common across all StorageDrivers
type CommonStorageDriverConfig struct {
	Version           int                  `json:"version"`
	StorageDriverName string               `json:"storageDriverName"`
	BackendName       string               `json:"backendName"`
	Debug             bool                 `json:"debug"`           // Unsupported!
	DebugTraceFlags   map[string]bool      `json:"debugTraceFlags"` // Example: {"api":false, "method":true}
	DisableDelete     bool                 `json:"disableDelete"`
	DriverContext     config.DriverContext `json:"-"`
	LimitVolumeSize   string               `json:"limitVolumeSize"`
}

// XtremIOStorageDriverConfig holds settings for the XtremIO iSCSI and FC drivers
type XtremIOStorageDriverConfig struct {
	*CommonStorageDriverConfig

	// Array access
	SANIP       string `json:"sanIP"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	ClusterName string `json:"clusterName"`

	// TLS
	SSLCertVerify bool   `json:"sslCertVerify"`
	SSLCertPath   string `json:"sslCertPath"`

	// Capacity reporting
	MaxOverSubscriptionRatio float64 `json:"maxOverSubscriptionRatio"`
	ReservedPercentage       int     `json:"reservedPercentage"`

	// VolumesPerImageCache caps the number of clones hanging off one source volume; "0" disables the check
	VolumesPerImageCache string `json:"volumesPerImageCache"`

	// Busy retry and request throttling
	MaxBusyRetries           string  `json:"maxBusyRetries"`
	BusyRetryInitialInterval string  `json:"busyRetryInitialInterval"`
	BusyRetryMaxInterval     string  `json:"busyRetryMaxInterval"`
	APIRateLimit             float64 `json:"apiRateLimit"`

	CleanupEmptyInitiatorGroups string          `json:"cleanupEmptyInitiatorGroups"`
	StorageProtocol             config.Protocol `json:"storageProtocol"`
}

var xtremIOConfigRedactList = [...]string{KeyUsername, KeyPassword}

func GetXtremIOConfigRedactList() []string {
	clone := xtremIOConfigRedactList
	return clone[:]
}

// String returns a representation of the config with credentials redacted.
func (c XtremIOStorageDriverConfig) String() string {
	return toStringRedacted(&c, GetXtremIOConfigRedactList())
}

// GoString is used by the %#v verb and is also redacted.
func (c XtremIOStorageDriverConfig) GoString() string {
	return c.String()
}

func toStringRedacted(structPointer interface{}, redactList []string) string {
	var out string

	elements := reflect.ValueOf(structPointer).Elem()
	for i := 0; i < elements.NumField(); i++ {
		fieldName := elements.Type().Field(i).Name
		redact := false
		for _, r := range redactList {
			if r == fieldName {
				redact = true
				break
			}
		}
		if redact {
			out += fmt.Sprintf("%v:%v ", fieldName, "<REDACTED>")
		} else {
			out += fmt.Sprintf("%v:%#v ", fieldName, elements.Field(i))
		}
	}

	return out
}

// InjectSecrets sets the array credentials from the backend secret, overriding any inline values.
func (c *XtremIOStorageDriverConfig) InjectSecrets(secretMap map[string]string) {
	if secretMap == nil {
		return
	}
	if username, ok := secretMap[strings.ToLower(KeyUsername)]; ok {
		c.Username = username
	}
	if password, ok := secretMap[strings.ToLower(KeyPassword)]; ok {
		c.Password = password
	}
}
