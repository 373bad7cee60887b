// Copyright 2026 NetApp, Inc. All Rights Reserved.

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnector_Validate(t *testing.T) {
	tests := map[string]struct {
		connector Connector
		iscsiOK   bool
		fcOK      bool
	}{
		"iscsi only": {
			connector: Connector{Host: "host1", Initiator: "iqn.1993-08.org.debian:01:222"},
			iscsiOK:   true,
		},
		"fc only": {
			connector: Connector{Host: "host1", WWPNs: []string{"123456789abcdef0"}},
			fcOK:      true,
		},
		"fc without host": {
			connector: Connector{WWPNs: []string{"123456789abcdef0"}},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.iscsiOK, test.connector.ValidateISCSI() == nil)
			assert.Equal(t, test.fcOK, test.connector.ValidateFC() == nil)
		})
	}
}

func TestConnectionData_SetCHAP(t *testing.T) {
	data := ConnectionData{}
	data.SetCHAP(&IscsiChapInfo{
		UseDiscoveryCHAP:       true,
		IscsiDiscoveryUsername: "chap_user",
		IscsiDiscoverySecret:   "ABCDEF123456",
	})

	assert.Empty(t, data.AuthMethod)
	assert.Equal(t, AuthMethodCHAP, data.DiscoveryAuthMethod)
	assert.Equal(t, "chap_user", data.DiscoveryAuthUsername)
	assert.Equal(t, "ABCDEF123456", data.DiscoveryAuthPassword)

	data.SetCHAP(nil)
	assert.Equal(t, "chap_user", data.DiscoveryAuthUsername)
}

func TestConnectionInfo_StringRedactsSecrets(t *testing.T) {
	info := ConnectionInfo{
		DriverVolumeType: DriverVolumeTypeISCSI,
		Data:             ConnectionData{AuthPassword: "secret1", DiscoveryAuthPassword: "secret2"},
	}

	s := info.String()
	assert.NotContains(t, s, "secret1")
	assert.NotContains(t, s, "secret2")
	assert.Equal(t, "secret1", info.Data.AuthPassword, "original must not be modified")
}

func TestConnectionInfo_JSON(t *testing.T) {
	info := ConnectionInfo{
		DriverVolumeType: DriverVolumeTypeFC,
		Data: ConnectionData{
			TargetLUN:          2,
			TargetWWNs:         []string{"21000024ff3aa2c8"},
			InitiatorTargetMap: map[string][]string{"123456789abcdef0": {"21000024ff3aa2c8"}},
		},
	}

	raw, err := json.Marshal(info)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"driver_volume_type":"fibre_channel"`)
	assert.Contains(t, string(raw), `"target_wwn":["21000024ff3aa2c8"]`)
	assert.NotContains(t, string(raw), "target_iqn")
}
