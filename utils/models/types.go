// Copyright 2026 NetApp, Inc. All Rights Reserved.

package models

import (
	"fmt"
	"strings"
)

// Connector describes the host side of an attachment, as reported by the host's initiator tooling.
type Connector struct {
	Host      string   `json:"host"`
	IP        string   `json:"ip,omitempty"`
	Initiator string   `json:"initiator,omitempty"`
	WWPNs     []string `json:"wwpns,omitempty"`
	WWNNs     []string `json:"wwnns,omitempty"`
	Multipath bool     `json:"multipath,omitempty"`
}

func (c *Connector) String() string {
	return fmt.Sprintf("host=%s initiator=%s wwpns=[%s]", c.Host, c.Initiator, strings.Join(c.WWPNs, ","))
}

func (c *Connector) ValidateISCSI() error {
	if c.Initiator == "" {
		return fmt.Errorf("connector for host %q has no iSCSI initiator", c.Host)
	}
	return nil
}

func (c *Connector) ValidateFC() error {
	if c.Host == "" || len(c.WWPNs) == 0 {
		return fmt.Errorf("connector must name a host and at least one WWPN")
	}
	return nil
}

const (
	DriverVolumeTypeISCSI = "iscsi"
	DriverVolumeTypeFC    = "fibre_channel"

	AuthMethodCHAP = "CHAP"

	AccessModeReadWrite = "rw"
)

// IscsiChapInfo holds the login and discovery secrets of one initiator.
type IscsiChapInfo struct {
	UseCHAP                bool   `json:"useCHAP"`
	IscsiUsername          string `json:"iscsiUsername,omitempty"`
	IscsiInitiatorSecret   string `json:"iscsiInitiatorSecret,omitempty"`
	UseDiscoveryCHAP       bool   `json:"useDiscoveryCHAP"`
	IscsiDiscoveryUsername string `json:"iscsiDiscoveryUsername,omitempty"`
	IscsiDiscoverySecret   string `json:"iscsiDiscoverySecret,omitempty"`
}

// ConnectionData is the protocol-specific attachment descriptor handed back to the host.
type ConnectionData struct {
	TargetDiscovered bool   `json:"target_discovered"`
	TargetLUN        int    `json:"target_lun"`
	AccessMode       string `json:"access_mode,omitempty"`

	// iSCSI
	TargetIQN     string   `json:"target_iqn,omitempty"`
	TargetPortal  string   `json:"target_portal,omitempty"`
	TargetIQNs    []string `json:"target_iqns,omitempty"`
	TargetPortals []string `json:"target_portals,omitempty"`
	TargetLUNs    []int    `json:"target_luns,omitempty"`

	AuthMethod            string `json:"auth_method,omitempty"`
	AuthUsername          string `json:"auth_username,omitempty"`
	AuthPassword          string `json:"auth_password,omitempty"`
	DiscoveryAuthMethod   string `json:"discovery_auth_method,omitempty"`
	DiscoveryAuthUsername string `json:"discovery_auth_username,omitempty"`
	DiscoveryAuthPassword string `json:"discovery_auth_password,omitempty"`

	// FC
	TargetWWNs         []string            `json:"target_wwn,omitempty"`
	InitiatorTargetMap map[string][]string `json:"initiator_target_map,omitempty"`
}

type ConnectionInfo struct {
	DriverVolumeType string         `json:"driver_volume_type"`
	Data             ConnectionData `json:"data"`
}

// SetCHAP copies the secrets into the descriptor for whichever CHAP modes are in use.
func (d *ConnectionData) SetCHAP(chap *IscsiChapInfo) {
	if chap == nil {
		return
	}
	if chap.UseCHAP {
		d.AuthMethod = AuthMethodCHAP
		d.AuthUsername = chap.IscsiUsername
		d.AuthPassword = chap.IscsiInitiatorSecret
	}
	if chap.UseDiscoveryCHAP {
		d.DiscoveryAuthMethod = AuthMethodCHAP
		d.DiscoveryAuthUsername = chap.IscsiDiscoveryUsername
		d.DiscoveryAuthPassword = chap.IscsiDiscoverySecret
	}
}

func (c ConnectionInfo) String() string {
	redacted := c
	if redacted.Data.AuthPassword != "" {
		redacted.Data.AuthPassword = "<REDACTED>"
	}
	if redacted.Data.DiscoveryAuthPassword != "" {
		redacted.Data.DiscoveryAuthPassword = "<REDACTED>"
	}
	return fmt.Sprintf("%+v", redacted.Data)
}
