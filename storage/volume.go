// Copyright 2026 NetApp, Inc. All Rights Reserved.

package storage

import (
	"fmt"
	"strings"

	"github.com/brunoga/deep"

	"github.com/netapp/xtremio-driver/config"
)

// VolumeConfig is the host's record of a volume. InternalName is the name the volume carries on the array.
type VolumeConfig struct {
	Version                     string          `json:"version"`
	Name                        string          `json:"name"`
	InternalName                string          `json:"internalName"`
	Size                        string          `json:"size"`
	Protocol                    config.Protocol `json:"protocol"`
	ConsistencyGroupID          string          `json:"consistencyGroupID,omitempty"`
	CloneSourceVolume           string          `json:"cloneSourceVolume"`
	CloneSourceVolumeInternal   string          `json:"cloneSourceVolumeInternal"`
	CloneSourceSnapshot         string          `json:"cloneSourceSnapshot"`
	CloneSourceSnapshotInternal string          `json:"cloneSourceSnapshotInternal"`
	ImportOriginalName          string          `json:"importOriginalName,omitempty"`
	ImportNotManaged            bool            `json:"importNotManaged,omitempty"`
	MultiAttach                 bool            `json:"multiAttach,omitempty"`
}

func (c *VolumeConfig) Validate() error {
	if c.Name == "" || c.Size == "" {
		return fmt.Errorf("the following fields for \"Volume\" are mandatory: name and size")
	}
	if c.Protocol != "" && !config.IsValidProtocol(c.Protocol) {
		return fmt.Errorf("%v is an unsupported protocol! Acceptable values: %s", c.Protocol,
			strings.Join([]string{string(config.ISCSI), string(config.FCP)}, ", "))
	}
	return nil
}

// ArrayName returns the name used for the volume on the array.
func (c *VolumeConfig) ArrayName() string {
	if c.InternalName != "" {
		return c.InternalName
	}
	return c.Name
}

func (c *VolumeConfig) ConstructClone() *VolumeConfig {
	clone, err := deep.Copy(c)
	if err != nil {
		return &VolumeConfig{}
	}
	return clone
}

type Volume struct {
	Config      *VolumeConfig
	BackendName string
	State       VolumeState
}

type VolumeState string

const (
	VolumeStateUnknown   = VolumeState("unknown")
	VolumeStateOnline    = VolumeState("online")
	VolumeStateDeleting  = VolumeState("deleting")
	VolumeStateUnmanaged = VolumeState("unmanaged")
)

func (s VolumeState) String() string {
	switch s {
	case VolumeStateUnknown, VolumeStateOnline, VolumeStateDeleting, VolumeStateUnmanaged:
		return string(s)
	default:
		return "unknown"
	}
}

func (s VolumeState) IsUnknown() bool {
	switch s {
	case VolumeStateOnline, VolumeStateDeleting, VolumeStateUnmanaged:
		return false
	default:
		return true
	}
}

func (s VolumeState) IsOnline() bool {
	return s == VolumeStateOnline
}

func (s VolumeState) IsDeleting() bool {
	return s == VolumeStateDeleting
}

func NewVolume(conf *VolumeConfig, backendName string, state VolumeState) *Volume {
	return &Volume{
		Config:      conf,
		BackendName: backendName,
		State:       state,
	}
}

func (v *Volume) SmartCopy() interface{} {
	return deep.MustCopy(v)
}

// VolumeModelUpdate reports the outcome of a group-level operation for one member volume.
type VolumeModelUpdate struct {
	ID         string `json:"id"`
	ProviderID string `json:"providerID,omitempty"`
	Status     string `json:"status"`
}

type ByVolumeName []*VolumeConfig

func (a ByVolumeName) Len() int           { return len(a) }
func (a ByVolumeName) Less(i, j int) bool { return a[i].Name < a[j].Name }
func (a ByVolumeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
