// Copyright 2026 NetApp, Inc. All Rights Reserved.

package storage

import (
	"fmt"

	"github.com/brunoga/deep"
)

type SnapshotConfig struct {
	Version            string `json:"version,omitempty"`
	Name               string `json:"name,omitempty"`
	InternalName       string `json:"internalName,omitempty"`
	VolumeName         string `json:"volumeName,omitempty"`
	VolumeInternalName string `json:"volumeInternalName,omitempty"`
	GroupSnapshotID    string `json:"groupSnapshotID,omitempty"`
}

func (c *SnapshotConfig) Validate() error {
	if c.Name == "" || c.VolumeName == "" {
		return fmt.Errorf("the following fields for \"Snapshot\" are mandatory: name and volumeName")
	}
	return nil
}

// ArrayName returns the name of the snapshot volume on the array.
func (c *SnapshotConfig) ArrayName() string {
	if c.InternalName != "" {
		return c.InternalName
	}
	return c.Name
}

// SourceArrayName returns the array name of the snapshot's parent volume.
func (c *SnapshotConfig) SourceArrayName() string {
	if c.VolumeInternalName != "" {
		return c.VolumeInternalName
	}
	return c.VolumeName
}

func (c *SnapshotConfig) ConstructClone() *SnapshotConfig {
	clone, err := deep.Copy(c)
	if err != nil {
		return &SnapshotConfig{}
	}
	return clone
}

type SnapshotState string

const (
	SnapshotStateCreating = SnapshotState("creating")
	SnapshotStateOnline   = SnapshotState("online")
	SnapshotStateMissing  = SnapshotState("missing")
)

type Snapshot struct {
	Config    *SnapshotConfig
	Created   string // The UTC time that the snapshot was created, in RFC3339 format
	SizeBytes int64
	State     SnapshotState
}

func NewSnapshot(config *SnapshotConfig, created string, sizeBytes int64, state SnapshotState) *Snapshot {
	return &Snapshot{
		Config:    config,
		Created:   created,
		SizeBytes: sizeBytes,
		State:     state,
	}
}

func (s *Snapshot) ID() string {
	return MakeSnapshotID(s.Config.VolumeName, s.Config.Name)
}

func MakeSnapshotID(volumeName, snapshotName string) string {
	return fmt.Sprintf("%s/%s", volumeName, snapshotName)
}

// SnapshotModelUpdate reports the outcome of a group snapshot for one member snapshot.
type SnapshotModelUpdate struct {
	ID         string `json:"id"`
	ProviderID string `json:"providerID,omitempty"`
	Status     string `json:"status"`
}
