// Copyright 2026 NetApp, Inc. All Rights Reserved.

package storage

import (
	"fmt"
	"strings"
)

// GroupConfig describes a consistency group. The array object is named after ID.
type GroupConfig struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

func (c *GroupConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("the following field for \"Group\" is mandatory: id")
	}
	return nil
}

// GroupSnapshotConfig describes a point-in-time snapshot of a consistency group.
type GroupSnapshotConfig struct {
	ID      string `json:"id"`
	GroupID string `json:"groupID"`
}

func (c *GroupSnapshotConfig) Validate() error {
	if c.ID == "" || c.GroupID == "" {
		return fmt.Errorf("the following fields for \"GroupSnapshot\" are mandatory: id and groupID")
	}
	return nil
}

// SnapshotSetName is the name of the array snapshot set backing this group snapshot.
func (c *GroupSnapshotConfig) SnapshotSetName() string {
	return GroupSnapshotSetName(c.GroupID, c.ID)
}

// GroupSnapshotSetName concatenates both ids with dashes removed.
func GroupSnapshotSetName(groupID, groupSnapshotID string) string {
	return strings.ReplaceAll(groupID+groupSnapshotID, "-", "")
}

const (
	ModelStatusAvailable = "available"
	ModelStatusDeleted   = "deleted"
	ModelStatusError     = "error"
)
