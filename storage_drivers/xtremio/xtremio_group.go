// Copyright 2026 NetApp, Inc. All Rights Reserved.

package xtremio

import (
	"context"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/storage"
	"github.com/netapp/xtremio-driver/utils/errors"
)

func (d *SANStorageDriver) requireGroups() error {
	if !d.API.SupportsConsistencyGroups() {
		return errors.UnsupportedError("consistency groups are not supported by this XtremIO version")
	}
	return nil
}

// CGSnapshotName returns the name of the snapshot set backing a group snapshot.
func CGSnapshotName(groupID, cgSnapshotID string) string {
	return storage.GroupSnapshotSetName(groupID, cgSnapshotID)
}

// CreateGroup creates an empty consistency group named after the group id.
func (d *SANStorageDriver) CreateGroup(ctx context.Context, group *storage.GroupConfig) (err error) {
	ctx, rec := d.observe(ctx, "CreateGroup")
	defer rec(&err)

	fields := LogFields{"Method": "CreateGroup", "Type": "SANStorageDriver", "group": group.ID}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> CreateGroup")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< CreateGroup")

	if err = d.requireGroups(); err != nil {
		return err
	}
	if err = group.Validate(); err != nil {
		return errors.InvalidInputError("%v", err)
	}
	return d.API.ConsistencyGroupCreate(ctx, group.ID, nil)
}

// UpdateGroup adds and removes member volumes.
func (d *SANStorageDriver) UpdateGroup(
	ctx context.Context, group *storage.GroupConfig, add, remove []*storage.VolumeConfig,
) (err error) {
	ctx, rec := d.observe(ctx, "UpdateGroup")
	defer rec(&err)

	fields := LogFields{
		"Method": "UpdateGroup",
		"Type":   "SANStorageDriver",
		"group":  group.ID,
		"add":    len(add),
		"remove": len(remove),
	}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> UpdateGroup")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< UpdateGroup")

	if err = d.requireGroups(); err != nil {
		return err
	}

	for _, volume := range add {
		if err = d.API.ConsistencyGroupAddVolume(ctx, group.ID, volume.ArrayName()); err != nil {
			return err
		}
	}
	for _, volume := range remove {
		if err = d.API.ConsistencyGroupRemoveVolume(ctx, group.ID, volume.ArrayName()); err != nil {
			return err
		}
	}
	return nil
}

// DeleteGroup deletes the consistency group. Member volumes are left in place.
func (d *SANStorageDriver) DeleteGroup(
	ctx context.Context, group *storage.GroupConfig, volumes []*storage.VolumeConfig,
) (updates []storage.VolumeModelUpdate, err error) {
	ctx, rec := d.observe(ctx, "DeleteGroup")
	defer rec(&err)

	fields := LogFields{"Method": "DeleteGroup", "Type": "SANStorageDriver", "group": group.ID}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> DeleteGroup")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< DeleteGroup")

	if err = d.requireGroups(); err != nil {
		return nil, err
	}

	if err = d.API.ConsistencyGroupDelete(ctx, group.ID); err != nil {
		if !errors.IsNotFoundError(err) {
			return nil, err
		}
		Logc(ctx).WithField("group", group.ID).Warning("Consistency group not found, nothing to delete.")
	}

	updates = make([]storage.VolumeModelUpdate, 0, len(volumes))
	for _, volume := range volumes {
		updates = append(updates, storage.VolumeModelUpdate{ID: volume.Name, Status: storage.ModelStatusAvailable})
	}
	return updates, nil
}

// CreateCGSnapshot snapshots every member of a consistency group into one snapshot set.
func (d *SANStorageDriver) CreateCGSnapshot(
	ctx context.Context, cgSnapshot *storage.GroupSnapshotConfig, snapshots []*storage.SnapshotConfig,
) (updates []storage.SnapshotModelUpdate, err error) {
	ctx, rec := d.observe(ctx, "CreateCGSnapshot")
	defer rec(&err)

	setName := cgSnapshot.SnapshotSetName()

	fields := LogFields{
		"Method":      "CreateCGSnapshot",
		"Type":        "SANStorageDriver",
		"group":       cgSnapshot.GroupID,
		"snapshotSet": setName,
	}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> CreateCGSnapshot")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< CreateCGSnapshot")

	if err = d.requireGroups(); err != nil {
		return nil, err
	}

	if err = d.API.ConsistencyGroupSnapshot(ctx, cgSnapshot.GroupID, setName); err != nil {
		return nil, err
	}

	snapshotsByAncestor, err := d.snapshotSetMembers(ctx, setName)
	if err != nil {
		return nil, err
	}

	updates = make([]storage.SnapshotModelUpdate, 0, len(snapshots))
	for _, snapshot := range snapshots {
		update := storage.SnapshotModelUpdate{ID: snapshot.Name, Status: storage.ModelStatusAvailable}
		if providerID, ok := snapshotsByAncestor[snapshot.SourceArrayName()]; ok {
			update.ProviderID = providerID
		} else {
			Logc(ctx).WithFields(LogFields{
				"snapshot":    snapshot.Name,
				"volume":      snapshot.SourceArrayName(),
				"snapshotSet": setName,
			}).Error("Snapshot set has no snapshot of the volume.")
			update.Status = storage.ModelStatusError
		}
		updates = append(updates, update)
	}
	return updates, nil
}

// DeleteCGSnapshot deletes the snapshots of a group snapshot and then its snapshot set.
func (d *SANStorageDriver) DeleteCGSnapshot(
	ctx context.Context, cgSnapshot *storage.GroupSnapshotConfig, snapshots []*storage.SnapshotConfig,
) (updates []storage.SnapshotModelUpdate, err error) {
	ctx, rec := d.observe(ctx, "DeleteCGSnapshot")
	defer rec(&err)

	setName := cgSnapshot.SnapshotSetName()

	fields := LogFields{
		"Method":      "DeleteCGSnapshot",
		"Type":        "SANStorageDriver",
		"group":       cgSnapshot.GroupID,
		"snapshotSet": setName,
	}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> DeleteCGSnapshot")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< DeleteCGSnapshot")

	if err = d.requireGroups(); err != nil {
		return nil, err
	}

	updates = make([]storage.SnapshotModelUpdate, 0, len(snapshots))
	for _, snapshot := range snapshots {
		updates = append(updates, storage.SnapshotModelUpdate{ID: snapshot.Name, Status: storage.ModelStatusDeleted})
	}

	set, err := d.API.SnapshotSetGet(ctx, setName)
	if err != nil {
		if errors.IsNotFoundError(err) {
			Logc(ctx).WithField("snapshotSet", setName).Warning("Snapshot set not found, nothing to delete.")
			return updates, nil
		}
		return nil, err
	}

	for _, member := range set.VolList {
		if err = d.API.VolumeDeleteByIndex(ctx, member.Index); err != nil && !errors.IsNotFoundError(err) {
			return nil, err
		}
	}
	if err = d.API.SnapshotSetDelete(ctx, setName); err != nil && !errors.IsNotFoundError(err) {
		return nil, err
	}
	return updates, nil
}

// CreateGroupFromSource creates a consistency group whose volumes are copies of either a group
// snapshot or another group. Targets and sources are paired by position.
func (d *SANStorageDriver) CreateGroupFromSource(
	ctx context.Context, group *storage.GroupConfig, volumes []*storage.VolumeConfig,
	cgSnapshot *storage.GroupSnapshotConfig, snapshots []*storage.SnapshotConfig,
	sourceGroup *storage.GroupConfig, sourceVolumes []*storage.VolumeConfig,
) (updates []storage.VolumeModelUpdate, err error) {
	ctx, rec := d.observe(ctx, "CreateGroupFromSource")
	defer rec(&err)

	fields := LogFields{"Method": "CreateGroupFromSource", "Type": "SANStorageDriver", "group": group.ID}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> CreateGroupFromSource")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< CreateGroupFromSource")

	if err = d.requireGroups(); err != nil {
		return nil, err
	}

	fromSnapshot := cgSnapshot != nil && len(snapshots) > 0
	fromGroup := sourceGroup != nil && len(sourceVolumes) > 0
	if fromSnapshot == fromGroup {
		return nil, errors.InvalidInputError(
			"exactly one of a group snapshot with snapshots or a source group with volumes is required")
	}

	// The array name of each target's source volume, by position
	sources := make([]string, 0, len(volumes))
	if fromSnapshot {
		for _, snapshot := range snapshots {
			sources = append(sources, snapshot.SourceArrayName())
		}
	} else {
		for _, volume := range sourceVolumes {
			sources = append(sources, volume.ArrayName())
		}
	}
	if len(sources) != len(volumes) {
		return nil, errors.InvalidInputError("%d target volumes for %d source volumes", len(volumes), len(sources))
	}

	if fromSnapshot {
		err = d.cloneFromSnapshotSet(ctx, cgSnapshot.SnapshotSetName(), volumes, sources)
	} else {
		err = d.cloneFromGroup(ctx, group.ID, sourceGroup.ID, volumes, sources)
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(volumes))
	for _, volume := range volumes {
		names = append(names, volume.ArrayName())
	}
	if err = d.API.ConsistencyGroupCreate(ctx, group.ID, names); err != nil {
		return nil, err
	}

	updates = make([]storage.VolumeModelUpdate, 0, len(volumes))
	for _, volume := range volumes {
		updates = append(updates, storage.VolumeModelUpdate{
			ID:         volume.Name,
			ProviderID: volume.ArrayName(),
			Status:     storage.ModelStatusAvailable,
		})
	}
	return updates, nil
}

// cloneFromSnapshotSet creates each target as a writable snapshot of the set member taken from its source.
func (d *SANStorageDriver) cloneFromSnapshotSet(
	ctx context.Context, setName string, volumes []*storage.VolumeConfig, sources []string,
) error {
	snapshotsByAncestor, err := d.snapshotSetMembers(ctx, setName)
	if err != nil {
		return err
	}
	for i, volume := range volumes {
		snapshotName, ok := snapshotsByAncestor[sources[i]]
		if !ok {
			return errors.NotFoundError("snapshot set %s has no snapshot of volume %s", setName, sources[i])
		}
		if err = d.API.SnapshotCreate(ctx, snapshotName, volume.ArrayName(), false); err != nil {
			return err
		}
	}
	return nil
}

// cloneFromGroup snapshots the source group into a set named after the new group and renames each
// snapshot to its target volume.
func (d *SANStorageDriver) cloneFromGroup(
	ctx context.Context, groupID, sourceGroupID string, volumes []*storage.VolumeConfig, sources []string,
) error {
	if err := d.API.ConsistencyGroupSnapshot(ctx, sourceGroupID, groupID); err != nil {
		return err
	}
	snapshotsByAncestor, err := d.snapshotSetMembers(ctx, groupID)
	if err != nil {
		return err
	}
	for i, volume := range volumes {
		snapshotName, ok := snapshotsByAncestor[sources[i]]
		if !ok {
			return errors.NotFoundError("group %s has no volume %s", sourceGroupID, sources[i])
		}
		if err = d.API.VolumeRename(ctx, snapshotName, volume.ArrayName()); err != nil {
			return err
		}
	}
	return nil
}

// snapshotSetMembers maps the ancestor volume name of each member of a snapshot set to the member's name.
func (d *SANStorageDriver) snapshotSetMembers(ctx context.Context, setName string) (map[string]string, error) {
	set, err := d.API.SnapshotSetGet(ctx, setName)
	if err != nil {
		return nil, err
	}

	members := make(map[string]string, len(set.VolList))
	for _, member := range set.VolList {
		volume, err := d.API.VolumeGet(ctx, member.Name)
		if err != nil {
			if errors.IsNotFoundError(err) {
				Logc(ctx).WithField("snapshot", member.Name).Warning("Snapshot set member disappeared.")
				continue
			}
			return nil, err
		}
		if volume.AncestorVolID == nil {
			continue
		}
		members[volume.AncestorVolID.Name] = volume.Name
	}
	return members, nil
}
