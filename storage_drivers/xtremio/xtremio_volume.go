// Copyright 2026 NetApp, Inc. All Rights Reserved.

package xtremio

import (
	"context"
	"time"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/pkg/capacity"
	"github.com/netapp/xtremio-driver/storage"
	drivers "github.com/netapp/xtremio-driver/storage_drivers"
	"github.com/netapp/xtremio-driver/utils/errors"
)

const (
	// SourceNameKey is the reference key naming the array volume to manage.
	SourceNameKey = "source-name"

	// UnmanagedSuffix is appended to the name of a volume released by Unmanage.
	UnmanagedSuffix = "-unmanaged"

	arrayTimeFormat = "2006-01-02 15:04:05"
)

// CreateVolume creates a volume and, when it belongs to a consistency group, adds it to the group.
func (d *SANStorageDriver) CreateVolume(ctx context.Context, volConfig *storage.VolumeConfig) (err error) {
	ctx, rec := d.observe(ctx, "CreateVolume")
	defer rec(&err)

	name := volConfig.ArrayName()

	fields := LogFields{
		"Method": "CreateVolume",
		"Type":   "SANStorageDriver",
		"name":   name,
		"size":   volConfig.Size,
	}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> CreateVolume")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< CreateVolume")

	if name == "" {
		return errors.InvalidInputError("volume name is required")
	}
	sizeGiB, err := d.volumeSizeGiB(ctx, volConfig.Size)
	if err != nil {
		return err
	}

	if err = d.API.VolumeCreate(ctx, name, sizeGiB); err != nil {
		if errors.IsAlreadyExistsError(err) {
			Logc(ctx).WithField("volume", name).Warning("Volume already exists.")
		}
		return err
	}

	Logc(ctx).WithFields(LogFields{"volume": name, "sizeGiB": sizeGiB}).Info("Created volume.")

	return d.addToGroup(ctx, volConfig)
}

// ExtendVolume grows a volume to the new size in GiB.
func (d *SANStorageDriver) ExtendVolume(
	ctx context.Context, volConfig *storage.VolumeConfig, newSizeGiB uint64,
) (err error) {
	ctx, rec := d.observe(ctx, "ExtendVolume")
	defer rec(&err)

	name := volConfig.ArrayName()

	fields := LogFields{
		"Method":  "ExtendVolume",
		"Type":    "SANStorageDriver",
		"name":    name,
		"newSize": newSizeGiB,
	}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> ExtendVolume")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< ExtendVolume")

	limits := d.Config.CommonStorageDriverConfig
	if _, _, err = drivers.CheckVolumeSizeLimits(ctx, newSizeGiB*capacity.OneGiB, limits); err != nil {
		return err
	}

	if err = d.API.VolumeResize(ctx, name, newSizeGiB); err != nil {
		if errors.IsNotFoundError(err) {
			return errors.WrapWithNotFoundError(err, "volume %s not found", name)
		}
		return err
	}

	return nil
}

// DeleteVolume removes a volume. A volume that is already gone is not an error.
func (d *SANStorageDriver) DeleteVolume(ctx context.Context, volConfig *storage.VolumeConfig) (err error) {
	ctx, rec := d.observe(ctx, "DeleteVolume")
	defer rec(&err)

	name := volConfig.ArrayName()

	fields := LogFields{"Method": "DeleteVolume", "Type": "SANStorageDriver", "name": name}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> DeleteVolume")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< DeleteVolume")

	if err = d.API.VolumeDelete(ctx, name); err != nil {
		if errors.IsNotFoundError(err) {
			Logc(ctx).WithField("volume", name).Warning("Volume not found, nothing to delete.")
			return nil
		}
		return err
	}
	return nil
}

// CreateSnapshot takes a read-only snapshot of a volume.
func (d *SANStorageDriver) CreateSnapshot(
	ctx context.Context, snapConfig *storage.SnapshotConfig,
) (snapshot *storage.Snapshot, err error) {
	ctx, rec := d.observe(ctx, "CreateSnapshot")
	defer rec(&err)

	name := snapConfig.ArrayName()
	source := snapConfig.SourceArrayName()

	fields := LogFields{
		"Method":       "CreateSnapshot",
		"Type":         "SANStorageDriver",
		"snapshotName": name,
		"sourceVolume": source,
	}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> CreateSnapshot")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< CreateSnapshot")

	if err = d.API.SnapshotCreate(ctx, source, name, true); err != nil {
		return nil, err
	}

	volume, err := d.API.VolumeGet(ctx, name)
	if err != nil {
		return nil, err
	}

	Logc(ctx).WithFields(LogFields{"snapshot": name, "source": source}).Info("Created snapshot.")

	return storage.NewSnapshot(snapConfig, creationTime(volume.CreationTime),
		int64(volume.VolSize.Uint64()*capacity.OneKiB), storage.SnapshotStateOnline), nil
}

// DeleteSnapshot removes a snapshot. A snapshot that is already gone is not an error.
func (d *SANStorageDriver) DeleteSnapshot(ctx context.Context, snapConfig *storage.SnapshotConfig) (err error) {
	ctx, rec := d.observe(ctx, "DeleteSnapshot")
	defer rec(&err)

	name := snapConfig.ArrayName()

	fields := LogFields{"Method": "DeleteSnapshot", "Type": "SANStorageDriver", "snapshotName": name}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> DeleteSnapshot")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< DeleteSnapshot")

	if err = d.API.VolumeDelete(ctx, name); err != nil {
		if errors.IsNotFoundError(err) {
			Logc(ctx).WithField("snapshot", name).Warning("Snapshot not found, nothing to delete.")
			return nil
		}
		return err
	}
	return nil
}

// CreateVolumeFromSnapshot creates a writable volume from a snapshot.
func (d *SANStorageDriver) CreateVolumeFromSnapshot(
	ctx context.Context, volConfig *storage.VolumeConfig, snapConfig *storage.SnapshotConfig,
) (err error) {
	ctx, rec := d.observe(ctx, "CreateVolumeFromSnapshot")
	defer rec(&err)

	name := volConfig.ArrayName()
	source := snapConfig.ArrayName()

	fields := LogFields{
		"Method":         "CreateVolumeFromSnapshot",
		"Type":           "SANStorageDriver",
		"name":           name,
		"sourceSnapshot": source,
	}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> CreateVolumeFromSnapshot")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< CreateVolumeFromSnapshot")

	if err = d.API.SnapshotCreate(ctx, source, name, false); err != nil {
		return err
	}
	if err = d.growToRequestedSize(ctx, volConfig); err != nil {
		return err
	}
	return d.addToGroup(ctx, volConfig)
}

// CreateClonedVolume creates a writable copy of a volume. The clone count of the source is checked
// first so that an exhausted source fails before anything is written.
func (d *SANStorageDriver) CreateClonedVolume(
	ctx context.Context, cloneConfig, sourceConfig *storage.VolumeConfig,
) (err error) {
	ctx, rec := d.observe(ctx, "CreateClonedVolume")
	defer rec(&err)

	name := cloneConfig.ArrayName()
	source := sourceConfig.ArrayName()

	fields := LogFields{
		"Method":       "CreateClonedVolume",
		"Type":         "SANStorageDriver",
		"name":         name,
		"sourceVolume": source,
	}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> CreateClonedVolume")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< CreateClonedVolume")

	sourceVolume, err := d.API.VolumeGet(ctx, source)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.WrapWithVolumeNotFoundError(err, "clone source %s not found", source)
		}
		return err
	}

	if limit := d.volumesPerImageCache; limit > 0 && sourceVolume.NumOfDestSnaps.Int() >= limit {
		return errors.CloneLimitExceededError("volume %s already has %d clones; the limit is %d",
			source, sourceVolume.NumOfDestSnaps.Int(), limit)
	}

	if err = d.API.SnapshotCreate(ctx, source, name, false); err != nil {
		if errors.IsSnapshotsLimitExceededError(err) {
			return errors.WrapWithCloneLimitExceededError(err, "could not clone volume %s", source)
		}
		return err
	}
	if err = d.growToRequestedSize(ctx, cloneConfig); err != nil {
		return err
	}
	return d.addToGroup(ctx, cloneConfig)
}

// growToRequestedSize extends a volume created from a snapshot or clone when the requested size is
// larger than the source.
func (d *SANStorageDriver) growToRequestedSize(ctx context.Context, volConfig *storage.VolumeConfig) error {
	if volConfig.Size == "" {
		return nil
	}
	requestedGiB, err := d.volumeSizeGiB(ctx, volConfig.Size)
	if err != nil {
		return err
	}
	volume, err := d.API.VolumeGet(ctx, volConfig.ArrayName())
	if err != nil {
		return err
	}
	if currentGiB := capacity.KiBToGiBCeil(volume.VolSize.Uint64()); requestedGiB > currentGiB {
		Logc(ctx).WithFields(LogFields{
			"volume":    volConfig.ArrayName(),
			"current":   currentGiB,
			"requested": requestedGiB,
		}).Debug("Extending new volume to the requested size.")
		return d.API.VolumeResize(ctx, volConfig.ArrayName(), requestedGiB)
	}
	return nil
}

// ManageExisting adopts an array volume by renaming it to the name of the volume config.
func (d *SANStorageDriver) ManageExisting(
	ctx context.Context, volConfig *storage.VolumeConfig, ref map[string]string,
) (err error) {
	ctx, rec := d.observe(ctx, "ManageExisting")
	defer rec(&err)

	fields := LogFields{"Method": "ManageExisting", "Type": "SANStorageDriver", "name": volConfig.ArrayName()}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> ManageExisting")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< ManageExisting")

	sourceName, err := d.resolveReference(ctx, ref)
	if err != nil {
		return err
	}

	if err = d.API.VolumeRename(ctx, sourceName, volConfig.ArrayName()); err != nil {
		if errors.IsNotFoundError(err) {
			return errors.WrapWithInvalidReferenceError(err, "volume %s not found", sourceName)
		}
		return err
	}

	volConfig.ImportOriginalName = sourceName
	Logc(ctx).WithFields(LogFields{"source": sourceName, "volume": volConfig.ArrayName()}).Info("Managed volume.")
	return nil
}

// ManageExistingGetSize returns the size in GiB of the volume a manage reference points to.
func (d *SANStorageDriver) ManageExistingGetSize(
	ctx context.Context, volConfig *storage.VolumeConfig, ref map[string]string,
) (sizeGiB uint64, err error) {
	ctx, rec := d.observe(ctx, "ManageExistingGetSize")
	defer rec(&err)

	fields := LogFields{"Method": "ManageExistingGetSize", "Type": "SANStorageDriver", "name": volConfig.ArrayName()}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> ManageExistingGetSize")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< ManageExistingGetSize")

	sourceName, err := d.resolveReference(ctx, ref)
	if err != nil {
		return 0, err
	}

	volume, err := d.API.VolumeGet(ctx, sourceName)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return 0, errors.WrapWithInvalidReferenceError(err, "volume %s not found", sourceName)
		}
		return 0, err
	}
	return capacity.KiBToGiBCeil(volume.VolSize.Uint64()), nil
}

func (d *SANStorageDriver) resolveReference(ctx context.Context, ref map[string]string) (string, error) {
	sourceName, ok := ref[SourceNameKey]
	if !ok || sourceName == "" {
		Logc(ctx).WithField("reference", ref).Error("Manage reference has no source name.")
		return "", errors.InvalidReferenceError("manage reference must contain %s", SourceNameKey)
	}
	return sourceName, nil
}

// Unmanage releases a volume by renaming it with the unmanaged suffix.
func (d *SANStorageDriver) Unmanage(ctx context.Context, volConfig *storage.VolumeConfig) (err error) {
	ctx, rec := d.observe(ctx, "Unmanage")
	defer rec(&err)

	name := volConfig.ArrayName()

	fields := LogFields{"Method": "Unmanage", "Type": "SANStorageDriver", "name": name}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> Unmanage")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< Unmanage")

	if err = d.API.VolumeRename(ctx, name, name+UnmanagedSuffix); err != nil {
		if errors.IsNotFoundError(err) {
			return errors.WrapWithVolumeNotFoundError(err, "volume %s not found", name)
		}
		return err
	}
	return nil
}

// addToGroup adds a new volume to its consistency group, if it names one and the array supports groups.
func (d *SANStorageDriver) addToGroup(ctx context.Context, volConfig *storage.VolumeConfig) error {
	if volConfig.ConsistencyGroupID == "" {
		return nil
	}
	if !d.API.SupportsConsistencyGroups() {
		Logc(ctx).WithFields(LogFields{
			"volume": volConfig.ArrayName(),
			"group":  volConfig.ConsistencyGroupID,
		}).Warning("Array does not support consistency groups; volume not added to its group.")
		return nil
	}
	return d.API.ConsistencyGroupAddVolume(ctx, volConfig.ConsistencyGroupID, volConfig.ArrayName())
}

// creationTime converts the array's timestamp to RFC3339, falling back to the current time.
func creationTime(arrayTime string) string {
	if t, err := time.Parse(arrayTimeFormat, arrayTime); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return time.Now().UTC().Format(time.RFC3339)
}
