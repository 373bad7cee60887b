// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

//go:generate mockgen -destination=../../../mocks/mock_storage_drivers/mock_xtremio/mock_api.go github.com/netapp/xtremio-driver/storage_drivers/xtremio/api XtremIOAPI

import (
	"context"

	"github.com/netapp/xtremio-driver/pkg/capacity"
	"github.com/netapp/xtremio-driver/utils/errors"
	"github.com/netapp/xtremio-driver/utils/version"
)

// XtremIOAPI is the array surface used by the storage drivers.
type XtremIOAPI interface {
	Discover(ctx context.Context) (*version.Version, error)
	SupportsConsistencyGroups() bool
	ClusterName() string

	ClusterList(ctx context.Context) ([]Reference, error)
	ClusterGet(ctx context.Context) (*Cluster, error)

	VolumeCreate(ctx context.Context, name string, sizeGiB uint64) error
	VolumeGet(ctx context.Context, name string) (*Volume, error)
	VolumeList(ctx context.Context, query Query) ([]Volume, error)
	VolumeResize(ctx context.Context, name string, sizeGiB uint64) error
	VolumeRename(ctx context.Context, name, newName string) error
	VolumeRenameByIndex(ctx context.Context, index int, newName string) error
	VolumeDelete(ctx context.Context, name string) error
	VolumeDeleteByIndex(ctx context.Context, index int) error
	SnapshotCreate(ctx context.Context, source, destination string, readOnly bool) error

	InitiatorGet(ctx context.Context, portAddress string) (*Initiator, error)
	InitiatorGetByIndex(ctx context.Context, index int) (*Initiator, error)
	InitiatorCreate(ctx context.Context, name, portAddress, igName string, chap *CHAPSecrets) (Reference, error)
	InitiatorSetCHAP(ctx context.Context, index int, chap *CHAPSecrets) error
	InitiatorDelete(ctx context.Context, name string) error
	InitiatorDeleteByIndex(ctx context.Context, index int) error

	InitiatorGroupGet(ctx context.Context, name string) (*InitiatorGroup, error)
	InitiatorGroupCreate(ctx context.Context, name string) (*InitiatorGroup, error)
	InitiatorGroupDelete(ctx context.Context, name string) error

	TargetGroupGet(ctx context.Context, name string) (*TargetGroup, error)
	TargetList(ctx context.Context) ([]Target, error)
	ISCSIPortalList(ctx context.Context) ([]ISCSIPortal, error)

	LunMapCreate(ctx context.Context, volumeName, igName, tgName string, lun int) (*LunMap, error)
	LunMapFind(ctx context.Context, igName, volumeName string) (*LunMap, error)
	LunMapDelete(ctx context.Context, name string) error
	LunMapsForInitiatorGroup(ctx context.Context, igName string) ([]LunMap, error)
	MappedVolumeCount(ctx context.Context, igName string) (int, error)

	ConsistencyGroupCreate(ctx context.Context, name string, volumeNames []string) error
	ConsistencyGroupGet(ctx context.Context, name string) (*ConsistencyGroup, error)
	ConsistencyGroupDelete(ctx context.Context, name string) error
	ConsistencyGroupAddVolume(ctx context.Context, groupName, volumeName string) error
	ConsistencyGroupRemoveVolume(ctx context.Context, groupName, volumeName string) error
	ConsistencyGroupSnapshot(ctx context.Context, groupName, snapshotSetName string) error
	SnapshotSetGet(ctx context.Context, name string) (*SnapshotSet, error)
	SnapshotSetDelete(ctx context.Context, name string) error
}

var _ XtremIOAPI = (*Client)(nil)

func (c *Client) ClusterList(ctx context.Context) ([]Reference, error) {
	return c.Clusters().List(ctx)
}

// ClusterGet returns the cluster requests are scoped to.
func (c *Client) ClusterGet(ctx context.Context) (*Cluster, error) {
	return c.Dialect().GetCluster(ctx, c)
}

// ///////////////////////////////////////////////////////////////////////////
// Volumes and snapshots
// ///////////////////////////////////////////////////////////////////////////

func (c *Client) VolumeCreate(ctx context.Context, name string, sizeGiB uint64) error {
	_, err := c.Volumes().Create(ctx, map[string]any{
		"vol-name": name,
		"vol-size": capacity.GiBToArraySize(sizeGiB),
	})
	return err
}

func (c *Client) VolumeGet(ctx context.Context, name string) (*Volume, error) {
	return c.Volumes().GetByName(ctx, name)
}

func (c *Client) VolumeList(ctx context.Context, query Query) ([]Volume, error) {
	return c.Volumes().ListFull(ctx, query)
}

func (c *Client) VolumeResize(ctx context.Context, name string, sizeGiB uint64) error {
	return c.Volumes().UpdateByName(ctx, name, map[string]any{"vol-size": capacity.GiBToArraySize(sizeGiB)})
}

func (c *Client) VolumeRename(ctx context.Context, name, newName string) error {
	return c.Volumes().UpdateByName(ctx, name, map[string]any{c.Dialect().RenameKey(): newName})
}

func (c *Client) VolumeRenameByIndex(ctx context.Context, index int, newName string) error {
	return c.Volumes().UpdateByIndex(ctx, index, map[string]any{c.Dialect().RenameKey(): newName})
}

// VolumeDelete deletes a volume and the snapshot set it was created in, if that set is now empty.
// The set is released even when the volume is already gone, so a repeated delete finishes the job;
// the NotFound error of the volume is still returned.
func (c *Client) VolumeDelete(ctx context.Context, name string) error {
	err := c.Volumes().DeleteByName(ctx, name)
	if err != nil && !errors.IsNotFoundError(err) {
		return err
	}
	if releaseErr := c.Dialect().ReleaseSnapshotSet(ctx, c, name); releaseErr != nil {
		return errors.WrapWithBackendAPIError(releaseErr, "volume %s deleted, but not its snapshot set", name)
	}
	return err
}

func (c *Client) VolumeDeleteByIndex(ctx context.Context, index int) error {
	return c.Volumes().DeleteByIndex(ctx, index)
}

// SnapshotCreate creates destination as a snapshot of source, read-only if requested.
func (c *Client) SnapshotCreate(ctx context.Context, source, destination string, readOnly bool) error {
	return c.Dialect().CreateSnapshot(ctx, c, source, destination, readOnly)
}

// ///////////////////////////////////////////////////////////////////////////
// Initiators and initiator groups
// ///////////////////////////////////////////////////////////////////////////

// InitiatorGet looks up an initiator by its port address (IQN or WWPN).
func (c *Client) InitiatorGet(ctx context.Context, portAddress string) (*Initiator, error) {
	return c.Dialect().GetInitiator(ctx, c, portAddress)
}

func (c *Client) InitiatorGetByIndex(ctx context.Context, index int) (*Initiator, error) {
	return c.Initiators().GetByIndex(ctx, index)
}

func (c *Client) InitiatorCreate(
	ctx context.Context, name, portAddress, igName string, chap *CHAPSecrets,
) (Reference, error) {
	fields := chap.fields()
	fields["initiator-name"] = name
	fields["port-address"] = portAddress
	fields["ig-id"] = igName
	return c.Initiators().Create(ctx, fields)
}

func (c *Client) InitiatorSetCHAP(ctx context.Context, index int, chap *CHAPSecrets) error {
	fields := chap.fields()
	if len(fields) == 0 {
		return nil
	}
	return c.Initiators().UpdateByIndex(ctx, index, fields)
}

func (c *Client) InitiatorDelete(ctx context.Context, name string) error {
	return c.Initiators().DeleteByName(ctx, name)
}

func (c *Client) InitiatorDeleteByIndex(ctx context.Context, index int) error {
	return c.Initiators().DeleteByIndex(ctx, index)
}

func (c *Client) InitiatorGroupGet(ctx context.Context, name string) (*InitiatorGroup, error) {
	return c.InitiatorGroups().GetByName(ctx, name)
}

// InitiatorGroupCreate creates the group and reads it back.
func (c *Client) InitiatorGroupCreate(ctx context.Context, name string) (*InitiatorGroup, error) {
	if _, err := c.InitiatorGroups().Create(ctx, map[string]any{"ig-name": name}); err != nil {
		return nil, err
	}
	return c.InitiatorGroups().GetByName(ctx, name)
}

func (c *Client) InitiatorGroupDelete(ctx context.Context, name string) error {
	return c.InitiatorGroups().DeleteByName(ctx, name)
}

// ///////////////////////////////////////////////////////////////////////////
// Targets
// ///////////////////////////////////////////////////////////////////////////

func (c *Client) TargetGroupGet(ctx context.Context, name string) (*TargetGroup, error) {
	return c.TargetGroups().GetByName(ctx, name)
}

func (c *Client) TargetList(ctx context.Context) ([]Target, error) {
	return c.Targets().ListFull(ctx, Query{})
}

func (c *Client) ISCSIPortalList(ctx context.Context) ([]ISCSIPortal, error) {
	return c.Dialect().GetISCSIPortals(ctx, c)
}

// ///////////////////////////////////////////////////////////////////////////
// Lun maps
// ///////////////////////////////////////////////////////////////////////////

// LunMapCreate maps the volume to the initiator group and reads the new map back. A lun of zero lets
// the array choose.
func (c *Client) LunMapCreate(ctx context.Context, volumeName, igName, tgName string, lun int) (*LunMap, error) {
	fields := map[string]any{
		"vol-id": volumeName,
		"ig-id":  igName,
	}
	if tgName != "" {
		fields["tg-id"] = tgName
	}
	if lun > 0 {
		fields["lun"] = lun
	}

	ref, err := c.LunMaps().Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	idx, err := ref.Index()
	if err != nil {
		return nil, errors.WrapWithBackendAPIError(err, "XMS returned an unusable lun map reference")
	}
	return c.LunMaps().GetByIndex(ctx, idx)
}

func (c *Client) LunMapFind(ctx context.Context, igName, volumeName string) (*LunMap, error) {
	return c.Dialect().FindLunMap(ctx, c, igName, volumeName)
}

func (c *Client) LunMapDelete(ctx context.Context, name string) error {
	return c.LunMaps().DeleteByName(ctx, name)
}

func (c *Client) LunMapsForInitiatorGroup(ctx context.Context, igName string) ([]LunMap, error) {
	return c.Dialect().LunMapsForInitiatorGroup(ctx, c, igName)
}

// MappedVolumeCount returns how many volumes are mapped to the initiator group. Maps that vanish while
// they are being counted are not an error.
func (c *Client) MappedVolumeCount(ctx context.Context, igName string) (int, error) {
	lunMaps, err := c.Dialect().LunMapsForInitiatorGroup(ctx, c, igName)
	if err != nil {
		return 0, err
	}
	return len(lunMaps), nil
}

// ///////////////////////////////////////////////////////////////////////////
// Consistency groups and snapshot sets
// ///////////////////////////////////////////////////////////////////////////

func (c *Client) requireConsistencyGroups() error {
	if !c.SupportsConsistencyGroups() {
		return errors.UnsupportedError("consistency groups require XMS 4 or later")
	}
	return nil
}

func (c *Client) ConsistencyGroupCreate(ctx context.Context, name string, volumeNames []string) error {
	if err := c.requireConsistencyGroups(); err != nil {
		return err
	}
	fields := map[string]any{"consistency-group-name": name}
	if len(volumeNames) > 0 {
		fields["vol-list"] = volumeNames
	}
	_, err := c.ConsistencyGroups().Create(ctx, fields)
	return err
}

func (c *Client) ConsistencyGroupGet(ctx context.Context, name string) (*ConsistencyGroup, error) {
	if err := c.requireConsistencyGroups(); err != nil {
		return nil, err
	}
	return c.ConsistencyGroups().GetByName(ctx, name)
}

func (c *Client) ConsistencyGroupDelete(ctx context.Context, name string) error {
	if err := c.requireConsistencyGroups(); err != nil {
		return err
	}
	return c.ConsistencyGroups().DeleteByName(ctx, name)
}

func (c *Client) ConsistencyGroupAddVolume(ctx context.Context, groupName, volumeName string) error {
	return c.Dialect().AddVolumeToGroup(ctx, c, volumeName, groupName)
}

func (c *Client) ConsistencyGroupRemoveVolume(ctx context.Context, groupName, volumeName string) error {
	return c.Dialect().RemoveVolumeFromGroup(ctx, c, volumeName, groupName)
}

// ConsistencyGroupSnapshot snapshots every member of the group into a snapshot set of the given name.
func (c *Client) ConsistencyGroupSnapshot(ctx context.Context, groupName, snapshotSetName string) error {
	if err := c.requireConsistencyGroups(); err != nil {
		return err
	}
	_, err := c.Snapshots().Create(ctx, map[string]any{
		"consistency-group-id": groupName,
		"snapshot-set-name":    snapshotSetName,
		"snap-suffix":          snapshotSetName,
	})
	return err
}

func (c *Client) SnapshotSetGet(ctx context.Context, name string) (*SnapshotSet, error) {
	return c.SnapshotSets().GetByName(ctx, name)
}

func (c *Client) SnapshotSetDelete(ctx context.Context, name string) error {
	return c.SnapshotSets().DeleteByName(ctx, name)
}
