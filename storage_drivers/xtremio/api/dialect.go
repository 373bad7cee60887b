// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"context"
	"net/http"
	"net/url"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/utils/errors"
)

// Dialect captures what differs between XMS API versions. Callers above the client never branch on it.
type Dialect interface {
	Name() string
	// BasePath is the path segment between /api/json and the collection.
	BasePath() string
	// InjectCluster scopes a request to the named cluster.
	InjectCluster(method string, query url.Values, body map[string]any, cluster string)
	// RenameKey is the field that carries a record's new display name.
	RenameKey() string
	SupportsConsistencyGroups() bool

	CreateSnapshot(ctx context.Context, c *Client, source, destination string, readOnly bool) error
	// ReleaseSnapshotSet deletes the snapshot set left behind by CreateSnapshot once it has no members.
	ReleaseSnapshotSet(ctx context.Context, c *Client, name string) error
	FindLunMap(ctx context.Context, c *Client, igName, volumeName string) (*LunMap, error)
	LunMapsForInitiatorGroup(ctx context.Context, c *Client, igName string) ([]LunMap, error)
	GetInitiator(ctx context.Context, c *Client, portAddress string) (*Initiator, error)
	GetISCSIPortals(ctx context.Context, c *Client) ([]ISCSIPortal, error)
	GetCluster(ctx context.Context, c *Client) (*Cluster, error)
	AddVolumeToGroup(ctx context.Context, c *Client, volumeName, groupName string) error
	RemoveVolumeFromGroup(ctx context.Context, c *Client, volumeName, groupName string) error
}

// V1Dialect returns the dialect of XMS 3.x.
func V1Dialect() Dialect { return v1Dialect{} }

// V2Dialect returns the dialect of XMS 4.x and later.
func V2Dialect() Dialect { return v2Dialect{} }

// ///////////////////////////////////////////////////////////////////////////
// v1: list a collection, then fetch each record
// ///////////////////////////////////////////////////////////////////////////

type v1Dialect struct{}

func (v1Dialect) Name() string { return "v1" }

func (v1Dialect) BasePath() string { return "/types" }

func (v1Dialect) InjectCluster(string, url.Values, map[string]any, string) {}

func (v1Dialect) RenameKey() string { return "vol-name" }

func (v1Dialect) SupportsConsistencyGroups() bool { return false }

func (v1Dialect) CreateSnapshot(ctx context.Context, c *Client, source, destination string, readOnly bool) error {
	if readOnly {
		Logc(ctx).WithField("snapshot", destination).Debug("Read-only snapshots need XMS 4; creating a regular one.")
	}
	_, err := c.Snapshots().Create(ctx, map[string]any{
		"snap-vol-name":   destination,
		"ancestor-vol-id": source,
	})
	return err
}

// ReleaseSnapshotSet has nothing to do; XMS 3 snapshots are not grouped into sets.
func (v1Dialect) ReleaseSnapshotSet(context.Context, *Client, string) error { return nil }

// eachLunMap fetches every lun map one by one. Maps deleted between the listing and the fetch are skipped.
func (v1Dialect) eachLunMap(ctx context.Context, c *Client, match func(*LunMap) bool) ([]LunMap, error) {
	refs, err := c.LunMaps().List(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]LunMap, 0)
	for _, ref := range refs {
		idx, err := ref.Index()
		if err != nil {
			Logc(ctx).WithField("href", ref.Href).Warn("Skipping lun map with an unparseable reference.")
			continue
		}
		lunMap, err := c.LunMaps().GetByIndex(ctx, idx)
		if err != nil {
			if errors.IsNotFoundError(err) {
				Logc(ctx).WithField("index", idx).Debug("Lun map disappeared while counting, skipping it.")
				continue
			}
			return nil, err
		}
		if match(lunMap) {
			matches = append(matches, *lunMap)
		}
	}
	return matches, nil
}

func (d v1Dialect) FindLunMap(ctx context.Context, c *Client, igName, volumeName string) (*LunMap, error) {
	matches, err := d.eachLunMap(ctx, c, func(lm *LunMap) bool {
		return lm.IGName == igName && lm.VolName == volumeName
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errors.NotFoundError("no lun map of volume %s to %s", volumeName, igName)
	}
	return &matches[0], nil
}

func (d v1Dialect) LunMapsForInitiatorGroup(ctx context.Context, c *Client, igName string) ([]LunMap, error) {
	return d.eachLunMap(ctx, c, func(lm *LunMap) bool {
		return lm.IGName == igName
	})
}

func (v1Dialect) GetInitiator(ctx context.Context, c *Client, portAddress string) (*Initiator, error) {
	return c.Initiators().GetByName(ctx, portAddress)
}

func (v1Dialect) GetISCSIPortals(ctx context.Context, c *Client) ([]ISCSIPortal, error) {
	refs, err := c.ISCSIPortals().List(ctx)
	if err != nil {
		return nil, err
	}

	portals := make([]ISCSIPortal, 0, len(refs))
	for _, ref := range refs {
		portal, err := c.ISCSIPortals().GetByName(ctx, ref.Name)
		if err != nil {
			if errors.IsNotFoundError(err) {
				continue
			}
			return nil, err
		}
		portals = append(portals, *portal)
	}
	return portals, nil
}

func (v1Dialect) GetCluster(ctx context.Context, c *Client) (*Cluster, error) {
	if name := c.ClusterName(); name != "" {
		return c.Clusters().GetByName(ctx, name)
	}
	cluster, err := c.Clusters().GetByIndex(ctx, 1)
	if errors.IsNotFoundError(err) {
		return nil, errors.DriverError("XtremIO not initialized correctly, no clusters found")
	}
	return cluster, err
}

func (v1Dialect) AddVolumeToGroup(context.Context, *Client, string, string) error {
	return errors.UnsupportedError("consistency groups require XMS 4 or later")
}

func (v1Dialect) RemoveVolumeFromGroup(context.Context, *Client, string, string) error {
	return errors.UnsupportedError("consistency groups require XMS 4 or later")
}

// ///////////////////////////////////////////////////////////////////////////
// v2: server-side filters and cluster-scoped requests
// ///////////////////////////////////////////////////////////////////////////

type v2Dialect struct{}

func (v2Dialect) Name() string { return "v2" }

func (v2Dialect) BasePath() string { return "/v2/types" }

func (v2Dialect) InjectCluster(method string, query url.Values, body map[string]any, cluster string) {
	if cluster == "" {
		return
	}
	switch method {
	case http.MethodGet, http.MethodDelete:
		query.Set("cluster-name", cluster)
	default:
		body["cluster-id"] = cluster
	}
}

func (v2Dialect) RenameKey() string { return "name" }

func (v2Dialect) SupportsConsistencyGroups() bool { return true }

// CreateSnapshot creates the snapshot under a generated name and renames it. A snapshot that cannot be
// renamed is deleted again before the rename error is returned.
func (d v2Dialect) CreateSnapshot(ctx context.Context, c *Client, source, destination string, readOnly bool) error {
	snapshotType := SnapshotTypeRegular
	if readOnly {
		snapshotType = SnapshotTypeReadOnly
	}

	ref, err := c.Snapshots().Create(ctx, map[string]any{
		"volume-list":       []string{source},
		"snapshot-set-name": destination,
		"snap-suffix":       destination,
		"snapshot-type":     snapshotType,
	})
	if err != nil {
		return err
	}

	idx, err := ref.Index()
	if err != nil {
		return errors.WrapWithBackendAPIError(err, "XMS returned an unusable snapshot reference")
	}
	collection := ref.Collection()
	if !IsKnownCollection(collection) {
		collection = CollectionSnapshots
	}
	snapshots := newCollection[Volume](c, collection)

	if err = snapshots.UpdateByIndex(ctx, idx, map[string]any{d.RenameKey(): destination}); err != nil {
		Logc(ctx).WithFields(LogFields{
			"snapshot": destination,
			"index":    idx,
		}).WithError(err).Error("Could not rename new snapshot, deleting it.")

		cleanupErr := snapshots.DeleteByIndex(ctx, idx)
		if cleanupErr == nil {
			cleanupErr = d.ReleaseSnapshotSet(ctx, c, destination)
		}
		if cleanupErr != nil {
			Logc(ctx).WithField("index", idx).WithError(cleanupErr).Error("Could not delete unnamed snapshot.")
			return errors.Append(err, cleanupErr)
		}
		return err
	}
	return nil
}

func (v2Dialect) ReleaseSnapshotSet(ctx context.Context, c *Client, name string) error {
	set, err := c.SnapshotSets().GetByName(ctx, name)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil
		}
		return err
	}
	if len(set.VolList) > 0 {
		return nil
	}

	if err = c.SnapshotSets().DeleteByName(ctx, name); err != nil && !errors.IsNotFoundError(err) {
		return err
	}
	Logc(ctx).WithField("snapshotSet", name).Debug("Deleted empty snapshot set.")
	return nil
}

func (v2Dialect) FindLunMap(ctx context.Context, c *Client, igName, volumeName string) (*LunMap, error) {
	lunMaps, err := c.LunMaps().ListFull(ctx, Query{Filters: []string{
		FilterEq("vol-name", volumeName),
		FilterEq("ig-name", igName),
	}})
	if err != nil {
		return nil, err
	}
	for i := range lunMaps {
		if lunMaps[i].IGName == igName && lunMaps[i].VolName == volumeName {
			return &lunMaps[i], nil
		}
	}
	return nil, errors.NotFoundError("no lun map of volume %s to %s", volumeName, igName)
}

func (v2Dialect) LunMapsForInitiatorGroup(ctx context.Context, c *Client, igName string) ([]LunMap, error) {
	lunMaps, err := c.LunMaps().ListFull(ctx, Query{Filters: []string{FilterEq("ig-name", igName)}})
	if err != nil {
		return nil, err
	}
	matches := make([]LunMap, 0, len(lunMaps))
	for _, lm := range lunMaps {
		if lm.IGName == igName {
			matches = append(matches, lm)
		}
	}
	return matches, nil
}

func (v2Dialect) GetInitiator(ctx context.Context, c *Client, portAddress string) (*Initiator, error) {
	initiators, err := c.Initiators().ListFull(ctx, Query{Filters: []string{FilterEq("port-address", portAddress)}})
	if err != nil {
		return nil, err
	}
	for i := range initiators {
		if initiators[i].PortAddress == portAddress {
			return &initiators[i], nil
		}
	}
	return nil, errors.NotFoundError("initiator %s not found", portAddress)
}

func (v2Dialect) GetISCSIPortals(ctx context.Context, c *Client) ([]ISCSIPortal, error) {
	return c.ISCSIPortals().ListFull(ctx, Query{})
}

func (v2Dialect) GetCluster(ctx context.Context, c *Client) (*Cluster, error) {
	name := c.ClusterName()
	if name == "" {
		refs, err := c.Clusters().List(ctx)
		if err != nil {
			return nil, err
		}
		if len(refs) == 0 {
			return nil, errors.DriverError("XtremIO not initialized correctly, no clusters found")
		}
		name = refs[0].Name
		c.setClusterName(name)
	}
	return c.Clusters().GetByName(ctx, name)
}

func (v2Dialect) AddVolumeToGroup(ctx context.Context, c *Client, volumeName, groupName string) error {
	_, err := c.ConsistencyGroupVolumes().Create(ctx, map[string]any{
		"vol-id": volumeName,
		"cg-id":  groupName,
	})
	return err
}

func (v2Dialect) RemoveVolumeFromGroup(ctx context.Context, c *Client, volumeName, groupName string) error {
	return c.ConsistencyGroupVolumes().DeleteWhere(ctx, map[string]any{
		"vol-id": volumeName,
		"cg-id":  groupName,
	})
}
