// Copyright 2026 NetApp, Inc. All Rights Reserved.

package xtremio

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	tridentconfig "github.com/netapp/xtremio-driver/config"
	"github.com/netapp/xtremio-driver/storage"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api/fakexms"
	"github.com/netapp/xtremio-driver/utils/errors"
)

// groupMembers returns the sorted names of the volumes in a fake consistency group.
func groupMembers(t *testing.T, server *fakexms.Server, groupName string) []string {
	t.Helper()
	rec, ok := server.Get(api.CollectionConsistencyGroups, groupName)
	require.True(t, ok, "group %s not found", groupName)

	names := make([]string, 0)
	members, _ := rec["vol-list"].([]any)
	for _, member := range members {
		if tuple, ok := member.([]any); ok && len(tuple) > 1 {
			names = append(names, tuple[1].(string))
		}
	}
	sort.Strings(names)
	return names
}

func newGroupTestDriver(t *testing.T, volumes ...string) (*SANStorageDriver, *fakexms.Server) {
	t.Helper()
	d, server := newTestDriver(t, tridentconfig.ISCSI, "v2")
	for _, name := range volumes {
		require.NoError(t, d.CreateVolume(context.Background(), volumeConfig(name, "1")))
	}
	server.ResetRequests()
	return d, server
}

func snapshotConfigs(cgSnapshot *storage.GroupSnapshotConfig, volumes ...string) []*storage.SnapshotConfig {
	snapshots := make([]*storage.SnapshotConfig, 0, len(volumes))
	for _, volume := range volumes {
		snapshots = append(snapshots, &storage.SnapshotConfig{
			Name:               "snap-" + volume,
			VolumeName:         volume,
			VolumeInternalName: volume,
			GroupSnapshotID:    cgSnapshot.ID,
		})
	}
	return snapshots
}

func TestCGSnapshotName(t *testing.T) {
	assert.Equal(t, "192eb39b6c2f420cbae33cfd117f0345192eb39b6c2f420cbae33cfd117f9876",
		CGSnapshotName("192eb39b-6c2f-420c-bae3-3cfd117f0345", "192eb39b-6c2f-420c-bae3-3cfd117f9876"))
}

func TestGroups_UnsupportedVersion(t *testing.T) {
	d, server := newTestDriver(t, tridentconfig.ISCSI, "v1")
	ctx := context.Background()
	group := &storage.GroupConfig{ID: "cg1"}
	cgSnapshot := &storage.GroupSnapshotConfig{ID: "s1", GroupID: "cg1"}

	assert.True(t, errors.IsUnsupportedError(d.CreateGroup(ctx, group)))
	assert.True(t, errors.IsUnsupportedError(d.UpdateGroup(ctx, group, nil, nil)))
	_, err := d.DeleteGroup(ctx, group, nil)
	assert.True(t, errors.IsUnsupportedError(err))
	_, err = d.CreateCGSnapshot(ctx, cgSnapshot, nil)
	assert.True(t, errors.IsUnsupportedError(err))
	_, err = d.DeleteCGSnapshot(ctx, cgSnapshot, nil)
	assert.True(t, errors.IsUnsupportedError(err))
	_, err = d.CreateGroupFromSource(ctx, group, nil, cgSnapshot, nil, nil, nil)
	assert.True(t, errors.IsUnsupportedError(err))

	assert.Empty(t, server.Requests())
}

func TestCreateGroup(t *testing.T) {
	d, server := newGroupTestDriver(t)
	ctx := context.Background()

	require.NoError(t, d.CreateGroup(ctx, &storage.GroupConfig{ID: "cg1", Name: "group one"}))
	assert.Equal(t, []string{"cg1"}, server.Names(api.CollectionConsistencyGroups))
	assert.Empty(t, groupMembers(t, server, "cg1"))

	err := d.CreateGroup(ctx, &storage.GroupConfig{ID: "cg1"})
	assert.True(t, errors.IsAlreadyExistsError(err), "got %v", err)

	err = d.CreateGroup(ctx, &storage.GroupConfig{})
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestUpdateGroup(t *testing.T) {
	d, server := newGroupTestDriver(t, "vol1", "vol2", "vol3")
	ctx := context.Background()
	group := &storage.GroupConfig{ID: "cg1"}
	require.NoError(t, d.CreateGroup(ctx, group))

	require.NoError(t, d.UpdateGroup(ctx, group,
		[]*storage.VolumeConfig{volumeConfig("vol1", "1"), volumeConfig("vol2", "1")}, nil))
	assert.Equal(t, []string{"vol1", "vol2"}, groupMembers(t, server, "cg1"))

	require.NoError(t, d.UpdateGroup(ctx, group,
		[]*storage.VolumeConfig{volumeConfig("vol3", "1")}, []*storage.VolumeConfig{volumeConfig("vol1", "1")}))
	assert.Equal(t, []string{"vol2", "vol3"}, groupMembers(t, server, "cg1"))

	err := d.UpdateGroup(ctx, group, []*storage.VolumeConfig{volumeConfig("missing", "1")}, nil)
	assert.Error(t, err)
}

func TestDeleteGroup(t *testing.T) {
	d, server := newGroupTestDriver(t, "vol1", "vol2")
	ctx := context.Background()
	group := &storage.GroupConfig{ID: "cg1"}
	volumes := []*storage.VolumeConfig{volumeConfig("vol1", "1"), volumeConfig("vol2", "1")}
	require.NoError(t, d.CreateGroup(ctx, group))
	require.NoError(t, d.UpdateGroup(ctx, group, volumes, nil))

	updates, err := d.DeleteGroup(ctx, group, volumes)
	require.NoError(t, err)
	assert.Equal(t, []storage.VolumeModelUpdate{
		{ID: "vol1", Status: storage.ModelStatusAvailable},
		{ID: "vol2", Status: storage.ModelStatusAvailable},
	}, updates)
	assert.Zero(t, server.Count(api.CollectionConsistencyGroups))
	assert.Equal(t, []string{"vol1", "vol2"}, server.Names(api.CollectionVolumes), "members are kept")

	// Already gone
	updates, err = d.DeleteGroup(ctx, group, volumes)
	require.NoError(t, err)
	assert.Len(t, updates, 2)
}

func TestCreateCGSnapshot(t *testing.T) {
	d, server := newGroupTestDriver(t, "vol1", "vol2")
	ctx := context.Background()
	group := &storage.GroupConfig{ID: "cg1"}
	require.NoError(t, d.CreateGroup(ctx, group))
	require.NoError(t, d.UpdateGroup(ctx, group,
		[]*storage.VolumeConfig{volumeConfig("vol1", "1"), volumeConfig("vol2", "1")}, nil))

	cgSnapshot := &storage.GroupSnapshotConfig{ID: "snap1", GroupID: "cg1"}
	snapshots := snapshotConfigs(cgSnapshot, "vol1", "vol2", "vol3")

	updates, err := d.CreateCGSnapshot(ctx, cgSnapshot, snapshots)
	require.NoError(t, err)
	assert.Equal(t, []storage.SnapshotModelUpdate{
		{ID: "snap-vol1", ProviderID: "vol1.cg1snap1", Status: storage.ModelStatusAvailable},
		{ID: "snap-vol2", ProviderID: "vol2.cg1snap1", Status: storage.ModelStatusAvailable},
		{ID: "snap-vol3", Status: storage.ModelStatusError},
	}, updates)
	assert.Equal(t, []string{"cg1snap1"}, server.Names(api.CollectionSnapshotSets))
}

func TestDeleteCGSnapshot(t *testing.T) {
	d, server := newGroupTestDriver(t, "vol1", "vol2")
	ctx := context.Background()
	group := &storage.GroupConfig{ID: "cg1"}
	require.NoError(t, d.CreateGroup(ctx, group))
	require.NoError(t, d.UpdateGroup(ctx, group,
		[]*storage.VolumeConfig{volumeConfig("vol1", "1"), volumeConfig("vol2", "1")}, nil))

	cgSnapshot := &storage.GroupSnapshotConfig{ID: "snap1", GroupID: "cg1"}
	snapshots := snapshotConfigs(cgSnapshot, "vol1", "vol2")
	_, err := d.CreateCGSnapshot(ctx, cgSnapshot, snapshots)
	require.NoError(t, err)
	require.Equal(t, 4, server.Count(api.CollectionVolumes))

	updates, err := d.DeleteCGSnapshot(ctx, cgSnapshot, snapshots)
	require.NoError(t, err)
	for _, update := range updates {
		assert.Equal(t, storage.ModelStatusDeleted, update.Status)
	}
	assert.Equal(t, []string{"vol1", "vol2"}, server.Names(api.CollectionVolumes))
	assert.Zero(t, server.Count(api.CollectionSnapshotSets))
	assert.Equal(t, []string{"vol1", "vol2"}, groupMembers(t, server, "cg1"))

	// Repeating the delete finds no set and succeeds
	server.ResetRequests()
	updates, err = d.DeleteCGSnapshot(ctx, cgSnapshot, snapshots)
	require.NoError(t, err)
	assert.Len(t, updates, 2)
	assert.Zero(t, countMethod(server, http.MethodDelete))
}

func TestCreateGroupFromSource_Snapshot(t *testing.T) {
	d, server := newGroupTestDriver(t, "vol1", "vol2")
	ctx := context.Background()
	group := &storage.GroupConfig{ID: "cg1"}
	require.NoError(t, d.CreateGroup(ctx, group))
	require.NoError(t, d.UpdateGroup(ctx, group,
		[]*storage.VolumeConfig{volumeConfig("vol1", "1"), volumeConfig("vol2", "1")}, nil))

	cgSnapshot := &storage.GroupSnapshotConfig{ID: "snap1", GroupID: "cg1"}
	snapshots := snapshotConfigs(cgSnapshot, "vol1", "vol2")
	_, err := d.CreateCGSnapshot(ctx, cgSnapshot, snapshots)
	require.NoError(t, err)

	target := &storage.GroupConfig{ID: "cg2"}
	volumes := []*storage.VolumeConfig{volumeConfig("copy1", "1"), volumeConfig("copy2", "1")}
	updates, err := d.CreateGroupFromSource(ctx, target, volumes, cgSnapshot, snapshots, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []storage.VolumeModelUpdate{
		{ID: "copy1", ProviderID: "copy1", Status: storage.ModelStatusAvailable},
		{ID: "copy2", ProviderID: "copy2", Status: storage.ModelStatusAvailable},
	}, updates)

	assert.Equal(t, []string{"copy1", "copy2"}, groupMembers(t, server, "cg2"))
	copy1, ok := server.Get(api.CollectionVolumes, "copy1")
	require.True(t, ok)
	assert.Contains(t, copy1["ancestor-vol-id"], "vol1.cg1snap1")
	assert.Equal(t, "regular", copy1["snapshot-type"])
}

func TestCreateGroupFromSource_Group(t *testing.T) {
	d, server := newGroupTestDriver(t, "vol1", "vol2")
	ctx := context.Background()
	source := &storage.GroupConfig{ID: "cg1"}
	sourceVolumes := []*storage.VolumeConfig{volumeConfig("vol1", "1"), volumeConfig("vol2", "1")}
	require.NoError(t, d.CreateGroup(ctx, source))
	require.NoError(t, d.UpdateGroup(ctx, source, sourceVolumes, nil))

	target := &storage.GroupConfig{ID: "cg2"}
	// Targets are paired with sources by position
	volumes := []*storage.VolumeConfig{volumeConfig("copy2", "1"), volumeConfig("copy1", "1")}
	sourceVolumes = []*storage.VolumeConfig{volumeConfig("vol2", "1"), volumeConfig("vol1", "1")}

	updates, err := d.CreateGroupFromSource(ctx, target, volumes, nil, nil, source, sourceVolumes)
	require.NoError(t, err)
	assert.Len(t, updates, 2)

	assert.Equal(t, []string{"copy1", "copy2"}, groupMembers(t, server, "cg2"))
	assert.Equal(t, []string{"vol1", "vol2"}, groupMembers(t, server, "cg1"))
	copy2, ok := server.Get(api.CollectionVolumes, "copy2")
	require.True(t, ok)
	assert.Contains(t, copy2["ancestor-vol-id"], "vol2")
	assert.Equal(t, []string{"cg2"}, server.Names(api.CollectionSnapshotSets))
}

func TestCreateGroupFromSource_InvalidSources(t *testing.T) {
	d, server := newGroupTestDriver(t)
	ctx := context.Background()
	target := &storage.GroupConfig{ID: "cg2"}
	volumes := []*storage.VolumeConfig{volumeConfig("copy1", "1")}
	cgSnapshot := &storage.GroupSnapshotConfig{ID: "snap1", GroupID: "cg1"}
	snapshots := snapshotConfigs(cgSnapshot, "vol1")
	source := &storage.GroupConfig{ID: "cg1"}
	sourceVolumes := []*storage.VolumeConfig{volumeConfig("vol1", "1")}

	tests := []struct {
		name string
		call func() error
	}{
		{"neither", func() error {
			_, err := d.CreateGroupFromSource(ctx, target, volumes, nil, nil, nil, nil)
			return err
		}},
		{"both", func() error {
			_, err := d.CreateGroupFromSource(ctx, target, volumes, cgSnapshot, snapshots, source, sourceVolumes)
			return err
		}},
		{"count mismatch", func() error {
			_, err := d.CreateGroupFromSource(ctx, target, nil, nil, nil, source, sourceVolumes)
			return err
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.True(t, errors.IsInvalidInputError(test.call()))
		})
	}
	assert.Empty(t, server.Requests())
}

func TestCreateCGSnapshot_ArrayError(t *testing.T) {
	d, mockAPI := newMockDriver(t, tridentconfig.ISCSI)
	cgSnapshot := &storage.GroupSnapshotConfig{ID: "snap1", GroupID: "cg1"}

	mockAPI.EXPECT().SupportsConsistencyGroups().Return(true)
	mockAPI.EXPECT().ConsistencyGroupSnapshot(gomock.Any(), "cg1", "cg1snap1").
		Return(errors.BackendAPIError("cg_obj_not_found"))

	_, err := d.CreateCGSnapshot(context.Background(), cgSnapshot, snapshotConfigs(cgSnapshot, "vol1"))
	assert.True(t, errors.IsBackendAPIError(err))
}

func TestSnapshotSetMembers_SkipsVanishedMembers(t *testing.T) {
	d, mockAPI := newMockDriver(t, tridentconfig.ISCSI)

	mockAPI.EXPECT().SnapshotSetGet(gomock.Any(), "set1").Return(&api.SnapshotSet{
		Name: "set1",
		VolList: []api.ObjectID{
			{Name: "vol1.set1", Index: 3},
			{Name: "vol2.set1", Index: 4},
		},
	}, nil)
	mockAPI.EXPECT().VolumeGet(gomock.Any(), "vol1.set1").Return(&api.Volume{
		Name: "vol1.set1", AncestorVolID: &api.ObjectID{Name: "vol1"},
	}, nil)
	mockAPI.EXPECT().VolumeGet(gomock.Any(), "vol2.set1").Return(nil, errors.VolumeNotFoundError("vol2.set1"))

	members, err := d.snapshotSetMembers(context.Background(), "set1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"vol1": "vol1.set1"}, members)
}
