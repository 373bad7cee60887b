// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api/fakexms"
	"github.com/netapp/xtremio-driver/utils/errors"
)

// seedHost gives the fake array a volume mapped to one host.
func seedHost(server *fakexms.Server) {
	server.Seed(api.CollectionVolumes, map[string]any{"name": "vol1", "vol-size": "1048576"})
	server.Seed(api.CollectionVolumes, map[string]any{"name": "vol2", "vol-size": "2097152"})
	server.Seed(api.CollectionInitiatorGroups, map[string]any{"name": "host1", "num-of-vols": 1})
	server.Seed(api.CollectionInitiators, map[string]any{
		"name":         "host1-iqn",
		"port-address": "iqn.1993-08.org.debian:01:host1",
		"ig-id":        []any{"6a0f8c41a8e54b5aa3b8e47f1c1d7f30", "host1", 1},
	})
	server.Seed(api.CollectionLunMaps, map[string]any{
		"name":     "1_1_1",
		"vol-name": "vol1",
		"ig-name":  "host1",
		"tg-name":  fakexms.DefaultTargetGroup,
		"lun":      1,
	})
}

func TestGetVolume(t *testing.T) {
	server := newTestArray(t)
	seedHost(server)

	out, err := runCommand(t, "get", "volume")
	require.NoError(t, err)
	assert.Contains(t, out, "vol1")
	assert.Contains(t, out, "vol2")
	assert.Contains(t, out, "1.0 GiB")
	assert.Contains(t, out, "2.0 GiB")

	out, err = runCommand(t, "get", "volume", "vol2", "-o", "name")
	require.NoError(t, err)
	assert.Equal(t, "vol2\n", out)

	out, err = runCommand(t, "get", "volumes", "-o", "json")
	require.NoError(t, err)
	var response volumesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	require.Len(t, response.Items, 2)
	assert.Equal(t, "vol1", response.Items[0].Name)
	assert.Equal(t, uint64(1048576), response.Items[0].VolSize.Uint64())

	out, err = runCommand(t, "get", "v", "vol1", "-o", "yaml")
	require.NoError(t, err)
	response = volumesResponse{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &response))
	require.Len(t, response.Items, 1)
	assert.Equal(t, "vol1", response.Items[0].Name)

	out, err = runCommand(t, "get", "volume", "-o", "wide")
	require.NoError(t, err)
	assert.Contains(t, out, "SNAPSHOTS")
}

func TestGetVolume_NotFound(t *testing.T) {
	newTestArray(t)

	_, err := runCommand(t, "get", "volume", "missing")

	require.Error(t, err)
	assert.True(t, errors.IsVolumeNotFoundError(err))
	assert.Equal(t, ExitCodeFailure, ExitCode)
}

func TestGetVolume_Snapshots(t *testing.T) {
	server := newTestArray(t)
	seedHost(server)

	_, err := runCommand(t, "create", "snapshot", "vol1-snap", "--volume", "vol1")
	require.NoError(t, err)

	out, err := runCommand(t, "get", "volume", "vol1-snap", "-o", "json")
	require.NoError(t, err)
	var response volumesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	require.Len(t, response.Items, 1)
	require.NotNil(t, response.Items[0].AncestorVolID)
	assert.Equal(t, "vol1", response.Items[0].AncestorVolID.Name)
}

func TestGetInitiatorGroup(t *testing.T) {
	server := newTestArray(t)
	seedHost(server)

	out, err := runCommand(t, "get", "ig")
	require.NoError(t, err)
	assert.Contains(t, out, "host1")
	assert.Contains(t, out, "VOLUMES")

	out, err = runCommand(t, "get", "initiator-group", "host1", "-o", "json")
	require.NoError(t, err)
	var response recordsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	require.Len(t, response.Items, 1)
	assert.Equal(t, "host1", response.Items[0]["name"])

	_, err = runCommand(t, "get", "ig", "host2")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetInitiator(t *testing.T) {
	server := newTestArray(t)
	seedHost(server)

	out, err := runCommand(t, "get", "initiator")
	require.NoError(t, err)
	assert.Contains(t, out, "host1-iqn")
	assert.Contains(t, out, "iqn.1993-08.org.debian:01:host1")
	assert.Contains(t, out, "host1")
}

func TestGetLunMap(t *testing.T) {
	server := newTestArray(t)
	seedHost(server)

	out, err := runCommand(t, "get", "lun-map", "-o", "wide")
	require.NoError(t, err)
	assert.Contains(t, out, "vol1")
	assert.Contains(t, out, "host1")
	assert.Contains(t, out, "1_1_1")
	assert.Contains(t, out, fakexms.DefaultTargetGroup)

	out, err = runCommand(t, "get", "lunmap", "-o", "name")
	require.NoError(t, err)
	assert.Equal(t, "1_1_1\n", out)
}

func TestGetCluster(t *testing.T) {
	newTestArray(t, fakexms.WithCHAP("initiator", "disabled"))

	out, err := runCommand(t, "get", "cluster", "-o", "name")
	require.NoError(t, err)
	assert.Equal(t, fakexms.DefaultClusterName+"\n", out)

	out, err = runCommand(t, "get", "cluster", "-o", "wide")
	require.NoError(t, err)
	assert.Contains(t, out, fakexms.DefaultVersion)
	assert.Contains(t, out, "initiator")

	out, err = runCommand(t, "get", "cluster", "-o", "json")
	require.NoError(t, err)
	var cluster api.Cluster
	require.NoError(t, json.Unmarshal([]byte(out), &cluster))
	assert.Equal(t, fakexms.DefaultClusterName, cluster.Name)
}

func TestGetTarget(t *testing.T) {
	newTestArray(t)

	out, err := runCommand(t, "get", "target")
	require.NoError(t, err)
	assert.Contains(t, out, "X1-SC2-fc1")
	assert.Contains(t, out, fakexms.TargetWWN2)

	out, err = runCommand(t, "get", "targets", "-o", "name")
	require.NoError(t, err)
	assert.Equal(t, "X1-SC2-target1\nX1-SC2-fc1\nX1-SC2-fc2\n", out)
}

func TestGetPortal(t *testing.T) {
	newTestArray(t)

	out, err := runCommand(t, "get", "portal")
	require.NoError(t, err)
	assert.Contains(t, out, fakexms.PortalIQN)
	assert.Contains(t, out, "10.205.68.5:3260")

	out, err = runCommand(t, "get", "portals", "-o", "name")
	require.NoError(t, err)
	assert.Equal(t, "10.205.68.5:3260\n", out)
}

func TestRecordValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "host1", "host1"},
		{"number", float64(1048576), "1048576"},
		{"id tuple", []any{"6a0f8c41a8e54b5aa3b8e47f1c1d7f30", "host1", float64(3)}, "host1"},
		{"list", []any{"a", "b"}, "a,b"},
		{"bool", true, "true"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, recordValue(test.value))
		})
	}
}

func TestColumnHeader(t *testing.T) {
	assert.Equal(t, "Port Address", column{Property: "port-address"}.header())
	assert.Equal(t, "LUN", column{Property: "lun", Header: "LUN"}.header())
}

func TestWriteRecords_Formats(t *testing.T) {
	defer resetFlags()
	records := []map[string]any{{"name": "host1", "num-of-vols": float64(2)}}

	var out bytes.Buffer
	OutputFormat = FormatName
	require.NoError(t, writeRecords(&out, records, initiatorGroupColumns, initiatorGroupWide))
	assert.Equal(t, "host1\n", out.String())

	out.Reset()
	OutputFormat = FormatYAML
	require.NoError(t, writeRecords(&out, records, initiatorGroupColumns, initiatorGroupWide))
	assert.Contains(t, out.String(), "name: host1")
}
