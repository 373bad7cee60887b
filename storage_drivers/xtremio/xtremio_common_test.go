// Copyright 2026 NetApp, Inc. All Rights Reserved.

package xtremio

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	tridentconfig "github.com/netapp/xtremio-driver/config"
	"github.com/netapp/xtremio-driver/logging"
	mockapi "github.com/netapp/xtremio-driver/mocks/mock_storage_drivers/mock_xtremio"
	drivers "github.com/netapp/xtremio-driver/storage_drivers"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api/fakexms"
	"github.com/netapp/xtremio-driver/utils/errors"
	"github.com/netapp/xtremio-driver/utils/version"
)

func TestMain(m *testing.M) {
	// Disable any standard log output
	logging.InitLogOutput(io.Discard)
	os.Exit(m.Run())
}

var dialectVersions = map[string]string{
	"v1": "3.0.1-11",
	"v2": "4.0.2-80",
}

func testConfigJSON(protocol tridentconfig.Protocol, sanIP string, extra string) string {
	return fmt.Sprintf(`{
		"version": 1,
		"storageDriverName": "%s",
		"sanIP": "%s",
		"username": "admin",
		"password": "Xtrem10",
		"busyRetryInitialInterval": "1ms",
		"busyRetryMaxInterval": "2ms"%s
	}`, tridentconfig.DriverNameForProtocol(protocol), sanIP, extra)
}

// newTestDriver initializes a driver against a fake XMS speaking the given dialect.
func newTestDriver(
	t *testing.T, protocol tridentconfig.Protocol, dialect string, options ...fakexms.Option,
) (*SANStorageDriver, *fakexms.Server) {
	t.Helper()

	server := fakexms.New(append(options, fakexms.WithVersion(dialectVersions[dialect]))...)
	t.Cleanup(server.Close)

	d, err := NewDriverForProtocol(protocol)
	require.NoError(t, err)
	require.NoError(t, d.Initialize(context.Background(), tridentconfig.ContextDriver,
		testConfigJSON(protocol, server.URL, ""), nil))
	server.ResetRequests()
	return d, server
}

func forEachDialect(
	t *testing.T, protocol tridentconfig.Protocol, test func(t *testing.T, d *SANStorageDriver, server *fakexms.Server),
) {
	for _, dialect := range []string{"v1", "v2"} {
		t.Run(dialect, func(t *testing.T) {
			d, server := newTestDriver(t, protocol, dialect)
			test(t, d, server)
		})
	}
}

// newMockDriver returns an initialized driver whose API is a gomock mock.
func newMockDriver(t *testing.T, protocol tridentconfig.Protocol) (*SANStorageDriver, *mockapi.MockXtremIOAPI) {
	t.Helper()

	mockCtrl := gomock.NewController(t)
	mockAPI := mockapi.NewMockXtremIOAPI(mockCtrl)

	d := newSANStorageDriver(protocol)
	d.API = mockAPI
	d.Config.BackendName = tridentconfig.DefaultBackendName
	d.Config.MaxOverSubscriptionRatio = drivers.DefaultMaxOverSubscriptionRatio
	d.volumesPerImageCache = drivers.DefaultVolumesPerImageCache
	d.cleanupEmptyInitiatorGroups = true
	d.initialized = true
	return d, mockAPI
}

func TestNewDriverForProtocol(t *testing.T) {
	d, err := NewDriverForProtocol(tridentconfig.ISCSI)
	require.NoError(t, err)
	assert.Equal(t, tridentconfig.XtremIOISCSIStorageDriverName, d.Name())
	assert.Equal(t, "iSCSI", d.Protocol())
	assert.Equal(t, tridentconfig.DefaultBackendName, d.BackendName())

	d, err = NewDriverForProtocol(tridentconfig.FCP)
	require.NoError(t, err)
	assert.Equal(t, tridentconfig.XtremIOFCStorageDriverName, d.Name())
	assert.Equal(t, "FC", d.Protocol())

	_, err = NewDriverForProtocol("nvme")
	assert.True(t, errors.IsInvalidInputError(err))

	assert.Equal(t, tridentconfig.XtremIOISCSIStorageDriverName, NewISCSIDriver().Name())
	assert.Equal(t, tridentconfig.XtremIOFCStorageDriverName, NewFCDriver().Name())
}

func TestInitialize_SelectsDialect(t *testing.T) {
	for dialect, supportsGroups := range map[string]bool{"v1": false, "v2": true} {
		t.Run(dialect, func(t *testing.T) {
			d, _ := newTestDriver(t, tridentconfig.ISCSI, dialect)

			assert.True(t, d.Initialized())
			assert.Equal(t, supportsGroups, d.API.SupportsConsistencyGroups())
			assert.Equal(t, fakexms.DefaultClusterName, d.API.ClusterName())

			d.Terminate(context.Background())
			assert.False(t, d.Initialized())
		})
	}
}

func TestInitialize_Defaults(t *testing.T) {
	d, _ := newTestDriver(t, tridentconfig.FCP, "v2")

	assert.Equal(t, tridentconfig.DefaultBackendName, d.Config.BackendName)
	assert.Equal(t, tridentconfig.FCP, d.Config.StorageProtocol)
	assert.Equal(t, drivers.DefaultMaxOverSubscriptionRatio, d.Config.MaxOverSubscriptionRatio)
	assert.Equal(t, "100", d.Config.VolumesPerImageCache)
	assert.Equal(t, "5", d.Config.MaxBusyRetries)
	assert.Equal(t, "1ms", d.Config.BusyRetryInitialInterval)
	assert.Equal(t, "true", d.Config.CleanupEmptyInitiatorGroups)
	assert.Equal(t, 100, d.volumesPerImageCache)
	assert.True(t, d.cleanupEmptyInitiatorGroups)
	assert.Equal(t, tridentconfig.ContextDriver, d.Config.DriverContext)
}

func TestInitialize_YAMLConfigAndSecrets(t *testing.T) {
	server := fakexms.New(fakexms.WithCredentials("admin", "fromSecret"))
	t.Cleanup(server.Close)

	configYAML := fmt.Sprintf(`
version: 1
storageDriverName: xtremio-iscsi
backendName: xio-gold
sanIP: %s
username: admin
password: inline
volumesPerImageCache: "0"
cleanupEmptyInitiatorGroups: "false"
`, server.URL)

	d := NewISCSIDriver()
	err := d.Initialize(context.Background(), tridentconfig.ContextDriver, configYAML,
		map[string]string{"password": "fromSecret"})
	require.NoError(t, err)

	assert.Equal(t, "xio-gold", d.BackendName())
	assert.Equal(t, "fromSecret", d.Config.Password)
	assert.Equal(t, 0, d.volumesPerImageCache)
	assert.False(t, d.cleanupEmptyInitiatorGroups)
	assert.NotContains(t, d.Config.String(), "fromSecret")
}

func TestInitialize_InvalidConfig(t *testing.T) {
	server := fakexms.New()
	t.Cleanup(server.Close)

	tests := map[string]string{
		"no sanIP":            testConfigJSON(tridentconfig.ISCSI, "", ""),
		"bad retries":         testConfigJSON(tridentconfig.ISCSI, server.URL, `, "maxBusyRetries": "zero"`),
		"zero retries":        testConfigJSON(tridentconfig.ISCSI, server.URL, `, "maxBusyRetries": "0"`),
		"bad interval":        testConfigJSON(tridentconfig.ISCSI, server.URL, `, "busyRetryMaxInterval": "soon"`),
		"bad cache limit":     testConfigJSON(tridentconfig.ISCSI, server.URL, `, "volumesPerImageCache": "-1"`),
		"bad cleanup flag":    testConfigJSON(tridentconfig.ISCSI, server.URL, `, "cleanupEmptyInitiatorGroups": "maybe"`),
		"bad reserved":        testConfigJSON(tridentconfig.ISCSI, server.URL, `, "reservedPercentage": 120`),
		"bad ratio":           testConfigJSON(tridentconfig.ISCSI, server.URL, `, "maxOverSubscriptionRatio": 0.5`),
		"protocol mismatch":   testConfigJSON(tridentconfig.ISCSI, server.URL, `, "storageProtocol": "fc"`),
		"bad config version":  `{"version": 2, "storageDriverName": "xtremio-iscsi"}`,
		"missing driver name": `{"version": 1}`,
		"not a config":        `{[`,
	}
	for name, configJSON := range tests {
		t.Run(name, func(t *testing.T) {
			d := NewISCSIDriver()
			err := d.Initialize(context.Background(), tridentconfig.ContextDriver, configJSON, nil)
			assert.Error(t, err)
			assert.False(t, d.Initialized())
		})
	}
}

func TestInitialize_NoClusters(t *testing.T) {
	for dialect, serverVersion := range dialectVersions {
		t.Run(dialect, func(t *testing.T) {
			server := fakexms.New(fakexms.WithoutClusters(), fakexms.WithVersion(serverVersion))
			t.Cleanup(server.Close)

			d := NewISCSIDriver()
			err := d.Initialize(context.Background(), tridentconfig.ContextDriver,
				testConfigJSON(tridentconfig.ISCSI, server.URL, ""), nil)
			assert.True(t, errors.IsDriverError(err), "expected DriverError, got %v", err)
			assert.False(t, d.Initialized())
		})
	}
}

func TestInitialize_UnsupportedVersion(t *testing.T) {
	server := fakexms.New(fakexms.WithVersion("2.4.1-7"))
	t.Cleanup(server.Close)

	d := NewISCSIDriver()
	err := d.Initialize(context.Background(), tridentconfig.ContextDriver,
		testConfigJSON(tridentconfig.ISCSI, server.URL, ""), nil)
	assert.True(t, version.IsUnsupportedArrayVersionError(err), "got %v", err)
}

func TestCheckForSetupError_Mock(t *testing.T) {
	d, mockAPI := newMockDriver(t, tridentconfig.ISCSI)
	ctx := context.Background()

	mockAPI.EXPECT().Discover(ctx).Return(version.MustParseGeneric("4.0.2"), nil)
	mockAPI.EXPECT().ClusterName().Return("brick1")
	mockAPI.EXPECT().SupportsConsistencyGroups().Return(true)
	assert.NoError(t, d.CheckForSetupError(ctx))

	mockAPI.EXPECT().Discover(ctx).Return(nil, errors.DriverError("no clusters found"))
	assert.True(t, errors.IsDriverError(d.CheckForSetupError(ctx)))
}

func TestGetVolumeStats(t *testing.T) {
	forEachDialect(t, tridentconfig.ISCSI, func(t *testing.T, d *SANStorageDriver, server *fakexms.Server) {
		ctx := context.Background()
		require.NoError(t, d.API.VolumeCreate(ctx, "vol1", 2))

		stats, err := d.GetVolumeStats(ctx, true)
		require.NoError(t, err)

		assert.Equal(t, "XtremIO", stats.VolumeBackendName)
		assert.Equal(t, "Dell EMC", stats.VendorName)
		assert.Equal(t, tridentconfig.DriverVersion, stats.DriverVersion)
		assert.Equal(t, "iSCSI", stats.StorageProtocol)
		assert.InDelta(t, 8146708710.0/1048576, stats.TotalCapacityGB, 0.001)
		assert.InDelta(t, (8146708710.0-708710)/1048576*20, stats.FreeCapacityGB, 0.001)
		assert.InDelta(t, 2.0, stats.ProvisionedCapacityGB, 0.001)
		assert.Equal(t, 20.0, stats.MaxOverSubscriptionRatio)
		assert.True(t, stats.ThinProvisioningSupport)
		assert.False(t, stats.ThickProvisioningSupport)
		assert.True(t, stats.Multiattach)
		assert.Equal(t, d.API.SupportsConsistencyGroups(), stats.ConsistencyGroupSupport)

		// Cached until a refresh is asked for
		require.NoError(t, d.API.VolumeCreate(ctx, "vol2", 3))
		cached, err := d.GetVolumeStats(ctx, false)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, cached.ProvisionedCapacityGB, 0.001)

		refreshed, err := d.GetVolumeStats(ctx, true)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, refreshed.ProvisionedCapacityGB, 0.001)
	})
}

func TestGetVolumeStats_BackendName(t *testing.T) {
	d, mockAPI := newMockDriver(t, tridentconfig.FCP)
	d.Config.BackendName = "xio-silver"
	d.Config.ReservedPercentage = 10

	mockAPI.EXPECT().ClusterGet(gomock.Any()).Return(&api.Cluster{
		UDSSDSpace:      api.Number(1048576 * 100),
		UDSSDSpaceInUse: api.Number(1048576 * 150),
		VolSize:         api.Number(1048576 * 40),
	}, nil)
	mockAPI.EXPECT().SupportsConsistencyGroups().Return(false)

	stats, err := d.GetVolumeStats(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "xio-silver", stats.VolumeBackendName)
	assert.Equal(t, "FC", stats.StorageProtocol)
	assert.Equal(t, 10, stats.ReservedPercentage)
	assert.Equal(t, 100.0, stats.TotalCapacityGB)
	assert.Equal(t, 0.0, stats.FreeCapacityGB, "overcommitted space never reports negative free space")
	assert.Equal(t, 40.0, stats.ProvisionedCapacityGB)
	assert.False(t, stats.ConsistencyGroupSupport)
}

func TestGetVolumeStats_Error(t *testing.T) {
	d, mockAPI := newMockDriver(t, tridentconfig.ISCSI)
	mockAPI.EXPECT().ClusterGet(gomock.Any()).Return(nil, errors.ConnectionError("unreachable"))

	_, err := d.GetVolumeStats(context.Background(), true)
	assert.True(t, errors.IsConnectionError(err))
}

func TestVolumeSizeGiB(t *testing.T) {
	d, _ := newMockDriver(t, tridentconfig.ISCSI)
	ctx := context.Background()

	tests := map[string]uint64{
		"":      1,
		"10":    10,
		"10G":   10,
		"1536M": 2,
		"1Ti":   1024,
		"100Mi": 1,
	}
	for size, expected := range tests {
		gib, err := d.volumeSizeGiB(ctx, size)
		require.NoError(t, err, size)
		assert.Equal(t, expected, gib, size)
	}

	_, err := d.volumeSizeGiB(ctx, "lots")
	assert.True(t, errors.IsInvalidInputError(err))

	d.Config.LimitVolumeSize = "5G"
	_, err = d.volumeSizeGiB(ctx, "6")
	assert.True(t, errors.IsInvalidInputError(err))
}
