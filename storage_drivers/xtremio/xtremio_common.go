// Copyright 2026 NetApp, Inc. All Rights Reserved.

// Package xtremio implements the block storage drivers for Dell EMC XtremIO arrays.
package xtremio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/afero"

	tridentconfig "github.com/netapp/xtremio-driver/config"
	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/pkg/capacity"
	"github.com/netapp/xtremio-driver/pkg/convert"
	drivers "github.com/netapp/xtremio-driver/storage_drivers"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api"
	"github.com/netapp/xtremio-driver/utils/errors"
)

// SANStorageDriver manages volumes, host mappings and consistency groups on an XtremIO array. One
// instance serves either iSCSI or Fibre Channel hosts.
type SANStorageDriver struct {
	initialized bool
	protocol    tridentconfig.Protocol

	Config drivers.XtremIOStorageDriverConfig
	// API is created by Initialize unless it is already set.
	API api.XtremIOAPI
	// Fs is where the CA bundle is read from.
	Fs afero.Fs
	// Transport replaces the HTTP transport of the client created by Initialize.
	Transport http.RoundTripper

	volumesPerImageCache        int
	cleanupEmptyInitiatorGroups bool

	statsLock sync.Mutex
	stats     *VolumeStats
}

// VolumeStats is the capacity and capability report of the backend.
type VolumeStats struct {
	VolumeBackendName        string  `json:"volume_backend_name"`
	VendorName               string  `json:"vendor_name"`
	DriverVersion            string  `json:"driver_version"`
	StorageProtocol          string  `json:"storage_protocol"`
	TotalCapacityGB          float64 `json:"total_capacity_gb"`
	FreeCapacityGB           float64 `json:"free_capacity_gb"`
	ProvisionedCapacityGB    float64 `json:"provisioned_capacity_gb"`
	MaxOverSubscriptionRatio float64 `json:"max_over_subscription_ratio"`
	ThinProvisioningSupport  bool    `json:"thin_provisioning_support"`
	ThickProvisioningSupport bool    `json:"thick_provisioning_support"`
	ReservedPercentage       int     `json:"reserved_percentage"`
	Multiattach              bool    `json:"multiattach"`
	ConsistencyGroupSupport  bool    `json:"consistencygroup_support"`
}

// NewISCSIDriver returns an uninitialized driver for iSCSI hosts.
func NewISCSIDriver() *SANStorageDriver {
	return newSANStorageDriver(tridentconfig.ISCSI)
}

// NewFCDriver returns an uninitialized driver for Fibre Channel hosts.
func NewFCDriver() *SANStorageDriver {
	return newSANStorageDriver(tridentconfig.FCP)
}

// NewDriverForProtocol returns an uninitialized driver for the given protocol.
func NewDriverForProtocol(protocol tridentconfig.Protocol) (*SANStorageDriver, error) {
	if !tridentconfig.IsValidProtocol(protocol) {
		return nil, errors.InvalidInputError("unsupported storage protocol %q", protocol)
	}
	return newSANStorageDriver(protocol), nil
}

func newSANStorageDriver(protocol tridentconfig.Protocol) *SANStorageDriver {
	return &SANStorageDriver{
		protocol: protocol,
		Config: drivers.XtremIOStorageDriverConfig{
			CommonStorageDriverConfig: &drivers.CommonStorageDriverConfig{
				StorageDriverName: tridentconfig.DriverNameForProtocol(protocol),
			},
		},
	}
}

func (d *SANStorageDriver) Name() string {
	return tridentconfig.DriverNameForProtocol(d.protocol)
}

// BackendName returns the name reported in the volume stats.
func (d *SANStorageDriver) BackendName() string {
	if d.Config.CommonStorageDriverConfig == nil || d.Config.BackendName == "" {
		return tridentconfig.DefaultBackendName
	}
	return d.Config.BackendName
}

// Protocol returns the protocol name used in stats and descriptors.
func (d *SANStorageDriver) Protocol() string {
	if d.protocol == tridentconfig.FCP {
		return "FC"
	}
	return "iSCSI"
}

func (d *SANStorageDriver) traceMethod() bool {
	return d.Config.CommonStorageDriverConfig != nil && d.Config.DebugTraceFlags["method"]
}

// observe stamps the context for an inbound driver operation and starts its telemetry.
func (d *SANStorageDriver) observe(ctx context.Context, method string) (context.Context, Recorder) {
	return NewContextBuilder(ctx).
		WithClient(ContextRequestClientDriver).
		WithMethod(method).
		WithTelemetry(DriverOperationDurationTelemeter, DriverOperationInFlightTelemeter).
		BuildContextAndTelemetry()
}

// Initialize parses the backend definition, connects to the array and checks that it is usable.
func (d *SANStorageDriver) Initialize(
	ctx context.Context, driverContext tridentconfig.DriverContext, configText string,
	backendSecret map[string]string,
) (err error) {
	ctx, rec := d.observe(ctx, "Initialize")
	defer rec(&err)

	fields := LogFields{"Method": "Initialize", "Type": "SANStorageDriver"}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> Initialize")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< Initialize")

	commonConfig, err := drivers.ValidateCommonSettings(ctx, configText)
	if err != nil {
		return fmt.Errorf("error initializing %s driver: %v", d.Name(), err)
	}
	commonConfig.DriverContext = driverContext

	config := &drivers.XtremIOStorageDriverConfig{CommonStorageDriverConfig: commonConfig}
	configJSON, err := drivers.NormalizeConfig(configText)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(configJSON, config); err != nil {
		return fmt.Errorf("could not decode JSON configuration: %v", err)
	}
	config.InjectSecrets(backendSecret)

	if err = d.populateConfigurationDefaults(ctx, config); err != nil {
		return fmt.Errorf("could not populate configuration defaults: %v", err)
	}
	d.Config = *config

	if err = d.validate(ctx); err != nil {
		return fmt.Errorf("error validating %s driver: %v", d.Name(), err)
	}

	// Unit tests mock the API layer, so we only use the real API interface if it doesn't already exist.
	if d.API == nil {
		if d.API, err = d.newAPIClient(); err != nil {
			return fmt.Errorf("error initializing %s driver: %v", d.Name(), err)
		}
	}

	if err = d.CheckForSetupError(ctx); err != nil {
		return err
	}

	d.initialized = true
	return nil
}

func (d *SANStorageDriver) Initialized() bool {
	return d.initialized
}

func (d *SANStorageDriver) Terminate(ctx context.Context) {
	fields := LogFields{"Method": "Terminate", "Type": "SANStorageDriver"}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> Terminate")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< Terminate")

	d.initialized = false
}

// populateConfigurationDefaults fills in default values for configuration settings if not supplied in the config
func (d *SANStorageDriver) populateConfigurationDefaults(
	ctx context.Context, config *drivers.XtremIOStorageDriverConfig,
) error {
	fields := LogFields{"Method": "populateConfigurationDefaults", "Type": "SANStorageDriver"}
	Logd(ctx, d.Name(), config.DebugTraceFlags["method"]).WithFields(fields).Trace(">>>> populateConfigurationDefaults")
	defer Logd(ctx, d.Name(), config.DebugTraceFlags["method"]).WithFields(fields).Trace("<<<< populateConfigurationDefaults")

	if config.BackendName == "" {
		config.BackendName = tridentconfig.DefaultBackendName
	}
	if config.StorageProtocol == tridentconfig.ProtocolAny {
		config.StorageProtocol = d.protocol
	}
	if config.MaxOverSubscriptionRatio == 0 {
		config.MaxOverSubscriptionRatio = drivers.DefaultMaxOverSubscriptionRatio
	}
	if config.VolumesPerImageCache == "" {
		config.VolumesPerImageCache = strconv.Itoa(drivers.DefaultVolumesPerImageCache)
	}
	if config.MaxBusyRetries == "" {
		config.MaxBusyRetries = strconv.Itoa(tridentconfig.DefaultBusyRetries)
	}
	if config.BusyRetryInitialInterval == "" {
		config.BusyRetryInitialInterval = tridentconfig.DefaultBusyInitialInterval.String()
	}
	if config.BusyRetryMaxInterval == "" {
		config.BusyRetryMaxInterval = tridentconfig.DefaultBusyMaxInterval.String()
	}
	if config.CleanupEmptyInitiatorGroups == "" {
		config.CleanupEmptyInitiatorGroups = drivers.DefaultCleanupEmptyInitiatorGroups
	}

	Logc(ctx).WithFields(LogFields{
		"BackendName":                 config.BackendName,
		"StorageProtocol":             config.StorageProtocol,
		"MaxOverSubscriptionRatio":    config.MaxOverSubscriptionRatio,
		"VolumesPerImageCache":        config.VolumesPerImageCache,
		"MaxBusyRetries":              config.MaxBusyRetries,
		"BusyRetryInitialInterval":    config.BusyRetryInitialInterval,
		"BusyRetryMaxInterval":        config.BusyRetryMaxInterval,
		"CleanupEmptyInitiatorGroups": config.CleanupEmptyInitiatorGroups,
	}).Debug("Configuration defaults")

	return nil
}

// validate checks the driver configuration and caches the parsed values.
func (d *SANStorageDriver) validate(ctx context.Context) error {
	fields := LogFields{"Method": "validate", "Type": "SANStorageDriver"}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> validate")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< validate")

	if d.Config.SANIP == "" {
		return errors.New("sanIP is empty; specify the address of the XtremIO management server")
	}
	if d.Config.Username == "" || d.Config.Password == "" {
		return errors.New("username and password are required")
	}
	if d.Config.StorageProtocol != d.protocol {
		return fmt.Errorf("storageProtocol %q does not match the %s driver", d.Config.StorageProtocol, d.Name())
	}
	if d.Config.ReservedPercentage < 0 || d.Config.ReservedPercentage > 100 {
		return fmt.Errorf("reservedPercentage must be between 0 and 100, not %d", d.Config.ReservedPercentage)
	}
	if d.Config.MaxOverSubscriptionRatio < 1 {
		return fmt.Errorf("maxOverSubscriptionRatio must be at least 1, not %v", d.Config.MaxOverSubscriptionRatio)
	}

	var err error
	if d.volumesPerImageCache, err = convert.ToPositiveInt(d.Config.VolumesPerImageCache); err != nil {
		return fmt.Errorf("invalid value for volumesPerImageCache: %v", err)
	}
	if retries, err := convert.ToPositiveInt(d.Config.MaxBusyRetries); err != nil || retries == 0 {
		return fmt.Errorf("invalid value for maxBusyRetries: %s", d.Config.MaxBusyRetries)
	}
	for key, value := range map[string]string{
		"busyRetryInitialInterval": d.Config.BusyRetryInitialInterval,
		"busyRetryMaxInterval":     d.Config.BusyRetryMaxInterval,
	} {
		if _, err := convert.ToPositiveDuration(value); err != nil {
			return fmt.Errorf("invalid value for %s: %v", key, err)
		}
	}
	if d.cleanupEmptyInitiatorGroups, err = strconv.ParseBool(d.Config.CleanupEmptyInitiatorGroups); err != nil {
		return fmt.Errorf("invalid value for cleanupEmptyInitiatorGroups: %v", err)
	}

	return nil
}

func (d *SANStorageDriver) newAPIClient() (*api.Client, error) {
	retries, _ := convert.ToPositiveInt(d.Config.MaxBusyRetries)
	initialInterval, _ := convert.ToPositiveDuration(d.Config.BusyRetryInitialInterval)
	maxInterval, _ := convert.ToPositiveDuration(d.Config.BusyRetryMaxInterval)

	return api.NewClient(api.ClientConfig{
		SANIP:                    d.Config.SANIP,
		Username:                 d.Config.Username,
		Password:                 d.Config.Password,
		ClusterName:              d.Config.ClusterName,
		SSLCertVerify:            d.Config.SSLCertVerify,
		SSLCertPath:              d.Config.SSLCertPath,
		Fs:                       d.Fs,
		MaxBusyRetries:           retries,
		BusyRetryInitialInterval: initialInterval,
		BusyRetryMaxInterval:     maxInterval,
		APIRateLimit:             d.Config.APIRateLimit,
		DebugTraceFlags:          d.Config.DebugTraceFlags,
		Transport:                d.Transport,
	})
}

// CheckForSetupError verifies that the array has a cluster running a supported software version, and
// selects the API dialect for it.
func (d *SANStorageDriver) CheckForSetupError(ctx context.Context) error {
	fields := LogFields{"Method": "CheckForSetupError", "Type": "SANStorageDriver"}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> CheckForSetupError")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< CheckForSetupError")

	arrayVersion, err := d.API.Discover(ctx)
	if err != nil {
		Logc(ctx).WithError(err).Error("XtremIO setup check failed.")
		return err
	}

	Logc(ctx).WithFields(LogFields{
		"cluster":           d.API.ClusterName(),
		"version":           arrayVersion.String(),
		"consistencyGroups": d.API.SupportsConsistencyGroups(),
	}).Info("Connected to XtremIO.")
	return nil
}

// GetVolumeStats reports backend capacity. The last report is returned unless refresh is set.
func (d *SANStorageDriver) GetVolumeStats(ctx context.Context, refresh bool) (stats *VolumeStats, err error) {
	ctx, rec := d.observe(ctx, "GetVolumeStats")
	defer rec(&err)

	d.statsLock.Lock()
	defer d.statsLock.Unlock()

	if d.stats != nil && !refresh {
		cached := *d.stats
		return &cached, nil
	}

	cluster, err := d.API.ClusterGet(ctx)
	if err != nil {
		return nil, err
	}

	ratio := d.Config.MaxOverSubscriptionRatio
	if ratio == 0 {
		ratio = drivers.DefaultMaxOverSubscriptionRatio
	}

	physicalKiB := cluster.UDSSDSpace.Uint64()
	usedKiB := cluster.UDSSDSpaceInUse.Uint64()
	freeKiB := uint64(0)
	if physicalKiB > usedKiB {
		freeKiB = physicalKiB - usedKiB
	}
	provisionedKiB := cluster.VolSize.Uint64()

	stats = &VolumeStats{
		VolumeBackendName:        d.BackendName(),
		VendorName:               tridentconfig.VendorName,
		DriverVersion:            tridentconfig.DriverVersion,
		StorageProtocol:          d.Protocol(),
		TotalCapacityGB:          capacity.KiBToGiB(physicalKiB),
		FreeCapacityGB:           capacity.KiBToGiB(freeKiB) * ratio,
		ProvisionedCapacityGB:    capacity.KiBToGiB(provisionedKiB),
		MaxOverSubscriptionRatio: ratio,
		ThinProvisioningSupport:  true,
		ThickProvisioningSupport: false,
		ReservedPercentage:       d.Config.ReservedPercentage,
		Multiattach:              true,
		ConsistencyGroupSupport:  d.API.SupportsConsistencyGroups(),
	}

	Logc(ctx).WithFields(LogFields{
		"backend":     stats.VolumeBackendName,
		"physical":    capacity.KiBString(physicalKiB),
		"used":        capacity.KiBString(usedKiB),
		"provisioned": capacity.KiBString(provisionedKiB),
	}).Debug("Refreshed XtremIO capacity.")

	d.stats = stats
	cached := *stats
	return &cached, nil
}

// volumeSizeGiB converts a requested size to whole GiB. A bare number is taken as GiB.
func (d *SANStorageDriver) volumeSizeGiB(ctx context.Context, size string) (uint64, error) {
	if strings.TrimSpace(size) == "" {
		size = drivers.DefaultVolumeSize
	}
	sizeGiB, err := capacity.ToGiB(size)
	if err != nil {
		return 0, errors.InvalidInputError("could not convert volume size %s: %v", size, err)
	}
	if sizeGiB == 0 {
		sizeGiB = 1
	}
	if _, _, err = drivers.CheckVolumeSizeLimits(ctx, sizeGiB*capacity.OneGiB, d.Config.CommonStorageDriverConfig); err != nil {
		return 0, err
	}
	return sizeGiB, nil
}
