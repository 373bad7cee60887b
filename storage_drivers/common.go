// Copyright 2026 NetApp, Inc. All Rights Reserved.

package storagedrivers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brunoga/deep"
	"github.com/ghodss/yaml"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/pkg/capacity"
	"github.com/netapp/xtremio-driver/utils/errors"
)

// NormalizeConfig converts a YAML or JSON backend definition to JSON.
func NormalizeConfig(configText string) ([]byte, error) {
	configJSON, err := yaml.YAMLToJSON([]byte(configText))
	if err != nil {
		return nil, fmt.Errorf("could not parse backend configuration: %v", err)
	}
	return configJSON, nil
}

// ValidateCommonSettings attempts to "partially" decode the config into just the settings in CommonStorageDriverConfig
func ValidateCommonSettings(ctx context.Context, configText string) (*CommonStorageDriverConfig, error) {
	configJSON, err := NormalizeConfig(configText)
	if err != nil {
		return nil, err
	}

	config := &CommonStorageDriverConfig{}

	// Decode configJSON into config object
	if err = json.Unmarshal(configJSON, &config); err != nil {
		return nil, fmt.Errorf("could not parse JSON configuration: %v", err)
	}

	// Load storage drivers and validate the one specified actually exists
	if config.StorageDriverName == "" {
		return nil, errors.New("missing storage driver name in configuration file")
	}

	// Validate config file version information
	if config.Version != ConfigVersion {
		return nil, fmt.Errorf("unexpected config file version; found %d, expected %d", config.Version, ConfigVersion)
	}

	if config.DisableDelete {
		Logc(ctx).WithFields(LogFields{
			"driverName": config.StorageDriverName,
		}).Warn("disableDelete set in backend config.  This will be ignored.")
	}
	if config.Debug {
		Logc(ctx).Warnf("The debug setting in the configuration file is now ignored; " +
			"use debugTraceFlags instead.")
	}

	// Validate volume size limit (if set)
	if config.LimitVolumeSize != "" {
		if _, err = capacity.ToBytes(config.LimitVolumeSize); err != nil {
			return nil, fmt.Errorf("invalid value for limitVolumeSize: %v", config.LimitVolumeSize)
		}
	}

	Logc(ctx).Debugf("Parsed commonConfig: %+v", *config)

	return config, nil
}

// CheckVolumeSizeLimits if a limit has been set, ensures the requestedSize is under it.
func CheckVolumeSizeLimits(
	ctx context.Context, requestedSizeBytes uint64, config *CommonStorageDriverConfig,
) (bool, uint64, error) {
	limitVolumeSize := config.LimitVolumeSize
	if limitVolumeSize == "" {
		Logc(ctx).Debugf("No limits specified, not limiting volume size")
		return false, 0, nil
	}

	volumeSizeLimit, err := capacity.ToBytes(limitVolumeSize)
	if err != nil {
		return false, 0, fmt.Errorf("error parsing limitVolumeSize: %v", err)
	}

	Logc(ctx).WithFields(LogFields{
		"limitVolumeSize":    limitVolumeSize,
		"volumeSizeLimit":    volumeSizeLimit,
		"requestedSizeBytes": requestedSizeBytes,
	}).Debugf("Comparing limits")

	if requestedSizeBytes > volumeSizeLimit {
		return true, volumeSizeLimit, errors.InvalidInputError(
			"requested size: %d > the size limit: %d", requestedSizeBytes, volumeSizeLimit)
	}

	return true, volumeSizeLimit, nil
}

// Clone returns a deep copy of the driver config so callers never share mutable state.
func (c *XtremIOStorageDriverConfig) Clone() (*XtremIOStorageDriverConfig, error) {
	return deep.Copy(c)
}
