// Copyright 2026 NetApp, Inc. All Rights Reserved.

package xtremio

import (
	"context"
	"strings"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/storage"
	"github.com/netapp/xtremio-driver/utils"
	"github.com/netapp/xtremio-driver/utils/errors"
	"github.com/netapp/xtremio-driver/utils/models"
)

// normalizeWWPNs converts the connector's WWPNs to the colon-separated lower-case form the array uses.
func normalizeWWPNs(wwpns []string) []string {
	normalized := make([]string, 0, len(wwpns))
	for _, wwpn := range wwpns {
		normalized = append(normalized, strings.ToLower(utils.ConvertStrToWWNFormat(wwpn)))
	}
	return normalized
}

func (d *SANStorageDriver) initializeFCConnection(
	ctx context.Context, volConfig *storage.VolumeConfig, connector *models.Connector,
) (*models.ConnectionInfo, error) {
	if err := connector.ValidateFC(); err != nil {
		return nil, errors.InvalidInputError("%v", err)
	}
	volumeName := volConfig.ArrayName()

	if _, err := d.API.ClusterGet(ctx); err != nil {
		return nil, err
	}

	d.logMappingState(ctx, volumeName, connector.Host, MappingStateMapping)

	initiators, err := d.resolveInitiators(ctx, normalizeWWPNs(connector.WWPNs), connector.Host, nil)
	if err != nil {
		return nil, err
	}

	igNames := make([]string, 0, 1)
	for _, hi := range initiators {
		if !utils.SliceContainsString(igNames, hi.igName()) {
			igNames = append(igNames, hi.igName())
		}
	}

	// Several groups must see the volume at the same LUN
	lun := 0
	if len(igNames) > 1 {
		if lun, err = d.lowestFreeLUN(ctx, igNames); err != nil {
			return nil, err
		}
		Logc(ctx).WithFields(LogFields{"initiatorGroups": igNames, "lun": lun}).Debug("Chose LUN free in all groups.")
	}

	targetLUN := -1
	for _, igName := range igNames {
		lunMap, err := d.mapVolume(ctx, volumeName, igName, lun)
		if err != nil {
			return nil, err
		}
		if targetLUN < 0 {
			targetLUN = lunMap.LUN.Int()
		}
	}
	d.logMappingState(ctx, volumeName, connector.Host, MappingStateMapped)

	targetWWNs, err := d.fcTargetWWNs(ctx)
	if err != nil {
		return nil, err
	}
	if len(targetWWNs) == 0 {
		return nil, errors.DriverError("no usable fc targets found")
	}

	Logc(ctx).WithFields(LogFields{
		"volume": volumeName,
		"host":   connector.Host,
		"lun":    targetLUN,
	}).Info("Mapped volume to FC host.")

	return &models.ConnectionInfo{
		DriverVolumeType: models.DriverVolumeTypeFC,
		Data: models.ConnectionData{
			TargetDiscovered:   true,
			TargetLUN:          targetLUN,
			AccessMode:         models.AccessModeReadWrite,
			TargetWWNs:         targetWWNs,
			InitiatorTargetMap: initiatorTargetMap(connector.WWPNs, targetWWNs),
		},
	}, nil
}

func (d *SANStorageDriver) terminateFCConnection(
	ctx context.Context, volConfig *storage.VolumeConfig, connector *models.Connector,
) (*models.ConnectionInfo, error) {
	if err := connector.ValidateFC(); err != nil {
		return nil, errors.InvalidInputError("%v", err)
	}
	volumeName := volConfig.ArrayName()

	d.logMappingState(ctx, volumeName, connector.Host, MappingStateUnmapping)

	initiators, err := d.lookupInitiators(ctx, normalizeWWPNs(connector.WWPNs))
	if err != nil {
		return nil, err
	}
	emptyGroups, err := d.unmapVolume(ctx, volumeName, initiators)
	if err != nil {
		return nil, err
	}
	if err = d.cleanupInitiatorGroups(ctx, emptyGroups, initiators); err != nil {
		return nil, err
	}

	d.logMappingState(ctx, volumeName, connector.Host, MappingStateUnmapped)

	info := &models.ConnectionInfo{DriverVolumeType: models.DriverVolumeTypeFC}
	if len(emptyGroups) == 0 {
		return info, nil
	}

	// The host has nothing mapped anymore, so hand back the zoning to remove
	targetWWNs, err := d.fcTargetWWNs(ctx)
	if err != nil {
		return nil, err
	}
	info.Data.TargetWWNs = targetWWNs
	info.Data.InitiatorTargetMap = initiatorTargetMap(connector.WWPNs, targetWWNs)
	return info, nil
}

// fcTargetWWNs returns the WWNs of the FC ports that are up, without colons.
func (d *SANStorageDriver) fcTargetWWNs(ctx context.Context) ([]string, error) {
	targets, err := d.API.TargetList(ctx)
	if err != nil {
		return nil, err
	}
	wwns := make([]string, 0, len(targets))
	for i := range targets {
		if targets[i].IsUsableFC() {
			wwns = append(wwns, strings.ToLower(utils.StripWWNFormat(targets[i].PortAddress)))
		}
	}
	return wwns, nil
}

func initiatorTargetMap(wwpns, targetWWNs []string) map[string][]string {
	itMap := make(map[string][]string, len(wwpns))
	for _, wwpn := range wwpns {
		itMap[strings.ToLower(utils.StripWWNFormat(wwpn))] = targetWWNs
	}
	return itMap
}
