// Copyright 2026 NetApp, Inc. All Rights Reserved.

package xtremio

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	tridentconfig "github.com/netapp/xtremio-driver/config"
	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/storage"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api"
	"github.com/netapp/xtremio-driver/utils/errors"
	"github.com/netapp/xtremio-driver/utils/models"
)

// MappingState is the position of a (volume, host) pair in the attach cycle. It is only logged.
type MappingState string

const (
	MappingStateUnmapped  = MappingState("unmapped")
	MappingStateMapping   = MappingState("mapping")
	MappingStateMapped    = MappingState("mapped")
	MappingStateUnmapping = MappingState("unmapping")
)

// maxLUN is the highest LUN an XtremIO initiator group can address.
const maxLUN = 16383

// hostInitiator is one of the connector's initiators as found or created on the array.
type hostInitiator struct {
	portAddress string
	initiator   *api.Initiator
	created     bool
}

func (h *hostInitiator) igName() string {
	return h.initiator.IGID.Name
}

func (d *SANStorageDriver) logMappingState(ctx context.Context, volume, host string, state MappingState) {
	Logc(ctx).WithFields(LogFields{
		"volume": volume,
		"host":   host,
		"state":  state,
	}).Debug("Mapping state changed.")
}

// InitializeConnection maps a volume to the host described by the connector and returns what the host
// needs to attach it.
func (d *SANStorageDriver) InitializeConnection(
	ctx context.Context, volConfig *storage.VolumeConfig, connector *models.Connector,
) (info *models.ConnectionInfo, err error) {
	ctx, rec := d.observe(ctx, "InitializeConnection")
	defer rec(&err)

	fields := LogFields{
		"Method":    "InitializeConnection",
		"Type":      "SANStorageDriver",
		"name":      volConfig.ArrayName(),
		"connector": connector.String(),
	}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> InitializeConnection")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< InitializeConnection")

	if d.protocol == tridentconfig.FCP {
		return d.initializeFCConnection(ctx, volConfig, connector)
	}
	return d.initializeISCSIConnection(ctx, volConfig, connector)
}

// TerminateConnection unmaps a volume from the host and removes the host's initiators once nothing
// else is mapped to them.
func (d *SANStorageDriver) TerminateConnection(
	ctx context.Context, volConfig *storage.VolumeConfig, connector *models.Connector,
) (info *models.ConnectionInfo, err error) {
	ctx, rec := d.observe(ctx, "TerminateConnection")
	defer rec(&err)

	fields := LogFields{
		"Method":    "TerminateConnection",
		"Type":      "SANStorageDriver",
		"name":      volConfig.ArrayName(),
		"connector": connector.String(),
	}
	Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace(">>>> TerminateConnection")
	defer Logd(ctx, d.Name(), d.traceMethod()).WithFields(fields).Trace("<<<< TerminateConnection")

	if d.protocol == tridentconfig.FCP {
		return d.terminateFCConnection(ctx, volConfig, connector)
	}
	return d.terminateISCSIConnection(ctx, volConfig, connector)
}

// resolveInitiators finds each initiator on the array, creating the missing ones in the named
// initiator group. Initiators that already exist keep the group they are in.
func (d *SANStorageDriver) resolveInitiators(
	ctx context.Context, portAddresses []string, igName string, chap *api.CHAPSecrets,
) ([]hostInitiator, error) {
	initiators := make([]hostInitiator, 0, len(portAddresses))
	groupReady := false

	for _, portAddress := range portAddresses {
		initiator, err := d.API.InitiatorGet(ctx, portAddress)
		if err == nil {
			Logc(ctx).WithFields(LogFields{
				"initiator":      portAddress,
				"initiatorGroup": initiator.IGID.Name,
			}).Debug("Found existing initiator.")
			initiators = append(initiators, hostInitiator{portAddress: portAddress, initiator: initiator})
			continue
		}
		if !errors.IsNotFoundError(err) {
			return nil, err
		}

		if !groupReady {
			if err = d.ensureInitiatorGroup(ctx, igName); err != nil {
				return nil, err
			}
			groupReady = true
		}

		if initiator, err = d.createInitiator(ctx, portAddress, igName, chap); err != nil {
			return nil, err
		}
		initiators = append(initiators, hostInitiator{portAddress: portAddress, initiator: initiator, created: true})
	}
	return initiators, nil
}

// ensureInitiatorGroup fetches the initiator group, creating it when it does not exist.
func (d *SANStorageDriver) ensureInitiatorGroup(ctx context.Context, igName string) error {
	_, err := d.API.InitiatorGroupGet(ctx, igName)
	if err == nil {
		return nil
	}
	if !errors.IsNotFoundError(err) {
		return err
	}

	if _, err = d.API.InitiatorGroupCreate(ctx, igName); err != nil {
		Logc(ctx).WithField("initiatorGroup", igName).WithError(err).Error("Could not create initiator group.")
		if errors.IsBackendAPIError(err) {
			return err
		}
		return errors.WrapWithBackendAPIError(err, "could not create initiator group %s", igName)
	}
	Logc(ctx).WithField("initiatorGroup", igName).Info("Created initiator group.")
	return nil
}

// createInitiator creates the initiator and reads it back. If the read fails the new initiator is
// deleted so that no orphan is left behind.
func (d *SANStorageDriver) createInitiator(
	ctx context.Context, portAddress, igName string, chap *api.CHAPSecrets,
) (*api.Initiator, error) {
	ref, err := d.API.InitiatorCreate(ctx, portAddress, portAddress, igName, chap)
	if err != nil {
		return nil, err
	}

	index, err := ref.Index()
	if err == nil {
		var initiator *api.Initiator
		if initiator, err = d.API.InitiatorGetByIndex(ctx, index); err == nil {
			Logc(ctx).WithFields(LogFields{
				"initiator":      portAddress,
				"initiatorGroup": igName,
			}).Info("Created initiator.")
			return initiator, nil
		}
	}

	Logc(ctx).WithField("initiator", portAddress).WithError(err).Error("Could not read new initiator, deleting it.")

	var cleanupErr error
	if index > 0 {
		cleanupErr = d.API.InitiatorDeleteByIndex(ctx, index)
	} else {
		cleanupErr = d.API.InitiatorDelete(ctx, portAddress)
	}
	if cleanupErr != nil && !errors.IsNotFoundError(cleanupErr) {
		return nil, errors.Append(err, cleanupErr)
	}
	return nil, err
}

// mapVolume creates the lun map of the volume to the initiator group. A map that already exists is
// looked up and returned.
func (d *SANStorageDriver) mapVolume(ctx context.Context, volumeName, igName string, lun int) (*api.LunMap, error) {
	lunMap, err := d.API.LunMapCreate(ctx, volumeName, igName, api.DefaultTargetGroup, lun)
	if err == nil {
		return lunMap, nil
	}
	if !errors.IsAlreadyMappedError(err) && !errors.IsAlreadyExistsError(err) {
		return nil, err
	}

	Logc(ctx).WithFields(LogFields{
		"volume":         volumeName,
		"initiatorGroup": igName,
	}).Debug("Volume is already mapped, looking up the existing map.")

	return d.API.LunMapFind(ctx, igName, volumeName)
}

// lowestFreeLUN returns the lowest LUN not used in any of the initiator groups. LUN 0 is never chosen.
func (d *SANStorageDriver) lowestFreeLUN(ctx context.Context, igNames []string) (int, error) {
	used := roaring.New()
	used.Add(0)

	for _, igName := range igNames {
		lunMaps, err := d.API.LunMapsForInitiatorGroup(ctx, igName)
		if err != nil {
			return 0, err
		}
		for _, lunMap := range lunMaps {
			if lun := lunMap.LUN.Int(); lun >= 0 {
				used.Add(uint32(lun))
			}
		}
	}

	it := used.Iterator()
	next := uint32(0)
	for it.HasNext() {
		if it.Next() != next {
			break
		}
		next++
	}
	if next > maxLUN {
		return 0, errors.BackendAPIError("no free LUN in initiator groups %v", igNames)
	}
	return int(next), nil
}

// unmapVolume deletes the lun maps of the volume in the host's initiator groups and reports the groups
// that have no volumes left.
func (d *SANStorageDriver) unmapVolume(
	ctx context.Context, volumeName string, initiators []hostInitiator,
) (emptyGroups []string, err error) {
	targetGroup, err := d.API.TargetGroupGet(ctx, api.DefaultTargetGroup)
	if err != nil {
		return nil, err
	}

	volume, err := d.API.VolumeGet(ctx, volumeName)
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, err
	}
	if volume == nil {
		Logc(ctx).WithField("volume", volumeName).Warning("Volume not found, nothing to unmap.")
	}

	seen := make(map[string]bool)
	for _, hi := range initiators {
		igName := hi.igName()
		if seen[igName] {
			continue
		}
		seen[igName] = true

		if volume != nil {
			lunMapName := fmt.Sprintf("%d_%d_%d", volume.Index, hi.initiator.IGID.Index, targetGroup.Index)
			if err = d.API.LunMapDelete(ctx, lunMapName); err != nil {
				if !errors.IsNotFoundError(err) {
					return nil, err
				}
				Logc(ctx).WithFields(LogFields{
					"lunMap":         lunMapName,
					"initiatorGroup": igName,
				}).Warning("Lun map not found, it may have been removed already.")
			}
		}

		count, err := d.API.MappedVolumeCount(ctx, igName)
		if err != nil {
			return nil, err
		}
		Logc(ctx).WithFields(LogFields{"initiatorGroup": igName, "mappedVolumes": count}).Debug("Recounted mappings.")
		if count == 0 {
			emptyGroups = append(emptyGroups, igName)
		}
	}
	return emptyGroups, nil
}

// lookupInitiators returns the connector's initiators that exist on the array.
func (d *SANStorageDriver) lookupInitiators(ctx context.Context, portAddresses []string) ([]hostInitiator, error) {
	initiators := make([]hostInitiator, 0, len(portAddresses))
	for _, portAddress := range portAddresses {
		initiator, err := d.API.InitiatorGet(ctx, portAddress)
		if err != nil {
			if errors.IsNotFoundError(err) {
				Logc(ctx).WithField("initiator", portAddress).Warning("Initiator not found.")
				continue
			}
			return nil, err
		}
		initiators = append(initiators, hostInitiator{portAddress: portAddress, initiator: initiator})
	}
	return initiators, nil
}

// cleanupInitiatorGroups deletes the host's initiators in each empty group and then the group itself.
func (d *SANStorageDriver) cleanupInitiatorGroups(
	ctx context.Context, emptyGroups []string, initiators []hostInitiator,
) error {
	if !d.cleanupEmptyInitiatorGroups {
		return nil
	}

	for _, igName := range emptyGroups {
		for _, hi := range initiators {
			if hi.igName() != igName {
				continue
			}
			if err := d.API.InitiatorDeleteByIndex(ctx, hi.initiator.Index); err != nil && !errors.IsNotFoundError(err) {
				return err
			}
		}
		if err := d.API.InitiatorGroupDelete(ctx, igName); err != nil {
			if !errors.IsNotFoundError(err) {
				return err
			}
			Logc(ctx).WithField("initiatorGroup", igName).Debug("Initiator group already deleted.")
			continue
		}
		Logc(ctx).WithField("initiatorGroup", igName).Info("Deleted empty initiator group.")
	}
	return nil
}
