// Copyright 2026 NetApp, Inc. All Rights Reserved.

package xtremio

import (
	"context"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/pkg/convert"
	"github.com/netapp/xtremio-driver/storage"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api"
	"github.com/netapp/xtremio-driver/utils"
	"github.com/netapp/xtremio-driver/utils/errors"
	"github.com/netapp/xtremio-driver/utils/models"
)

const (
	chapUsername     = "chap_user"
	chapSecretLength = 12
)

func (d *SANStorageDriver) initializeISCSIConnection(
	ctx context.Context, volConfig *storage.VolumeConfig, connector *models.Connector,
) (*models.ConnectionInfo, error) {
	if err := connector.ValidateISCSI(); err != nil {
		return nil, errors.InvalidInputError("%v", err)
	}
	volumeName := volConfig.ArrayName()

	cluster, err := d.API.ClusterGet(ctx)
	if err != nil {
		return nil, err
	}
	loginCHAP, discoveryCHAP := cluster.LoginCHAPEnabled(), cluster.DiscoveryCHAPEnabled()

	d.logMappingState(ctx, volumeName, connector.Host, MappingStateMapping)

	newSecrets := generateCHAPSecrets(loginCHAP, discoveryCHAP)
	initiators, err := d.resolveInitiators(ctx, []string{connector.Initiator}, connector.Initiator, newSecrets)
	if err != nil {
		return nil, err
	}
	host := initiators[0]

	var chapInfo *models.IscsiChapInfo
	if host.created {
		chapInfo = chapInfoFromSecrets(newSecrets, loginCHAP, discoveryCHAP)
	} else if chapInfo, err = d.existingInitiatorCHAP(ctx, host.initiator, loginCHAP, discoveryCHAP); err != nil {
		return nil, err
	}

	lunMap, err := d.mapVolume(ctx, volumeName, host.igName(), 0)
	if err != nil {
		return nil, err
	}
	d.logMappingState(ctx, volumeName, connector.Host, MappingStateMapped)

	portals, err := d.API.ISCSIPortalList(ctx)
	if err != nil {
		return nil, err
	}
	if len(portals) == 0 {
		Logc(ctx).Error("No iSCSI portals are configured on the array.")
		return nil, errors.DriverError("no iscsi portals configured")
	}

	lun := lunMap.LUN.Int()
	primary := portals[0]
	data := models.ConnectionData{
		TargetDiscovered: false,
		TargetLUN:        lun,
		AccessMode:       models.AccessModeReadWrite,
		TargetIQN:        primary.PortAddress,
		TargetPortal:     primary.Portal(),
	}
	for i := range portals {
		data.TargetIQNs = append(data.TargetIQNs, portals[i].PortAddress)
		data.TargetPortals = append(data.TargetPortals, portals[i].Portal())
		data.TargetLUNs = append(data.TargetLUNs, lun)
	}
	data.SetCHAP(chapInfo)

	info := &models.ConnectionInfo{DriverVolumeType: models.DriverVolumeTypeISCSI, Data: data}
	Logc(ctx).WithFields(LogFields{
		"volume":    volumeName,
		"initiator": connector.Initiator,
		"lun":       lun,
	}).Info("Mapped volume to iSCSI host.")
	return info, nil
}

func (d *SANStorageDriver) terminateISCSIConnection(
	ctx context.Context, volConfig *storage.VolumeConfig, connector *models.Connector,
) (*models.ConnectionInfo, error) {
	if err := connector.ValidateISCSI(); err != nil {
		return nil, errors.InvalidInputError("%v", err)
	}
	volumeName := volConfig.ArrayName()

	d.logMappingState(ctx, volumeName, connector.Host, MappingStateUnmapping)

	initiators, err := d.lookupInitiators(ctx, []string{connector.Initiator})
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
	return &models.ConnectionInfo{DriverVolumeType: models.DriverVolumeTypeISCSI}, nil
}

// generateCHAPSecrets returns fresh secrets for the enabled CHAP modes, or nil when CHAP is off.
func generateCHAPSecrets(loginCHAP, discoveryCHAP bool) *api.CHAPSecrets {
	if !loginCHAP && !discoveryCHAP {
		return nil
	}
	secrets := &api.CHAPSecrets{}
	if loginCHAP {
		secrets.LoginUsername = chapUsername
		secrets.LoginPassword = utils.RandomString(chapSecretLength)
	}
	if discoveryCHAP {
		secrets.DiscoveryUsername = chapUsername
		secrets.DiscoveryPassword = utils.RandomString(chapSecretLength)
	}
	return secrets
}

// existingInitiatorCHAP reuses the secrets stored on an initiator. Secrets the array does not have
// for an enabled mode are generated and stored first.
func (d *SANStorageDriver) existingInitiatorCHAP(
	ctx context.Context, initiator *api.Initiator, loginCHAP, discoveryCHAP bool,
) (*models.IscsiChapInfo, error) {
	if !loginCHAP && !discoveryCHAP {
		return nil, nil
	}

	current := &api.CHAPSecrets{
		LoginUsername:     chapUsername,
		LoginPassword:     convert.ToVal(initiator.ChapAuthenticationInitiatorPassword),
		DiscoveryUsername: chapUsername,
		DiscoveryPassword: convert.ToVal(initiator.ChapDiscoveryInitiatorPassword),
	}

	missing := generateCHAPSecrets(loginCHAP && current.LoginPassword == "",
		discoveryCHAP && current.DiscoveryPassword == "")
	if missing != nil {
		Logc(ctx).WithField("initiator", initiator.Name).Info("Initiator has no CHAP secrets, setting them.")
		if err := d.API.InitiatorSetCHAP(ctx, initiator.Index, missing); err != nil {
			return nil, err
		}
		if missing.LoginPassword != "" {
			current.LoginPassword = missing.LoginPassword
		}
		if missing.DiscoveryPassword != "" {
			current.DiscoveryPassword = missing.DiscoveryPassword
		}
	}

	return chapInfoFromSecrets(current, loginCHAP, discoveryCHAP), nil
}

func chapInfoFromSecrets(secrets *api.CHAPSecrets, loginCHAP, discoveryCHAP bool) *models.IscsiChapInfo {
	if secrets == nil {
		return nil
	}
	return &models.IscsiChapInfo{
		UseCHAP:                loginCHAP,
		IscsiUsername:          secrets.LoginUsername,
		IscsiInitiatorSecret:   secrets.LoginPassword,
		UseDiscoveryCHAP:       discoveryCHAP,
		IscsiDiscoveryUsername: secrets.DiscoveryUsername,
		IscsiDiscoverySecret:   secrets.DiscoveryPassword,
	}
}
