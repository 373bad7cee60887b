// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"github.com/spf13/cobra"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/storage"
	"github.com/netapp/xtremio-driver/utils/errors"
)

var (
	createVolumeSize   string
	volumeGroup        string
	cloneSourceVolume  string
	snapshotSourceName string
)

func init() {
	RootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createVolumeCmd)
	createCmd.AddCommand(createSnapshotCmd)

	createVolumeCmd.Flags().StringVar(&createVolumeSize, "size", "1G", "Volume size, e.g. 10G or a bare number of GiB")
	createVolumeCmd.Flags().StringVar(&volumeGroup, "group", "", "Consistency group to add the volume to")
	createVolumeCmd.Flags().StringVar(&cloneSourceVolume, "clone-from", "", "Volume to clone")

	createSnapshotCmd.Flags().StringVar(&snapshotSourceName, "volume", "", "Volume to snapshot")
	_ = createSnapshotCmd.MarkFlagRequired("volume")
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a resource to the array",
}

var createVolumeCmd = &cobra.Command{
	Use:     "volume <name>",
	Short:   "Create a volume, optionally as a clone of another",
	Aliases: []string{"v"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workflow := WorkflowVolumeCreate
		if cloneSourceVolume != "" {
			workflow = WorkflowVolumeClone
		}
		ctx := cliContext(workflow)
		d, err := loadDriver(ctx)
		if err != nil {
			return err
		}

		volConfig := &storage.VolumeConfig{
			Name:               args[0],
			InternalName:       args[0],
			Size:               createVolumeSize,
			Protocol:           d.Config.StorageProtocol,
			ConsistencyGroupID: volumeGroup,
		}
		if cloneSourceVolume != "" {
			volConfig.CloneSourceVolume = cloneSourceVolume
			volConfig.CloneSourceVolumeInternal = cloneSourceVolume
			sourceConfig := &storage.VolumeConfig{Name: cloneSourceVolume, InternalName: cloneSourceVolume}
			err = d.CreateClonedVolume(ctx, volConfig, sourceConfig)
		} else {
			err = d.CreateVolume(ctx, volConfig)
		}
		if err != nil {
			return err
		}

		volumes, err := volumeList(ctx, d.API, []string{volConfig.InternalName})
		if err != nil {
			return err
		}
		return WriteVolumes(cmd.OutOrStdout(), volumes)
	},
}

var createSnapshotCmd = &cobra.Command{
	Use:     "snapshot <name>",
	Short:   "Create a read-only snapshot of a volume",
	Aliases: []string{"s"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if snapshotSourceName == "" {
			return errors.InvalidInputError("the source volume is required")
		}
		ctx := cliContext(WorkflowSnapshotCreate)
		d, err := loadDriver(ctx)
		if err != nil {
			return err
		}

		snapConfig := &storage.SnapshotConfig{
			Name:               args[0],
			InternalName:       args[0],
			VolumeName:         snapshotSourceName,
			VolumeInternalName: snapshotSourceName,
		}
		if _, err = d.CreateSnapshot(ctx, snapConfig); err != nil {
			return err
		}

		volumes, err := volumeList(ctx, d.API, []string{snapConfig.InternalName})
		if err != nil {
			return err
		}
		return WriteVolumes(cmd.OutOrStdout(), volumes)
	},
}
