// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/storage"
	"github.com/netapp/xtremio-driver/utils/errors"
)

func init() {
	RootCmd.AddCommand(deleteCmd)
	deleteCmd.AddCommand(deleteVolumeCmd)
	deleteCmd.AddCommand(deleteSnapshotCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove one or more resources from the array",
}

var deleteVolumeCmd = &cobra.Command{
	Use:     "volume <name> [<name>...]",
	Short:   "Delete one or more volumes",
	Aliases: []string{"v", "volumes"},
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cliContext(WorkflowVolumeDelete)
		d, err := loadDriver(ctx)
		if err != nil {
			return err
		}

		var deleteErrs error
		for _, name := range args {
			if err := d.DeleteVolume(ctx, &storage.VolumeConfig{Name: name, InternalName: name}); err != nil {
				deleteErrs = errors.Append(deleteErrs, fmt.Errorf("could not delete volume %s; %v", name, err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Volume %s deleted.\n", name)
		}
		return deleteErrs
	},
}

var deleteSnapshotCmd = &cobra.Command{
	Use:     "snapshot <name> [<name>...]",
	Short:   "Delete one or more snapshots",
	Aliases: []string{"s", "snapshots"},
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cliContext(WorkflowSnapshotDelete)
		d, err := loadDriver(ctx)
		if err != nil {
			return err
		}

		var deleteErrs error
		for _, name := range args {
			if err := d.DeleteSnapshot(ctx, &storage.SnapshotConfig{Name: name, InternalName: name}); err != nil {
				deleteErrs = errors.Append(deleteErrs, fmt.Errorf("could not delete snapshot %s; %v", name, err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot %s deleted.\n", name)
		}
		return deleteErrs
	},
}
