// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/pkg/capacity"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api"
	"github.com/netapp/xtremio-driver/utils/errors"
)

func init() {
	getCmd.AddCommand(getVolumeCmd)
}

var getVolumeCmd = &cobra.Command{
	Use:     "volume [<name>...]",
	Short:   "Get one or more volumes from the array",
	Aliases: []string{"v", "volumes"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cliContext(WorkflowNone)
		d, err := loadDriver(ctx)
		if err != nil {
			return err
		}

		volumes, err := volumeList(ctx, d.API, args)
		if err != nil {
			return err
		}
		return WriteVolumes(cmd.OutOrStdout(), volumes)
	},
}

type volumesResponse struct {
	Items []api.Volume `json:"items"`
}

// volumeList reads the named volumes, or all of them when no names are given.
func volumeList(ctx context.Context, client api.XtremIOAPI, volumeNames []string) ([]api.Volume, error) {
	if len(volumeNames) == 0 {
		return client.VolumeList(ctx, api.Query{})
	}

	volumes := make([]api.Volume, 0, len(volumeNames))
	for _, volumeName := range volumeNames {
		volume, err := client.VolumeGet(ctx, volumeName)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return nil, errors.VolumeNotFoundError("volume %s not found", volumeName)
			}
			return nil, err
		}
		volumes = append(volumes, *volume)
	}
	return volumes, nil
}

func WriteVolumes(w io.Writer, volumes []api.Volume) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(w, volumesResponse{Items: volumes})
	case FormatYAML:
		return WriteYAML(w, volumesResponse{Items: volumes})
	case FormatName:
		writeVolumeNames(w, volumes)
	case FormatWide:
		writeWideVolumeTable(w, volumes)
	default:
		writeVolumeTable(w, volumes)
	}
	return nil
}

func volumeSize(volume *api.Volume) string {
	return capacity.KiBString(volume.VolSize.Uint64())
}

func ancestorName(volume *api.Volume) string {
	if volume.AncestorVolID == nil {
		return ""
	}
	return volume.AncestorVolID.Name
}

func writeVolumeTable(w io.Writer, volumes []api.Volume) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Size", "Source"})

	for i := range volumes {
		table.Append([]string{
			volumes[i].Name,
			volumeSize(&volumes[i]),
			ancestorName(&volumes[i]),
		})
	}

	table.Render()
}

func writeWideVolumeTable(w io.Writer, volumes []api.Volume) {
	table := tablewriter.NewWriter(w)
	header := []string{
		"Name",
		"Index",
		"Size",
		"Source",
		"Snapshots",
		"Created",
	}
	table.SetHeader(header)

	for i := range volumes {
		table.Append([]string{
			volumes[i].Name,
			strconv.Itoa(volumes[i].Index),
			volumeSize(&volumes[i]),
			ancestorName(&volumes[i]),
			strconv.Itoa(volumes[i].NumOfDestSnaps.Int()),
			volumes[i].CreationTime,
		})
	}

	table.Render()
}

func writeVolumeNames(w io.Writer, volumes []api.Volume) {
	for _, volume := range volumes {
		fmt.Fprintln(w, volume.Name)
	}
}
