// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"io"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/netapp/xtremio-driver/config"
	. "github.com/netapp/xtremio-driver/logging"
)

var clientOnly bool

func init() {
	RootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&clientOnly, "client", false, "Client version only (no array required).")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of the driver and of the array",
	RunE: func(cmd *cobra.Command, args []string) error {
		versions := versionResponse{
			Client: clientVersion{Version: config.DriverVersion, GoVersion: runtime.Version()},
		}
		if !clientOnly {
			ctx := cliContext(WorkflowDriverInit)
			d, err := loadDriver(ctx)
			if err != nil {
				return err
			}
			cluster, err := d.API.ClusterGet(ctx)
			if err != nil {
				return err
			}
			versions.Array = &arrayVersion{
				Cluster:           cluster.Name,
				Version:           cluster.SysSWVersion,
				ConsistencyGroups: d.API.SupportsConsistencyGroups(),
			}
		}
		return writeVersions(cmd.OutOrStdout(), &versions)
	},
}

type clientVersion struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
}

type arrayVersion struct {
	Cluster           string `json:"cluster"`
	Version           string `json:"version"`
	ConsistencyGroups bool   `json:"consistencyGroups"`
}

type versionResponse struct {
	Client clientVersion `json:"client"`
	Array  *arrayVersion `json:"array,omitempty"`
}

func writeVersions(w io.Writer, versions *versionResponse) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(w, versions)
	case FormatYAML:
		return WriteYAML(w, versions)
	}

	table := tablewriter.NewWriter(w)
	header := []string{"Client Version"}
	row := []string{versions.Client.Version}
	if OutputFormat == FormatWide {
		header = append(header, "Client Go Version")
		row = append(row, versions.Client.GoVersion)
	}
	if versions.Array != nil {
		header = append(header, "Array Version", "Cluster")
		row = append(row, versions.Array.Version, versions.Array.Cluster)
	}
	table.SetHeader(header)
	table.Append(row)
	table.Render()
	return nil
}
