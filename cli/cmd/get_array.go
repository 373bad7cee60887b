// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/pkg/capacity"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api"
)

func init() {
	getCmd.AddCommand(getClusterCmd)
	getCmd.AddCommand(getTargetCmd)
	getCmd.AddCommand(getPortalCmd)
}

var getClusterCmd = &cobra.Command{
	Use:     "cluster",
	Short:   "Get the cluster the backend is configured for",
	Aliases: []string{"clusters"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cliContext(WorkflowNone)
		d, err := loadDriver(ctx)
		if err != nil {
			return err
		}
		cluster, err := d.API.ClusterGet(ctx)
		if err != nil {
			return err
		}
		return writeCluster(cmd.OutOrStdout(), cluster)
	},
}

var getTargetCmd = &cobra.Command{
	Use:     "target",
	Short:   "Get the target ports of the array",
	Aliases: []string{"targets"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cliContext(WorkflowNone)
		d, err := loadDriver(ctx)
		if err != nil {
			return err
		}
		targets, err := d.API.TargetList(ctx)
		if err != nil {
			return err
		}
		return writeTargets(cmd.OutOrStdout(), targets)
	},
}

var getPortalCmd = &cobra.Command{
	Use:     "portal",
	Short:   "Get the iSCSI portals of the array",
	Aliases: []string{"portals", "iscsi-portal"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cliContext(WorkflowNone)
		d, err := loadDriver(ctx)
		if err != nil {
			return err
		}
		portals, err := d.API.ISCSIPortalList(ctx)
		if err != nil {
			return err
		}
		return writePortals(cmd.OutOrStdout(), portals)
	},
}

func writeCluster(w io.Writer, cluster *api.Cluster) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(w, cluster)
	case FormatYAML:
		return WriteYAML(w, cluster)
	case FormatName:
		fmt.Fprintln(w, cluster.Name)
		return nil
	}

	table := tablewriter.NewWriter(w)
	header := []string{"Name", "Version", "Physical", "Used", "Provisioned"}
	if OutputFormat == FormatWide {
		header = append(header, "CHAP Authentication", "CHAP Discovery")
	}
	table.SetHeader(header)

	row := []string{
		cluster.Name,
		cluster.SysSWVersion,
		capacity.KiBString(cluster.UDSSDSpace.Uint64()),
		capacity.KiBString(cluster.UDSSDSpaceInUse.Uint64()),
		capacity.KiBString(cluster.VolSize.Uint64()),
	}
	if OutputFormat == FormatWide {
		row = append(row, cluster.ChapAuthenticationMode, cluster.ChapDiscoveryMode)
	}
	table.Append(row)
	table.Render()
	return nil
}

type targetsResponse struct {
	Items []api.Target `json:"items"`
}

func writeTargets(w io.Writer, targets []api.Target) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(w, targetsResponse{Items: targets})
	case FormatYAML:
		return WriteYAML(w, targetsResponse{Items: targets})
	case FormatName:
		for _, target := range targets {
			fmt.Fprintln(w, target.Name)
		}
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Type", "Port Address", "State"})
	for _, target := range targets {
		table.Append([]string{target.Name, target.PortType, target.PortAddress, target.PortState})
	}
	table.Render()
	return nil
}

type portalsResponse struct {
	Items []api.ISCSIPortal `json:"items"`
}

func writePortals(w io.Writer, portals []api.ISCSIPortal) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(w, portalsResponse{Items: portals})
	case FormatYAML:
		return WriteYAML(w, portalsResponse{Items: portals})
	case FormatName:
		for i := range portals {
			fmt.Fprintln(w, portals[i].Portal())
		}
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Portal", "Target IQN"})
	for i := range portals {
		table.Append([]string{portals[i].Portal(), portals[i].PortAddress})
	}
	table.Render()
	return nil
}
