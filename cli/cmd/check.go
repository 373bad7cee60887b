// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/pkg/capacity"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio"
)

func init() {
	RootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the backend configuration reaches a usable array",
	Long: `Connect to the array named by the backend configuration, verify its cluster and software version,
and report the capacity the driver would advertise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cliContext(WorkflowDriverInit)
		d, err := loadDriver(ctx)
		if err != nil {
			return err
		}

		ctx = GenerateRequestContext(ctx, "", "", WorkflowDriverGetStats, LogLayerCLI)
		stats, err := d.GetVolumeStats(ctx, true)
		if err != nil {
			return err
		}

		report := checkReport{
			Driver:      d.Name(),
			Cluster:     d.API.ClusterName(),
			VolumeStats: stats,
		}
		return writeCheckReport(cmd.OutOrStdout(), &report)
	},
}

type checkReport struct {
	Driver  string `json:"driver"`
	Cluster string `json:"cluster"`
	*xtremio.VolumeStats
}

// gibString renders a GiB figure from the stats in IEC units.
func gibString(gib float64) string {
	if gib <= 0 {
		return humanize.IBytes(0)
	}
	return humanize.IBytes(uint64(gib * float64(capacity.OneGiB)))
}

func writeCheckReport(w io.Writer, report *checkReport) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(w, report)
	case FormatYAML:
		return WriteYAML(w, report)
	case FormatName:
		_, err := io.WriteString(w, report.VolumeBackendName+"\n")
		return err
	}

	table := tablewriter.NewWriter(w)
	header := []string{"Backend", "Driver", "Cluster", "Total", "Free", "Provisioned"}
	if OutputFormat == FormatWide {
		header = append(header, "Oversubscription", "Reserved %", "Consistency Groups", "Version")
	}
	table.SetHeader(header)

	row := []string{
		report.VolumeBackendName,
		report.Driver,
		report.Cluster,
		gibString(report.TotalCapacityGB),
		gibString(report.FreeCapacityGB),
		gibString(report.ProvisionedCapacityGB),
	}
	if OutputFormat == FormatWide {
		row = append(row,
			strconv.FormatFloat(report.MaxOverSubscriptionRatio, 'f', -1, 64),
			strconv.Itoa(report.ReservedPercentage),
			strconv.FormatBool(report.ConsistencyGroupSupport),
			report.DriverVersion,
		)
	}
	table.Append(row)
	table.Render()
	return nil
}
