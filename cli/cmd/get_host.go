// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api"
)

var (
	initiatorGroupColumns = []column{{Property: "name"}, {Property: "num-of-vols", Header: "Volumes"}}
	initiatorGroupWide    = []column{{Property: "index"}, {Property: "ig-id", Header: "GUID"}}

	initiatorColumns = []column{
		{Property: "name"},
		{Property: "port-address"},
		{Property: "ig-id", Header: "Initiator Group"},
	}
	initiatorWide = []column{{Property: "index"}}

	lunMapColumns = []column{
		{Property: "vol-name", Header: "Volume"},
		{Property: "ig-name", Header: "Initiator Group"},
		{Property: "lun", Header: "LUN"},
	}
	lunMapWide = []column{{Property: "name"}, {Property: "tg-name", Header: "Target Group"}}
)

func init() {
	getCmd.AddCommand(getInitiatorGroupCmd)
	getCmd.AddCommand(getInitiatorCmd)
	getCmd.AddCommand(getLunMapCmd)
}

var getInitiatorGroupCmd = &cobra.Command{
	Use:     "initiator-group [<name>...]",
	Short:   "Get one or more initiator groups from the array",
	Aliases: []string{"ig", "initiator-groups"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecordList(cmd, api.CollectionInitiatorGroups, args, initiatorGroupColumns, initiatorGroupWide)
	},
}

var getInitiatorCmd = &cobra.Command{
	Use:     "initiator [<name>...]",
	Short:   "Get one or more initiators from the array",
	Aliases: []string{"initiators"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecordList(cmd, api.CollectionInitiators, args, initiatorColumns, initiatorWide)
	},
}

var getLunMapCmd = &cobra.Command{
	Use:     "lun-map [<name>...]",
	Short:   "Get one or more LUN mappings from the array",
	Aliases: []string{"lunmap", "lun-maps"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecordList(cmd, api.CollectionLunMaps, args, lunMapColumns, lunMapWide)
	},
}

func runRecordList(cmd *cobra.Command, collection string, names []string, columns, wideColumns []column) error {
	ctx := cliContext(WorkflowNone)
	d, err := loadDriver(ctx)
	if err != nil {
		return err
	}
	client, err := arrayClient(d)
	if err != nil {
		return err
	}

	records, err := recordList(ctx, client.Records(collection), names)
	if err != nil {
		return err
	}
	return writeRecords(cmd.OutOrStdout(), records, columns, wideColumns)
}

// recordList reads the named records of a collection, or all of them when no names are given.
func recordList(
	ctx context.Context, records api.Collection[map[string]any], names []string,
) ([]map[string]any, error) {
	if len(names) == 0 {
		return records.ListFull(ctx, api.Query{})
	}

	list := make([]map[string]any, 0, len(names))
	for _, name := range names {
		record, err := records.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		list = append(list, *record)
	}
	return list, nil
}
