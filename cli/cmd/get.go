// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/netapp/xtremio-driver/pkg/convert"
)

func init() {
	RootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get one or more resources from the array",
}

func WriteJSON(w io.Writer, out interface{}) error {
	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}

func WriteYAML(w io.Writer, out interface{}) error {
	jsonBytes, err := json.Marshal(out)
	if err != nil {
		return err
	}
	yamlBytes, err := yaml.JSONToYAML(jsonBytes)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(yamlBytes))
	return err
}

// column is one property of an untyped array record shown in a table.
type column struct {
	Property string
	Header   string
}

func (c column) header() string {
	if c.Header != "" {
		return c.Header
	}
	return convert.ToTitle(strings.ReplaceAll(c.Property, "-", " "))
}

// writeRecordTable prints untyped array records, one column per property.
func writeRecordTable(w io.Writer, records []map[string]any, columns []column) {
	table := tablewriter.NewWriter(w)
	header := make([]string, 0, len(columns))
	for _, c := range columns {
		header = append(header, c.header())
	}
	table.SetHeader(header)

	for _, record := range records {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			row = append(row, recordValue(record[c.Property]))
		}
		table.Append(row)
	}

	table.Render()
}

// recordValue renders a record field. Id tuples ([guid, name, index]) render as their name.
func recordValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return fmt.Sprintf("%.0f", value)
	case []any:
		if len(value) == 3 {
			return recordValue(value[1])
		}
		parts := make([]string, 0, len(value))
		for _, item := range value {
			parts = append(parts, recordValue(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", value)
	}
}

func writeRecordNames(w io.Writer, records []map[string]any) {
	for _, record := range records {
		fmt.Fprintln(w, recordValue(record["name"]))
	}
}

// writeRecords prints untyped records in the selected output format.
func writeRecords(w io.Writer, records []map[string]any, columns, wideColumns []column) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(w, recordsResponse{Items: records})
	case FormatYAML:
		return WriteYAML(w, recordsResponse{Items: records})
	case FormatName:
		writeRecordNames(w, records)
	case FormatWide:
		writeRecordTable(w, records, append(append([]column{}, columns...), wideColumns...))
	default:
		writeRecordTable(w, records, columns)
	}
	return nil
}

type recordsResponse struct {
	Items []map[string]any `json:"items"`
}
