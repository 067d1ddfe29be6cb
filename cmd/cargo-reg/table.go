package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cargoreg/internal/registry"
)

const emptyListMessage = "Registries' list is empty"

// printRegistries writes one `alias => url` line per registry, or a table
// when out is a terminal.
func printRegistries(out io.Writer, registries registry.Registries) {
	if len(registries) == 0 {
		fmt.Fprintln(out, emptyListMessage)
		return
	}

	aliases := registry.SortedAliases(registries)
	if shouldColorize(out) {
		rows := make([][]string, 0, len(aliases))
		for _, alias := range aliases {
			rows = append(rows, []string{alias, registries[alias]})
		}
		fmt.Fprintln(out, renderTable([]string{"Alias", "Index URL"}, rows))
		return
	}
	for _, alias := range aliases {
		fmt.Fprintf(out, "%s => %s\n", alias, registries[alias])
	}
}

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
