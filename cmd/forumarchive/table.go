package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. Numeric columns are right-aligned.
type column struct {
	title   string
	numeric bool
}

var folderColumns = []column{
	{title: "Folder"},
	{title: "Page"},
	{title: "Threads", numeric: true},
	{title: "Messages", numeric: true},
}

var threadColumns = []column{
	{title: "Thread ID"},
	{title: "Title"},
	{title: "Author"},
	{title: "First posted"},
	{title: "Messages", numeric: true},
	{title: "Replies", numeric: true},
}

// renderTable draws rows in the rounded go-pretty style. Short rows are padded
// with blanks; totals, when given, become the footer.
func renderTable(columns []column, rows [][]string, totals []string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.title
		align := text.AlignLeft
		if c.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft, AlignFooter: align}
	}
	tw.AppendHeader(header)
	for _, row := range rows {
		tw.AppendRow(padRow(row, len(columns)))
	}
	if totals != nil {
		tw.AppendFooter(padRow(totals, len(columns)))
	}
	tw.SetColumnConfigs(configs)
	return strings.TrimRight(tw.Render(), "\n")
}

func padRow(values []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
