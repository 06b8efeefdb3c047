package cmd

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	return table
}

func stars(value float64) string {
	return humanize.FormatFloat("#,###.##", value)
}

func pp(value float64) string {
	return humanize.FormatFloat("#,###.#", value)
}

func count(value int) string {
	return humanize.Comma(int64(value))
}
