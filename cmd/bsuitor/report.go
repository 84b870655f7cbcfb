package main

import (
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"go.bsuitor.dev/core/matching"
)

// writeReport writes a humanized table summarizing each profile Result.
func writeReport(w io.Writer, results []matching.Result) {
	var table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Profile", "Rounds", "Proposals", "Filtered", "Rejected", "Evictions", "Requeued", "Weight", "Duration"})

	for _, r := range results {
		table.Append([]string{
			strconv.Itoa(r.Profile),
			strconv.Itoa(r.Rounds),
			humanize.Comma(r.Proposals),
			humanize.Comma(r.Filtered),
			humanize.Comma(r.Rejected),
			humanize.Comma(r.Evictions),
			humanize.Comma(r.Requeued),
			humanize.Comma(int64(r.Weight)),
			r.Duration.Round(time.Microsecond).String(),
		})
	}
	table.Render()
}
