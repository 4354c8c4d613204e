package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/indichart/chart"
	"github.com/rustyeddy/indichart/market"
	"github.com/rustyeddy/indichart/table"
)

func newInspectCmd(rc *RootConfig) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a table and the latest indicator readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := f.prepare(rc)
			if err != nil {
				return err
			}
			m, err := r.cfg.ColumnMapping(r.src, r.profile)
			if err != nil {
				return err
			}
			b, err := table.Extract(r.src, m)
			if err != nil {
				rc.Log.Error("extract table", zap.String("source", r.label), zap.Error(err))
				return err
			}
			rc.Log.Debug("table extracted", zap.String("source", r.label), zap.Int("rows", b.Len()))

			out := cmd.OutOrStdout()
			printSummary(out, r.label, b)
			fmt.Fprintln(out)
			printReadings(out, chart.Readings(r.profile, b))
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}

func printSummary(w io.Writer, label string, b *market.Bundle) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Metric", "Value"})
	t.Append([]string{"Source", label})
	t.Append([]string{"Rows", strconv.Itoa(b.Len())})
	if first, last, ok := b.DateRange(); ok {
		t.Append([]string{"From", first.Format("2006-01-02")})
		t.Append([]string{"To", last.Format("2006-01-02")})
	}
	if high, low, ok := market.HighLow(b.Candles); ok {
		t.Append([]string{"High", formatValue(high)})
		t.Append([]string{"Low", formatValue(low)})
	}
	t.Render()
}

func printReadings(w io.Writer, rs []chart.Reading) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Field", "Pane", "Date", "Value", "Reading"})
	for _, r := range rs {
		t.Append([]string{r.Field, r.Pane, r.Date.Format("2006-01-02"), formatValue(r.Value), r.Zone})
	}
	t.Render()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
