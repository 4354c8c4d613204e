package cli

import (
	"github.com/spf13/cobra"
)

func newBuildCmd(rc *RootConfig) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a chart spec from an indicator table",
		Long: `Read one table, bind it to an indicator profile and write the chart spec.

Examples:
  indichart build -s rsi_14.csv -p rsi_14
  indichart build -s book.xlsx#Main -p main --mapping main -f highcharts -o main.json
  indichart build --config run.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := f.prepare(rc)
			if err != nil {
				return err
			}
			return r.render(rc.Log, cmd.OutOrStdout())
		},
	}
	f.register(cmd, true)
	return cmd
}
