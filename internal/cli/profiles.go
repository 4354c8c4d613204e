package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/indichart/profile"
)

func newProfilesCmd(rc *RootConfig) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the available indicator profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *rc.Config
			if file != "" {
				cfg.Profile.File = file
			}
			reg, err := cfg.Registry()
			if err != nil {
				return err
			}
			return printProfiles(cmd.OutOrStdout(), reg)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file with extra profiles")
	return cmd
}

func printProfiles(w io.Writer, reg *profile.Registry) error {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Name", "Kind", "Panes", "Fields"})
	for _, name := range reg.Names() {
		p, err := reg.Get(name)
		if err != nil {
			return err
		}
		t.Append([]string{p.Name, string(p.Kind), paneLayout(p), strings.Join(p.Fields(), ", ")})
	}
	t.Render()
	return nil
}

// paneLayout renders the pane heights top to bottom, e.g. 60/30/10.
func paneLayout(p profile.Profile) string {
	parts := []string{fmt.Sprint(p.PriceHeight)}
	for _, pane := range p.Panes {
		parts = append(parts, fmt.Sprint(pane.Height))
	}
	parts = append(parts, fmt.Sprint(p.VolumeHeight))
	return strings.Join(parts, "/")
}
