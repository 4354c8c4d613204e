package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/indichart/config"
)

func newConfigCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate run configuration files",
		Long: `Manage run configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  indichart config init -o run.yaml
  indichart config validate -f run.yaml`,
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigValidateCmd(rc))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := cfg.SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created default configuration: %s\n", output)
			fmt.Fprintln(out, "\nEdit the file and run with:")
			fmt.Fprintf(out, "  indichart build --config %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "indichart.yaml", "output config file path")
	return cmd
}

func newConfigValidateCmd(rc *RootConfig) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = rc.ConfigPath
			}
			if path == "" {
				return fmt.Errorf("--file or --config is required")
			}
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			reg, err := cfg.Registry()
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			if _, err := reg.Get(cfg.Profile.Name); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration valid: %s\n", path)
			fmt.Fprintf(out, "  Source:  %s (%s)\n", cfg.Source.Path, cfg.SourceFormat())
			fmt.Fprintf(out, "  Mapping: %s\n", cfg.Mapping.Variant)
			fmt.Fprintf(out, "  Profile: %s\n", cfg.Profile.Name)
			fmt.Fprintf(out, "  Output:  %s -> %s\n", cfg.Output.Format, outputName(cfg.Output.Path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "path to config file")
	return cmd
}
