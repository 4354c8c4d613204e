package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/indichart/config"
	"github.com/rustyeddy/indichart/internal/logging"
)

// RootConfig carries the persistent flags and what PersistentPreRunE
// derives from them.
type RootConfig struct {
	ConfigPath string
	LogLevel   string

	Config *config.Config
	Log    *zap.Logger
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "indichart",
		Short:         "Build stock indicator chart specs from tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to run config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if rc.ConfigPath != "" {
			loaded, err := config.LoadFromFile(rc.ConfigPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if cmd.Flags().Changed("log-level") || rc.ConfigPath == "" {
			cfg.Log.Level = rc.LogLevel
		}

		log, err := logging.New(cfg.Log.Level, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		rc.Config = cfg
		rc.Log = log
		return nil
	}

	cmd.AddCommand(
		newBuildCmd(rc),
		newInspectCmd(rc),
		newProfilesCmd(rc),
		newWatchCmd(rc),
		newConfigCmd(rc),
		newVersionCmd(),
	)

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
