package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/indichart/chart"
	"github.com/rustyeddy/indichart/config"
	"github.com/rustyeddy/indichart/highcharts"
	"github.com/rustyeddy/indichart/pkg/id"
	"github.com/rustyeddy/indichart/profile"
	"github.com/rustyeddy/indichart/table"
)

// runFlags override the run config for one command. Empty values leave the
// config alone.
type runFlags struct {
	source      string
	profile     string
	profileFile string
	mapping     string
	format      string
	output      string
}

func (f *runFlags) register(cmd *cobra.Command, withOutput bool) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "Table handle: file.csv, book.xlsx#Sheet, page.html#class, sqlite:file.db#table")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "Profile name (see 'indichart profiles')")
	cmd.Flags().StringVar(&f.profileFile, "profile-file", "", "YAML file with extra profiles")
	cmd.Flags().StringVar(&f.mapping, "mapping", "", "Column mapping: main|indicator|header")
	if withOutput {
		cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: json|yaml|highcharts")
		cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default stdout)")
	}
}

// run is one resolved render request.
type run struct {
	cfg     *config.Config
	label   string
	src     table.Source
	profile profile.Profile
}

func (f *runFlags) prepare(rc *RootConfig) (*run, error) {
	cfg := *rc.Config
	if f.profile != "" {
		cfg.Profile.Name = f.profile
	}
	if f.profileFile != "" {
		cfg.Profile.File = f.profileFile
	}
	if f.mapping != "" {
		cfg.Mapping.Variant = f.mapping
	}
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.output != "" {
		cfg.Output.Path = f.output
	}

	r := &run{cfg: &cfg}
	var err error
	if f.source != "" {
		if err := cfg.ValidateOutput(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		r.label = f.source
		r.src, err = table.Open(f.source)
	} else {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		r.label = cfg.Source.Path
		r.src, err = cfg.OpenSource()
	}
	if err != nil {
		return nil, err
	}

	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	r.profile, err = reg.Get(cfg.Profile.Name)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *run) build() (*chart.Spec, error) {
	m, err := r.cfg.ColumnMapping(r.src, r.profile)
	if err != nil {
		return nil, err
	}
	return chart.BuildChart(r.src, m, r.profile)
}

// render builds the chart spec and writes it to the configured output, or to w
// when no output path is set.
func (r *run) render(log *zap.Logger, w io.Writer) error {
	log = log.With(
		zap.String("request_id", id.New()),
		zap.String("source", r.label),
		zap.String("profile", r.profile.Name),
	)
	start := time.Now()

	spec, err := r.build()
	if err != nil {
		log.Error("build chart", zap.Error(err))
		return err
	}
	data, err := encode(spec, r.cfg.Output.Format)
	if err != nil {
		log.Error("encode chart", zap.Error(err))
		return err
	}
	if err := writeOutput(w, r.cfg.Output.Path, data); err != nil {
		log.Error("write chart", zap.Error(err))
		return err
	}

	log.Info("chart built",
		zap.Int("rows", len(spec.Series[0].Candles)),
		zap.Int("panes", len(spec.Panes)),
		zap.Int("series", len(spec.Series)),
		zap.String("output", outputName(r.cfg.Output.Path)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

func encode(spec *chart.Spec, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case config.FormatJSON, "":
		data, err = json.MarshalIndent(spec, "", "  ")
	case config.FormatYAML:
		return yaml.Marshal(spec)
	case config.FormatHighcharts:
		data, err = highcharts.Marshal(spec)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return append(data, '\n'), nil
}

func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
