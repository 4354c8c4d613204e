package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rustyeddy/indichart/chart"
	"github.com/rustyeddy/indichart/config"
	"github.com/rustyeddy/indichart/internal/logging"
	"github.com/rustyeddy/indichart/profile"
	"github.com/rustyeddy/indichart/table"
)

const rsiCSV = `Date,Close,Open,High,Low,Volume,RSI_14
2024-01-02,101.5,100.0,102.0,99.5,"1,200",55.3
2024-01-03,104.0,101.5,105.0,101.0,"1,900",72.4
`

func writeCSV(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "rsi_14.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestBuildJSON(t *testing.T) {
	src := writeCSV(t, t.TempDir(), rsiCSV)

	out, logs, err := execute(t, "build", "-s", src, "-p", "rsi_14")
	require.NoError(t, err)

	var spec chart.Spec
	require.NoError(t, json.Unmarshal([]byte(out), &spec))
	assert.Equal(t, "rsi_14", spec.Profile)
	require.Len(t, spec.Panes, 3)
	assert.Equal(t, 60.0, spec.Panes[1].Top)
	assert.Len(t, spec.Series[0].Candles, 2)

	assert.Contains(t, logs, "chart built")
	assert.Contains(t, logs, "request_id")
}

func TestBuildOutputFormats(t *testing.T) {
	dir := t.TempDir()
	src := writeCSV(t, dir, rsiCSV)

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"plot_lines"`},
		{"yaml", "plot_lines:"},
		{"highcharts", `"yAxis"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(dir, "out."+tt.format)
			out, _, err := execute(t, "build", "-s", src, "-p", "rsi_14", "-f", tt.format, "-o", path)
			require.NoError(t, err)
			assert.Empty(t, out)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	src := writeCSV(t, t.TempDir(), rsiCSV)

	a, _, err := execute(t, "build", "-s", src, "-p", "rsi_14", "-f", "highcharts")
	require.NoError(t, err)
	b, _, err := execute(t, "build", "-s", src, "-p", "rsi_14", "-f", "highcharts")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildErrors(t *testing.T) {
	dir := t.TempDir()
	src := writeCSV(t, dir, rsiCSV)

	t.Run("missing table", func(t *testing.T) {
		_, _, err := execute(t, "build", "-s", filepath.Join(dir, "nope.csv"), "-p", "rsi_14")
		var mte *table.MissingTableError
		assert.True(t, errors.As(err, &mte))
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, _, err := execute(t, "build", "-s", src, "-p", "rsi_99")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown profile")
	})

	t.Run("indicator columns absent", func(t *testing.T) {
		_, _, err := execute(t, "build", "-s", src, "-p", "cmf_20", "--mapping", "header")
		var pme *chart.ProfileMismatchError
		require.True(t, errors.As(err, &pme))
		assert.Equal(t, "CMF_20", pme.Field)
	})

	t.Run("malformed row", func(t *testing.T) {
		bad := writeCSV(t, t.TempDir(), "Date,Close,Open,High,Low,Volume,RSI_14\n2024-01-02,N/A,1,2,0.5,10,50\n")
		_, logs, err := execute(t, "build", "-s", bad, "-p", "rsi_14")
		var mre *table.MalformedRowError
		require.True(t, errors.As(err, &mre))
		assert.Contains(t, logs, "build chart")
	})

	t.Run("bad format", func(t *testing.T) {
		_, _, err := execute(t, "build", "-s", src, "-p", "rsi_14", "-f", "svg")
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		_, _, err := execute(t, "--log-level", "loud", "build", "-s", src, "-p", "rsi_14")
		assert.Error(t, err)
	})
}

func TestBuildFromConfig(t *testing.T) {
	dir := t.TempDir()
	src := writeCSV(t, dir, rsiCSV)
	cfgPath := filepath.Join(dir, "run.yaml")
	outPath := filepath.Join(dir, "spec.json")

	body := "source:\n  path: " + src + "\nmapping:\n  variant: header\nprofile:\n  name: rsi_14\noutput:\n  path: " + outPath + "\n  format: json\nlog:\n  level: warn\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0644))

	_, logs, err := execute(t, "--config", cfgPath, "build")
	require.NoError(t, err)
	assert.NotContains(t, logs, "chart built")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var spec chart.Spec
	require.NoError(t, json.Unmarshal(data, &spec))
	assert.Equal(t, 55.3, spec.Series[1].Points[0].Value)
}

func TestInspect(t *testing.T) {
	src := writeCSV(t, t.TempDir(), rsiCSV)

	out, _, err := execute(t, "inspect", "-s", src, "-p", "rsi_14")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-03")
	assert.Contains(t, out, "105")
	assert.Contains(t, out, "72.4")
	assert.Contains(t, out, "Overbought")
}

func TestProfiles(t *testing.T) {
	out, _, err := execute(t, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "macd_12_26_9")
	assert.Contains(t, out, "60/30/10")
	assert.Contains(t, out, "90/10")

	_, _, err = execute(t, "profiles", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	out, _, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	out, _, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "rsi_14")

	_, _, err = execute(t, "config", "validate")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "indichart dev\n", out)
}

func TestWatchFileRebuildsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, rsiCSV)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 20*time.Millisecond, zap.NewNop(), func() { calls.Add(1) })
	}()

	// other files in the directory are ignored
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0644)
		_ = os.WriteFile(path, []byte(rsiCSV), 0644)
		return calls.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchFile did not return after cancel")
	}
}

func TestWatchNeedsOutput(t *testing.T) {
	src := writeCSV(t, t.TempDir(), rsiCSV)
	_, _, err := execute(t, "watch", "-s", src, "-p", "rsi_14")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output file")
}

func TestBuildProfileFieldsAbsentFromTable(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		profile string
		field   string
	}{
		{"other indicator table", rsiCSV, "cmf_20", "CMF_20"},
		{"header only", "Date,Close,Open,High,Low,Volume\n", "rsi_14", "RSI_14"},
		{"renamed column", "Date,Close,Open,High,Low,Volume,RSI_9\n2024-01-02,1,1,1,1,10,40\n", "rsi_14", "RSI_14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, t.TempDir(), tt.body)

			out, _, err := execute(t, "build", "-s", path, "-p", tt.profile)
			var pme *chart.ProfileMismatchError
			require.True(t, errors.As(err, &pme), "err = %v", err)
			assert.Equal(t, tt.field, pme.Field)
			assert.Empty(t, out)
		})
	}
}

func TestRenderLogsEncodeFailure(t *testing.T) {
	src := writeCSV(t, t.TempDir(), rsiCSV)
	cfg := config.Default()
	cfg.Output.Format = "svg"

	var logs bytes.Buffer
	log, err := logging.New("info", &logs)
	require.NoError(t, err)

	r := &run{cfg: cfg, label: src, src: table.NewCSV(src), profile: profile.RSI(14)}
	err = r.render(log, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, logs.String(), "encode chart")
	assert.Contains(t, logs.String(), "svg")
}

func TestSourceFlagChecksOutputFormat(t *testing.T) {
	dir := t.TempDir()
	src := writeCSV(t, dir, rsiCSV)

	for _, name := range []string{"build", "watch"} {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, name, "-s", src, "-p", "rsi_14", "-f", "svg", "-o", filepath.Join(dir, "out.svg"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "output.format")
		})
	}
}

// lockedBuffer lets the test read logs while the watch goroutine writes them.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchLogsFailingRebuild(t *testing.T) {
	dir := t.TempDir()
	src := writeCSV(t, dir, "Date,Close,Open,High,Low,Volume,RSI_14\n2024-01-02,N/A,1,2,0.5,10,50\n")

	var out, logs lockedBuffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs([]string{"watch", "-s", src, "-p", "rsi_14", "-o", filepath.Join(dir, "spec.json")})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		l := logs.String()
		return strings.Contains(l, "build chart") && strings.Contains(l, "watching")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, logs.String(), "N/A")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	_, err := os.Stat(filepath.Join(dir, "spec.json"))
	assert.True(t, os.IsNotExist(err))
}
