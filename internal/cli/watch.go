package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/indichart/table"
)

const defaultDebounce = 250 * time.Millisecond

func newWatchCmd(rc *RootConfig) *cobra.Command {
	var (
		f        runFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the chart spec every time the source table changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := f.prepare(rc)
			if err != nil {
				return err
			}
			if r.cfg.Output.Path == "" {
				return fmt.Errorf("watch needs an output file (-o)")
			}
			path := table.PathOf(r.src)
			if path == "" {
				return fmt.Errorf("source %s is not a file", r.label)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rebuild := func() {
				// render logs every failure; the watch goes on
				_ = r.render(rc.Log, cmd.OutOrStdout())
			}
			rebuild()

			rc.Log.Info("watching", zap.String("path", path), zap.Duration("debounce", debounce))
			return watchFile(ctx, path, debounce, rc.Log, rebuild)
		},
	}
	f.register(cmd, true)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "Quiet period after the last write before rebuilding")
	return cmd
}

// watchFile calls fn once the file at path has been created or written and
// then left alone for the debounce period. The parent directory is watched
// so editors that replace the file are still seen. It returns when ctx is
// done.
func watchFile(ctx context.Context, path string, debounce time.Duration, log *zap.Logger, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("source changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(debounce)

		case <-timer.C:
			fn()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}
