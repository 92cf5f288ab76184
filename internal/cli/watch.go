package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/irsum/internal/logger"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-analyze a capture file whenever it changes",
		Long: `Analyze a capture file, then watch it and print a fresh report after
every change. Writes that arrive within the debounce period are folded into one
analysis. A failed analysis is reported and watching continues.

Press Ctrl+C to stop watching.

Examples:
  irsum watch tv.ir
  irsum watch -o csv tv.ir`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	addAnalysisFlags(cmd)

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := resolveAnalyzeOptions(cmd)
	if err != nil {
		return err
	}

	path := filepath.Clean(args[0])
	if err := validateWatchFilePath(path); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	log := newLogger("watch")
	out := cmd.OutOrStdout()

	watcher, err := createWatcher(path)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	analyzeOnce := func() {
		reportChange(ctx, out, path, opts, log)
	}

	analyzeOnce()
	log.Info("watching %s, press Ctrl+C to stop", path)

	loop := &watchLoop{
		watcher:  watcher,
		path:     path,
		debounce: GetGlobalConfig().Watch.Debounce,
		onChange: analyzeOnce,
		log:      log,
	}
	return loop.run(ctx)
}

// reportChange analyzes the file and prints the report, or the failure
func reportChange(ctx context.Context, out io.Writer, path string, opts *analyzeOptions, log *logger.Logger) {
	fmt.Fprintf(out, "%s [%s] %s\n", GetEmoji("watch"), time.Now().Format("15:04:05"), path)

	file, err := readCapture(path, opts.maxFileSize, log)
	if err == nil {
		runCtx, cancel := analysisContext(ctx, opts.timeout)
		var output []byte
		output, err = analyzeAndRender(runCtx, newEngine(opts, log), file, opts.format, path)
		cancel()
		if err == nil {
			_, _ = out.Write(output)
			fmt.Fprintln(out)
			return
		}
	}

	fmt.Fprintf(out, "%s %v\n\n", GetEmoji("error"), err)
}

// watchLoop turns file system events for one file into debounced callbacks
type watchLoop struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()
	log      *logger.Logger
}

func (w *watchLoop) run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("stopping watch")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.log.DebugWithFields("file event", []logger.Field{
				logger.F("op", event.Op.String()),
				logger.F("path", event.Name),
			})
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)
		}
	}
}

// relevant reports whether the event changed the watched file's content
func (w *watchLoop) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// createWatcher watches the file's directory so that editors replacing
// the file are still seen
func createWatcher(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Warn("failed to close watcher: %v", err)
	}
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
