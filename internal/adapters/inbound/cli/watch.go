package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anditpl/a11y-audit/internal/adapters/outbound/config"
	"github.com/anditpl/a11y-audit/internal/domain"
	"github.com/anditpl/a11y-audit/internal/logging"
)

const watchDebounce = 300 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var (
		pagesDir string
		debug    bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the audit batch when local page files change",
		Long:  "Watch the pages directory and re-run the full audit batch after each burst of file changes. Stops when the command's context is canceled.",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(debug)
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			cfg, err := config.New().Load(".")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("pages-dir") {
				cfg.PagesDir = pagesDir
			}

			return watchLoop(cmd, cfg, log)
		},
	}

	cmd.Flags().StringVar(&pagesDir, "pages-dir", "pages", "Directory of local page files to watch")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

// watchLoop re-runs the batch after each debounced burst of page-file
// events. Only page files trigger a run.
func watchLoop(cmd *cobra.Command, cfg domain.RunConfig, log *zap.SugaredLogger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cfg.PagesDir); err != nil {
		return fmt.Errorf("watching %s: %w", cfg.PagesDir, err)
	}

	log.Infow("watching for page changes", "dir", cfg.PagesDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes. Press Ctrl+C to stop.\n", cfg.PagesDir)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	runs := make(chan struct{}, 1)
	trigger := func() {
		select {
		case runs <- struct{}{}:
		default:
		}
	}

	done := cmd.Context().Done()
	for {
		select {
		case <-done:
			return nil
		case <-runs:
			if err := runAudit(cmd, cfg, nil, false, false, log); err != nil {
				log.Warnw("audit run failed", "error", err)
			}
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, domain.PageExtension) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watch error", "error", err)
		}
	}
}
