package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/gyf304/sqlite3-fts5-html/internal/connectors/filesystem"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driving"
)

var indexWatch bool

var indexCmd = &cobra.Command{
	Use:   "index <path>...",
	Short: "Index files and directories",
	Long: `Indexes files and every supported file below the given directories.
Hidden files and directories are skipped. Re-indexing a file replaces its
previous version.

With --watch the paths are watched after indexing and changed files are
re-indexed until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "keep watching the paths for changes")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := cmd.Context()
	st := newStyles(cmd.OutOrStdout())
	progress := indexProgress(cmd, st)

	connectors := make([]*filesystem.Connector, 0, len(args))
	defer func() {
		for _, c := range connectors {
			_ = c.Close()
		}
	}()

	total := driving.SyncStatus{}
	var errs []error
	for _, arg := range args {
		path, err := filesystem.ResolveURI(arg)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", arg, err)
		}
		connector := filesystem.New(path, mimeTypes...)
		connectors = append(connectors, connector)

		status, err := syncOrchestrator.Sync(ctx, connector, progress)
		if status != nil {
			total.Created += status.Created
			total.Updated += status.Updated
			total.Failed += status.Failed
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", arg, err))
		}
	}

	cmd.Printf("Indexed %d documents (%d created, %d updated, %d failed)\n",
		total.Processed(), total.Created, total.Updated, total.Failed)

	if err := errors.Join(errs...); err != nil {
		return err
	}
	if !indexWatch {
		return nil
	}
	return watchPaths(ctx, cmd, connectors, progress)
}

func watchPaths(
	ctx context.Context, cmd *cobra.Command, connectors []*filesystem.Connector, progress driving.ProgressFunc,
) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cmd.Printf("Watching %d path(s). Press Ctrl+C to stop.\n", len(connectors))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, c := range connectors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := syncOrchestrator.Watch(ctx, c, progress); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", c.Root(), err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// indexProgress prints one line per processed document. It is safe for
// concurrent use by several watchers.
func indexProgress(cmd *cobra.Command, st *styles) driving.ProgressFunc {
	var mu sync.Mutex
	return func(uri string, change domain.ChangeType, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			cmd.Printf("  %-8s %s: %s\n", st.render(st.Error, "failed"), uri, err)
			return
		}
		cmd.Printf("  %-8s %s\n", st.render(st.Success, change.String()), st.render(st.URI, uri))
	}
}
