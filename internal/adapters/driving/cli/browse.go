package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gyf304/sqlite3-fts5-html/internal/adapters/driving/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [query]",
	Short: "Browse search results interactively",
	Long: `Opens a terminal browser over the index: type a query, move through the
results with the arrow keys and read the highlights and match offsets of
the selected document. ] and [ page through results.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func newBrowser(cmd *cobra.Command, args []string) (*tui.Browser, error) {
	if searchService == nil {
		return nil, errors.New("search service not configured")
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	limit := 0
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			limit = settings.Search.Limit
		}
	}

	st := newStyles(cmd.OutOrStdout())
	searchService.SetHighlighter(st.mark())

	return tui.NewBrowser(cmd.Context(), searchService, query, limit), nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	browser, err := newBrowser(cmd, args)
	if err != nil {
		return err
	}

	p := tea.NewProgram(browser, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}
