package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

var (
	searchLimit  int
	searchOffset int
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Tokenizes the query with the index tokenizer and lists the documents that
contain every query term, best first. Each result shows snippets of decoded
text around the matches; --json also reports the byte range and original
markup of every match.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// resultJSON is the JSON form of one search result.
type resultJSON struct {
	ID         string      `json:"id"`
	URI        string      `json:"uri"`
	Title      string      `json:"title"`
	Score      float64     `json:"score"`
	Matches    []matchJSON `json:"matches"`
	Highlights []string    `json:"highlights"`
}

type matchJSON struct {
	Term     string `json:"term"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Original string `json:"original"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Limit:  searchLimit,
		Offset: searchOffset,
	}
	if opts.Limit <= 0 && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			opts.Limit = settings.Search.Limit
		}
	}

	st := newStyles(cmd.OutOrStdout())
	if !searchJSON {
		searchService.SetHighlighter(st.mark())
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, st, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	out := make([]resultJSON, 0, len(results))
	for i := range results {
		r := &results[i]
		matches := make([]matchJSON, 0, len(r.Matches))
		for _, m := range r.Matches {
			matches = append(matches, matchJSON(m))
		}
		out = append(out, resultJSON{
			ID:         r.Document.ID,
			URI:        r.Document.URI,
			Title:      r.Document.Title,
			Score:      r.Score,
			Matches:    matches,
			Highlights: r.Highlights,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, st *styles, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] Title (Score)
		title := results[i].Document.Title
		if title == "" {
			title = results[i].Document.URI
		}

		cmd.Printf("  [%d] %s %s\n", i+1, st.render(st.Title, title),
			st.render(st.Muted, fmt.Sprintf("(%.0f)", results[i].Score)))
		cmd.Printf("      %s\n", st.render(st.URI, results[i].Document.URI))
		for _, h := range results[i].Highlights {
			cmd.Printf("      %s\n", h)
		}
		cmd.Println()
	}

	return nil
}
