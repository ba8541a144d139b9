package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gyf304/sqlite3-fts5-html/internal/connectors/filesystem"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage indexed documents",
	Long:  `List, inspect or remove indexed documents.`,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

var docsShowCmd = &cobra.Command{
	Use:   "show [uri]",
	Short: "Show document info and extracted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsShow,
}

var docsRemoveCmd = &cobra.Command{
	Use:   "remove [uri]",
	Short: "Remove a document from the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsRemove,
}

func init() {
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsShowCmd)
	docsCmd.AddCommand(docsRemoveCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	docs, err := indexService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents indexed.")
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	for i := range docs {
		cmd.Printf("  %s\n", st.render(st.URI, docs[i].URI))
		cmd.Printf("    Title:   %s\n", docs[i].Title)
		cmd.Printf("    Updated: %s\n", docs[i].UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runDocsShow(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	uri := resolveDocURI(args[0])
	docs, err := indexService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	for i := range docs {
		doc := &docs[i]
		if doc.URI != uri && doc.URI != args[0] {
			continue
		}

		cmd.Printf("Document: %s\n\n", doc.URI)
		cmd.Printf("  ID:       %s\n", doc.ID)
		cmd.Printf("  Title:    %s\n", doc.Title)
		cmd.Printf("  Size:     %d bytes\n", len(doc.Content))
		cmd.Printf("  Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("  Updated:  %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))

		if len(doc.Metadata) > 0 {
			keys := make([]string, 0, len(doc.Metadata))
			for k := range doc.Metadata {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			cmd.Println("\n  Metadata:")
			for _, k := range keys {
				cmd.Printf("    %s: %v\n", k, doc.Metadata[k])
			}
		}

		cmd.Println("\n  Text:")
		cmd.Println(doc.Text)
		return nil
	}

	return fmt.Errorf("document %s not found", args[0])
}

func runDocsRemove(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	uri := resolveDocURI(args[0])
	err := indexService.Remove(cmd.Context(), uri)
	if err != nil && uri != args[0] {
		err = indexService.Remove(cmd.Context(), args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Document %s removed from index.\n", args[0])
	return nil
}

// resolveDocURI maps a path argument to the absolute path documents are
// indexed under, leaving it unchanged when it cannot be resolved.
func resolveDocURI(arg string) string {
	uri, err := filesystem.ResolveURI(arg)
	if err != nil || uri == "" {
		return arg
	}
	return uri
}
