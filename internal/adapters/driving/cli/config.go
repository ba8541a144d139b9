package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `View and configure the tokenizer and search defaults stored in
config.toml.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configTokenizerCmd = &cobra.Command{
	Use:   "tokenizer <name> [args...]",
	Short: "Set the tokenizer",
	Long: `Set the tokenizer argument list used for indexing and queries.
The tokenizer is built once to validate the arguments.

Examples:
  fts5html config tokenizer html unicode61
  fts5html config tokenizer html unicode61 remove_diacritics 0
  fts5html config tokenizer html ascii tokenchars -_

Documents indexed with a different tokenizer should be re-indexed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConfigTokenizer,
}

var configLimitCmd = &cobra.Command{
	Use:   "limit <n>",
	Short: "Set the default number of search results",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigLimit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configTokenizerCmd)
	configCmd.AddCommand(configLimitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("[Tokenizer]")
	cmd.Printf("  Arguments: %s\n", strings.Join(settings.Tokenizer, " "))
	cmd.Println()
	cmd.Println("[Index]")
	cmd.Printf("  Data dir: %s\n", dataDir)
	cmd.Println()
	cmd.Println("[Search]")
	cmd.Printf("  Limit: %d\n", settings.Search.Limit)
	return nil
}

func runConfigTokenizer(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetTokenizer(args); err != nil {
		return fmt.Errorf("failed to set tokenizer: %w", err)
	}

	cmd.Printf("Tokenizer set to: %s\n", strings.Join(args, " "))
	return nil
}

func runConfigLimit(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	limit, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid limit %q: %w", args[0], err)
	}
	if err := settingsService.SetSearchLimit(limit); err != nil {
		return fmt.Errorf("failed to set limit: %w", err)
	}

	cmd.Printf("Search limit set to: %d\n", limit)
	return nil
}
