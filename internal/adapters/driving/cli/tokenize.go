package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

var (
	tokenizeText   string
	tokenizeQuery  bool
	tokenizePrefix bool
	tokenizeJSON   bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file|-]",
	Short: "Print the tokens of a document",
	Long: `Tokenizes a file, standard input or --text and prints one line per token:
the start and end byte offsets in the input, the token, and the input bytes
the token came from.

The tokenizer is taken from --tokenizer or the configuration, e.g.
  fts5html tokenize --tokenizer html,unicode61,remove_diacritics,0 page.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().StringVarP(&tokenizeText, "text", "t", "", "tokenize this text instead of a file")
	tokenizeCmd.Flags().BoolVar(&tokenizeQuery, "query", false, "tokenize as a query instead of a document")
	tokenizeCmd.Flags().BoolVar(&tokenizePrefix, "prefix", false, "tokenize as a prefix query")
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "output tokens as JSON")
	rootCmd.AddCommand(tokenizeCmd)
}

// tokenJSON is the JSON form of one token.
type tokenJSON struct {
	Token     string `json:"token"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Original  string `json:"original"`
	Colocated bool   `json:"colocated,omitempty"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	if tokenizeService == nil {
		return errors.New("tokenize service not configured")
	}

	input, err := readTokenizeInput(cmd, args)
	if err != nil {
		return err
	}

	reason := domain.ReasonDocument
	switch {
	case tokenizePrefix:
		reason = domain.ReasonQuery | domain.ReasonPrefix
	case tokenizeQuery:
		reason = domain.ReasonQuery
	}

	tokens, err := tokenizeService.Tokenize(cmd.Context(), tokenizerArgs, reason, input)
	if err != nil {
		return fmt.Errorf("tokenize failed: %w", err)
	}

	out := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tokenJSON{
			Token:     string(tok.Text),
			Start:     tok.Start,
			End:       tok.End,
			Original:  string(input[tok.Start:tok.End]),
			Colocated: tok.Flags&domain.TokenColocated != 0,
		})
	}

	if tokenizeJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tokens: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	for _, tok := range out {
		cmd.Printf("%6d %6d  %-20s %s\n", tok.Start, tok.End, tok.Token,
			st.render(st.Muted, fmt.Sprintf("%q", tok.Original)))
	}
	return nil
}

func readTokenizeInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if cmd.Flags().Changed("text") {
		return []byte(tokenizeText), nil
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}
