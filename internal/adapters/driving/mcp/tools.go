package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

const defaultLimit = 10

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query  string `json:"query" jsonschema:"the search query; every term must occur in a result"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Offset int    `json:"offset,omitempty" jsonschema:"number of results to skip"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string        `json:"document_id"`
	Title      string        `json:"title"`
	URI        string        `json:"uri"`
	Score      float64       `json:"score"`
	Matches    []MatchOutput `json:"matches,omitempty"`
	Highlights []string      `json:"highlights,omitempty"`
}

// MatchOutput locates a matched term in the original markup.
type MatchOutput struct {
	Term     string `json:"term"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Original string `json:"original"`
}

// TokenizeInput is the input schema for the tokenize tool.
type TokenizeInput struct {
	Text      string   `json:"text" jsonschema:"the markup or text to tokenize"`
	Tokenizer []string `json:"tokenizer,omitempty" jsonschema:"tokenizer arguments, e.g. [html unicode61] (default: the configured tokenizer)"`
	Reason    string   `json:"reason,omitempty" jsonschema:"document, query or prefix (default document)"`
}

// TokenizeOutput is the output schema for the tokenize tool.
type TokenizeOutput struct {
	Tokens []TokenOutput `json:"tokens"`
	Count  int           `json:"count"`
}

// TokenOutput is one token with the input bytes it came from.
type TokenOutput struct {
	Token     string `json:"token"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Original  string `json:"original"`
	Colocated bool   `json:"colocated,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the indexed documents. Matches carry byte offsets into the original markup.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "tokenize",
		Description: "Tokenize markup and report each token with its source offsets",
	}, s.handleTokenize)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	opts := domain.SearchOptions{Limit: limit, Offset: max(input.Offset, 0)}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		r := &results[i]
		matches := make([]MatchOutput, 0, len(r.Matches))
		for _, m := range r.Matches {
			matches = append(matches, MatchOutput{
				Term:     m.Term,
				Start:    m.Start,
				End:      m.End,
				Original: m.Original,
			})
		}
		output.Results[i] = SearchResultOutput{
			DocumentID: r.Document.ID,
			Title:      r.Document.Title,
			URI:        r.Document.URI,
			Score:      r.Score,
			Matches:    matches,
			Highlights: r.Highlights,
		}
	}

	return nil, output, nil
}

// handleTokenize handles the tokenize tool invocation.
func (s *Server) handleTokenize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TokenizeInput,
) (*mcp.CallToolResult, TokenizeOutput, error) {
	reason, err := parseReason(input.Reason)
	if err != nil {
		return nil, TokenizeOutput{}, err
	}

	args := input.Tokenizer
	if len(args) == 0 {
		args = s.ports.Tokenizer
	}

	text := []byte(input.Text)
	tokens, err := s.ports.Tokenize.Tokenize(ctx, args, reason, text)
	if err != nil {
		return nil, TokenizeOutput{}, fmt.Errorf("tokenizing: %w", err)
	}

	output := TokenizeOutput{
		Tokens: make([]TokenOutput, len(tokens)),
		Count:  len(tokens),
	}
	for i, tok := range tokens {
		output.Tokens[i] = TokenOutput{
			Token:     string(tok.Text),
			Start:     tok.Start,
			End:       tok.End,
			Original:  string(text[tok.Start:tok.End]),
			Colocated: tok.Flags&domain.TokenColocated != 0,
		}
	}

	return nil, output, nil
}

func parseReason(name string) (domain.TokenizeReason, error) {
	switch name {
	case "", "document":
		return domain.ReasonDocument, nil
	case "query":
		return domain.ReasonQuery, nil
	case "prefix":
		return domain.ReasonQuery | domain.ReasonPrefix, nil
	default:
		return 0, fmt.Errorf("unknown reason %q: want document, query or prefix", name)
	}
}
