// Package mcp provides an MCP (Model Context Protocol) server adapter for fts5html.
// It lets AI assistants search the index, inspect tokenization and read
// indexed markup.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingTokenizeService is returned when the tokenize service is not provided.
var ErrMissingTokenizeService = errors.New("mcp: tokenize service is required")
