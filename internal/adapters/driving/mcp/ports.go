package mcp

import (
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Search answers the search tool.
	Search driving.SearchService

	// Tokenize answers the tokenize tool.
	Tokenize driving.TokenizeService

	// Index lists indexed documents for the docs resources. Optional.
	Index driving.IndexService

	// Tokenizer is the argument list used when a tokenize call names none.
	Tokenizer []string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Tokenize == nil {
		return ErrMissingTokenizeService
	}
	return nil
}
