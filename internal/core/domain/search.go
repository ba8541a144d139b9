package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Offset is the number of results to skip.
	Offset int
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Document is the matched document.
	Document Document

	// Score is the relevance score (matching term occurrences).
	Score float64

	// Matches lists the term occurrences that produced the hit.
	Matches []Match

	// Highlights contains snippets of decoded text around matches.
	Highlights []string
}

// Match is a query term occurrence located in a document.
type Match struct {
	// Term is the matched index term.
	Term string

	// Start and End delimit the occurrence in Document.Content.
	Start int
	End   int

	// Original is Document.Content[Start:End], the raw markup that
	// produced the term.
	Original string
}
