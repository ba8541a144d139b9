package domain

import "time"

// Document represents an indexed markup document.
// It is the canonical representation after normalisation.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path, URL, etc).
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the original markup exactly as read.
	// Posting offsets are byte offsets into Content.
	Content string

	// Text is the decoded, indexable text with markup removed.
	Text string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was first indexed.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// Posting records one occurrence of a term in a document.
type Posting struct {
	// Term is the token text as produced by the tokenizer.
	Term string

	// Position is the ordinal of the token within the document.
	Position int

	// Start is the byte offset of the occurrence in Document.Content.
	Start int

	// End is the exclusive end offset in Document.Content.
	End int
}
