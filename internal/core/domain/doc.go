// Package domain defines the core entities for the fts5html tokenizer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Token: An indexable word with byte offsets into original markup
//   - TokenizeReason, TokenFlags: Host engine flags passed through the chain
//   - Document, Posting: An indexed document and its term occurrences
//   - RawDocument: Opaque bytes before normalisation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
