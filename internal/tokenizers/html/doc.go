// Package html implements the html tokenizer, a chain adapter that feeds
// the text content of HTML markup to another tokenizer.
//
// The first argument names the inner tokenizer in a registry; the
// remaining arguments are passed to it unchanged:
//
//	html unicode61 remove_diacritics 0
//
// Markup, comments, and the content of script-like elements are never
// tokenized. Character references in text are decoded before the inner
// tokenizer sees them, and every token's offsets are mapped back to the
// original markup so that highlights land on the source bytes.
package html
