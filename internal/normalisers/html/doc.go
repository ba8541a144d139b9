// Package html provides a Normaliser for HTML and other markup documents.
// The document keeps its markup as Content so that token offsets can be
// shown against the source; Text holds the same indexable text the html
// tokenizer sees, laid out one block per line.
package html
