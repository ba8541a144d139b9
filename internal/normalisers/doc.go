// Package normalisers turns raw files into documents ready for indexing.
// Each normaliser handles a set of MIME types; Registry picks one for a
// raw document by its MIME type.
package normalisers
