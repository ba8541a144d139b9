// Package entity decodes HTML character references in text runs.
//
// Decoding produces a Buffer holding the decoded text and a length table
// that records, per decoded byte, how many bytes of the original text it
// stands for. The table lets token offsets found in decoded text be
// translated back to offsets in the original markup.
//
// Named references use the WHATWG list in table.go, generated by gen/main.go.
package entity
