// Package markup splits raw HTML-like text into text runs and markup.
//
// It is a scanner, not a parser: it builds no tree, validates no nesting
// and recovers from malformed input only by skipping to the next
// recognisable delimiter. Comments are <!-- ... --> with no nesting; every
// other '<' starts a tag that ends at the next '>'.
//
// The scanner also tracks skip elements (script, style, svg and friends)
// whose content must not be indexed, and marks text runs inside them.
package markup
