package markup

import "bytes"

// skipElements are elements whose content is never indexed.
var skipElements = [...]string{
	"canvas",
	"math",
	"noscript",
	"object",
	"script",
	"style",
	"svg",
	"template",
}

// SkipElements returns the names of elements whose content is excluded
// from indexing.
func SkipElements() []string {
	return append([]string(nil), skipElements[:]...)
}

// IsSkipElement reports whether name is a skip element.
// The comparison is case-insensitive and requires the whole name to
// match: "scripts" and "scr" are not skip elements.
func IsSkipElement(name []byte) bool {
	for _, s := range skipElements {
		if bytes.EqualFold(name, []byte(s)) {
			return true
		}
	}
	return false
}
