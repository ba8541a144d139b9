package filesystem

import (
	"path/filepath"
	"strings"
)

// ResolveURI converts a file:// URI or a path to the absolute path used
// as a document URI.
func ResolveURI(uri string) (string, error) {
	path := strings.TrimPrefix(uri, "file://")
	if path == "" {
		return "", nil
	}
	return filepath.Abs(path)
}
