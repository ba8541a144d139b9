package normalisers

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.Normaliser = (*Registry)(nil)

// Registry maps MIME types to normalisers. It is itself a Normaliser that
// dispatches on the raw document's MIME type.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	byMIME   map[string]driven.Normaliser
	fallback driven.Normaliser
}

// NewRegistry creates an empty registry. Documents whose MIME type has no
// normaliser are handled by fallback, which may be nil.
func NewRegistry(fallback driven.Normaliser) *Registry {
	return &Registry{
		byMIME:   make(map[string]driven.Normaliser),
		fallback: fallback,
	}
}

// Register adds a normaliser for each MIME type it supports.
// Later registrations win.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mt := range n.SupportedMIMETypes() {
		r.byMIME[mt] = n
	}
}

// Get returns the normaliser for a MIME type, or the fallback.
func (r *Registry) Get(mimeType string) (driven.Normaliser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n, ok := r.byMIME[baseMIME(mimeType)]; ok {
		return n, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("no normaliser for %q: %w", mimeType, domain.ErrNotFound)
}

// SupportedMIMETypes returns the registered MIME types, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.byMIME))
	for mt := range r.byMIME {
		types = append(types, mt)
	}
	sort.Strings(types)
	return types
}

// Normalise normalises raw with the normaliser for its MIME type.
// An empty MIME type is detected from the URI and content first.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if raw.MIMEType == "" {
		raw.MIMEType = DetectMIME(raw.URI, raw.Content)
	}
	n, err := r.Get(raw.MIMEType)
	if err != nil {
		return nil, err
	}
	return n.Normalise(ctx, raw)
}

var knownExtensions = map[string]string{
	".html":  "text/html",
	".htm":   "text/html",
	".xhtml": "application/xhtml+xml",
	".xml":   "application/xml",
	".svg":   "image/svg+xml",
	".txt":   "text/plain",
	".text":  "text/plain",
	".md":    "text/markdown",
	".csv":   "text/csv",
	".json":  "application/json",
}

// DetectMIME guesses the MIME type of a file from its extension, falling
// back to content sniffing.
func DetectMIME(uri string, content []byte) string {
	if mt, ok := MIMEFromExtension(uri); ok {
		return mt
	}
	return baseMIME(http.DetectContentType(content))
}

// MIMEFromExtension returns the MIME type registered for the extension
// of uri, without parameters.
func MIMEFromExtension(uri string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(uri))
	if mt, ok := knownExtensions[ext]; ok {
		return mt, true
	}
	if ext == "" {
		return "", false
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return baseMIME(mt), true
	}
	return "", false
}

// baseMIME strips parameters such as charset from a MIME type.
func baseMIME(mt string) string {
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.ToLower(strings.TrimSpace(mt))
}

// TitleFromURI derives a human-readable title from a file name.
func TitleFromURI(uri string) string {
	filename := filepath.Base(uri)
	if ext := filepath.Ext(filename); ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// CopyMetadata creates a shallow copy of metadata.
func CopyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
