package plaintext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents. It is the registry fallback
// for anything that is not markup.
type Normaliser struct {
	now func() time.Time
}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{now: time.Now}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"application/json",
	}
}

// Normalise converts a raw document to a document whose Text and Content
// are both the raw content.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := string(raw.Content)
	now := n.now()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     titleFromMetadataOrURI(raw),
		Content:   content,
		Text:      strings.TrimSpace(content),
		Metadata:  normalisers.CopyMetadata(raw.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["mime_type"] = raw.MIMEType
	doc.Metadata["format"] = "text"

	return doc, nil
}

// titleFromMetadataOrURI prefers a reader-supplied title.
func titleFromMetadataOrURI(raw *domain.RawDocument) string {
	if title, ok := raw.Metadata["title"].(string); ok && title != "" {
		return title
	}
	return normalisers.TitleFromURI(raw.URI)
}
