package html

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/entity"
	"github.com/gyf304/sqlite3-fts5-html/internal/markup"
	"github.com/gyf304/sqlite3-fts5-html/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct {
	decoder *entity.Decoder
	now     func() time.Time
}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{decoder: entity.NewDecoder(), now: time.Now}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml", "application/xml", "text/xml", "image/svg+xml"}
}

// Normalise extracts the title and text of an HTML document.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text, title, err := n.extract(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", raw.URI, err)
	}
	if title == "" {
		title = normalisers.TitleFromURI(raw.URI)
	}

	now := n.now()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     title,
		Content:   string(raw.Content),
		Text:      text,
		Metadata:  normalisers.CopyMetadata(raw.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["mime_type"] = raw.MIMEType
	doc.Metadata["format"] = "html"

	return doc, nil
}

// blockElements start a new line of text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "footer": true, "form": true, "h1": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "title": true, "tr": true, "ul": true,
}

// extract returns the indexable text of src and the decoded content of its
// first title element.
func (n *Normaliser) extract(src []byte) (text, title string, err error) {
	var (
		out     bytes.Buffer
		titleSB strings.Builder
		inTitle bool
		seen    bool
	)
	buf := entity.Acquire()
	defer entity.Release(buf)

	for span := range markup.Scan(src) {
		if span.Kind == markup.Markup {
			name := strings.ToLower(string(span.Name))
			if blockElements[name] {
				out.WriteByte('\n')
			}
			if name == "title" && !seen {
				switch span.Tag {
				case markup.StartTag:
					inTitle = true
				case markup.EndTag:
					inTitle = false
					seen = true
				}
			}
			continue
		}
		if span.Skipped {
			continue
		}

		if err := n.decoder.DecodeInto(buf, src[span.Start:span.End]); err != nil {
			return "", "", err
		}
		out.Write(buf.Text)
		if inTitle {
			titleSB.Write(buf.Text)
		}
	}

	return collapse(out.String()), strings.Join(strings.Fields(titleSB.String()), " "), nil
}

// collapse squeezes whitespace within lines and drops empty lines.
func collapse(s string) string {
	lines := strings.Split(s, "\n")
	result := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
