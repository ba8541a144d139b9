package markup

import (
	"bytes"
	"iter"
)

// Kind classifies a span of the input.
type Kind int

const (
	// TextRun is text between markup constructs.
	TextRun Kind = iota

	// Markup is a tag or comment, including its delimiters.
	Markup
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case TextRun:
		return "text"
	case Markup:
		return "markup"
	default:
		return "unknown"
	}
}

// TagType distinguishes the tag forms the scanner recognises.
type TagType int

const (
	// NoTag is used for text runs.
	NoTag TagType = iota

	// StartTag is an opening tag such as <p>.
	StartTag

	// EndTag is a closing tag such as </p>.
	EndTag

	// SelfClosingTag is a tag whose closing '>' is preceded by '/'.
	SelfClosingTag

	// Comment is a <!-- ... --> comment.
	Comment
)

// Span is a classified byte range [Start, End) of the scanned input.
type Span struct {
	Kind  Kind
	Start int
	End   int

	// Tag is the tag form for Markup spans.
	Tag TagType

	// Name is the element name of a tag as written in the input.
	// It aliases the scanned buffer.
	Name []byte

	// Skipped reports that the span lies inside a skip element.
	// Skipped text runs must not be indexed.
	Skipped bool
}

// Indexable reports whether the span is a text run eligible for indexing.
func (s Span) Indexable() bool {
	return s.Kind == TextRun && !s.Skipped && s.End > s.Start
}

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// Scan splits src into alternating text runs and markup spans, in input
// order, while tracking skip elements.
//
// Skip tracking is single level: the first start tag naming a skip element
// begins skipping, and only an end tag with the same name ends it. A nested
// element of the same name does not deepen the skip.
//
// A trailing text run ended by the end of input is yielded. A tag or
// comment that is not terminated before the end of input is dropped
// together with everything after it.
func Scan(src []byte) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		var skipping []byte
		prev, end := 0, len(src)

		for {
			cur := end
			if i := bytes.IndexByte(src[prev:], '<'); i >= 0 {
				cur = prev + i
			}

			if cur > prev {
				run := Span{Kind: TextRun, Start: prev, End: cur, Skipped: skipping != nil}
				if !yield(run) {
					return
				}
			}
			if cur >= end {
				return
			}

			span, ok := scanMarkup(src, cur)
			if !ok {
				return
			}

			switch {
			case skipping == nil && span.Tag == StartTag && IsSkipElement(span.Name):
				skipping = span.Name
				span.Skipped = true
			case skipping != nil && span.Tag == EndTag && bytes.EqualFold(span.Name, skipping):
				skipping = nil
				span.Skipped = true
			default:
				span.Skipped = skipping != nil
			}

			if !yield(span) {
				return
			}
			prev = span.End
		}
	}
}

// scanMarkup reads the tag or comment starting at the '<' at src[at].
// It returns false if the construct runs off the end of src.
func scanMarkup(src []byte, at int) (Span, bool) {
	p := at + 1
	if p >= len(src) {
		return Span{}, false
	}

	if bytes.HasPrefix(src[at:], []byte(commentOpen)) {
		body := at + len(commentOpen)
		i := bytes.Index(src[body:], []byte(commentClose))
		if i < 0 {
			return Span{}, false
		}
		return Span{Kind: Markup, Start: at, End: body + i + len(commentClose), Tag: Comment}, true
	}

	tag := StartTag
	if src[p] == '/' {
		tag = EndTag
		p++
	}

	nameStart := p
	for p < len(src) && !isWhitespace(src[p]) && src[p] != '>' {
		p++
	}
	name := src[nameStart:p]

	gt := bytes.IndexByte(src[p:], '>')
	if gt < 0 {
		return Span{}, false
	}
	p += gt

	if src[p-1] == '/' {
		tag = SelfClosingTag
	}
	// <br/> reads as "br/" up to the '>'.
	name = bytes.TrimSuffix(name, []byte("/"))

	return Span{Kind: Markup, Start: at, End: p + 1, Tag: tag, Name: name}, true
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
