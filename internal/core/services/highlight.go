package services

import (
	"strings"
	"unicode/utf8"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driving"
	"github.com/gyf304/sqlite3-fts5-html/internal/entity"
	"github.com/gyf304/sqlite3-fts5-html/internal/markup"
)

const (
	// maxHighlights is the number of snippets kept per result.
	maxHighlights = 3

	// snippetContext is the decoded bytes kept on each side of a match.
	snippetContext = 40

	ellipsis = "…"
)

// DefaultMark wraps matched text in double asterisks.
func DefaultMark(s string) string {
	return "**" + s + "**"
}

// highlights builds up to maxHighlights decoded snippets around matches.
// Matches outside an indexable text run produce no snippet.
func highlights(content string, matches []domain.Match, mark driving.MarkFunc) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range matches {
		if len(out) == maxHighlights {
			break
		}
		s, ok := snippet(content, m, mark)
		if !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// snippet decodes the text run containing m and marks the decoded bytes
// that the length table attributes to m's original range.
func snippet(content string, m domain.Match, mark driving.MarkFunc) (string, bool) {
	src := []byte(content)
	var run markup.Span
	found := false
	for span := range markup.Scan(src) {
		if span.Start > m.Start {
			break
		}
		if span.Indexable() && m.End <= span.End {
			run, found = span, true
			break
		}
	}
	if !found {
		return "", false
	}

	buf := entity.Acquire()
	defer entity.Release(buf)
	if err := entity.NewDecoder().DecodeInto(buf, src[run.Start:run.End]); err != nil {
		return "", false
	}
	text := buf.Text

	from, to := decodedRange(buf.Lengths, run.Start, m.Start, m.End)
	if from >= to {
		return "", false
	}

	lo := max(from-snippetContext, 0)
	for lo < from && !utf8.RuneStart(text[lo]) {
		lo++
	}
	hi := min(to+snippetContext, len(text))
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}

	var b strings.Builder
	if lo > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(squeeze(string(text[lo:from])))
	b.WriteString(mark(string(text[from:to])))
	b.WriteString(squeeze(string(text[to:hi])))
	if hi < len(text) {
		b.WriteString(ellipsis)
	}
	return strings.TrimSpace(b.String()), true
}

// decodedRange maps the original range [start,end) to decoded indexes
// using the length table of a run that begins at origin.
func decodedRange(lengths []int, origin, start, end int) (int, int) {
	from, to := -1, -1
	pos := origin
	for i, l := range lengths {
		if l == 0 {
			continue
		}
		if from < 0 && pos >= start {
			from = i
		}
		if pos >= end {
			to = i
			break
		}
		pos += l
	}
	if from < 0 {
		from = len(lengths)
	}
	if to < 0 {
		to = len(lengths)
	}
	return from, to
}

// squeeze replaces whitespace runs with one space, keeping a single
// leading and trailing space when the input had one.
func squeeze(s string) string {
	if s == "" {
		return s
	}
	inner := strings.Join(strings.Fields(s), " ")
	if inner == "" {
		return " "
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	if isSpace(first) {
		inner = " " + inner
	}
	if isSpace(last) {
		inner += " "
	}
	return inner
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}
