package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

func decode(t *testing.T, src string) *Buffer {
	t.Helper()
	buf, err := Decode([]byte(src))
	require.NoError(t, err)
	require.Len(t, buf.Lengths, len(buf.Text), "one length per decoded byte")
	return buf
}

func ones(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		text    string
		lengths []int
	}{
		{"literal", "hello", "hello", ones(5)},
		{"named", "&amp;b", "&b", []int{5, 1}},
		{"decimal", "&#65;", "A", []int{5}},
		{"hex lower", "&#x41;", "A", []int{6}},
		{"hex upper prefix", "&#X41;", "A", []int{6}},
		{"hex digits mixed case", "&#xe9;&#xE9;", "\u00e9\u00e9", []int{6, 0, 6, 0}},
		{"unterminated named at end", "&amp", "&", []int{4}},
		{"unterminated named then space", "&amp bar", "& bar", []int{4, 1, 1, 1, 1}},
		{"unterminated numeric", "&#65 ", "A ", []int{4, 1}},
		{"two byte replacement", "caf&eacute;", "caf\u00e9", []int{1, 1, 1, 8, 0}},
		{"two code point replacement", "&nGt;", "\u226b\u20d2", []int{5, 0, 0, 0, 0, 0}},
		{"four byte numeric", "&#x1F600;", "\U0001F600", []int{9, 0, 0, 0}},
		{"case sensitive alias", "&AMP;", "&", []int{5}},
		{"unknown name passes through", "&foo bar", "&foo bar", ones(8)},
		{"unknown name with semicolon", "&bogus;", "&bogus;", ones(7)},
		{"wrong case passes through", "&Amp;", "&Amp;", ones(5)},
		{"bare ampersand", "a & b", "a & b", ones(5)},
		{"ampersand terminator restarts", "&&amp;", "&&", []int{1, 5}},
		{"trailing ampersand", "a&", "a&", ones(2)},
		{"surrogate becomes replacement char", "&#xD800;", "\ufffd", []int{8, 0, 0}},
		{"nul code point", "&#0;", "\x00", []int{4}},
		{"non-ascii literal", "\u00f1", "\u00f1", []int{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := decode(t, tt.input)
			assert.Equal(t, tt.text, string(buf.Text))
			assert.Equal(t, tt.lengths, buf.Lengths)
		})
	}
}

func TestDecode_InvalidNumericProducesNoOutput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		text    string
		lengths []int
	}{
		{"no digits", "a&#;b", "ab", []int{1, 4}},
		{"hex no digits", "a&#x;b", "ab", []int{1, 5}},
		{"bad decimal digit", "&#12a;b", "b", []int{7}},
		{"bad hex digit", "&#xZZ;b", "b", []int{7}},
		{"above max code point", "a&#x110000;b", "ab", []int{1, 11}},
		{"overflows uint32", "&#99999999999;x", "x", []int{15}},
		{"double hash", "&##65;x", "x", []int{7}},
		{"invalid then unterminated literal", "&#x; y", " y", []int{5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := decode(t, tt.input)
			assert.Equal(t, tt.text, string(buf.Text))
			assert.Equal(t, tt.lengths, buf.Lengths)
		})
	}
}

func TestDecode_InvalidReferenceAtEndIsUnaccounted(t *testing.T) {
	buf := decode(t, "ab&#xZZ;")

	assert.Equal(t, "ab", string(buf.Text))
	assert.Equal(t, []int{1, 1}, buf.Lengths)
}

func TestDecode_OversizedReferenceProducesNoOutput(t *testing.T) {
	name := strings.Repeat("a", MaxNameLength()+10)
	buf := decode(t, "&"+name+";x")

	assert.Equal(t, "x", string(buf.Text))
	assert.Equal(t, []int{len(name) + 2 + 1}, buf.Lengths)
}

func TestDecode_LongestNameStillResolves(t *testing.T) {
	buf := decode(t, "&CounterClockwiseContourIntegral;")

	assert.Equal(t, "\u2233", string(buf.Text))
	assert.Equal(t, 33, buf.Span(0, len(buf.Text)))
}

func TestDecode_NoReferencesIsIdentity(t *testing.T) {
	input := "plain text, already decoded: <tag> \"quotes\" ümlaut"
	buf := decode(t, input)

	assert.Equal(t, input, string(buf.Text))
	assert.Equal(t, ones(len(input)), buf.Lengths)

	again := decode(t, string(buf.Text))
	assert.Equal(t, buf.Text, again.Text)
	assert.Equal(t, buf.Lengths, again.Lengths)
}

// Decoding the original bytes attributed to any prefix of the decoded text
// that ends on a reference boundary yields exactly that prefix.
func TestDecode_LengthTablePrefixInvariant(t *testing.T) {
	inputs := []string{
		"&amp;b",
		"Tom &amp; Jerry &lt;3 &#169; &#xA9; caf&eacute;",
		"&foo bar &amp baz",
		"a&#xZZ;b &#x110000;c",
		"&nGt;&nLt;&fjlig;",
		"&&&amp;&&",
		"x&" + strings.Repeat("b", 50) + ";y",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			buf := decode(t, input)

			consumed := 0
			for k := 0; k <= len(buf.Text); k++ {
				if k == len(buf.Text) || buf.Lengths[k] > 0 {
					prefix := decode(t, input[:consumed])
					assert.Equal(t, string(buf.Text[:k]), string(prefix.Text),
						"prefix of %d decoded bytes from %d original bytes", k, consumed)
				}
				if k < len(buf.Text) {
					consumed += buf.Lengths[k]
				}
			}
			assert.Equal(t, len(input), consumed, "every original byte is attributed")
		})
	}
}

func TestDecodeInto_Overflow(t *testing.T) {
	d := &Decoder{capacity: func(n int) int { return n }}
	buf := &Buffer{}

	err := d.DecodeInto(buf, []byte("&nGt;"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDecodeBufferOverflow)
	assert.Empty(t, buf.Text)
	assert.Empty(t, buf.Lengths)

	require.NoError(t, d.DecodeInto(buf, []byte("&amp;")))
	assert.Equal(t, "&", string(buf.Text))
}

func TestDecodeInto_ReplacesPreviousContent(t *testing.T) {
	d := NewDecoder()
	buf := &Buffer{}

	require.NoError(t, d.DecodeInto(buf, []byte("first run")))
	require.NoError(t, d.DecodeInto(buf, []byte("&lt;")))

	assert.Equal(t, "<", string(buf.Text))
	assert.Equal(t, []int{4}, buf.Lengths)
}

func TestAcquireRelease(t *testing.T) {
	buf := Acquire()
	require.NotNil(t, buf)
	require.NoError(t, NewDecoder().DecodeInto(buf, []byte("abc")))
	Release(buf)

	again := Acquire()
	assert.Empty(t, again.Text)
	assert.Empty(t, again.Lengths)
	Release(again)

	Release(nil)
}

func TestBuffer_Span(t *testing.T) {
	buf := decode(t, "x&eacute;y")

	assert.Equal(t, 1, buf.Span(0, 1))
	assert.Equal(t, 8, buf.Span(1, 3))
	assert.Equal(t, 8, buf.Span(1, 2))
	assert.Equal(t, 0, buf.Span(2, 3))
	assert.Equal(t, 10, buf.Span(0, len(buf.Text)))
}
