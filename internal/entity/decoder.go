package entity

import (
	"fmt"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

// maxRefLength bounds the bytes accumulated after '&': the longest entity
// name plus room for the "#x" of a numeric reference. Longer references
// can never resolve and produce no output.
const maxRefLength = maxNameLength + 2

// Buffer holds the decoded text of one text run.
type Buffer struct {
	// Text is the decoded UTF-8 text.
	Text []byte

	// Lengths has exactly one entry per byte of Text: the number of
	// original bytes attributed to that byte. The whole span of a
	// character reference is attributed to the first byte it produces
	// and 0 to the rest, so the sum over any prefix of Lengths is the
	// number of original bytes consumed to produce that prefix.
	Lengths []int
}

// Reset empties the buffer, keeping its storage.
func (b *Buffer) Reset() {
	b.Text = b.Text[:0]
	b.Lengths = b.Lengths[:0]
}

// Span returns the number of original bytes attributed to Text[from:to].
func (b *Buffer) Span(from, to int) int {
	n := 0
	for _, l := range b.Lengths[from:to] {
		n += l
	}
	return n
}

var bufferPool = sync.Pool{
	New: func() any { return new(Buffer) },
}

// Acquire returns an empty Buffer. Release it when the run's tokens have
// been produced.
func Acquire() *Buffer {
	b := bufferPool.Get().(*Buffer)
	b.Reset()
	return b
}

// Release returns a Buffer obtained from Acquire. The buffer must not be
// used afterwards.
func Release(b *Buffer) {
	if b == nil {
		return
	}
	bufferPool.Put(b)
}

// Decoder expands character references in text runs.
// A Decoder holds no state between calls and is safe for concurrent use.
type Decoder struct {
	// capacity returns the maximum decoded size for n input bytes.
	capacity func(n int) int
}

// NewDecoder returns a Decoder with the default capacity of twice the
// input length plus a small constant. Expansion never exceeds 1.5 times
// the input for the WHATWG table, so the limit only guards the invariant.
func NewDecoder() *Decoder {
	return &Decoder{capacity: defaultCapacity}
}

func defaultCapacity(n int) int {
	return 2*n + 16
}

var defaultDecoder = NewDecoder()

// Decode expands the character references of src into a new Buffer.
func Decode(src []byte) (*Buffer, error) {
	b := new(Buffer)
	if err := defaultDecoder.DecodeInto(b, src); err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeInto expands the character references of src into dst,
// replacing its previous content.
//
// Literal bytes are copied with length 1. A reference starts at '&' and
// runs over ASCII alphanumerics and '#'; a following ';' belongs to it.
// Any other terminator is left in place and is decoded as ordinary text.
//
//   - A numeric reference (&#DDD, &#xHHH) becomes the UTF-8 encoding of its
//     code point; malformed digits or code points >= 0x110000 produce no
//     output.
//   - A named reference found in the table becomes its replacement text;
//     an unknown name is copied through literally.
//   - A reference too long for any table entry produces no output.
//
// The original length of a reference that produces no output is added to
// the next byte written for the run.
//
// On error dst holds no usable output.
func (d *Decoder) DecodeInto(dst *Buffer, src []byte) error {
	dst.Reset()
	w := writer{buf: dst, limit: d.capacity(len(src))}

	for i := 0; i < len(src); {
		if src[i] != '&' {
			if err := w.writeByte(src[i], 1); err != nil {
				return err
			}
			i++
			continue
		}

		j := i + 1
		for j < len(src) && isRefByte(src[j]) {
			j++
		}
		ref := src[i+1 : j]
		if j < len(src) && src[j] == ';' {
			j++
		}
		consumed := j - i

		switch {
		case len(ref) > maxRefLength:
			w.carry += consumed
		case len(ref) > 0 && ref[0] == '#':
			r, ok := decodeNumeric(ref[1:])
			if !ok {
				w.carry += consumed
				break
			}
			var enc [utf8.UTFMax]byte
			n := utf8.EncodeRune(enc[:], r)
			if err := w.writeRef(enc[:n], consumed); err != nil {
				return err
			}
		default:
			if text, ok := Lookup(ref); ok {
				if err := w.writeRef([]byte(text), consumed); err != nil {
					return err
				}
				break
			}
			for k := i; k < j; k++ {
				if err := w.writeByte(src[k], 1); err != nil {
					return err
				}
			}
		}
		i = j
	}
	return nil
}

// writer appends decoded bytes and their lengths to a Buffer.
type writer struct {
	buf   *Buffer
	limit int

	// carry is the original length of references that produced no output,
	// owed to the next written byte.
	carry int
}

// writeByte appends c, attributing length plus any carry to it.
func (w *writer) writeByte(c byte, length int) error {
	if len(w.buf.Text) >= w.limit {
		w.buf.Reset()
		return fmt.Errorf("decoded text exceeds %d bytes: %w", w.limit, domain.ErrDecodeBufferOverflow)
	}
	w.buf.Text = append(w.buf.Text, c)
	w.buf.Lengths = append(w.buf.Lengths, length+w.carry)
	w.carry = 0
	return nil
}

// writeRef appends the output of one reference: its first byte carries
// the reference's whole original length, the others 0.
func (w *writer) writeRef(p []byte, length int) error {
	for k, c := range p {
		if k > 0 {
			length = 0
		}
		if err := w.writeByte(c, length); err != nil {
			return err
		}
	}
	return nil
}

// decodeNumeric parses the digits of a numeric reference, after "&#".
func decodeNumeric(digits []byte) (rune, bool) {
	base := 10
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		base = 16
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return 0, false
	}
	cp, err := strconv.ParseUint(string(digits), base, 32)
	if err != nil || cp > utf8.MaxRune {
		return 0, false
	}
	return rune(cp), true
}

func isRefByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '#'
}
