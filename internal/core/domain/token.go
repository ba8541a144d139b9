package domain

// TokenizeReason tells a tokenizer why it is being invoked.
// The values are bit flags and match the host engine's constants.
type TokenizeReason int

const (
	// ReasonQuery marks text from a full-text query.
	ReasonQuery TokenizeReason = 0x0001

	// ReasonPrefix is set with ReasonQuery for prefix queries.
	ReasonPrefix TokenizeReason = 0x0002

	// ReasonDocument marks document text being indexed.
	ReasonDocument TokenizeReason = 0x0004

	// ReasonAux marks text tokenized for an auxiliary function.
	ReasonAux TokenizeReason = 0x0008
)

// String returns a short name for the reason, used in logs.
func (r TokenizeReason) String() string {
	switch {
	case r&ReasonQuery != 0 && r&ReasonPrefix != 0:
		return "prefix-query"
	case r&ReasonQuery != 0:
		return "query"
	case r&ReasonDocument != 0:
		return "document"
	case r&ReasonAux != 0:
		return "aux"
	default:
		return "none"
	}
}

// TokenFlags qualifies an emitted token.
type TokenFlags int

// TokenColocated marks a synonym occupying the previous token's position.
const TokenColocated TokenFlags = 0x0001

// Token is one indexable word.
//
// Start and End are byte offsets into the text handed to the tokenizer
// that produced the token: for the html tokenizer that is always the
// original markup, so original[Start:End] is the source of Text.
// Text may differ from that slice (case folding, decoded references).
type Token struct {
	Flags TokenFlags
	Text  []byte
	Start int
	End   int
}

// Len returns the number of original bytes the token covers.
func (t Token) Len() int {
	return t.End - t.Start
}
