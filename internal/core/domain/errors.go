package domain

import "errors"

// Domain errors represent tokenizer and indexing failures.
// Malformed markup is never an error; it is skipped or passed through.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Tokenizer Errors.

	// ErrInvalidArgument indicates an empty or malformed tokenizer argument list.
	ErrInvalidArgument = errors.New("invalid tokenizer argument")

	// ErrLookupFailure indicates a wrapped tokenizer name is not registered.
	ErrLookupFailure = errors.New("tokenizer not found")

	// ErrDecodeBufferOverflow indicates character reference expansion
	// exceeded the decode buffer capacity for a text run.
	ErrDecodeBufferOverflow = errors.New("decode buffer overflow")

	// ErrOffsetOrder indicates a wrapped tokenizer reported offsets that
	// overlap a previous token, run backwards or fall outside its input.
	ErrOffsetOrder = errors.New("token offsets out of order")

	// ErrTokenizerClosed indicates the tokenizer has been closed.
	ErrTokenizerClosed = errors.New("tokenizer closed")
)
