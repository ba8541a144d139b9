package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/tokenizers"
)

func TestTokenizeService_Tokenize(t *testing.T) {
	service := NewTokenizeService(tokenizers.NewDefaultRegistry())

	tokens, err := service.Tokenize(context.Background(), []string{"html", "ascii"},
		domain.ReasonDocument, []byte("<b>Hi</b> there"))

	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "hi", string(tokens[0].Text))
	assert.Equal(t, [2]int{3, 5}, [2]int{tokens[0].Start, tokens[0].End})
	assert.Equal(t, "there", string(tokens[1].Text))
	assert.Equal(t, [2]int{10, 15}, [2]int{tokens[1].Start, tokens[1].End})
}

func TestTokenizeService_TokensAreCopied(t *testing.T) {
	service := NewTokenizeService(tokenizers.NewDefaultRegistry())

	tokens, err := service.Tokenize(context.Background(), []string{"unicode61"},
		domain.ReasonQuery, []byte("one two three"))

	require.NoError(t, err)
	texts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		texts = append(texts, string(tok.Text))
	}
	assert.Equal(t, []string{"one", "two", "three"}, texts)
}

func TestTokenizeService_Errors(t *testing.T) {
	service := NewTokenizeService(tokenizers.NewDefaultRegistry())
	ctx := context.Background()

	_, err := service.Tokenize(ctx, []string{"nope"}, domain.ReasonDocument, []byte("x"))
	assert.ErrorIs(t, err, domain.ErrLookupFailure)

	_, err = service.Tokenize(ctx, nil, domain.ReasonDocument, []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = service.Tokenize(ctx, []string{"html"}, domain.ReasonDocument, []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestTokenizeService_CancelledContext(t *testing.T) {
	service := NewTokenizeService(tokenizers.NewDefaultRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tokens, err := service.Tokenize(ctx, []string{"html", "unicode61"}, domain.ReasonDocument, []byte("a b c"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, tokens)
}

func TestTokenizeService_ClosesTokenizer(t *testing.T) {
	builder := &fixedBuilder{tokens: []domain.Token{{Text: []byte("a"), Start: 0, End: 1}}}
	service := NewTokenizeService(builder)

	_, err := service.Tokenize(context.Background(), []string{"fixed"}, domain.ReasonDocument, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, builder.closed)
}

func TestTokenizeService_CloseErrorIsReported(t *testing.T) {
	builder := &fixedBuilder{closeErr: errBoom}
	service := NewTokenizeService(builder)

	_, err := service.Tokenize(context.Background(), []string{"fixed"}, domain.ReasonDocument, nil)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, builder.closed)
}

func TestTokenizeService_CreateError(t *testing.T) {
	builder := &fixedBuilder{err: errBoom}
	service := NewTokenizeService(builder)

	_, err := service.Tokenize(context.Background(), []string{"fixed"}, domain.ReasonDocument, nil)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, builder.closed)
}
