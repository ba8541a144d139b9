package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driving"
	"github.com/gyf304/sqlite3-fts5-html/internal/logger"
)

// Ensure TokenizeService implements the interface.
var _ driving.TokenizeService = (*TokenizeService)(nil)

// TokenizeService runs tokenizers built from argument lists.
type TokenizeService struct {
	tokenizers TokenizerBuilder
}

// NewTokenizeService creates a new tokenize service.
func NewTokenizeService(tokenizers TokenizerBuilder) *TokenizeService {
	return &TokenizeService{tokenizers: tokenizers}
}

// Tokenize builds the tokenizer for args, collects its tokens over text
// and closes it. Cancelling ctx stops tokenization at the next token.
func (s *TokenizeService) Tokenize(
	ctx context.Context, args []string, reason domain.TokenizeReason, text []byte,
) ([]domain.Token, error) {
	logger.Section("Tokenize")
	logger.Debug("Tokenizer: %v, reason: %s, input: %d bytes", args, reason, len(text))

	var tokens []domain.Token
	err := runTokenizer(s.tokenizers, args, reason, text, func(tok domain.Token) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok.Text = bytes.Clone(tok.Text)
		tokens = append(tokens, tok)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Tokens: %d", len(tokens))
	return tokens, nil
}

// runTokenizer builds a tokenizer, runs it once over text and closes it.
func runTokenizer(
	tokenizers TokenizerBuilder, args []string, reason domain.TokenizeReason, text []byte, emit driven.TokenFunc,
) (err error) {
	tok, err := tokenizers.Create(args)
	if err != nil {
		return fmt.Errorf("create tokenizer %v: %w", args, err)
	}
	defer func() {
		if cerr := tok.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close tokenizer: %w", cerr))
		}
	}()

	if err := tok.Tokenize(reason, text, emit); err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}
	return nil
}
