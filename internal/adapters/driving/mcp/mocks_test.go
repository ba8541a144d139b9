package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error

	query string
	opts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.query = query
	m.opts = opts
	return m.results, m.err
}

func (m *mockSearchService) SetHighlighter(_ driving.MarkFunc) {}

// mockTokenizeService is a mock implementation of driving.TokenizeService.
type mockTokenizeService struct {
	tokens []domain.Token
	err    error

	args   []string
	reason domain.TokenizeReason
}

func (m *mockTokenizeService) Tokenize(
	_ context.Context,
	args []string,
	reason domain.TokenizeReason,
	_ []byte,
) ([]domain.Token, error) {
	m.args = args
	m.reason = reason
	return m.tokens, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	documents []domain.Document
	err       error
}

func (m *mockIndexService) Index(_ context.Context, _ *domain.RawDocument) (*driving.IndexResult, error) {
	return nil, m.err
}

func (m *mockIndexService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockIndexService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

// newTestServer fills unset required ports with empty mocks.
func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Search == nil {
		ports.Search = &mockSearchService{}
	}
	if ports.Tokenize == nil {
		ports.Tokenize = &mockTokenizeService{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}
