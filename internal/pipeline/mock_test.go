package pipeline

import (
	"context"
	"sync"

	"github.com/sells-group/leadgen/pkg/brightdata"
)

// mockGateway is a hand-rolled brightdata.Client for pipeline tests.
type mockGateway struct {
	mu          sync.Mutex
	searchCalls []string
	scrapeCalls []string

	searchFn func(query string, count int) ([]brightdata.SearchResult, error)
	scrapeFn func(url string) (string, error)
}

func (m *mockGateway) Search(ctx context.Context, query string, count int) ([]brightdata.SearchResult, error) {
	m.mu.Lock()
	m.searchCalls = append(m.searchCalls, query)
	m.mu.Unlock()
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(query, count)
}

func (m *mockGateway) Scrape(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	m.scrapeCalls = append(m.scrapeCalls, url)
	m.mu.Unlock()
	if m.scrapeFn == nil {
		return "", nil
	}
	return m.scrapeFn(url)
}

func (m *mockGateway) searched() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.searchCalls...)
}

func (m *mockGateway) scraped() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.scrapeCalls...)
}
