package store

import (
	"context"
	"strings"
	"sync"
)

// MaxRecentSearches bounds the history kept per source.
const MaxRecentSearches = 10

// RecentSearches keeps per-source search history under one key, most
// recent first.
type RecentSearches struct {
	mu sync.Mutex
	kv KV
}

// NewRecentSearches wraps kv.
func NewRecentSearches(kv KV) *RecentSearches {
	return &RecentSearches{kv: kv}
}

// List returns the history for source.
func (r *RecentSearches) List(ctx context.Context, source string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if all[source] == nil {
		return []string{}, nil
	}
	return all[source], nil
}

// Add records query for source. Blank queries are ignored; a repeated
// query moves to the front instead of being duplicated.
func (r *RecentSearches) Add(ctx context.Context, source, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	next := []string{query}
	for _, q := range all[source] {
		if strings.EqualFold(q, query) {
			continue
		}
		next = append(next, q)
	}
	if len(next) > MaxRecentSearches {
		next = next[:MaxRecentSearches]
	}
	all[source] = next
	return setJSON(ctx, r.kv, KeyRecentSearches, all)
}

// Clear drops the history for source.
func (r *RecentSearches) Clear(ctx context.Context, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	delete(all, source)
	return setJSON(ctx, r.kv, KeyRecentSearches, all)
}

func (r *RecentSearches) load(ctx context.Context) (map[string][]string, error) {
	all := map[string][]string{}
	if _, err := getJSON(ctx, r.kv, KeyRecentSearches, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = map[string][]string{}
	}
	return all, nil
}
