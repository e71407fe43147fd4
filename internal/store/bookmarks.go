package store

import (
	"context"
	"sync"
)

// Bookmarks is the ordered list of bookmarked catalog species IDs.
type Bookmarks struct {
	mu sync.Mutex
	kv KV
}

// NewBookmarks wraps kv.
func NewBookmarks(kv KV) *Bookmarks {
	return &Bookmarks{kv: kv}
}

// List returns IDs in the order they were added.
func (b *Bookmarks) List(ctx context.Context) ([]int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(ctx)
}

// Contains reports whether id is bookmarked.
func (b *Bookmarks) Contains(ctx context.Context, id int) (bool, error) {
	ids, err := b.List(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(ids, id) >= 0, nil
}

// Add appends id unless already present.
func (b *Bookmarks) Add(ctx context.Context, id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids, err := b.load(ctx)
	if err != nil {
		return err
	}
	if indexOf(ids, id) >= 0 {
		return nil
	}
	return setJSON(ctx, b.kv, KeyBookmarks, append(ids, id))
}

// Remove drops id if present.
func (b *Bookmarks) Remove(ctx context.Context, id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids, err := b.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(ids, id)
	if i < 0 {
		return nil
	}
	return setJSON(ctx, b.kv, KeyBookmarks, append(ids[:i], ids[i+1:]...))
}

// Toggle adds or removes id and reports whether it is now bookmarked. The
// read and the write happen under one lock.
func (b *Bookmarks) Toggle(ctx context.Context, id int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids, err := b.load(ctx)
	if err != nil {
		return false, err
	}
	if i := indexOf(ids, id); i >= 0 {
		return false, setJSON(ctx, b.kv, KeyBookmarks, append(ids[:i], ids[i+1:]...))
	}
	return true, setJSON(ctx, b.kv, KeyBookmarks, append(ids, id))
}

func (b *Bookmarks) load(ctx context.Context) ([]int, error) {
	ids := []int{}
	if _, err := getJSON(ctx, b.kv, KeyBookmarks, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
