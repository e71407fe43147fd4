package client

import (
	"context"
	"testing"
)

func TestBookmarkToggle(t *testing.T) {
	ctx := context.Background()
	c := New("http://example.com")

	on, err := c.ToggleBookmark(ctx, 3)
	if err != nil || !on {
		t.Fatalf("toggle on: %v %v", on, err)
	}
	if err := c.AddBookmark(ctx, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.AddBookmark(ctx, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	ids, _ := c.Bookmarks(ctx)
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 1 {
		t.Fatalf("bookmarks = %v", ids)
	}
	on, err = c.ToggleBookmark(ctx, 3)
	if err != nil || on {
		t.Fatalf("toggle off: %v %v", on, err)
	}
	if ok, _ := c.IsBookmarked(ctx, 3); ok {
		t.Fatalf("3 should no longer be bookmarked")
	}
}

func TestLoadBookmarkedSpeciesSkipsFailures(t *testing.T) {
	ctx := context.Background()
	c := newDevClient(t)
	for _, id := range []int{4, 404, 2, 999, 6} {
		if err := c.AddBookmark(ctx, id); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}

	before := counterValue(t, "leafkeeper_client_bookmark_fetch_failures_total", nil)
	got, err := c.LoadBookmarkedSpecies(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []int{4, 2, 6}
	if len(got) != len(want) {
		t.Fatalf("loaded %d species, want %d", len(got), len(want))
	}
	for i, d := range got {
		if d.ID != want[i] {
			t.Fatalf("species[%d] = %d, want %d", i, d.ID, want[i])
		}
	}
	if n := counterValue(t, "leafkeeper_client_bookmark_fetch_failures_total", nil) - before; n != 2 {
		t.Fatalf("failures counted = %v, want 2", n)
	}
}

func TestLoadBookmarkedSpeciesCancelled(t *testing.T) {
	c := newDevClient(t)
	if err := c.AddBookmark(context.Background(), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.LoadBookmarkedSpecies(ctx); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestRecentSearches(t *testing.T) {
	ctx := context.Background()
	c := New("http://example.com")
	for _, q := range []string{"fern", "  ", "basil", "fern"} {
		if err := c.AddRecentSearch(ctx, SearchSourceSpecies, q); err != nil {
			t.Fatalf("add %q: %v", q, err)
		}
	}
	got, _ := c.RecentSearches(ctx, SearchSourceSpecies)
	if len(got) != 2 || got[0] != "fern" || got[1] != "basil" {
		t.Fatalf("recent = %v", got)
	}
	if other, _ := c.RecentSearches(ctx, SearchSourcePlants); len(other) != 0 {
		t.Fatalf("sources must not share history: %v", other)
	}
	if err := c.ClearRecentSearches(ctx, SearchSourceSpecies); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := c.RecentSearches(ctx, SearchSourceSpecies); len(got) != 0 {
		t.Fatalf("recent after clear = %v", got)
	}
}
