package client

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// bookmarkFetchConcurrency bounds parallel detail fetches.
const bookmarkFetchConcurrency = 8

// Bookmarks returns the bookmarked species IDs in the order they were added.
func (c *Client) Bookmarks(ctx context.Context) ([]int, error) {
	return c.bookmarks.List(ctx)
}

// IsBookmarked reports whether a species is bookmarked.
func (c *Client) IsBookmarked(ctx context.Context, speciesID int) (bool, error) {
	return c.bookmarks.Contains(ctx, speciesID)
}

// AddBookmark bookmarks a species. Adding twice is a no-op.
func (c *Client) AddBookmark(ctx context.Context, speciesID int) error {
	return c.bookmarks.Add(ctx, speciesID)
}

// RemoveBookmark removes a bookmark if present.
func (c *Client) RemoveBookmark(ctx context.Context, speciesID int) error {
	return c.bookmarks.Remove(ctx, speciesID)
}

// ToggleBookmark flips a bookmark and reports whether it is now set.
func (c *Client) ToggleBookmark(ctx context.Context, speciesID int) (bool, error) {
	return c.bookmarks.Toggle(ctx, speciesID)
}

// LoadBookmarkedSpecies fetches details for every bookmark in parallel.
// Species that fail to load are logged and left out; the rest keep their
// bookmark order. Only a cancelled ctx or unreadable bookmarks fail the call.
func (c *Client) LoadBookmarkedSpecies(ctx context.Context) ([]PlantSpeciesDetails, error) {
	ids, err := c.bookmarks.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*PlantSpeciesDetails, len(ids))
	var g errgroup.Group
	g.SetLimit(bookmarkFetchConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			d, err := c.GetPlantSpeciesDetails(ctx, id, nil)
			if err != nil {
				bookmarkFetchFailuresTotal.Inc()
				log.Warn().Err(err).Int("species_id", id).Msg("skipping bookmarked species")
				return nil
			}
			results[i] = d
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]PlantSpeciesDetails, 0, len(ids))
	for _, d := range results {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out, nil
}
