package client

import "context"

// Search sources used to namespace recent searches.
const (
	SearchSourceSpecies = "species"
	SearchSourcePlants  = "plants"
	SearchSourceProxies = "proxies"
)

// RecentSearches returns up to ten queries for source, newest first.
func (c *Client) RecentSearches(ctx context.Context, source string) ([]string, error) {
	return c.recent.List(ctx, source)
}

// AddRecentSearch records a query. Blank queries are ignored and repeats
// move to the front.
func (c *Client) AddRecentSearch(ctx context.Context, source, query string) error {
	return c.recent.Add(ctx, source, query)
}

// ClearRecentSearches forgets every query for source.
func (c *Client) ClearRecentSearches(ctx context.Context, source string) error {
	return c.recent.Clear(ctx, source)
}
