package controller

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/jdupreez/trolley/internal/models"
	"github.com/jdupreez/trolley/internal/sorting"
)

// View-state query parameters. A non-empty search and a non-default sort
// are reflected in the encoded query so a view can be shared and restored.
const (
	queryParamSearch = "search"
	queryParamSort   = "sort"
)

// SetSearchQuery records the query and restarts the debounce timer; the
// remote search fires only once input has been quiet for the debounce
// interval. A blank query cancels the timer and clears search mode
// immediately. Every call bumps the request sequence, so a response from a
// superseded query is discarded when it lands.
func (c *Controller) SetSearchQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchQuery = query
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.searchSeq++

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.searchResults = nil
		return
	}

	seq := c.searchSeq
	c.debounce = time.AfterFunc(c.debounceDelay, func() {
		if err := c.search(context.Background(), seq, trimmed); err != nil {
			c.logger.Errorf("Search for %q failed: %v", trimmed, err)
		}
	})
}

// SearchNow applies a query without waiting for the debounce interval,
// used when a view state is restored from an encoded query.
func (c *Controller) SearchNow(ctx context.Context, query string) error {
	c.mu.Lock()
	c.searchQuery = query
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.searchSeq++
	seq := c.searchSeq

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.searchResults = nil
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	return c.search(ctx, seq, trimmed)
}

// search issues the remote query and installs the results, unless a newer
// query has been issued since this one fired.
func (c *Controller) search(ctx context.Context, seq uint64, query string) error {
	c.mu.Lock()
	userID := c.user.ID
	c.mu.Unlock()

	results, err := c.items.Search(ctx, userID, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.searchSeq {
		return nil
	}
	if err != nil {
		return err
	}
	if results == nil {
		results = []models.ShoppingListItem{}
	}
	c.searchResults = results
	return nil
}

// SearchQuery returns the current query text.
func (c *Controller) SearchQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchQuery
}

// Searching reports whether a results collection is present; search mode
// and the full-list view are mutually exclusive.
func (c *Controller) Searching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchResults != nil
}

// SearchResults returns the active results ordered by the current sort
// key, or nil when no search is active.
func (c *Controller) SearchResults() []models.ShoppingListItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.searchResults == nil {
		return nil
	}
	return sorting.Items(c.searchResults, c.sortKey)
}

// SetSortKey selects the display order for both list items and search
// results.
func (c *Controller) SetSortKey(key sorting.Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortKey = key
}

// SortKey returns the current sort key.
func (c *Controller) SortKey() sorting.Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortKey
}

// EncodeQuery renders the shareable view state: the search query when one
// is active and the sort key when it differs from the default.
func (c *Controller) EncodeQuery() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	values := url.Values{}
	if strings.TrimSpace(c.searchQuery) != "" {
		values.Set(queryParamSearch, c.searchQuery)
	}
	if c.sortKey != sorting.KeyDate {
		values.Set(queryParamSort, string(c.sortKey))
	}
	return values
}

// ApplyQuery restores a view state from an encoded query: the sort key
// first, then the search, issued immediately.
func (c *Controller) ApplyQuery(ctx context.Context, values url.Values) error {
	c.SetSortKey(sorting.ParseKey(values.Get(queryParamSort)))
	return c.SearchNow(ctx, values.Get(queryParamSearch))
}
