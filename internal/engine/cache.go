package engine

import (
	"context"

	"github.com/mboeker/gammonsync/internal/dailygammon"
	"github.com/mboeker/gammonsync/internal/league"
	"github.com/mboeker/gammonsync/internal/metrics"
)

// PageCache memoizes remote match documents for one run. Failures are cached
// like successes, so a match id is requested at most once per run no matter
// how many phases ask for it.
type PageCache struct {
	client  Client
	metrics metrics.Metrics

	pages   map[league.MatchID]pageResult
	exports map[league.MatchID]exportResult

	// Fetches and Hits are run totals for the report.
	Fetches int
	Hits    int
}

type pageResult struct {
	html string
	err  error
}

type exportResult struct {
	lines []string
	err   error
}

// NewPageCache creates an empty cache bound to one client. Its lifetime is
// one run; there is no cross-run persistence.
func NewPageCache(client Client, m metrics.Metrics) *PageCache {
	return &PageCache{
		client:  client,
		metrics: m,
		pages:   make(map[league.MatchID]pageResult),
		exports: make(map[league.MatchID]exportResult),
	}
}

// Page returns the match page for id, fetching it on first use.
func (c *PageCache) Page(ctx context.Context, id league.MatchID) (string, error) {
	if r, ok := c.pages[id]; ok {
		c.Hits++
		c.metrics.IncCacheHits()
		return r.html, r.err
	}
	c.Fetches++
	c.metrics.IncFetches()
	html, err := c.client.FetchMatchPage(ctx, id)
	c.pages[id] = pageResult{html: html, err: err}
	return html, err
}

// Export returns the transcript lines for id, fetching them on first use.
func (c *PageCache) Export(ctx context.Context, id league.MatchID) ([]string, error) {
	if r, ok := c.exports[id]; ok {
		c.Hits++
		c.metrics.IncCacheHits()
		return r.lines, r.err
	}
	c.Fetches++
	c.metrics.IncFetches()
	lines, err := c.client.FetchExport(ctx, id)
	c.exports[id] = exportResult{lines: lines, err: err}
	return lines, err
}

// seasonListMemo caches each player's season match list so discovery and the
// finished-match scan share one user-page fetch per player. Errors are not
// memoized; a later phase may retry.
type seasonListMemo struct {
	client Client
	tag    string
	lists  map[string][]dailygammon.SeasonMatch
}

func newSeasonListMemo(client Client, tag string) *seasonListMemo {
	return &seasonListMemo{
		client: client,
		tag:    tag,
		lists:  make(map[string][]dailygammon.SeasonMatch),
	}
}

// For returns the season matches listed on the player's user page.
func (m *seasonListMemo) For(ctx context.Context, userID string) ([]dailygammon.SeasonMatch, error) {
	if list, ok := m.lists[userID]; ok {
		return list, nil
	}
	list, err := m.client.ListSeasonMatches(ctx, userID, m.tag)
	if err != nil {
		return nil, err
	}
	m.lists[userID] = list
	return list, nil
}
