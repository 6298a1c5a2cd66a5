// Package harvest orchestrates per-source fetching, extraction, filtering,
// and truncation across potentially many sources.
package harvest

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/junyangz/newsbrief/internal/extract"
	"github.com/junyangz/newsbrief/internal/fetcher"
	"github.com/junyangz/newsbrief/internal/types"
)

// Filters bound a harvest run.
type Filters struct {
	// Keywords retain an item when empty, or when any keyword matches the
	// item's title+summary case-insensitively.
	Keywords []string

	// MaxPerSource truncates each source's result after sorting.
	MaxPerSource int

	// Window is the recency window for the date filter.
	Window Window
}

// Harvester fetches configured sources and extracts candidate news items.
type Harvester struct {
	fetch       *fetcher.Fetcher
	extractor   *extract.Extractor
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger
	now         func() time.Time
}

// New creates a Harvester. fetch is the shared default fetcher; sources with
// a proxy or timeout override get a dedicated one.
func New(fetch *fetcher.Fetcher, timeout time.Duration, concurrency int, logger *slog.Logger) *Harvester {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Harvester{
		fetch:       fetch,
		extractor:   extract.NewExtractor(logger),
		timeout:     timeout,
		concurrency: concurrency,
		logger:      logger.With("component", "harvester"),
		now:         time.Now,
	}
}

// Harvest processes every source independently with bounded fan-out and
// concatenates the per-source results in source-list order. A failing source
// contributes zero items and never aborts the run.
func (h *Harvester) Harvest(ctx context.Context, sources []types.Source, f Filters) []types.NewsItem {
	perSource := make([][]types.NewsItem, len(sources))

	sem := make(chan struct{}, h.concurrency)
	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, src types.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			items, err := h.harvestSource(ctx, src, f)
			if err != nil {
				h.logger.Error("source harvest failed", "source", src.Name, "url", src.URL, "error", err)
				return
			}
			perSource[idx] = items
		}(i, src)
	}
	wg.Wait()

	var all []types.NewsItem
	for _, items := range perSource {
		all = append(all, items...)
	}

	h.logger.Info("harvest complete", "sources", len(sources), "items", len(all))
	return all
}

// harvestSource runs the single-source pipeline: fetch, extract, filter,
// sort, truncate.
func (h *Harvester) harvestSource(ctx context.Context, src types.Source, f Filters) ([]types.NewsItem, error) {
	if src.URL == "" {
		return nil, &types.SourceError{Source: src.Name, URL: src.URL, Err: types.ErrInvalidURL}
	}

	fetch, err := h.sourceFetcher(src)
	if err != nil {
		return nil, &types.SourceError{Source: src.Name, URL: src.URL, Err: err}
	}

	html, err := fetch.FetchHTML(ctx, src.URL)
	if err != nil {
		return nil, &types.SourceError{Source: src.Name, URL: src.URL, Err: err}
	}

	items, err := h.extractor.Extract(html, src)
	if err != nil {
		return nil, err
	}

	recency := RecencyFilter{Window: f.Window, Now: h.now}
	var kept []types.NewsItem
	for _, item := range items {
		if !matchesKeywords(item, f.Keywords) {
			continue
		}
		if !recency.Keep(item.Time) {
			continue
		}
		kept = append(kept, item)
	}

	SortByTimeDesc(kept)

	if f.MaxPerSource > 0 && len(kept) > f.MaxPerSource {
		kept = kept[:f.MaxPerSource]
	}

	h.logger.Debug("source harvested", "source", src.Name, "extracted", len(items), "kept", len(kept))
	return kept, nil
}

// sourceFetcher returns the shared fetcher, or a dedicated one when the
// source overrides proxy or timeout.
func (h *Harvester) sourceFetcher(src types.Source) (*fetcher.Fetcher, error) {
	if src.Proxy == "" && src.Timeout <= 0 {
		return h.fetch, nil
	}
	timeout := h.timeout
	if src.Timeout > 0 {
		timeout = time.Duration(src.Timeout) * time.Second
	}
	return fetcher.New(fetcher.Options{Timeout: timeout, Proxy: src.Proxy}, h.logger)
}

// matchesKeywords retains an item when keywords is empty or any keyword
// appears in the lowercased title+summary.
func matchesKeywords(item types.NewsItem, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	haystack := strings.ToLower(item.Title + " " + item.Summary)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// SortByTimeDesc sorts items descending by their raw time string. The sort
// is stable so equal (and empty) time strings keep extraction order.
func SortByTimeDesc(items []types.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Time > items[j].Time
	})
}
