// Package enrich upgrades harvested news items with full article bodies,
// downloaded attachments, and a structured textual document.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/junyangz/newsbrief/internal/attach"
	"github.com/junyangz/newsbrief/internal/extract"
	"github.com/junyangz/newsbrief/internal/fetcher"
	"github.com/junyangz/newsbrief/internal/types"
)

// Options bound one enrichment run.
type Options struct {
	ProcessContent      bool
	DownloadAttachments bool
	AttachmentTypes     []string
	MaxContentLength    int
	MaxAttachmentSize   int64
	AttachmentTimeout   time.Duration
	Concurrency         int
}

// Enricher fetches article pages and attachments for harvested items.
type Enricher struct {
	fetch  *fetcher.Fetcher
	body   *extract.BodyExtractor
	logger *slog.Logger
	now    func() time.Time
}

// New creates an Enricher around a shared fetcher.
func New(fetch *fetcher.Fetcher, logger *slog.Logger) *Enricher {
	return &Enricher{
		fetch:  fetch,
		body:   extract.NewBodyExtractor(logger),
		logger: logger.With("component", "enricher"),
		now:    time.Now,
	}
}

// Enrich processes items with bounded fan-out, preserving input order. An
// item whose enrichment fails outright is logged and dropped; attachment
// failures only skip the one attachment.
func (e *Enricher) Enrich(ctx context.Context, items []types.NewsItem, opts Options) []types.EnrichedItem {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	downloader := attach.NewDownloader(opts.MaxAttachmentSize, opts.AttachmentTimeout, e.logger)

	results := make([]*types.EnrichedItem, len(items))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, item types.NewsItem) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			defer func() {
				if r := recover(); r != nil {
					err := &types.StageError{Stage: "enrich", Unit: item.Title, Err: fmt.Errorf("panic: %v", r)}
					e.logger.Error("item enrichment panicked", "title", item.Title, "error", err)
				}
			}()

			results[idx] = e.enrichItem(ctx, item, downloader, opts)
		}(i, item)
	}
	wg.Wait()

	enriched := make([]types.EnrichedItem, 0, len(items))
	for _, res := range results {
		if res != nil {
			enriched = append(enriched, *res)
		}
	}

	e.logger.Info("enrichment complete", "items", len(items), "enriched", len(enriched))
	return enriched
}

// enrichItem fetches the article page once and reuses the HTML for both body
// extraction and attachment discovery.
func (e *Enricher) enrichItem(ctx context.Context, item types.NewsItem, downloader *attach.Downloader, opts Options) *types.EnrichedItem {
	enriched := &types.EnrichedItem{NewsItem: item}

	if item.Link != "" && (opts.ProcessContent || opts.DownloadAttachments) {
		html, err := e.fetch.FetchHTML(ctx, item.Link)
		if err != nil {
			e.logger.Warn("article fetch failed", "title", item.Title, "url", item.Link, "error", err)
		} else {
			if opts.ProcessContent {
				enriched.FullContent = truncateContent(e.body.Text(html, item.Link), opts.MaxContentLength)
			}
			if opts.DownloadAttachments {
				enriched.Attachments = e.downloadAll(ctx, html, item, downloader, opts)
			}
		}
	}

	enriched.Document = RenderDocument(enriched)
	return enriched
}

func (e *Enricher) downloadAll(ctx context.Context, html string, item types.NewsItem, downloader *attach.Downloader, opts Options) []types.Attachment {
	links := attach.FindLinks(html, item.Link, opts.AttachmentTypes, e.now())
	if len(links) == 0 {
		return nil
	}

	var attachments []types.Attachment
	for _, link := range links {
		att, err := downloader.Download(ctx, link)
		if err != nil {
			e.logger.Warn("attachment skipped", "title", item.Title, "url", link.URL, "error", err)
			continue
		}
		attachments = append(attachments, *att)
	}
	return attachments
}

// truncateContent caps the body at max runes, appending an ellipsis when
// anything was cut. max <= 0 means unlimited.
func truncateContent(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
