// Package newsbrief provides a public SDK for embedding the news pipeline as
// a library.
//
// Example usage:
//
//	brief := newsbrief.New(
//	    newsbrief.WithSources(
//	        newsbrief.Source{Name: "tech", URL: "https://example.com/news"},
//	    ),
//	    newsbrief.WithKeywords("AI", "芯片"),
//	    newsbrief.WithOutputFormat("markdown"),
//	)
//
//	result, err := brief.Run(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output)
package newsbrief

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/junyangz/newsbrief/internal/config"
	"github.com/junyangz/newsbrief/internal/pipeline"
	"github.com/junyangz/newsbrief/internal/store"
	"github.com/junyangz/newsbrief/internal/types"
)

// Source names one news source. Proxy and Timeout (seconds) are optional
// per-source overrides.
type Source = types.Source

// NewsItem is one harvested headline.
type NewsItem = types.NewsItem

// EnrichedItem is a harvested item with body, attachments, and document.
type EnrichedItem = types.EnrichedItem

// Report is the compiled multi-section report.
type Report = types.Report

// Result carries everything a pipeline run produced.
type Result struct {
	Items  []EnrichedItem
	Report *Report
	Output string
}

// Option configures a Brief.
type Option func(*config.Config)

// WithSources sets the sources to harvest.
func WithSources(sources ...Source) Option {
	return func(c *config.Config) { c.Sources = sources }
}

// WithKeywords restricts harvested items to those matching any keyword.
func WithKeywords(keywords ...string) Option {
	return func(c *config.Config) { c.Harvest.Keywords = keywords }
}

// WithMaxPerSource caps the items kept from each source.
func WithMaxPerSource(n int) Option {
	return func(c *config.Config) { c.Harvest.MaxPerSource = n }
}

// WithDateFilter sets the recency window: today, week, or month.
func WithDateFilter(window string) Option {
	return func(c *config.Config) { c.Harvest.DateFilter = window }
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config.Config) { c.Harvest.Timeout = d }
}

// WithConcurrency sets the harvest and enrichment fan-out bound.
func WithConcurrency(n int) Option {
	return func(c *config.Config) {
		c.Harvest.Concurrency = n
		c.Enrich.Concurrency = n
	}
}

// WithAttachments toggles attachment discovery and download.
func WithAttachments(enabled bool) Option {
	return func(c *config.Config) { c.Enrich.DownloadAttachments = enabled }
}

// WithMaxAttachmentSize sets the per-attachment byte cap.
func WithMaxAttachmentSize(n int64) Option {
	return func(c *config.Config) { c.Enrich.MaxAttachmentSize = n }
}

// WithOutputFormat sets the report format: markdown, json, text, or html.
func WithOutputFormat(format string) Option {
	return func(c *config.Config) { c.Report.OutputFormat = format }
}

// WithLanguage sets the report language: zh-CN, en-US, or ja-JP.
func WithLanguage(lang string) Option {
	return func(c *config.Config) { c.Report.Language = lang }
}

// WithSections sets which report sections to build.
func WithSections(sections ...string) Option {
	return func(c *config.Config) { c.Report.Sections = sections }
}

// WithMaxNewsCount caps the items a report covers.
func WithMaxNewsCount(n int) Option {
	return func(c *config.Config) {
		c.Harvest.MaxNewsCount = n
		c.Report.MaxNewsCount = n
	}
}

// WithMongoStore persists run artifacts in MongoDB instead of memory.
func WithMongoStore(uri, database string) Option {
	return func(c *config.Config) {
		c.Store.Type = "mongodb"
		c.Store.URI = uri
		c.Store.Database = database
	}
}

// WithoutStore disables persistence; reports compile from memory.
func WithoutStore() Option {
	return func(c *config.Config) { c.Store.SaveToStore = false }
}

// WithVerbose enables debug-level logging.
func WithVerbose() Option {
	return func(c *config.Config) { c.Logging.Level = "debug" }
}

// Brief is the high-level API for running the pipeline as a library.
type Brief struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Brief with the given options applied over the defaults.
func New(opts ...Option) *Brief {
	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return &Brief{cfg: cfg, logger: logger}
}

// Run executes the full pipeline and returns the enriched items, the
// compiled report, and its rendered output.
func (b *Brief) Run(ctx context.Context) (*Result, error) {
	st, err := b.newStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close(ctx)

	result, err := pipeline.Run(ctx, b.cfg, nil, st, b.logger)
	if err != nil {
		return nil, err
	}
	return &Result{Items: result.Items, Report: result.Report, Output: result.Output}, nil
}

func (b *Brief) newStore(ctx context.Context) (store.Store, error) {
	if b.cfg.Store.Type == "mongodb" {
		return store.NewMongoStore(ctx, b.cfg.Store.URI, b.cfg.Store.Database, b.logger)
	}
	return store.NewMemoryStore(), nil
}
