// Package pipeline wires harvest, enrichment, persistence, and report
// compilation into a single run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/junyangz/newsbrief/internal/config"
	"github.com/junyangz/newsbrief/internal/enrich"
	"github.com/junyangz/newsbrief/internal/fetcher"
	"github.com/junyangz/newsbrief/internal/harvest"
	"github.com/junyangz/newsbrief/internal/report"
	"github.com/junyangz/newsbrief/internal/store"
	"github.com/junyangz/newsbrief/internal/types"
)

const (
	documentKind   = "document"
	attachmentKind = "attachment"

	maxDocNameRunes   = 50
	maxTitlePrefixLen = 30
)

// Result carries everything a run produced.
type Result struct {
	Items  []types.EnrichedItem
	Report *types.Report
	Output string
}

// Run executes the full pipeline against cfg. Configuration is validated
// first and the only error class that aborts a run before any network work
// is a *types.ConfigError; source and item failures downstream degrade to
// fewer items. adHoc sources are appended after the configured ones.
func Run(ctx context.Context, cfg *config.Config, adHoc []types.Source, st store.Store, logger *slog.Logger) (*Result, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	sources := append(append([]types.Source(nil), cfg.Sources...), adHoc...)
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources: %w", types.ErrNoItems)
	}

	fetch, err := fetcher.New(fetcher.Options{Timeout: cfg.Harvest.Timeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("building fetcher: %w", err)
	}
	defer fetch.Close()

	harvester := harvest.New(fetch, cfg.Harvest.Timeout, cfg.Harvest.Concurrency, logger)
	items := harvester.Harvest(ctx, sources, harvest.Filters{
		Keywords:     cfg.Harvest.Keywords,
		MaxPerSource: cfg.Harvest.MaxPerSource,
		Window:       harvest.Window(cfg.Harvest.DateFilter),
	})

	// Overall cap on top of the per-source caps, applied after a global
	// newest-first sort.
	harvest.SortByTimeDesc(items)
	if cfg.Harvest.MaxNewsCount > 0 && len(items) > cfg.Harvest.MaxNewsCount {
		items = items[:cfg.Harvest.MaxNewsCount]
	}

	enricher := enrich.New(fetch, logger)
	enriched := enricher.Enrich(ctx, items, enrich.Options{
		ProcessContent:      cfg.Enrich.ProcessContent,
		DownloadAttachments: cfg.Enrich.DownloadAttachments,
		AttachmentTypes:     cfg.Enrich.AttachmentTypes,
		MaxContentLength:    cfg.Enrich.MaxContentLength,
		MaxAttachmentSize:   cfg.Enrich.MaxAttachmentSize,
		AttachmentTimeout:   cfg.Enrich.AttachmentTimeout,
		Concurrency:         cfg.Enrich.Concurrency,
	})

	compiler := report.NewCompiler(cfg.Report, logger)
	var rep *types.Report

	if cfg.Store.SaveToStore && st != nil {
		if err := persist(ctx, st, cfg.Store.Container, enriched, logger); err != nil {
			return nil, err
		}
		docs, err := storedDocuments(ctx, st, cfg.Store.Container)
		if err != nil {
			return nil, err
		}
		rep = compiler.CompileFromDocuments(docs, enrich.ParseDocument)
	} else {
		rep = compiler.Compile(enriched)
	}

	renderer, err := report.NewRenderer(cfg.Report.OutputFormat)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(rep)
	if err != nil {
		return nil, err
	}

	return &Result{Items: enriched, Report: rep, Output: output}, nil
}

// persist writes each item's structured document and raw attachment blobs
// into the store container. Store failures abort: a partially persisted run
// would silently skew the store-backed report.
func persist(ctx context.Context, st store.Store, container string, items []types.EnrichedItem, logger *slog.Logger) error {
	stamp := time.Now().Format("20060102_150405")

	for _, item := range items {
		name := sanitizeName(item.Title, maxDocNameRunes) + "_" + stamp + ".txt"
		if _, err := st.Put(ctx, container, name, []byte(item.Document), documentKind); err != nil {
			return fmt.Errorf("storing document %q: %w", name, err)
		}

		prefix := sanitizeName(item.Title, maxTitlePrefixLen)
		for _, att := range item.Attachments {
			if len(att.Content) == 0 {
				continue
			}
			blobName := prefix + "_" + sanitizeName(att.Filename, 0)
			if _, err := st.Put(ctx, container, blobName, att.Content, attachmentKind); err != nil {
				return fmt.Errorf("storing attachment %q: %w", blobName, err)
			}
		}
	}

	logger.Info("run persisted", "store", st.Name(), "container", container, "items", len(items))
	return nil
}

// storedDocuments returns the textual documents of a container, skipping
// attachment blobs.
func storedDocuments(ctx context.Context, st store.Store, container string) ([]string, error) {
	stored, err := st.List(ctx, container)
	if err != nil {
		return nil, fmt.Errorf("listing container %q: %w", container, err)
	}
	var docs []string
	for _, doc := range stored {
		if doc.Kind == documentKind {
			docs = append(docs, string(doc.Content))
		}
	}
	return docs, nil
}

// sanitizeName makes a title or filename safe for use as a store document
// name, capped at max runes (0 = uncapped).
func sanitizeName(s string, max int) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) || r == '\n' || r == '\r' {
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	if clean == "" {
		clean = "untitled"
	}
	if max > 0 && utf8.RuneCountInString(clean) > max {
		clean = string([]rune(clean)[:max])
	}
	return clean
}
