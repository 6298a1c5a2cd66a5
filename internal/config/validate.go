package config

import (
	"fmt"
	"net/url"

	"github.com/junyangz/newsbrief/internal/types"
)

var (
	validDateFilters = map[string]bool{"today": true, "week": true, "month": true}
	validTemplates   = map[string]bool{"daily_brief": true, "executive_summary": true, "industry_report": true, "custom": true}
	validLanguages   = map[string]bool{"zh-CN": true, "en-US": true, "ja-JP": true}
	validFormats     = map[string]bool{"markdown": true, "json": true, "text": true, "html": true}
	validSections    = map[string]bool{"summary": true, "key_events": true, "industry_trends": true, "attachments": true}
	validStoreTypes  = map[string]bool{"memory": true, "mongodb": true}
	validLogLevels   = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

func invalid(field string, format string, args ...any) error {
	return &types.ConfigError{Field: field, Err: fmt.Errorf(format, args...)}
}

// Validate checks the configuration for invalid values. It runs eagerly,
// before any network activity, and names the offending field.
func Validate(cfg *Config) error {
	for i, src := range cfg.Sources {
		field := fmt.Sprintf("sources[%d].url", i)
		if src.URL == "" {
			return invalid(field, "must not be empty")
		}
		if err := ValidateURL(src.URL); err != nil {
			return invalid(field, "%v", err)
		}
		if src.Proxy != "" {
			if _, err := url.Parse(src.Proxy); err != nil {
				return invalid(fmt.Sprintf("sources[%d].proxy", i), "%v", err)
			}
		}
		if src.Timeout < 0 {
			return invalid(fmt.Sprintf("sources[%d].timeout", i), "must be >= 0, got %d", src.Timeout)
		}
	}

	if cfg.Harvest.MaxPerSource < 1 {
		return invalid("harvest.max_per_source", "must be >= 1, got %d", cfg.Harvest.MaxPerSource)
	}
	if cfg.Harvest.MaxNewsCount < 1 {
		return invalid("harvest.max_news_count", "must be >= 1, got %d", cfg.Harvest.MaxNewsCount)
	}
	if !validDateFilters[cfg.Harvest.DateFilter] {
		return invalid("harvest.date_filter", "must be today/week/month, got %q", cfg.Harvest.DateFilter)
	}
	if cfg.Harvest.Timeout <= 0 {
		return invalid("harvest.timeout", "must be > 0")
	}
	if cfg.Harvest.Concurrency < 1 {
		return invalid("harvest.concurrency", "must be >= 1, got %d", cfg.Harvest.Concurrency)
	}

	if cfg.Enrich.MaxContentLength < 1 {
		return invalid("enrich.max_content_length", "must be >= 1, got %d", cfg.Enrich.MaxContentLength)
	}
	if cfg.Enrich.MaxAttachmentSize < 1 {
		return invalid("enrich.max_attachment_size", "must be >= 1, got %d", cfg.Enrich.MaxAttachmentSize)
	}
	if cfg.Enrich.AttachmentTimeout <= 0 {
		return invalid("enrich.attachment_timeout", "must be > 0")
	}
	if cfg.Enrich.Concurrency < 1 {
		return invalid("enrich.concurrency", "must be >= 1, got %d", cfg.Enrich.Concurrency)
	}
	if cfg.Enrich.DownloadAttachments && len(cfg.Enrich.AttachmentTypes) == 0 {
		return invalid("enrich.attachment_types", "must not be empty when download_attachments is on")
	}

	if !validTemplates[cfg.Report.Template] {
		return invalid("report.template", "must be daily_brief/executive_summary/industry_report/custom, got %q", cfg.Report.Template)
	}
	if !validLanguages[cfg.Report.Language] {
		return invalid("report.language", "must be zh-CN/en-US/ja-JP, got %q", cfg.Report.Language)
	}
	if !validFormats[cfg.Report.OutputFormat] {
		return invalid("report.output_format", "must be markdown/json/text/html, got %q", cfg.Report.OutputFormat)
	}
	for _, s := range cfg.Report.Sections {
		if !validSections[s] {
			return invalid("report.sections", "%w: %q", types.ErrUnknownSection, s)
		}
	}
	if cfg.Report.MaxAttachmentSummaryLength < 1 {
		return invalid("report.max_attachment_summary_length", "must be >= 1, got %d", cfg.Report.MaxAttachmentSummaryLength)
	}
	if cfg.Report.MaxNewsCount < 1 {
		return invalid("report.max_news_count", "must be >= 1, got %d", cfg.Report.MaxNewsCount)
	}
	if cfg.Report.DateRange < 1 {
		return invalid("report.date_range", "must be >= 1, got %d", cfg.Report.DateRange)
	}

	if !validStoreTypes[cfg.Store.Type] {
		return invalid("store.type", "must be memory/mongodb, got %q", cfg.Store.Type)
	}
	if cfg.Store.Type == "mongodb" && cfg.Store.URI == "" {
		return invalid("store.uri", "must not be empty for mongodb store")
	}
	if cfg.Store.SaveToStore && cfg.Store.Container == "" {
		return invalid("store.container", "must not be empty when save_to_store is on")
	}

	if !validLogLevels[cfg.Logging.Level] {
		return invalid("logging.level", "must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return invalid("logging.format", "must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is valid for harvesting.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
