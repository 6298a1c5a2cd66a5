package config

import (
	"time"

	"github.com/junyangz/newsbrief/internal/types"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for newsbrief.
type Config struct {
	Sources []types.Source `mapstructure:"sources" yaml:"sources"`
	Harvest HarvestConfig  `mapstructure:"harvest" yaml:"harvest"`
	Enrich  EnrichConfig   `mapstructure:"enrich"  yaml:"enrich"`
	Report  ReportConfig   `mapstructure:"report"  yaml:"report"`
	Store   StoreConfig    `mapstructure:"store"   yaml:"store"`
	Logging LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// HarvestConfig controls the source harvester.
type HarvestConfig struct {
	Keywords     []string      `mapstructure:"keywords"       yaml:"keywords"`
	MaxPerSource int           `mapstructure:"max_per_source" yaml:"max_per_source"`
	MaxNewsCount int           `mapstructure:"max_news_count" yaml:"max_news_count"`
	DateFilter   string        `mapstructure:"date_filter"    yaml:"date_filter"` // today, week, month
	Timeout      time.Duration `mapstructure:"timeout"        yaml:"timeout"`
	Concurrency  int           `mapstructure:"concurrency"    yaml:"concurrency"`
}

// EnrichConfig controls the content enricher and attachment pipeline.
type EnrichConfig struct {
	ProcessContent      bool          `mapstructure:"process_content"      yaml:"process_content"`
	MaxContentLength    int           `mapstructure:"max_content_length"   yaml:"max_content_length"`
	DownloadAttachments bool          `mapstructure:"download_attachments" yaml:"download_attachments"`
	AttachmentTypes     []string      `mapstructure:"attachment_types"     yaml:"attachment_types"`
	MaxAttachmentSize   int64         `mapstructure:"max_attachment_size"  yaml:"max_attachment_size"`
	AttachmentTimeout   time.Duration `mapstructure:"attachment_timeout"   yaml:"attachment_timeout"`
	Concurrency         int           `mapstructure:"concurrency"          yaml:"concurrency"`
}

// ReportConfig controls the report compiler and renderers.
type ReportConfig struct {
	Template                   string   `mapstructure:"template"                      yaml:"template"`      // daily_brief, executive_summary, industry_report, custom
	Language                   string   `mapstructure:"language"                      yaml:"language"`      // zh-CN, en-US, ja-JP
	OutputFormat               string   `mapstructure:"output_format"                 yaml:"output_format"` // markdown, json, text, html
	Sections                   []string `mapstructure:"sections"                      yaml:"sections"`
	IncludeAttachments         bool     `mapstructure:"include_attachments"           yaml:"include_attachments"`
	AttachmentSummary          bool     `mapstructure:"attachment_summary"            yaml:"attachment_summary"`
	MaxAttachmentSummaryLength int      `mapstructure:"max_attachment_summary_length" yaml:"max_attachment_summary_length"`
	IncludeSummary             bool     `mapstructure:"include_summary"               yaml:"include_summary"`
	CategorizeNews             bool     `mapstructure:"categorize_news"               yaml:"categorize_news"`
	MaxNewsCount               int      `mapstructure:"max_news_count"                yaml:"max_news_count"`
	DateRange                  int      `mapstructure:"date_range"                    yaml:"date_range"` // days
}

// StoreConfig controls the document store backend.
type StoreConfig struct {
	Type        string `mapstructure:"type"          yaml:"type"` // memory, mongodb
	URI         string `mapstructure:"uri"           yaml:"uri"`
	Database    string `mapstructure:"database"      yaml:"database"`
	Container   string `mapstructure:"container"     yaml:"container"`
	SaveToStore bool   `mapstructure:"save_to_store" yaml:"save_to_store"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Harvest: HarvestConfig{
			MaxPerSource: 10,
			MaxNewsCount: 50,
			DateFilter:   "today",
			Timeout:      30 * time.Second,
			Concurrency:  4,
		},
		Enrich: EnrichConfig{
			ProcessContent:      true,
			MaxContentLength:    5000,
			DownloadAttachments: true,
			AttachmentTypes:     []string{"pdf", "doc", "docx", "ppt", "pptx"},
			MaxAttachmentSize:   50 * 1024 * 1024,
			AttachmentTimeout:   60 * time.Second,
			Concurrency:         4,
		},
		Report: ReportConfig{
			Template:                   "daily_brief",
			Language:                   "zh-CN",
			OutputFormat:               "markdown",
			Sections:                   []string{"summary", "key_events", "industry_trends", "attachments"},
			IncludeAttachments:         true,
			AttachmentSummary:          true,
			MaxAttachmentSummaryLength: 500,
			IncludeSummary:             true,
			CategorizeNews:             true,
			MaxNewsCount:               20,
			DateRange:                  1,
		},
		Store: StoreConfig{
			Type:        "memory",
			Database:    "newsbrief",
			Container:   "news",
			SaveToStore: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
