package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment.
// Priority (highest to lowest): env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("NEWSBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("newsbrief")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".newsbrief"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("harvest.max_per_source", cfg.Harvest.MaxPerSource)
	v.SetDefault("harvest.max_news_count", cfg.Harvest.MaxNewsCount)
	v.SetDefault("harvest.date_filter", cfg.Harvest.DateFilter)
	v.SetDefault("harvest.timeout", cfg.Harvest.Timeout)
	v.SetDefault("harvest.concurrency", cfg.Harvest.Concurrency)

	v.SetDefault("enrich.process_content", cfg.Enrich.ProcessContent)
	v.SetDefault("enrich.max_content_length", cfg.Enrich.MaxContentLength)
	v.SetDefault("enrich.download_attachments", cfg.Enrich.DownloadAttachments)
	v.SetDefault("enrich.attachment_types", cfg.Enrich.AttachmentTypes)
	v.SetDefault("enrich.max_attachment_size", cfg.Enrich.MaxAttachmentSize)
	v.SetDefault("enrich.attachment_timeout", cfg.Enrich.AttachmentTimeout)
	v.SetDefault("enrich.concurrency", cfg.Enrich.Concurrency)

	v.SetDefault("report.template", cfg.Report.Template)
	v.SetDefault("report.language", cfg.Report.Language)
	v.SetDefault("report.output_format", cfg.Report.OutputFormat)
	v.SetDefault("report.sections", cfg.Report.Sections)
	v.SetDefault("report.include_attachments", cfg.Report.IncludeAttachments)
	v.SetDefault("report.attachment_summary", cfg.Report.AttachmentSummary)
	v.SetDefault("report.max_attachment_summary_length", cfg.Report.MaxAttachmentSummaryLength)
	v.SetDefault("report.include_summary", cfg.Report.IncludeSummary)
	v.SetDefault("report.categorize_news", cfg.Report.CategorizeNews)
	v.SetDefault("report.max_news_count", cfg.Report.MaxNewsCount)
	v.SetDefault("report.date_range", cfg.Report.DateRange)

	v.SetDefault("store.type", cfg.Store.Type)
	v.SetDefault("store.database", cfg.Store.Database)
	v.SetDefault("store.container", cfg.Store.Container)
	v.SetDefault("store.save_to_store", cfg.Store.SaveToStore)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}
