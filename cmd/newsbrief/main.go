package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/junyangz/newsbrief/internal/config"
	"github.com/junyangz/newsbrief/internal/enrich"
	"github.com/junyangz/newsbrief/internal/fetcher"
	"github.com/junyangz/newsbrief/internal/harvest"
	"github.com/junyangz/newsbrief/internal/pipeline"
	"github.com/junyangz/newsbrief/internal/report"
	"github.com/junyangz/newsbrief/internal/store"
	"github.com/junyangz/newsbrief/internal/types"
)

var (
	configPath string
	verbose    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "newsbrief",
		Short: "Harvest news sources, enrich items, and compile daily reports",
		Long: `newsbrief collects news items from configured sources, fetches full
article bodies and attachments, and compiles the results into a daily
report in markdown, JSON, text, or HTML.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(runCmd(), harvestCmd(), reportCmd(), configCmd(), versionCmd())
	return root
}

func runCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "run [source-url ...]",
		Short: "Run the full pipeline: harvest, enrich, store, report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Report.OutputFormat = output
			}

			adHoc, err := pipeline.ParseAdHoc(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := newStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			result, err := pipeline.Run(ctx, cfg, adHoc, st, logger)
			if err != nil {
				return err
			}

			fmt.Println(result.Output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: markdown, json, text, html")
	return cmd
}

func harvestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "harvest [source-url ...]",
		Short: "Harvest news items without enrichment and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			adHoc, err := pipeline.ParseAdHoc(args)
			if err != nil {
				return err
			}
			sources := append(append([]types.Source(nil), cfg.Sources...), adHoc...)

			fetch, err := fetcher.New(fetcher.Options{Timeout: cfg.Harvest.Timeout}, logger)
			if err != nil {
				return err
			}
			defer fetch.Close()

			harvester := harvest.New(fetch, cfg.Harvest.Timeout, cfg.Harvest.Concurrency, logger)
			items := harvester.Harvest(cmd.Context(), sources, harvest.Filters{
				Keywords:     cfg.Harvest.Keywords,
				MaxPerSource: cfg.Harvest.MaxPerSource,
				Window:       harvest.Window(cfg.Harvest.DateFilter),
			})

			out, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compile a report from previously stored documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Report.OutputFormat = output
			}

			ctx := cmd.Context()
			st, err := newStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			stored, err := st.List(ctx, cfg.Store.Container)
			if err != nil {
				return err
			}
			var docs []string
			for _, doc := range stored {
				if doc.Kind == "document" {
					docs = append(docs, string(doc.Content))
				}
			}

			compiler := report.NewCompiler(cfg.Report, logger)
			rep := compiler.CompileFromDocuments(docs, enrich.ParseDocument)

			renderer, err := report.NewRenderer(cfg.Report.OutputFormat)
			if err != nil {
				return err
			}
			out, err := renderer.Render(rep)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: markdown, json, text, html")
	return cmd
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("newsbrief", config.Version)
		},
	}
}

// setup loads configuration and builds the logger. --verbose overrides the
// configured log level.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, setupLogger(cfg.Logging), nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.Store.Type {
	case "mongodb":
		return store.NewMongoStore(ctx, cfg.Store.URI, cfg.Store.Database, logger)
	default:
		return store.NewMemoryStore(), nil
	}
}
