package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/junyangz/newsbrief/internal/config"
	"github.com/junyangz/newsbrief/internal/store"
	"github.com/junyangz/newsbrief/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newsSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<div class="news-item">
				<h3>AI 行业峰会今日开幕</h3>
				<p class="summary">多家公司展示新产品。</p>
				<a href="/news/1">read</a>
			</div>
			<div class="news-item">
				<h3>芯片出口数据公布</h3>
				<p class="summary">同比增长显著。</p>
				<a href="/news/2">read</a>
			</div>
		</body></html>`)
	})
	mux.HandleFunc("/news/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<div class="article-content"><p>峰会正文内容第一段。</p></div>
			<a href="/files/agenda.pdf">会议附件</a>
		</body></html>`)
	})
	mux.HandleFunc("/news/2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="article-content"><p>出口数据正文内容。</p></div></body></html>`)
	})
	mux.HandleFunc("/files/agenda.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("fake pdf payload"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(srvURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Sources = []types.Source{{Name: "tech", URL: srvURL}}
	cfg.Harvest.DateFilter = "today"
	cfg.Report.OutputFormat = "markdown"
	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	srv := newsSite(t)
	cfg := testConfig(srv.URL)
	st := store.NewMemoryStore()

	result, err := Run(context.Background(), cfg, nil, st, testLogger)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(result.Items))
	}
	if result.Report.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", result.Report.ItemCount)
	}
	if !strings.Contains(result.Output, "AI 行业峰会今日开幕") {
		t.Errorf("output missing harvested headline:\n%s", result.Output)
	}

	// Persistence: one text document per item plus one attachment blob.
	docs, err := st.List(context.Background(), cfg.Store.Container)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var textDocs, blobs int
	for _, doc := range docs {
		switch doc.Kind {
		case "document":
			textDocs++
		case "attachment":
			blobs++
		}
	}
	if textDocs != 2 {
		t.Errorf("stored documents = %d, want 2", textDocs)
	}
	if blobs != 1 {
		t.Errorf("stored attachment blobs = %d, want 1", blobs)
	}
}

func TestRunWithoutStore(t *testing.T) {
	srv := newsSite(t)
	cfg := testConfig(srv.URL)
	cfg.Store.SaveToStore = false
	cfg.Report.OutputFormat = "json"

	result, err := Run(context.Background(), cfg, nil, nil, testLogger)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Report.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", result.Report.ItemCount)
	}
	if !strings.HasPrefix(result.Output, "{") {
		t.Errorf("output is not JSON:\n%s", result.Output)
	}
}

func TestRunInvalidConfigFailsFast(t *testing.T) {
	cfg := testConfig("https://example.com")
	cfg.Report.OutputFormat = "pdf"

	_, err := Run(context.Background(), cfg, nil, store.NewMemoryStore(), testLogger)
	if err == nil {
		t.Fatal("Run() = nil, want validation error")
	}
	var cfgErr *types.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *types.ConfigError", err)
	}
	if cfgErr.Field != "report.output_format" {
		t.Errorf("Field = %q", cfgErr.Field)
	}
}

func TestRunAdHocSourcesAppendToConfigured(t *testing.T) {
	srv := newsSite(t)
	extra := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<div class="news-item"><h3>临时来源的独家新闻</h3></div>
		</body></html>`)
	}))
	defer extra.Close()

	cfg := testConfig(srv.URL)
	cfg.Store.SaveToStore = false

	adHoc, err := ParseAdHoc([]string{extra.URL})
	if err != nil {
		t.Fatalf("ParseAdHoc() error = %v", err)
	}

	result, err := Run(context.Background(), cfg, adHoc, nil, testLogger)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 2 configured + 1 ad-hoc", len(result.Items))
	}
	// Configured sources come first, ad-hoc ones after.
	if result.Items[0].Source != "tech" || result.Items[2].Source != "source_1" {
		t.Errorf("sources = %q, %q, %q; want tech, tech, source_1",
			result.Items[0].Source, result.Items[1].Source, result.Items[2].Source)
	}
}

func TestRunMaxNewsCountCap(t *testing.T) {
	srv := newsSite(t)
	cfg := testConfig(srv.URL)
	cfg.Store.SaveToStore = false
	cfg.Harvest.MaxNewsCount = 1

	result, err := Run(context.Background(), cfg, nil, nil, testLogger)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Items) != 1 {
		t.Errorf("len(Items) = %d, want 1", len(result.Items))
	}
}

func TestParseAdHoc(t *testing.T) {
	sources, err := ParseAdHoc([]string{
		"https://example.com/a",
		`[{"name": "custom", "url": "https://example.com/b", "timeout": 10}]`,
		"https://example.com/c",
	})
	if err != nil {
		t.Fatalf("ParseAdHoc() error = %v", err)
	}

	if len(sources) != 3 {
		t.Fatalf("len(sources) = %d, want 3", len(sources))
	}
	if sources[0].Name != "source_1" || sources[0].URL != "https://example.com/a" {
		t.Errorf("sources[0] = %+v", sources[0])
	}
	if sources[1].Name != "custom" || sources[1].Timeout != 10 {
		t.Errorf("sources[1] = %+v", sources[1])
	}
	if sources[2].Name != "source_3" {
		t.Errorf("sources[2].Name = %q, want positional name", sources[2].Name)
	}
}

func TestParseAdHocBadJSON(t *testing.T) {
	if _, err := ParseAdHoc([]string{`[{"name": broken`}); err == nil {
		t.Error("ParseAdHoc(bad json) = nil, want error")
	}
}

func TestSanitizeName(t *testing.T) {
	if got := sanitizeName(`标题/含:非法*字符`, 0); strings.ContainsAny(got, `<>:"/\|?*`) {
		t.Errorf("sanitizeName left illegal characters: %q", got)
	}
	if got := sanitizeName("", 0); got != "untitled" {
		t.Errorf("sanitizeName(empty) = %q, want untitled", got)
	}
	if got := sanitizeName(strings.Repeat("长", 80), 50); len([]rune(got)) != 50 {
		t.Errorf("rune length = %d, want 50", len([]rune(got)))
	}
}
