package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/junyangz/newsbrief/internal/fetcher"
	"github.com/junyangz/newsbrief/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newsPage(titles ...string) string {
	page := "<html><body>"
	for i, title := range titles {
		page += fmt.Sprintf(`<div class="news-item"><h3>%s</h3><a href="/news/%d">read</a></div>`, title, i)
	}
	return page + "</body></html>"
}

func testHarvester(t *testing.T) *Harvester {
	t.Helper()
	fetch, err := fetcher.New(fetcher.Options{Timeout: 5 * time.Second}, testLogger)
	if err != nil {
		t.Fatalf("fetcher.New() error = %v", err)
	}
	t.Cleanup(fetch.Close)
	return New(fetch, 5*time.Second, 2, testLogger)
}

func TestHarvestMultipleSources(t *testing.T) {
	srv1 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, newsPage("First Source Headline One", "First Source Headline Two"))
	}))
	defer srv1.Close()
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, newsPage("Second Source Headline One"))
	}))
	defer srv2.Close()

	h := testHarvester(t)
	items := h.Harvest(context.Background(), []types.Source{
		{Name: "one", URL: srv1.URL},
		{Name: "two", URL: srv2.URL},
	}, Filters{})

	if len(items) != 3 {
		t.Fatalf("Harvest() returned %d items, want 3", len(items))
	}
	// Per-source results concatenate in source-list order.
	if items[0].Source != "one" || items[2].Source != "two" {
		t.Errorf("sources = %q, %q, %q; want one, one, two", items[0].Source, items[1].Source, items[2].Source)
	}
}

func TestHarvestFailingSourceIsolated(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, newsPage("Surviving Source Headline"))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	h := testHarvester(t)
	items := h.Harvest(context.Background(), []types.Source{
		{Name: "bad", URL: bad.URL},
		{Name: "good", URL: good.URL},
	}, Filters{})

	if len(items) != 1 {
		t.Fatalf("Harvest() returned %d items, want 1 from the surviving source", len(items))
	}
	if items[0].Source != "good" {
		t.Errorf("Source = %q, want good", items[0].Source)
	}
}

func TestHarvestKeywordFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, newsPage("AI Breakthrough Announced Today", "Local Weather Stays Sunny"))
	}))
	defer srv.Close()

	h := testHarvester(t)
	items := h.Harvest(context.Background(), []types.Source{{Name: "src", URL: srv.URL}},
		Filters{Keywords: []string{"ai"}})

	if len(items) != 1 {
		t.Fatalf("Harvest() returned %d items, want 1", len(items))
	}
	if items[0].Title != "AI Breakthrough Announced Today" {
		t.Errorf("Title = %q", items[0].Title)
	}
}

func TestHarvestMaxPerSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, newsPage(
			"Headline Number One Long Enough",
			"Headline Number Two Long Enough",
			"Headline Number Three Long Enough",
		))
	}))
	defer srv.Close()

	h := testHarvester(t)
	items := h.Harvest(context.Background(), []types.Source{{Name: "src", URL: srv.URL}},
		Filters{MaxPerSource: 2})

	if len(items) != 2 {
		t.Fatalf("Harvest() returned %d items, want 2", len(items))
	}
}

func TestMatchesKeywords(t *testing.T) {
	item := types.NewsItem{Title: "AI 芯片新进展", Summary: "国产芯片取得突破"}

	if !matchesKeywords(item, nil) {
		t.Error("empty keyword list must accept every item")
	}
	if !matchesKeywords(item, []string{"芯片"}) {
		t.Error("keyword in title must match")
	}
	if !matchesKeywords(item, []string{"突破"}) {
		t.Error("keyword in summary must match")
	}
	if !matchesKeywords(item, []string{"ai"}) {
		t.Error("matching must be case-insensitive")
	}
	if matchesKeywords(item, []string{"区块链"}) {
		t.Error("absent keyword must not match")
	}
}

func TestSortByTimeDesc(t *testing.T) {
	items := []types.NewsItem{
		{Title: "older", Time: "2026-08-22"},
		{Title: "newest", Time: "2026-08-24"},
		{Title: "middle", Time: "2026-08-23"},
		{Title: "no time a"},
		{Title: "no time b"},
	}

	SortByTimeDesc(items)

	if items[0].Title != "newest" || items[1].Title != "middle" || items[2].Title != "older" {
		t.Errorf("order = %q, %q, %q", items[0].Title, items[1].Title, items[2].Title)
	}
	// Stable sort keeps the relative order of items without a time.
	if items[3].Title != "no time a" || items[4].Title != "no time b" {
		t.Errorf("untimed order = %q, %q", items[3].Title, items[4].Title)
	}
}
