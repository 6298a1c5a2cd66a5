// Package extract turns raw HTML into candidate news items and article
// bodies using fixed heuristic selector cascades.
package extract

import (
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/junyangz/newsbrief/internal/types"
)

// containerSelectors are tried in order; the first group that matches any
// element is used exclusively.
var containerSelectors = []string{
	"article", ".news-item", ".article", ".post", ".entry",
	".news-list li", ".article-list li", ".post-list li",
	"h1", "h2", "h3", ".title", ".headline",
}

// Per-element sub-cascades: first non-empty result wins.
var (
	titleSelectors   = []string{"h1", "h2", "h3", ".title", ".headline", "a"}
	summarySelectors = []string{".summary", ".excerpt", ".description", "p"}
	timeSelectors    = []string{".time", ".date", ".published", "time"}
)

const (
	// minTitleRunes is the retention floor: titles this short are noise.
	minTitleRunes = 5

	// fallbackMinAnchorRunes is the floor for the whole-document anchor scan.
	fallbackMinAnchorRunes = 10

	// maxOwnTextTitle caps titles taken from an element's own text.
	maxOwnTextTitle = 100
)

var skipHrefFragments = []string{"javascript:", "mailto:", "#"}

// Extractor produces candidate news items from a source page.
type Extractor struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewExtractor creates an Extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{
		logger: logger.With("component", "extractor"),
		now:    time.Now,
	}
}

// Extract parses html and returns the retained items in extraction order.
// Re-running on the same document yields the same sequence.
func (e *Extractor) Extract(html string, src types.Source) ([]types.NewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &types.SourceError{Source: src.Name, URL: src.URL, Err: err}
	}

	items := e.extractBySelectors(doc, src)
	if len(items) == 0 {
		items = e.extractAnchors(doc, src)
	}

	e.logger.Debug("extraction complete", "source", src.Name, "items", len(items))
	return items, nil
}

// extractBySelectors runs the container cascade: the first selector group
// with matches is consulted exclusively.
func (e *Extractor) extractBySelectors(doc *goquery.Document, src types.Source) []types.NewsItem {
	for _, selector := range containerSelectors {
		matched := doc.Find(selector)
		if matched.Length() == 0 {
			continue
		}

		var items []types.NewsItem
		matched.Each(func(i int, sel *goquery.Selection) {
			if item, ok := e.extractItem(sel, src); ok {
				items = append(items, item)
			}
		})
		return items
	}
	return nil
}

// extractItem pulls title/link/summary/time out of one matched element.
func (e *Extractor) extractItem(sel *goquery.Selection, src types.Source) (types.NewsItem, bool) {
	title := firstText(sel, titleSelectors)
	if title == "" {
		title = truncateRunes(strings.TrimSpace(sel.Text()), maxOwnTextTitle)
	}
	if utf8.RuneCountInString(title) <= minTitleRunes {
		return types.NewsItem{}, false
	}

	var link string
	if a := sel.Find("a").First(); a.Length() > 0 {
		if href, ok := a.Attr("href"); ok {
			link = resolveLink(href, src.URL)
		}
	}

	return types.NewsItem{
		Title:     title,
		Link:      link,
		Summary:   firstText(sel, summarySelectors),
		Time:      firstText(sel, timeSelectors),
		Source:    sourceName(src),
		SourceURL: src.URL,
		CrawledAt: e.now(),
	}, true
}

// extractAnchors is the whole-document fallback: every plausible news link
// becomes an item with empty summary and time.
func (e *Extractor) extractAnchors(doc *goquery.Document, src types.Source) []types.NewsItem {
	var items []types.NewsItem

	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Text())
		href, _ := sel.Attr("href")

		if utf8.RuneCountInString(title) <= fallbackMinAnchorRunes {
			return
		}
		if !strings.HasPrefix(href, "http") && !strings.HasPrefix(href, "/") {
			return
		}
		lower := strings.ToLower(href)
		for _, frag := range skipHrefFragments {
			if strings.Contains(lower, frag) {
				return
			}
		}

		items = append(items, types.NewsItem{
			Title:     title,
			Link:      resolveLink(href, src.URL),
			Source:    sourceName(src),
			SourceURL: src.URL,
			CrawledAt: e.now(),
		})
	})

	return items
}

// firstText returns the first non-empty trimmed text among the selectors.
func firstText(sel *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		found := sel.Find(s).First()
		if found.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(found.Text()); text != "" {
			return text
		}
	}
	return ""
}

// resolveLink resolves root-relative hrefs against the source base URL.
// Other relative forms are left as found.
func resolveLink(href, baseURL string) string {
	if strings.HasPrefix(href, "/") {
		return strings.TrimRight(baseURL, "/") + href
	}
	return href
}

func sourceName(src types.Source) string {
	if src.Name != "" {
		return src.Name
	}
	return src.URL
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
