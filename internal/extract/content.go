package extract

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	readability "github.com/go-shiori/go-readability"
)

// bodyXPaths are tried in order when readability yields nothing; each targets
// a common article-body container.
var bodyXPaths = []string{
	"//article",
	"//div[contains(@class, 'article-content')]",
	"//div[contains(@class, 'content')]",
	"//div[contains(@class, 'post-body')]",
	"//main",
}

// BodyExtractor extracts a best-effort plain-text article body from a
// fetched page.
type BodyExtractor struct {
	logger *slog.Logger
}

// NewBodyExtractor creates a BodyExtractor.
func NewBodyExtractor(logger *slog.Logger) *BodyExtractor {
	return &BodyExtractor{logger: logger.With("component", "body_extractor")}
}

// Text returns the plain-text body of the page, or "" when nothing usable
// could be extracted. Failures are not errors: an item without a body is
// still worth keeping.
func (b *BodyExtractor) Text(html, pageURL string) string {
	if text := b.readabilityText(html, pageURL); text != "" {
		return text
	}
	return b.xpathText(html)
}

func (b *BodyExtractor) readabilityText(html, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		u = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(html), u)
	if err != nil {
		b.logger.Debug("readability failed", "url", pageURL, "error", err)
		return ""
	}
	return normalizeBody(article.TextContent)
}

// xpathText falls back to scanning known body containers, then all
// paragraphs.
func (b *BodyExtractor) xpathText(html string) string {
	doc, err := htmlquery.Parse(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, xp := range bodyXPaths {
		node, err := htmlquery.Query(doc, xp)
		if err != nil || node == nil {
			continue
		}
		if text := normalizeBody(htmlquery.InnerText(node)); text != "" {
			return text
		}
	}

	nodes, err := htmlquery.QueryAll(doc, "//p")
	if err != nil {
		return ""
	}
	var parts []string
	for _, n := range nodes {
		if text := strings.TrimSpace(htmlquery.InnerText(n)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// normalizeBody trims and collapses blank-heavy whitespace runs.
func normalizeBody(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
