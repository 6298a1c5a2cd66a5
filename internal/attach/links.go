package attach

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Link is a classified attachment candidate found on an article page.
type Link struct {
	URL      string
	Text     string
	Filename string
}

// FindLinks enumerates every outbound anchor in html, resolves each href
// against the article URL, and returns the classified attachment candidates
// de-duplicated by resolved URL (first occurrence wins).
func FindLinks(html, articleURL string, acceptedExts []string, now time.Time) []Link {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	base, err := url.Parse(articleURL)
	if err != nil {
		base = nil
	}

	seen := make(map[string]bool)
	var links []Link

	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		resolved := href
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				resolved = base.ResolveReference(ref).String()
			}
		}

		text := strings.TrimSpace(sel.Text())
		c := Classify(resolved, text, acceptedExts, now)
		if !c.IsAttachment || seen[resolved] {
			return
		}
		seen[resolved] = true

		links = append(links, Link{URL: resolved, Text: text, Filename: c.Filename})
	})

	return links
}
