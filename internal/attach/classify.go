// Package attach discovers, classifies, and downloads article attachments
// under size and type constraints.
package attach

import (
	"net/url"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/junyangz/newsbrief/internal/types"
)

// keywordHints mark a link as an attachment even without a recognized
// extension.
var keywordHints = []string{"pdf", "附件", "下载", "文档", "报告", "文件"}

// filenameStrip are the characters removed when deriving a filename from
// link text.
const filenameStrip = `<>:"/\|?*`

// Classification is the result of testing one link.
type Classification struct {
	IsAttachment bool
	Filename     string
}

// Classify decides whether a URL/link-text pair denotes a downloadable
// attachment and derives a preferred filename. Deterministic given identical
// inputs and clock; now is only consulted for the synthesized fallback name.
//
// Decision order, first match wins:
//  1. URL path ends with an accepted extension.
//  2. Link text contains a keyword hint.
//  3. URL contains a keyword hint.
func Classify(rawURL, linkText string, acceptedExts []string, now time.Time) Classification {
	if !isAttachmentLink(rawURL, linkText, acceptedExts) {
		return Classification{}
	}
	return Classification{
		IsAttachment: true,
		Filename:     deriveFilename(rawURL, linkText, now),
	}
}

func isAttachmentLink(rawURL, linkText string, acceptedExts []string) bool {
	if u, err := url.Parse(rawURL); err == nil {
		p := strings.ToLower(u.Path)
		for _, ext := range acceptedExts {
			if strings.HasSuffix(p, "."+strings.ToLower(ext)) {
				return true
			}
		}
	}

	textLower := strings.ToLower(linkText)
	for _, kw := range keywordHints {
		if strings.Contains(textLower, kw) {
			return true
		}
	}

	urlLower := strings.ToLower(rawURL)
	for _, kw := range keywordHints {
		if strings.Contains(urlLower, kw) {
			return true
		}
	}

	return false
}

// deriveFilename prefers the URL's last path segment when it looks like a
// file, then sanitized link text, then a timestamped fallback.
func deriveFilename(rawURL, linkText string, now time.Time) string {
	if u, err := url.Parse(rawURL); err == nil {
		if base := path.Base(u.Path); strings.Contains(base, ".") && base != "." {
			return base
		}
	}

	if linkText != "" && utf8.RuneCountInString(linkText) < 100 {
		clean := strings.Map(func(r rune) rune {
			if strings.ContainsRune(filenameStrip, r) {
				return -1
			}
			return r
		}, linkText)
		if clean != "" {
			return clean
		}
	}

	return "attachment_" + now.Format("20060102_150405")
}

// KindFor derives the file kind, extension first, Content-Type second.
func KindFor(filename, contentType string) types.FileKind {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return types.KindPDF
	case strings.HasSuffix(name, ".doc"), strings.HasSuffix(name, ".docx"):
		return types.KindWord
	case strings.HasSuffix(name, ".ppt"), strings.HasSuffix(name, ".pptx"):
		return types.KindPresentation
	case strings.HasSuffix(name, ".xls"), strings.HasSuffix(name, ".xlsx"):
		return types.KindExcel
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return types.KindPDF
	case strings.Contains(ct, "word"), strings.Contains(ct, "document"):
		return types.KindWord
	case strings.Contains(ct, "powerpoint"), strings.Contains(ct, "presentation"):
		return types.KindPresentation
	case strings.Contains(ct, "excel"), strings.Contains(ct, "spreadsheet"):
		return types.KindExcel
	default:
		return types.KindOther
	}
}
