package types

import (
	"time"
)

// Source describes a configured web location to harvest news items from.
// Sources are owned by the invoking configuration and read-only to the
// harvester.
type Source struct {
	// Name identifies the source in items and reports.
	Name string `mapstructure:"name" json:"name"`

	// URL is the page to fetch and scan for candidate items.
	URL string `mapstructure:"url" json:"url"`

	// Proxy is an optional per-source proxy URL.
	Proxy string `mapstructure:"proxy" json:"proxy,omitempty"`

	// Timeout overrides the harvest-wide fetch timeout, in seconds.
	Timeout int `mapstructure:"timeout" json:"timeout,omitempty"`
}

// NewsItem is a candidate news entry produced by the harvester.
type NewsItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Summary string `json:"summary,omitempty"`

	// Time is the publication time exactly as found on the page, unparsed.
	Time string `json:"time,omitempty"`

	Source    string    `json:"source"`
	SourceURL string    `json:"source_url"`
	CrawledAt time.Time `json:"crawled_at"`
}

// FileKind classifies a downloaded attachment by document type.
type FileKind string

const (
	KindPDF          FileKind = "pdf"
	KindWord         FileKind = "word"
	KindPresentation FileKind = "presentation"
	KindExcel        FileKind = "excel"
	KindOther        FileKind = "other"
)

// KindOrder is the fixed rendering order for per-kind rollups.
var KindOrder = []FileKind{KindPDF, KindWord, KindPresentation, KindExcel, KindOther}

// Label returns the human-readable name used in report text.
func (k FileKind) Label() string {
	switch k {
	case KindPDF:
		return "PDF"
	case KindWord:
		return "Word"
	case KindPresentation:
		return "PowerPoint"
	case KindExcel:
		return "Excel"
	default:
		return "其他"
	}
}

// Attachment is a downloaded document discovered via an article's outbound
// links. Invariant: Size == len(Content) and Size never exceeds the
// configured cap; an oversized download is discarded, never kept partially.
type Attachment struct {
	Filename    string   `json:"filename"`
	SourceURL   string   `json:"url"`
	Content     []byte   `json:"-"`
	Size        int64    `json:"size"`
	ContentType string   `json:"content_type,omitempty"`
	Kind        FileKind `json:"kind"`

	DownloadedAt time.Time `json:"downloaded_at"`
}

// EnrichedItem is a NewsItem plus fetched article content, downloaded
// attachments, and the canonical structured-document rendering.
type EnrichedItem struct {
	NewsItem

	// FullContent is the extracted article body, possibly truncated with a
	// trailing ellipsis marker.
	FullContent string `json:"full_content,omitempty"`

	Attachments []Attachment `json:"attachments,omitempty"`

	// Document is the deterministic textual rendering handed to the store.
	Document string `json:"document,omitempty"`
}

// HasAttachments reports whether the item carries at least one attachment.
func (e *EnrichedItem) HasAttachments() bool {
	return len(e.Attachments) > 0
}
