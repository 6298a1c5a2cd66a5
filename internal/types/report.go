package types

import (
	"time"
)

// Report is the aggregated, multi-section output of a compilation run over a
// bounded set of enriched items. The JSON encoding of this value is the
// canonical lossless form.
type Report struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	ItemCount   int       `json:"item_count"`
	Sections    Sections  `json:"sections"`
}

// Sections holds the independently togglable report sections. A section
// omitted by configuration stays nil/empty and must not affect the others.
type Sections struct {
	Summary        string              `json:"summary,omitempty"`
	KeyEvents      []KeyEvent          `json:"key_events,omitempty"`
	IndustryTrends *IndustryTrends     `json:"industry_trends,omitempty"`
	Attachments    *AttachmentsSection `json:"attachments,omitempty"`
}

// KeyEvent is the per-item record in the key_events section.
type KeyEvent struct {
	Title             string `json:"title"`
	Source            string `json:"source"`
	Time              string `json:"time,omitempty"`
	Summary           string `json:"summary,omitempty"`
	Link              string `json:"link,omitempty"`
	HasAttachments    bool   `json:"has_attachments"`
	AttachmentSummary string `json:"attachment_summary,omitempty"`
}

// IndustryTrends aggregates naive topic, source, and attachment statistics.
type IndustryTrends struct {
	HotTopics          []string           `json:"hot_topics"`
	SourceDistribution map[string]int     `json:"source_distribution"`
	AttachmentAnalysis AttachmentAnalysis `json:"attachment_analysis"`
}

// AttachmentAnalysis summarizes attachment coverage across the item set.
type AttachmentAnalysis struct {
	TotalAttachments int `json:"total_attachments"`

	// AttachmentRatio is 100 * itemsWithAttachments/totalItems, rounded to
	// one decimal.
	AttachmentRatio float64 `json:"attachment_ratio"`

	ItemsWithAttachments int `json:"items_with_attachments"`
}

// AttachmentsSection is the per-type rollup plus per-item attachment listing.
// When no item carries attachments only Message is set.
type AttachmentsSection struct {
	Message          string                `json:"message,omitempty"`
	TotalAttachments int                   `json:"total_attachments,omitempty"`
	TotalSizeMB      float64               `json:"total_size_mb,omitempty"`
	TypeDistribution map[FileKind]KindStat `json:"type_distribution,omitempty"`
	Items            []AttachmentListing   `json:"items,omitempty"`
}

// KindStat is the count/size rollup for one file kind.
type KindStat struct {
	Count int   `json:"count"`
	Size  int64 `json:"size"`
}

// AttachmentListing names the attachments carried by a single item.
type AttachmentListing struct {
	Title       string          `json:"title"`
	Source      string          `json:"source"`
	Attachments []AttachmentRef `json:"attachments"`
}

// AttachmentRef is the filename+size pair that survives persistence.
type AttachmentRef struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}
