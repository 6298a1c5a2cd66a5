// Package report compiles enriched news items into a multi-section report
// and renders it to markdown, JSON, plain text, or HTML.
package report

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/junyangz/newsbrief/internal/config"
	"github.com/junyangz/newsbrief/internal/types"
)

// unknownSource buckets items whose source name is empty.
const unknownSource = "未知来源"

// noAttachmentsMessage is rendered when the attachments section is on but no
// item carries attachments.
const noAttachmentsMessage = "今日无附件"

// hotTopicVocabulary is the fixed topic list scanned for in titles and
// summaries. Order breaks count ties.
var hotTopicVocabulary = []string{"AI", "人工智能", "科技", "创新", "投资", "创业", "数字化转型", "互联网"}

const maxHotTopics = 5

// Compiler turns a bounded set of enriched items into a Report.
type Compiler struct {
	cfg    config.ReportConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewCompiler creates a Compiler for the given report configuration.
func NewCompiler(cfg config.ReportConfig, logger *slog.Logger) *Compiler {
	return &Compiler{
		cfg:    cfg,
		logger: logger.With("component", "report_compiler"),
		now:    time.Now,
	}
}

// Compile sorts the items newest-first, caps them at the configured count,
// and builds every configured section. Sections are independent: disabling
// one never changes another's content.
func (c *Compiler) Compile(items []types.EnrichedItem) *types.Report {
	items = append([]types.EnrichedItem(nil), items...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Time > items[j].Time
	})
	if c.cfg.MaxNewsCount > 0 && len(items) > c.cfg.MaxNewsCount {
		items = items[:c.cfg.MaxNewsCount]
	}

	now := c.now()
	report := &types.Report{
		Title:       c.localizedTitle(now),
		GeneratedAt: now,
		ItemCount:   len(items),
	}

	if c.sectionEnabled("summary") && c.cfg.IncludeSummary {
		report.Sections.Summary = summaryText(items)
	}
	if c.sectionEnabled("key_events") {
		report.Sections.KeyEvents = c.keyEvents(items)
	}
	if c.sectionEnabled("industry_trends") {
		report.Sections.IndustryTrends = industryTrends(items)
	}
	if c.sectionEnabled("attachments") && c.cfg.IncludeAttachments {
		report.Sections.Attachments = attachmentsSection(items)
	}

	c.logger.Debug("report compiled", "items", len(items), "title", report.Title)
	return report
}

// CompileFromDocuments reconstructs items from their structured-document
// renderings and compiles them. Byte content does not survive the text form,
// so attachment stats come from the parsed filename+size lines.
func (c *Compiler) CompileFromDocuments(docs []string, parse func(string) types.EnrichedItem) *types.Report {
	items := make([]types.EnrichedItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, parse(doc))
	}
	return c.Compile(items)
}

func (c *Compiler) sectionEnabled(name string) bool {
	for _, s := range c.cfg.Sections {
		if s == name {
			return true
		}
	}
	return false
}

func (c *Compiler) localizedTitle(now time.Time) string {
	today := now.Format("2006年01月02日")
	switch c.cfg.Language {
	case "zh-CN":
		return today + " 每日新闻简报"
	case "en-US":
		return "Daily News Brief - " + now.Format("January 2, 2006")
	default:
		return "Daily News Brief - " + today
	}
}

func summaryText(items []types.EnrichedItem) string {
	sources := make(map[string]bool)
	itemsWith := 0
	totalAttachments := 0
	for _, item := range items {
		sources[sourceName(item)] = true
		if item.HasAttachments() {
			itemsWith++
			totalAttachments += len(item.Attachments)
		}
	}

	parts := []string{
		fmt.Sprintf("今日共收集到 %d 条新闻", len(items)),
		fmt.Sprintf("涉及 %d 个新闻源", len(sources)),
	}
	if itemsWith > 0 {
		parts = append(parts, fmt.Sprintf("其中 %d 条新闻包含附件，共 %d 个附件", itemsWith, totalAttachments))
	}
	return strings.Join(parts, "；") + "。"
}

func (c *Compiler) keyEvents(items []types.EnrichedItem) []types.KeyEvent {
	events := make([]types.KeyEvent, 0, len(items))
	for _, item := range items {
		ev := types.KeyEvent{
			Title:          item.Title,
			Source:         sourceName(item),
			Time:           item.Time,
			Summary:        item.Summary,
			Link:           item.Link,
			HasAttachments: item.HasAttachments(),
		}
		if c.cfg.AttachmentSummary && ev.HasAttachments {
			ev.AttachmentSummary = AttachmentSummaryText(item.Attachments, c.cfg.MaxAttachmentSummaryLength)
		}
		events = append(events, ev)
	}
	return events
}

func industryTrends(items []types.EnrichedItem) *types.IndustryTrends {
	distribution := make(map[string]int)
	itemsWith := 0
	totalAttachments := 0

	texts := make([]string, 0, len(items))
	for _, item := range items {
		distribution[sourceName(item)]++
		if item.HasAttachments() {
			itemsWith++
			totalAttachments += len(item.Attachments)
		}
		texts = append(texts, item.Title+" "+item.Summary)
	}

	return &types.IndustryTrends{
		HotTopics:          hotTopics(strings.Join(texts, " ")),
		SourceDistribution: distribution,
		AttachmentAnalysis: attachmentAnalysis(len(items), itemsWith, totalAttachments),
	}
}

// hotTopics scans the concatenated titles+summaries for each vocabulary term
// case-sensitively and returns the matches in vocabulary order, capped at
// five.
func hotTopics(allText string) []string {
	var topics []string
	for _, topic := range hotTopicVocabulary {
		if strings.Contains(allText, topic) {
			topics = append(topics, topic)
		}
		if len(topics) == maxHotTopics {
			break
		}
	}
	return topics
}

// attachmentAnalysis keeps all three fields present even for the empty item
// set, where every value is zero.
func attachmentAnalysis(total, itemsWith, totalAttachments int) types.AttachmentAnalysis {
	if total == 0 {
		return types.AttachmentAnalysis{}
	}
	ratio := math.Round(100*float64(itemsWith)/float64(total)*10) / 10
	return types.AttachmentAnalysis{
		TotalAttachments:     totalAttachments,
		AttachmentRatio:      ratio,
		ItemsWithAttachments: itemsWith,
	}
}

func attachmentsSection(items []types.EnrichedItem) *types.AttachmentsSection {
	section := &types.AttachmentsSection{}

	var totalSize int64
	for _, item := range items {
		if !item.HasAttachments() {
			continue
		}
		listing := types.AttachmentListing{Title: item.Title, Source: sourceName(item)}
		for _, att := range item.Attachments {
			section.TotalAttachments++
			totalSize += att.Size
			if section.TypeDistribution == nil {
				section.TypeDistribution = make(map[types.FileKind]types.KindStat)
			}
			stat := section.TypeDistribution[att.Kind]
			stat.Count++
			stat.Size += att.Size
			section.TypeDistribution[att.Kind] = stat
			listing.Attachments = append(listing.Attachments, types.AttachmentRef{Filename: att.Filename, Size: att.Size})
		}
		section.Items = append(section.Items, listing)
	}

	if section.TotalAttachments == 0 {
		return &types.AttachmentsSection{Message: noAttachmentsMessage}
	}

	section.TotalSizeMB = math.Round(float64(totalSize)/1024/1024*100) / 100
	return section
}

// AttachmentSummaryText renders one item's attachments as per-kind counts
// with sizes in MB, truncated to max runes with an ellipsis.
func AttachmentSummaryText(attachments []types.Attachment, max int) string {
	counts := make(map[types.FileKind]int)
	sizes := make(map[types.FileKind]int64)
	for _, att := range attachments {
		counts[att.Kind]++
		sizes[att.Kind] += att.Size
	}

	var parts []string
	for _, kind := range types.KindOrder {
		if counts[kind] == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d个%s文件，总大小%.1fMB",
			counts[kind], kind.Label(), float64(sizes[kind])/1024/1024))
	}

	text := strings.Join(parts, "；")
	if max > 0 && utf8.RuneCountInString(text) > max {
		text = string([]rune(text)[:max]) + "..."
	}
	return text
}

func sourceName(item types.EnrichedItem) string {
	if item.Source == "" {
		return unknownSource
	}
	return item.Source
}
