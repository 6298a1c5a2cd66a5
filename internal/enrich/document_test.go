package enrich

import (
	"strings"
	"testing"

	"github.com/junyangz/newsbrief/internal/types"
)

func sampleItem() *types.EnrichedItem {
	return &types.EnrichedItem{
		NewsItem: types.NewsItem{
			Title:   "芯片行业年度报告发布",
			Source:  "科技日报",
			Time:    "2026-08-24 09:00",
			Link:    "https://example.com/news/1",
			Summary: "报告显示行业规模持续增长。",
		},
		FullContent: "第一段正文。\n第二段正文。",
		Attachments: []types.Attachment{
			{Filename: "annual-report.pdf", Size: 1048576},
			{Filename: "slides.pptx", Size: 2048},
		},
	}
}

func TestRenderDocument(t *testing.T) {
	doc := RenderDocument(sampleItem())

	for _, want := range []string{
		"# 芯片行业年度报告发布",
		"**元信息:** 来源: 科技日报 | 时间: 2026-08-24 09:00 | 链接: https://example.com/news/1",
		"**摘要:** 报告显示行业规模持续增长。",
		"**详细内容:**\n第一段正文。\n第二段正文。",
		"**附件:**\n1. annual-report.pdf (1048576 bytes)\n2. slides.pptx (2048 bytes)",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q\n--- got ---\n%s", want, doc)
		}
	}
}

func TestRenderDocumentOmitsEmptySections(t *testing.T) {
	item := &types.EnrichedItem{NewsItem: types.NewsItem{Title: "只有标题"}}
	doc := RenderDocument(item)

	if doc != "# 只有标题" {
		t.Errorf("document = %q, want title only", doc)
	}
	for _, marker := range []string{metaMarker, summaryMarker, contentMarker, attachmentsMarker} {
		if strings.Contains(doc, marker) {
			t.Errorf("document contains %q for an item with no such data", marker)
		}
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	original := sampleItem()
	parsed := ParseDocument(RenderDocument(original))

	if parsed.Title != original.Title {
		t.Errorf("Title = %q, want %q", parsed.Title, original.Title)
	}
	if parsed.Source != original.Source {
		t.Errorf("Source = %q, want %q", parsed.Source, original.Source)
	}
	if parsed.Time != original.Time {
		t.Errorf("Time = %q, want %q", parsed.Time, original.Time)
	}
	if parsed.Link != original.Link {
		t.Errorf("Link = %q, want %q", parsed.Link, original.Link)
	}
	if parsed.Summary != original.Summary {
		t.Errorf("Summary = %q, want %q", parsed.Summary, original.Summary)
	}
	if parsed.FullContent != original.FullContent {
		t.Errorf("FullContent = %q, want %q", parsed.FullContent, original.FullContent)
	}
	if len(parsed.Attachments) != len(original.Attachments) {
		t.Fatalf("len(Attachments) = %d, want %d", len(parsed.Attachments), len(original.Attachments))
	}
	for i, att := range parsed.Attachments {
		if att.Filename != original.Attachments[i].Filename {
			t.Errorf("Attachments[%d].Filename = %q, want %q", i, att.Filename, original.Attachments[i].Filename)
		}
		if att.Size != original.Attachments[i].Size {
			t.Errorf("Attachments[%d].Size = %d, want %d", i, att.Size, original.Attachments[i].Size)
		}
	}
	if parsed.Attachments[0].Kind != types.KindPDF {
		t.Errorf("Attachments[0].Kind = %v, want pdf from filename", parsed.Attachments[0].Kind)
	}
}

func TestDocumentRoundTripBodyWithHeadingLine(t *testing.T) {
	original := &types.EnrichedItem{
		NewsItem: types.NewsItem{Title: "真正的新闻标题"},
		FullContent: strings.Join([]string{
			"正文第一行。",
			"# 正文里长得像标题的小节",
			"标题行之后的正文仍然保留。",
		}, "\n"),
	}

	parsed := ParseDocument(RenderDocument(original))

	if parsed.Title != "真正的新闻标题" {
		t.Errorf("Title = %q, body heading must not overwrite it", parsed.Title)
	}
	if parsed.FullContent != original.FullContent {
		t.Errorf("FullContent = %q\nwant        %q", parsed.FullContent, original.FullContent)
	}
}

func TestParseDocumentIgnoresMalformedAttachmentLines(t *testing.T) {
	doc := strings.Join([]string{
		"# 标题长度合格的新闻",
		"",
		"**附件:**",
		"1. good.pdf (100 bytes)",
		"not an attachment line",
		"2. missing size (abc bytes)",
	}, "\n")

	parsed := ParseDocument(doc)
	if len(parsed.Attachments) != 1 {
		t.Fatalf("len(Attachments) = %d, want 1", len(parsed.Attachments))
	}
	if parsed.Attachments[0].Filename != "good.pdf" || parsed.Attachments[0].Size != 100 {
		t.Errorf("attachment = %+v", parsed.Attachments[0])
	}
}
