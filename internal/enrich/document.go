package enrich

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/junyangz/newsbrief/internal/attach"
	"github.com/junyangz/newsbrief/internal/types"
)

// Structured-document section markers. The rendering below is also the
// parse format: RenderDocument and ParseDocument must stay inverse for the
// title/source/time/link/summary/content/attachment fields.
const (
	metaMarker        = "**元信息:**"
	summaryMarker     = "**摘要:**"
	contentMarker     = "**详细内容:**"
	attachmentsMarker = "**附件:**"

	metaSourcePrefix = "来源:"
	metaTimePrefix   = "时间:"
	metaLinkPrefix   = "链接:"
)

var attachmentLineRe = regexp.MustCompile(`^\d+\.\s*(.+?)\s*\((\d+)\s*bytes\)$`)

// RenderDocument produces the canonical textual rendering of an enriched
// item. Empty fields omit their section entirely.
func RenderDocument(item *types.EnrichedItem) string {
	var parts []string

	if item.Title != "" {
		parts = append(parts, "# "+item.Title)
	}

	var meta []string
	if item.Source != "" {
		meta = append(meta, metaSourcePrefix+" "+item.Source)
	}
	if item.Time != "" {
		meta = append(meta, metaTimePrefix+" "+item.Time)
	}
	if item.Link != "" {
		meta = append(meta, metaLinkPrefix+" "+item.Link)
	}
	if len(meta) > 0 {
		parts = append(parts, metaMarker+" "+strings.Join(meta, " | "))
	}

	if item.Summary != "" {
		parts = append(parts, summaryMarker+" "+item.Summary)
	}

	if item.FullContent != "" {
		parts = append(parts, contentMarker+"\n"+item.FullContent)
	}

	if len(item.Attachments) > 0 {
		lines := []string{attachmentsMarker}
		for i, att := range item.Attachments {
			lines = append(lines, fmt.Sprintf("%d. %s (%d bytes)", i+1, att.Filename, att.Size))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n")
}

// ParseDocument reconstructs an enriched item from its structured-document
// rendering. Attachments come back as filename+size only; byte content does
// not survive persistence as text.
func ParseDocument(doc string) types.EnrichedItem {
	var item types.EnrichedItem

	section := ""
	var contentLines []string

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Section markers switch state first; everything else belongs to the
		// current section, so a body line that looks like a heading stays in
		// the body.
		switch {
		case line == contentMarker:
			section = "content"
		case line == attachmentsMarker:
			section = "attachments"
		case section == "content":
			contentLines = append(contentLines, line)
		case section == "attachments":
			if m := attachmentLineRe.FindStringSubmatch(line); m != nil {
				size, _ := strconv.ParseInt(m[2], 10, 64)
				item.Attachments = append(item.Attachments, types.Attachment{
					Filename: m[1],
					Size:     size,
					Kind:     attach.KindFor(m[1], ""),
				})
			}
		case strings.HasPrefix(line, "# "):
			item.Title = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, metaMarker):
			parseMeta(strings.TrimSpace(strings.TrimPrefix(line, metaMarker)), &item)
		case strings.HasPrefix(line, summaryMarker):
			item.Summary = strings.TrimSpace(strings.TrimPrefix(line, summaryMarker))
		}
	}

	item.FullContent = strings.Join(contentLines, "\n")
	return item
}

func parseMeta(meta string, item *types.EnrichedItem) {
	for _, part := range strings.Split(meta, " | ") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, metaSourcePrefix):
			item.Source = strings.TrimSpace(strings.TrimPrefix(part, metaSourcePrefix))
		case strings.HasPrefix(part, metaTimePrefix):
			item.Time = strings.TrimSpace(strings.TrimPrefix(part, metaTimePrefix))
		case strings.HasPrefix(part, metaLinkPrefix):
			item.Link = strings.TrimSpace(strings.TrimPrefix(part, metaLinkPrefix))
		}
	}
}
