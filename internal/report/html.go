package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/junyangz/newsbrief/internal/types"
)

const htmlStyle = `body { font-family: 'Helvetica Neue', Arial, 'PingFang SC', 'Microsoft YaHei', sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; color: #333; }
h1 { border-bottom: 2px solid #2c3e50; padding-bottom: 10px; }
h2 { color: #2c3e50; margin-top: 30px; }
.meta { color: #888; font-size: 0.9em; }
.event { margin-bottom: 20px; padding: 10px; background: #f8f9fa; border-radius: 4px; }
.event-title { font-weight: bold; }
ul { padding-left: 20px; }`

type htmlRenderer struct{}

func (htmlRenderer) Format() string { return "html" }

// Render emits a standalone HTML page. All item-derived text is escaped.
func (htmlRenderer) Render(report *types.Report) (string, error) {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"zh-CN\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(report.Title))
	fmt.Fprintf(&b, "<style>\n%s\n</style>\n", htmlStyle)
	b.WriteString("</head>\n<body>\n")

	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(report.Title))
	fmt.Fprintf(&b, "<p class=\"meta\">生成时间: %s</p>\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	if report.Sections.Summary != "" {
		b.WriteString("<h2>今日摘要</h2>\n")
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(report.Sections.Summary))
	}

	if len(report.Sections.KeyEvents) > 0 {
		b.WriteString("<h2>重点事件</h2>\n")
		for i, ev := range report.Sections.KeyEvents {
			b.WriteString("<div class=\"event\">\n")
			fmt.Fprintf(&b, "<p class=\"event-title\">%d. %s</p>\n", i+1, html.EscapeString(ev.Title))
			fmt.Fprintf(&b, "<p>来源: %s", html.EscapeString(ev.Source))
			if ev.Time != "" {
				fmt.Fprintf(&b, " | 时间: %s", html.EscapeString(ev.Time))
			}
			b.WriteString("</p>\n")
			if ev.Summary != "" {
				fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(ev.Summary))
			}
			if ev.Link != "" {
				fmt.Fprintf(&b, "<p><a href=\"%s\">查看原文</a></p>\n", html.EscapeString(ev.Link))
			}
			if ev.AttachmentSummary != "" {
				fmt.Fprintf(&b, "<p>附件: %s</p>\n", html.EscapeString(ev.AttachmentSummary))
			}
			b.WriteString("</div>\n")
		}
	}

	if trends := report.Sections.IndustryTrends; trends != nil {
		b.WriteString("<h2>行业动态</h2>\n")
		if len(trends.HotTopics) > 0 {
			fmt.Fprintf(&b, "<p>热门话题: %s</p>\n", html.EscapeString(strings.Join(trends.HotTopics, "、")))
		}
		if len(trends.SourceDistribution) > 0 {
			b.WriteString("<ul>\n")
			for _, src := range sortedSources(trends.SourceDistribution) {
				fmt.Fprintf(&b, "<li>%s: %d 条</li>\n", html.EscapeString(src), trends.SourceDistribution[src])
			}
			b.WriteString("</ul>\n")
		}
		fmt.Fprintf(&b, "<p>附件统计: 共 %d 个附件，%.1f%% 的新闻包含附件</p>\n",
			trends.AttachmentAnalysis.TotalAttachments, trends.AttachmentAnalysis.AttachmentRatio)
	}

	if atts := report.Sections.Attachments; atts != nil {
		b.WriteString("<h2>附件汇总</h2>\n")
		if atts.Message != "" {
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(atts.Message))
		} else {
			fmt.Fprintf(&b, "<p>共 %d 个附件，总大小 %.2f MB</p>\n", atts.TotalAttachments, atts.TotalSizeMB)
			if len(atts.TypeDistribution) > 0 {
				b.WriteString("<ul>\n")
				for _, kind := range orderedKinds(atts.TypeDistribution) {
					stat := atts.TypeDistribution[kind]
					fmt.Fprintf(&b, "<li>%s: %d 个，%.2f MB</li>\n", kind.Label(), stat.Count, float64(stat.Size)/1024/1024)
				}
				b.WriteString("</ul>\n")
			}
			for _, listing := range atts.Items {
				fmt.Fprintf(&b, "<h3>%s（%s）</h3>\n<ul>\n", html.EscapeString(listing.Title), html.EscapeString(listing.Source))
				for _, ref := range listing.Attachments {
					fmt.Fprintf(&b, "<li>%s (%d bytes)</li>\n", html.EscapeString(ref.Filename), ref.Size)
				}
				b.WriteString("</ul>\n")
			}
		}
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
