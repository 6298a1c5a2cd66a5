package report

import (
	"fmt"
	"strings"

	"github.com/junyangz/newsbrief/internal/types"
)

type textRenderer struct{}

func (textRenderer) Format() string { return "text" }

// Render emits the report as plain text, one ruled block per section.
func (textRenderer) Render(report *types.Report) (string, error) {
	var b strings.Builder

	rule := strings.Repeat("=", 50)
	b.WriteString(rule + "\n")
	b.WriteString(report.Title + "\n")
	fmt.Fprintf(&b, "生成时间: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(rule + "\n\n")

	if report.Sections.Summary != "" {
		b.WriteString("【今日摘要】\n")
		b.WriteString(report.Sections.Summary)
		b.WriteString("\n\n")
	}

	if len(report.Sections.KeyEvents) > 0 {
		b.WriteString("【重点事件】\n")
		for i, ev := range report.Sections.KeyEvents {
			fmt.Fprintf(&b, "%d. %s\n", i+1, ev.Title)
			fmt.Fprintf(&b, "   来源: %s", ev.Source)
			if ev.Time != "" {
				fmt.Fprintf(&b, "  时间: %s", ev.Time)
			}
			b.WriteString("\n")
			if ev.Summary != "" {
				fmt.Fprintf(&b, "   摘要: %s\n", ev.Summary)
			}
			if ev.Link != "" {
				fmt.Fprintf(&b, "   链接: %s\n", ev.Link)
			}
			if ev.AttachmentSummary != "" {
				fmt.Fprintf(&b, "   附件: %s\n", ev.AttachmentSummary)
			}
		}
		b.WriteString("\n")
	}

	if trends := report.Sections.IndustryTrends; trends != nil {
		b.WriteString("【行业动态】\n")
		if len(trends.HotTopics) > 0 {
			fmt.Fprintf(&b, "热门话题: %s\n", strings.Join(trends.HotTopics, "、"))
		}
		for _, src := range sortedSources(trends.SourceDistribution) {
			fmt.Fprintf(&b, "%s: %d 条\n", src, trends.SourceDistribution[src])
		}
		fmt.Fprintf(&b, "附件统计: 共 %d 个附件，%.1f%% 的新闻包含附件\n\n",
			trends.AttachmentAnalysis.TotalAttachments, trends.AttachmentAnalysis.AttachmentRatio)
	}

	if atts := report.Sections.Attachments; atts != nil {
		b.WriteString("【附件汇总】\n")
		if atts.Message != "" {
			b.WriteString(atts.Message + "\n")
		} else {
			fmt.Fprintf(&b, "共 %d 个附件，总大小 %.2f MB\n", atts.TotalAttachments, atts.TotalSizeMB)
			for _, kind := range orderedKinds(atts.TypeDistribution) {
				stat := atts.TypeDistribution[kind]
				fmt.Fprintf(&b, "%s: %d 个，%.2f MB\n", kind.Label(), stat.Count, float64(stat.Size)/1024/1024)
			}
			for _, listing := range atts.Items {
				fmt.Fprintf(&b, "%s（%s）\n", listing.Title, listing.Source)
				for j, ref := range listing.Attachments {
					fmt.Fprintf(&b, "  %d. %s (%d bytes)\n", j+1, ref.Filename, ref.Size)
				}
			}
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}
