package report

import (
	"fmt"
	"strings"

	"github.com/junyangz/newsbrief/internal/types"
)

type markdownRenderer struct{}

func (markdownRenderer) Format() string { return "markdown" }

// Render emits the report as markdown. Sections appear in the fixed order
// summary, key events, industry trends, attachments; absent sections are
// skipped entirely.
func (markdownRenderer) Render(report *types.Report) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", report.Title)
	fmt.Fprintf(&b, "**生成时间:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	if report.Sections.Summary != "" {
		b.WriteString("## 今日摘要\n\n")
		b.WriteString(report.Sections.Summary)
		b.WriteString("\n\n")
	}

	if len(report.Sections.KeyEvents) > 0 {
		b.WriteString("## 重点事件\n\n")
		for i, ev := range report.Sections.KeyEvents {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, ev.Title)
			fmt.Fprintf(&b, "- **来源:** %s\n", ev.Source)
			if ev.Time != "" {
				fmt.Fprintf(&b, "- **时间:** %s\n", ev.Time)
			}
			if ev.Summary != "" {
				fmt.Fprintf(&b, "- **摘要:** %s\n", ev.Summary)
			}
			if ev.Link != "" {
				fmt.Fprintf(&b, "- **链接:** [查看原文](%s)\n", ev.Link)
			}
			if ev.AttachmentSummary != "" {
				fmt.Fprintf(&b, "- **附件:** %s\n", ev.AttachmentSummary)
			}
			b.WriteString("\n")
		}
	}

	if trends := report.Sections.IndustryTrends; trends != nil {
		b.WriteString("## 行业动态\n\n")
		if len(trends.HotTopics) > 0 {
			fmt.Fprintf(&b, "**热门话题:** %s\n\n", strings.Join(trends.HotTopics, "、"))
		}
		if len(trends.SourceDistribution) > 0 {
			b.WriteString("**新闻来源分布:**\n\n")
			for _, src := range sortedSources(trends.SourceDistribution) {
				fmt.Fprintf(&b, "- %s: %d 条\n", src, trends.SourceDistribution[src])
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "**附件统计:** 共 %d 个附件，%.1f%% 的新闻包含附件\n\n",
			trends.AttachmentAnalysis.TotalAttachments, trends.AttachmentAnalysis.AttachmentRatio)
	}

	if atts := report.Sections.Attachments; atts != nil {
		b.WriteString("## 附件汇总\n\n")
		if atts.Message != "" {
			b.WriteString(atts.Message)
			b.WriteString("\n")
		} else {
			fmt.Fprintf(&b, "共 %d 个附件，总大小 %.2f MB\n\n", atts.TotalAttachments, atts.TotalSizeMB)
			if len(atts.TypeDistribution) > 0 {
				b.WriteString("**类型分布:**\n\n")
				for _, kind := range orderedKinds(atts.TypeDistribution) {
					stat := atts.TypeDistribution[kind]
					fmt.Fprintf(&b, "- %s: %d 个，%.2f MB\n", kind.Label(), stat.Count, float64(stat.Size)/1024/1024)
				}
				b.WriteString("\n")
			}
			for _, listing := range atts.Items {
				fmt.Fprintf(&b, "### %s（%s）\n\n", listing.Title, listing.Source)
				for j, ref := range listing.Attachments {
					fmt.Fprintf(&b, "%d. %s (%d bytes)\n", j+1, ref.Filename, ref.Size)
				}
				b.WriteString("\n")
			}
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}
