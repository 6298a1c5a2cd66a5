package attach

import (
	"testing"
	"time"

	"github.com/junyangz/newsbrief/internal/types"
)

var testExts = []string{"pdf", "doc", "docx", "ppt", "pptx"}

var fixedNow = time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)

func TestClassifyByExtension(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"pdf", "https://example.com/files/report.pdf", true},
		{"docx", "https://example.com/files/notes.docx", true},
		{"ppt", "https://example.com/slides.ppt", true},
		{"uppercase path", "https://example.com/REPORT.PDF", true},
		{"query after ext", "https://example.com/report.pdf?dl=1", true},
		{"html page", "https://example.com/news/article.html", false},
		{"no extension", "https://example.com/news/12345", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.url, "click here", testExts, fixedNow)
			if got.IsAttachment != tt.want {
				t.Errorf("Classify(%q).IsAttachment = %v, want %v", tt.url, got.IsAttachment, tt.want)
			}
		})
	}
}

func TestClassifyByKeyword(t *testing.T) {
	tests := []struct {
		name string
		url  string
		text string
		want bool
	}{
		{"text keyword 附件", "https://example.com/item/9", "会议附件", true},
		{"text keyword 下载", "https://example.com/item/9", "点击下载", true},
		{"text keyword pdf", "https://example.com/item/9", "PDF version", true},
		{"url keyword", "https://example.com/download/9", "link", true},
		{"no keyword", "https://example.com/item/9", "more info", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.url, tt.text, testExts, fixedNow)
			if got.IsAttachment != tt.want {
				t.Errorf("Classify(%q, %q).IsAttachment = %v, want %v", tt.url, tt.text, got.IsAttachment, tt.want)
			}
		})
	}
}

func TestDeriveFilename(t *testing.T) {
	t.Run("from url path", func(t *testing.T) {
		got := Classify("https://example.com/files/annual-report.pdf", "年度报告", testExts, fixedNow)
		if got.Filename != "annual-report.pdf" {
			t.Errorf("Filename = %q, want annual-report.pdf", got.Filename)
		}
	})

	t.Run("from link text", func(t *testing.T) {
		got := Classify("https://example.com/download/9", `年度<报告>下载`, testExts, fixedNow)
		if got.Filename != "年度报告下载" {
			t.Errorf("Filename = %q, want sanitized link text", got.Filename)
		}
	})

	t.Run("timestamped fallback", func(t *testing.T) {
		got := Classify("https://example.com/download/9", "", testExts, fixedNow)
		if got.Filename != "attachment_20260824_103000" {
			t.Errorf("Filename = %q, want timestamped fallback", got.Filename)
		}
	})
}

func TestKindFor(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
		want        types.FileKind
	}{
		{"report.pdf", "", types.KindPDF},
		{"notes.docx", "", types.KindWord},
		{"deck.pptx", "", types.KindPresentation},
		{"sheet.xlsx", "", types.KindExcel},
		{"blob", "application/pdf", types.KindPDF},
		{"blob", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", types.KindWord},
		{"blob", "application/vnd.ms-powerpoint", types.KindPresentation},
		{"blob", "application/octet-stream", types.KindOther},
		{"blob", "", types.KindOther},
		// Extension beats a conflicting Content-Type.
		{"report.pdf", "application/msword", types.KindPDF},
	}

	for _, tt := range tests {
		if got := KindFor(tt.filename, tt.contentType); got != tt.want {
			t.Errorf("KindFor(%q, %q) = %v, want %v", tt.filename, tt.contentType, got, tt.want)
		}
	}
}

func TestFindLinks(t *testing.T) {
	html := `<html><body>
		<a href="/files/report.pdf">report</a>
		<a href="files/slides.pptx">slides</a>
		<a href="/files/report.pdf">duplicate</a>
		<a href="/news/other.html">other news</a>
	</body></html>`

	links := FindLinks(html, "https://example.com/news/1", testExts, fixedNow)
	if len(links) != 2 {
		t.Fatalf("FindLinks() returned %d links, want 2", len(links))
	}
	if links[0].URL != "https://example.com/files/report.pdf" {
		t.Errorf("links[0].URL = %q", links[0].URL)
	}
	if links[1].URL != "https://example.com/news/files/slides.pptx" {
		t.Errorf("links[1].URL = %q, want path-relative resolution", links[1].URL)
	}
	if links[0].Filename != "report.pdf" {
		t.Errorf("links[0].Filename = %q", links[0].Filename)
	}
}
