package attach

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/junyangz/newsbrief/internal/types"
)

// allowedContentTypes is the fixed allow-list of document MIME types. An
// absent Content-Type is accepted, deferring to extension-based kind
// determination.
var allowedContentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"application/octet-stream",
}

const downloadChunkSize = 8 * 1024

// Downloader fetches attachment candidates under a hard byte cap.
type Downloader struct {
	client  *http.Client
	maxSize int64
	logger  *slog.Logger
	now     func() time.Time
}

// NewDownloader creates a Downloader. maxSize is the hard per-attachment
// byte cap; timeout bounds each download.
func NewDownloader(maxSize int64, timeout time.Duration, logger *slog.Logger) *Downloader {
	return &Downloader{
		client:  &http.Client{Timeout: timeout},
		maxSize: maxSize,
		logger:  logger.With("component", "attachment_downloader"),
		now:     time.Now,
	}
}

// Download fetches one candidate. The returned attachment always satisfies
// Size == len(Content) <= maxSize; a violation at any stage discards the
// whole download, never a partial one.
func (d *Downloader) Download(ctx context.Context, link Link) (*types.Attachment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link.URL, nil)
	if err != nil {
		return nil, &types.AttachmentError{URL: link.URL, Reason: "bad URL", Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &types.AttachmentError{URL: link.URL, Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.AttachmentError{URL: link.URL, Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	// Advertised size check: reject before reading a single byte.
	if resp.ContentLength > d.maxSize {
		return nil, &types.AttachmentError{
			URL:    link.URL,
			Reason: fmt.Sprintf("too large: %d bytes (max %d)", resp.ContentLength, d.maxSize),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !acceptableContentType(contentType) {
		return nil, &types.AttachmentError{URL: link.URL, Reason: "unsupported content type " + contentType}
	}

	// Stream in chunks and enforce the cap on accumulated bytes; the header
	// may be absent or lying.
	content, err := d.readCapped(resp.Body)
	if err != nil {
		return nil, &types.AttachmentError{URL: link.URL, Reason: "read failed", Err: err}
	}
	if content == nil {
		return nil, &types.AttachmentError{
			URL:    link.URL,
			Reason: fmt.Sprintf("exceeded %d bytes mid-stream", d.maxSize),
		}
	}

	att := &types.Attachment{
		Filename:     link.Filename,
		SourceURL:    link.URL,
		Content:      content,
		Size:         int64(len(content)),
		ContentType:  contentType,
		Kind:         KindFor(link.Filename, contentType),
		DownloadedAt: d.now(),
	}

	d.logger.Debug("attachment downloaded",
		"filename", att.Filename,
		"url", link.URL,
		"size", att.Size,
		"kind", att.Kind,
	)

	return att, nil
}

// readCapped accumulates the body in fixed-size chunks, returning nil (no
// error) when the cap is breached.
func (d *Downloader) readCapped(body io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, downloadChunkSize)

	for {
		n, err := body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if int64(buf.Len()) > d.maxSize {
				return nil, nil
			}
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func acceptableContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	ct := strings.ToLower(contentType)
	for _, allowed := range allowedContentTypes {
		if strings.Contains(ct, allowed) {
			return true
		}
	}
	return false
}
