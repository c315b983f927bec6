// Package netx holds small HTTP helpers used outside the request path.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// httpClient is shared by uploads; tests may replace it.
var httpClient = &http.Client{Timeout: 2 * time.Minute}

// UploadToPresignedURL PUTs body to a presigned object-store URL. size may be
// -1 when unknown. An empty contentType defaults to application/octet-stream.
func UploadToPresignedURL(ctx context.Context, url string, body io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	if size >= 0 {
		req.ContentLength = size
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
