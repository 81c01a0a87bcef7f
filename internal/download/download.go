// Package download streams located clip sources to local files.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Downloader streams clip source URLs to uniquely named files.
type Downloader struct {
	client *http.Client
}

// New creates a downloader with a bounded per-clip timeout.
func New(timeout time.Duration) *Downloader {
	if timeout == 0 {
		timeout = 2 * time.Minute
	}
	return &Downloader{client: &http.Client{Timeout: timeout}}
}

// Clip streams srcURL into destDir and returns the file path. Failures are
// per-clip recoverable; the caller decides whether to skip.
func (d *Downloader) Clip(ctx context.Context, srcURL, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", srcURL, nil)
	if err != nil {
		return "", fmt.Errorf("building clip request: %w", err)
	}
	req.Header.Set("User-Agent", "statcast-highlight-tool/1.0")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading clip: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading clip: HTTP %d", resp.StatusCode)
	}

	path := filepath.Join(destDir, uuid.New().String()+".mp4")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating clip file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing clip file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing clip file: %w", err)
	}
	return path, nil
}
