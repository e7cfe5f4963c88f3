// Package covers downloads book cover images to a local directory and
// writes a resized thumbnail alongside each one.
package covers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	thumbnailWidth = 200
	jpegQuality    = 85
)

// Downloader fetches cover images over HTTP.
type Downloader struct {
	httpClient *http.Client
	outputDir  string
	update     bool
}

// NewDownloader creates a Downloader writing into outputDir. When update is
// false, covers that already exist on disk are skipped.
func NewDownloader(client *http.Client, outputDir string, update bool) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{httpClient: client, outputDir: outputDir, update: update}
}

// Result describes one downloaded cover.
type Result struct {
	Downloaded    bool
	LocalPath     string
	ThumbnailPath string
}

// Download fetches the cover at imageURL for the given title and writes the
// full image plus a thumbnail. An empty URL is a no-op.
func (d *Downloader) Download(ctx context.Context, title, imageURL string) (*Result, error) {
	if imageURL == "" {
		return nil, nil
	}

	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating covers directory: %w", err)
	}

	base := SanitizeFilename(title)
	localPath := filepath.Join(d.outputDir, base+" - cover.jpg")
	thumbPath := filepath.Join(d.outputDir, base+" - thumb.jpg")

	result := &Result{LocalPath: localPath, ThumbnailPath: thumbPath}

	if fileExists(localPath) && !d.update {
		slog.Debug("Cover already exists, skipping download", "path", localPath)
		return result, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, imageURL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding cover image: %w", err)
	}

	if err := imaging.Save(img, localPath, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("saving cover: %w", err)
	}

	thumb := img
	if img.Bounds().Dx() > thumbnailWidth {
		thumb = imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	}
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("saving thumbnail: %w", err)
	}

	slog.Info("Downloaded cover", "path", localPath)
	result.Downloaded = true
	return result, nil
}

// SanitizeFilename makes a title safe to use as a file name.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", " -")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return strings.TrimSpace(name)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
