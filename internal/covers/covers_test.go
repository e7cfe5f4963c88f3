package covers

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes renders a solid test image of the given width.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newImageServer(t *testing.T, body []byte, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDownloadWritesCoverAndThumbnail(t *testing.T) {
	server := newImageServer(t, pngBytes(t, 400, 600), http.StatusOK)
	dir := t.TempDir()

	d := NewDownloader(server.Client(), dir, false)
	result, err := d.Download(context.Background(), "Dune", server.URL+"/cover.jpg")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Downloaded)

	assert.Equal(t, filepath.Join(dir, "Dune - cover.jpg"), result.LocalPath)
	assert.Equal(t, filepath.Join(dir, "Dune - thumb.jpg"), result.ThumbnailPath)
	assert.FileExists(t, result.LocalPath)
	assert.FileExists(t, result.ThumbnailPath)

	thumb, err := imaging.Open(result.ThumbnailPath)
	require.NoError(t, err)
	assert.Equal(t, 200, thumb.Bounds().Dx(), "thumbnail resized to fixed width")
}

func TestDownloadKeepsSmallImagesUnscaled(t *testing.T) {
	server := newImageServer(t, pngBytes(t, 120, 180), http.StatusOK)

	d := NewDownloader(server.Client(), t.TempDir(), false)
	result, err := d.Download(context.Background(), "Small", server.URL+"/cover.jpg")
	require.NoError(t, err)

	thumb, err := imaging.Open(result.ThumbnailPath)
	require.NoError(t, err)
	assert.Equal(t, 120, thumb.Bounds().Dx())
}

func TestDownloadSkipsExistingCover(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(pngBytes(t, 100, 100))
	}))
	t.Cleanup(server.Close)
	dir := t.TempDir()

	existing := filepath.Join(dir, "Dune - cover.jpg")
	require.NoError(t, os.WriteFile(existing, []byte("placeholder"), 0o644))

	d := NewDownloader(server.Client(), dir, false)
	result, err := d.Download(context.Background(), "Dune", server.URL+"/cover.jpg")
	require.NoError(t, err)
	assert.False(t, result.Downloaded)
	assert.Zero(t, hits)
}

func TestDownloadUpdateOverwrites(t *testing.T) {
	server := newImageServer(t, pngBytes(t, 100, 100), http.StatusOK)
	dir := t.TempDir()

	existing := filepath.Join(dir, "Dune - cover.jpg")
	require.NoError(t, os.WriteFile(existing, []byte("placeholder"), 0o644))

	d := NewDownloader(server.Client(), dir, true)
	result, err := d.Download(context.Background(), "Dune", server.URL+"/cover.jpg")
	require.NoError(t, err)
	assert.True(t, result.Downloaded)

	_, err = imaging.Open(existing)
	assert.NoError(t, err, "placeholder replaced by a real image")
}

func TestDownloadEmptyURLIsNoOp(t *testing.T) {
	d := NewDownloader(nil, t.TempDir(), false)
	result, err := d.Download(context.Background(), "Dune", "")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestDownloadBadStatus(t *testing.T) {
	server := newImageServer(t, nil, http.StatusNotFound)

	d := NewDownloader(server.Client(), t.TempDir(), false)
	_, err := d.Download(context.Background(), "Dune", server.URL+"/missing.jpg")
	assert.Error(t, err)
}

func TestDownloadNonImageBody(t *testing.T) {
	server := newImageServer(t, []byte("not an image"), http.StatusOK)

	d := NewDownloader(server.Client(), t.TempDir(), false)
	_, err := d.Download(context.Background(), "Dune", server.URL+"/cover.jpg")
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Dune", "Dune"},
		{"Dune: Messiah", "Dune - Messiah"},
		{"a/b\\c", "a-b-c"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in))
	}
}
