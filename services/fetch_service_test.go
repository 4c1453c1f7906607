package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videomerger/models"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/clip.mp4":
			w.Write([]byte("fake video bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	fs := NewFetchService(10 * time.Second)

	t.Run("success writes the body to the destination", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "video_000.mp4")
		require.NoError(t, fs.Fetch(context.Background(), server.URL+"/clip.mp4", dest))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "fake video bytes", string(data))
	})

	t.Run("non-success status is a DownloadError", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "video_000.mp4")
		err := fs.Fetch(context.Background(), server.URL+"/missing.mp4", dest)

		var download *models.DownloadError
		require.ErrorAs(t, err, &download)
		assert.Contains(t, download.URL, "/missing.mp4")
		assert.False(t, fileExistsForTest(dest))
	})

	t.Run("unreachable host is a DownloadError", func(t *testing.T) {
		dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		dead.Close()

		dest := filepath.Join(t.TempDir(), "video_000.mp4")
		err := fs.Fetch(context.Background(), dead.URL+"/clip.mp4", dest)

		var download *models.DownloadError
		assert.ErrorAs(t, err, &download)
	})

	t.Run("unwritable destination is a DownloadError", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "no-such-dir", "video_000.mp4")
		err := fs.Fetch(context.Background(), server.URL+"/clip.mp4", dest)

		var download *models.DownloadError
		assert.ErrorAs(t, err, &download)
	})
}

func TestFetchAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a.mp4", "/b.mp4", "/bg.mp3":
			w.Write([]byte("media " + r.URL.Path))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	fs := NewFetchService(10 * time.Second)

	t.Run("fetches every asset", func(t *testing.T) {
		dir := t.TempDir()
		assets := []models.StagedAsset{
			{URL: server.URL + "/a.mp4", Path: filepath.Join(dir, "video_000.mp4"), Kind: models.MediaVideo},
			{URL: server.URL + "/b.mp4", Path: filepath.Join(dir, "video_001.mp4"), Kind: models.MediaVideo},
			{URL: server.URL + "/bg.mp3", Path: filepath.Join(dir, "background.mp3"), Kind: models.MediaAudio},
		}

		require.NoError(t, fs.FetchAll(context.Background(), assets))
		for _, asset := range assets {
			assert.True(t, fileExistsForTest(asset.Path), "expected %s", asset.Path)
		}
	})

	t.Run("surfaces a failing asset as DownloadError", func(t *testing.T) {
		dir := t.TempDir()
		assets := []models.StagedAsset{
			{URL: server.URL + "/a.mp4", Path: filepath.Join(dir, "video_000.mp4"), Kind: models.MediaVideo},
			{URL: server.URL + "/404.mp4", Path: filepath.Join(dir, "video_001.mp4"), Kind: models.MediaVideo},
		}

		err := fs.FetchAll(context.Background(), assets)
		var download *models.DownloadError
		require.ErrorAs(t, err, &download)
		assert.Contains(t, download.URL, "/404.mp4")
	})
}

func fileExistsForTest(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
