package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"videomerger/models"
)

// FetchService downloads remote assets into a run's staging directory
type FetchService struct {
	httpClient *http.Client
}

// NewFetchService creates a new fetch service with a bounded download timeout
func NewFetchService(timeout time.Duration) *FetchService {
	return &FetchService{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads a single URL to destPath. The destination file is left in
// place on success; deleting it is the caller's responsibility.
func (fs *FetchService) Fetch(ctx context.Context, url, destPath string) error {
	if err := fs.fetch(ctx, url, destPath); err != nil {
		return &models.DownloadError{URL: url, Err: err}
	}
	return nil
}

func (fs *FetchService) fetch(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := fs.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(destPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("failed to flush file: %w", err)
	}

	return nil
}

// FetchAll downloads all staged assets in parallel. The assets are
// independent, so the first failure cancels the remaining downloads and is
// returned as-is.
func (fs *FetchService) FetchAll(ctx context.Context, assets []models.StagedAsset) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, asset := range assets {
		asset := asset
		g.Go(func() error {
			return fs.Fetch(ctx, asset.URL, asset.Path)
		})
	}

	return g.Wait()
}
