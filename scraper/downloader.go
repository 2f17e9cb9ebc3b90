// scraper/downloader.go
package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
)

// DownloadFeed downloads a competitor feed from url and saves it to localSavePath.
func DownloadFeed(ctx context.Context, client *resty.Client, url string, localSavePath string) error {
	log.Printf("Scraper: downloading feed from %s to %s", url, localSavePath)

	if url == "" {
		return &ExtractionError{URL: url, Err: fmt.Errorf("feed URL is not configured")}
	}

	// Ensure the directory for the local save path exists
	dir := filepath.Dir(localSavePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	res, err := client.R().SetContext(ctx).SetOutput(localSavePath).Get(url)
	if err != nil {
		os.Remove(localSavePath)
		return &ExtractionError{URL: url, Err: fmt.Errorf("failed to make GET request: %w", err)}
	}
	if res.StatusCode() != http.StatusOK {
		os.Remove(localSavePath)
		return &ExtractionError{URL: url, Err: fmt.Errorf("received status code %d", res.StatusCode())}
	}

	log.Printf("Scraper: downloaded %s to %s", url, localSavePath)
	return nil
}
