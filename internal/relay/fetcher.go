package relay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// FetchPDF issues a streaming GET for url and persists the full response
// body to destPath. Anything other than a 200 is a failure; there is no
// retry and no partial-file guarantee beyond the enclosing working
// directory being discarded with the request.
func FetchPDF(ctx context.Context, client *http.Client, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request for %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	localFile, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file at %s: %w", destPath, err)
	}
	defer localFile.Close()

	if _, err := io.Copy(localFile, resp.Body); err != nil {
		return fmt.Errorf("failed to copy response body to local file: %w", err)
	}
	return nil
}
