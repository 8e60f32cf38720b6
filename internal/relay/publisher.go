package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// Publisher stores a local file under a key and returns a URL the print
// provider can fetch it from.
type Publisher interface {
	Put(ctx context.Context, localPath, key string) (string, error)
}

// StubPublisher fabricates a reference URL without transferring any bytes.
// It is the default when no asset bucket is configured.
type StubPublisher struct {
	BaseURL string
}

func (p *StubPublisher) Put(_ context.Context, _ string, key string) (string, error) {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(p.BaseURL, "/"), key), nil
}

// GCSPublisher uploads assets to a Cloud Storage bucket and returns the
// public object URL.
type GCSPublisher struct {
	client *storage.Client
	bucket string
}

func NewGCSPublisher(client *storage.Client, bucket string) *GCSPublisher {
	return &GCSPublisher{client: client, bucket: bucket}
}

// Put uploads the file with bounded retries. Client-side (4xx) API errors
// are permanent and fail immediately.
func (p *GCSPublisher) Put(ctx context.Context, localPath, key string) (string, error) {
	const maxRetries = 4
	var backoff = 1 * time.Second
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		err := p.upload(ctx, localPath, key)
		if err == nil {
			return fmt.Sprintf("https://storage.googleapis.com/%s/%s", p.bucket, key), nil
		}

		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code >= 400 && gerr.Code < 500 {
			slog.Error("Upload rejected by GCS.", "gcsObject", key, "code", gerr.Code, "error", err)
			return "", err
		}

		lastErr = err
		slog.Warn(
			"Upload failed, will retry.",
			"gcsObject", key,
			"attempt", i+1,
			"maxRetries", maxRetries,
			"backoff", backoff.String(),
			"error", err,
		)

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			slog.Error("Context cancelled during backoff. Aborting retries.", "gcsObject", key, "error", ctx.Err())
			return "", ctx.Err()
		}
	}
	slog.Error("Upload failed after all retries.", "gcsObject", key, "error", lastErr)
	return "", fmt.Errorf("upload for %s failed after all retries: %w", key, lastErr)
}

func (p *GCSPublisher) upload(ctx context.Context, localPath, key string) error {
	localFileReader, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("could not open local file %s: %w", localPath, err)
	}
	defer localFileReader.Close()

	writeCtx, cancel := context.WithTimeout(ctx, time.Second*50)
	defer cancel()

	gcsWriter := p.client.Bucket(p.bucket).Object(key).NewWriter(writeCtx)

	if _, err := io.Copy(gcsWriter, localFileReader); err != nil {
		_ = gcsWriter.Close()
		return fmt.Errorf("io.Copy to GCS failed: %w", err)
	}
	if err := gcsWriter.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer (finalize upload): %w", err)
	}
	return nil
}

// MemPublisher keeps uploaded objects in memory. Test fake.
type MemPublisher struct {
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemPublisher(baseURL string) *MemPublisher {
	return &MemPublisher{BaseURL: baseURL, objects: make(map[string][]byte)}
}

func (p *MemPublisher) Put(_ context.Context, localPath, key string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("could not read local file %s: %w", localPath, err)
	}
	p.mu.Lock()
	p.objects[key] = data
	p.mu.Unlock()
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(p.BaseURL, "/"), key), nil
}

// Object returns a stored object's bytes.
func (p *MemPublisher) Object(key string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.objects[key]
	return data, ok
}
