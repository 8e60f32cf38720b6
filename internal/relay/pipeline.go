package relay

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Lllllllleong/bookorderflow/internal/gcp"
	"github.com/Lllllllleong/bookorderflow/internal/models"
)

// Config holds all configuration for the order relay.
type Config struct {
	GelatoAPIKey     string
	GelatoProductUID string
	GelatoAPIURL     string
	AssetBucket      string
	AssetBaseURL     string
	ProjectID        string
	CollectionName   string
}

// loadConfig loads and validates all necessary environment variables.
func loadConfig() (*Config, error) {
	apiKey := gcp.GetEnv("GELATO_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("GELATO_API_KEY environment variable must be set")
	}
	productUID := gcp.GetEnv("GELATO_PRODUCT_ID", "")
	if productUID == "" {
		return nil, fmt.Errorf("GELATO_PRODUCT_ID environment variable must be set")
	}

	return &Config{
		GelatoAPIKey:     apiKey,
		GelatoProductUID: productUID,
		GelatoAPIURL:     gcp.GetEnv("GELATO_API_URL", defaultGelatoAPIURL),
		AssetBucket:      gcp.GetEnv("ASSET_BUCKET", ""),
		AssetBaseURL:     gcp.GetEnv("ASSET_BASE_URL", "https://mock-s3-bucket.com"),
		ProjectID:        gcp.GetEnv("PROJECT_ID", ""),
		CollectionName:   gcp.GetEnv("FIRESTORE_COLLECTION", "orders"),
	}, nil
}

// OrderFunction holds the dependencies for the book-order pipeline.
type OrderFunction struct {
	gelato      *GelatoClient
	publisher   Publisher
	journal     OrderJournal
	fetchClient *http.Client
}

// OrderResult is the outcome of a successfully processed order.
type OrderResult struct {
	OrderID  string
	AssetURL string
}

// NewOrderFunction creates a new OrderFunction instance. Configuration is
// read once here and treated as immutable afterwards. When no asset bucket
// is configured the publisher falls back to the stub; when no project id is
// configured the journal stays in memory.
func NewOrderFunction(ctx context.Context) (*OrderFunction, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var publisher Publisher = &StubPublisher{BaseURL: config.AssetBaseURL}
	if config.AssetBucket != "" {
		storageClient, err := gcp.NewStorageClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		publisher = NewGCSPublisher(storageClient, config.AssetBucket)
	}

	var journal OrderJournal = NewMemJournal()
	if config.ProjectID != "" {
		firestoreClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		journal = NewFirestoreJournal(firestoreClient, config.CollectionName)
	}

	f := &OrderFunction{
		gelato:      NewGelatoClient(config.GelatoAPIKey, config.GelatoProductUID, config.GelatoAPIURL),
		publisher:   publisher,
		journal:     journal,
		fetchClient: &http.Client{},
	}
	slog.Info("Order relay initialized.", "productUid", config.GelatoProductUID, "assetBucket", config.AssetBucket)
	return f, nil
}

// Process runs one order through the pipeline: validate, fetch the source
// PDF, normalize its page count, publish the normalized file, submit the
// Gelato order. Every request gets its own working directory, removed when
// the request finishes.
func (f *OrderFunction) Process(ctx context.Context, req *models.OrderRequest) (*OrderResult, error) {
	if err := ValidateOrderRequest(req); err != nil {
		slog.Warn("Rejected order request.", "error", err)
		return nil, err
	}

	logCtx := slog.With("userId", req.UserID)
	logCtx.Info("Processing order request.")

	workDir, err := os.MkdirTemp("", "bookorder-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	// The journal record and the source download don't depend on each
	// other; run them together. A journal failure is logged but never
	// fails the order.
	var recordID string
	sourcePath := filepath.Join(workDir, "source.pdf")

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		id, err := f.journal.Create(gctx, models.OrderRecord{
			UserID:    req.UserID,
			SourceURL: req.PDFURL,
			Status:    string(models.StatusFetching),
			CreatedAt: time.Now(),
		})
		if err != nil {
			logCtx.Warn("Failed to create order record; continuing without journal.", "error", err)
			return nil
		}
		recordID = id
		return nil
	})
	eg.Go(func() error {
		return FetchPDF(gctx, f.fetchClient, req.PDFURL, sourcePath)
	})
	if err := eg.Wait(); err != nil {
		return nil, f.fail(ctx, logCtx, recordID, StepFetch, msgFetchFailed, err)
	}
	if recordID != "" {
		logCtx = logCtx.With("orderRecordId", recordID)
	}
	logCtx.Info("Source PDF downloaded.")

	f.setStatus(ctx, logCtx, recordID, models.StatusNormalizing)
	normalizedPath := filepath.Join(workDir, "gelato_ready.pdf")
	pageCount, err := NormalizePageCount(sourcePath, normalizedPath)
	if err != nil {
		return nil, f.fail(ctx, logCtx, recordID, StepNormalize, msgNormalizeFailed, err)
	}
	logCtx.Info("PDF adjusted to required length.", "pageCount", pageCount)

	f.setStatus(ctx, logCtx, recordID, models.StatusPublishing)
	assetKey := fmt.Sprintf("%s/pdf/gelato_ready.pdf", req.UserID)
	assetURL, err := f.publisher.Put(ctx, normalizedPath, assetKey)
	if err != nil {
		return nil, f.fail(ctx, logCtx, recordID, StepPublish, msgPublishFailed, err)
	}
	logCtx.Info("Normalized PDF published.", "assetUrl", assetURL)

	f.setStatus(ctx, logCtx, recordID, models.StatusSubmitting)
	orderID, err := f.gelato.SubmitOrder(ctx, assetURL, req)
	if err != nil {
		return nil, f.fail(ctx, logCtx, recordID, StepSubmit, msgSubmitFailed, err)
	}
	logCtx.Info("Book order created.", "gelatoOrderId", orderID)

	if recordID != "" {
		if err := f.journal.RecordResult(ctx, recordID, pageCount, assetURL, orderID); err != nil {
			logCtx.Warn("Failed to record order result.", "error", err)
		}
	}
	return &OrderResult{OrderID: orderID, AssetURL: assetURL}, nil
}

// fail logs the step failure, marks the journal record FAILED and returns
// the typed error for the boundary to translate.
func (f *OrderFunction) fail(ctx context.Context, logCtx *slog.Logger, recordID string, step Step, msg string, err error) error {
	logCtx.Error(msg, "step", string(step), "error", err)
	if recordID != "" {
		if jerr := f.journal.MarkFailed(ctx, recordID, fmt.Sprintf("%s: %v", msg, err)); jerr != nil {
			logCtx.Error("CRITICAL: Failed to mark order record as failed after a processing error.", "updateError", jerr)
		}
	}
	return &StepError{Step: step, Msg: msg, Err: err}
}

func (f *OrderFunction) setStatus(ctx context.Context, logCtx *slog.Logger, recordID string, status models.OrderStatus) {
	if recordID == "" {
		return
	}
	if err := f.journal.SetStatus(ctx, recordID, status); err != nil {
		logCtx.Warn("Failed to update order record status.", "status", string(status), "error", err)
	}
}
