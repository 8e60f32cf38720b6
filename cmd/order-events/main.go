package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/Lllllllleong/bookorderflow/internal/models"
	"github.com/Lllllllleong/bookorderflow/internal/relay"
)

var (
	orderInstance *relay.OrderFunction
	once          sync.Once
	initErr       error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the CloudEvent function. The framework will handle routing the event here.
	functions.CloudEvent("OrderFromEvent", orderFromEvent)
}

// main is required by the Go Functions Framework.
func main() {}

// orderFromEvent accepts a book-order request delivered as a CloudEvent
// (e.g. a Pub/Sub push) and runs it through the same pipeline as the HTTP
// endpoint. Returning an error marks the invocation as failed.
func orderFromEvent(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		orderInstance, initErr = relay.NewOrderFunction(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during order relay initialization", "error", initErr)
		return initErr
	}

	var req models.OrderRequest
	if err := json.Unmarshal(e.Data(), &req); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	result, err := orderInstance.Process(ctx, &req)
	if err != nil {
		// The error is already logged with context within the Process method.
		return err
	}

	slog.Info("Book order created from event.", "gelatoOrderId", result.OrderID, "assetUrl", result.AssetURL)
	return nil
}
