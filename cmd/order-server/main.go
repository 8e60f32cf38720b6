package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"github.com/Lllllllleong/bookorderflow/internal/gcp"
	"github.com/Lllllllleong/bookorderflow/internal/relay"
)

var (
	orderInstance *relay.OrderFunction
	once          sync.Once
	initErr       error
)

func main() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := funcframework.RegisterHTTPFunctionContext(ctx, "/order-book", handleOrderBook); err != nil {
		slog.Error("Failed to register order endpoint", "error", err)
		os.Exit(1)
	}

	port := gcp.GetEnv("PORT", "8080")
	slog.Info("Order relay listening.", "port", port)
	if err := funcframework.Start(port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// handleOrderBook is the HTTP entry point for book orders.
func handleOrderBook(w http.ResponseWriter, r *http.Request) {
	// Use sync.Once for robust, one-time initialization of clients.
	once.Do(func() {
		orderInstance, initErr = relay.NewOrderFunction(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during order relay initialization", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	orderInstance.HandleOrderBook(w, r)
}
