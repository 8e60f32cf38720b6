package relay

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lllllllleong/bookorderflow/internal/models"
)

// HandleOrderBook is the HTTP boundary of the pipeline. It decodes the
// request, runs Process and translates the outcome into a response; this is
// the only place a StepError becomes an HTTP status.
func (f *OrderFunction) HandleOrderBook(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Could not decode request body.", "error", err)
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Could not parse JSON body"})
		return
	}

	result, err := f.Process(r.Context(), &req)
	if err != nil {
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			writeJSON(w, stepErr.HTTPStatus(), models.ErrorResponse{Error: stepErr.Msg})
			return
		}
		slog.Error("Unclassified pipeline failure.", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, models.OrderResponse{
		Message:      "Book order created successfully!",
		OrderID:      result.OrderID,
		GelatoPDFURL: result.AssetURL,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to write response.", "error", err)
	}
}
