package models

import "time"

// These structs define the JSON payloads for the inbound order endpoint.

// OrderRequest is the inbound book-order payload. All fields are required;
// presence is checked at intake, formats are not.
type OrderRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	PDFURL       string `json:"pdf_url" validate:"required"`
	CustomerName string `json:"customer_name" validate:"required"`
	Address      string `json:"address" validate:"required"`
	City         string `json:"city" validate:"required"`
	Country      string `json:"country" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Email        string `json:"email" validate:"required"`
}

// OrderResponse is returned on a successful end-to-end order.
type OrderResponse struct {
	Message      string `json:"message"`
	OrderID      string `json:"order_id"`
	GelatoPDFURL string `json:"gelato_pdf_url"`
}

// ErrorResponse is the error body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OrderStatus tracks an order record through the pipeline.
type OrderStatus string

const (
	StatusReceived    OrderStatus = "RECEIVED"
	StatusFetching    OrderStatus = "FETCHING"
	StatusNormalizing OrderStatus = "NORMALIZING"
	StatusPublishing  OrderStatus = "PUBLISHING"
	StatusSubmitting  OrderStatus = "SUBMITTING"
	StatusCompleted   OrderStatus = "COMPLETED"
	StatusFailed      OrderStatus = "FAILED"
)

// OrderRecord is the main record for a book-order request in Firestore.
// It tracks the overall status and outcome of the request.
type OrderRecord struct {
	UserID        string    `firestore:"userId,omitempty"`
	SourceURL     string    `firestore:"sourceUrl,omitempty"`
	Status        string    `firestore:"status,omitempty"`
	ErrorDetails  string    `firestore:"errorDetails,omitempty"`
	PageCount     int       `firestore:"pageCount,omitempty"`
	AssetURL      string    `firestore:"assetUrl,omitempty"`
	GelatoOrderID string    `firestore:"gelatoOrderId,omitempty"`
	CreatedAt     time.Time `firestore:"createdAt,omitempty"`
}
