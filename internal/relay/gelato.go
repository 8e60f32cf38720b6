package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Lllllllleong/bookorderflow/internal/models"
)

const defaultGelatoAPIURL = "https://order.gelatoapis.com/v4/orders"

// Gelato is expected to answer within this bound; there is no retry.
const submitTimeout = 30 * time.Second

const (
	orderCurrency  = "USD"
	shipmentMethod = "standard"
)

// GelatoClient submits print orders to the Gelato orders API.
type GelatoClient struct {
	httpClient *http.Client
	apiKey     string
	productUID string
	apiURL     string
}

func NewGelatoClient(apiKey, productUID, apiURL string) *GelatoClient {
	if apiURL == "" {
		apiURL = defaultGelatoAPIURL
	}
	return &GelatoClient{
		httpClient: &http.Client{Timeout: submitTimeout},
		apiKey:     apiKey,
		productUID: productUID,
		apiURL:     apiURL,
	}
}

// SubmitOrder posts a single-item book order referencing pdfURL and returns
// the provider-assigned order id. Reference ids are freshly generated per
// call, so resubmitting after a failure creates a new order.
func (c *GelatoClient) SubmitOrder(ctx context.Context, pdfURL string, req *models.OrderRequest) (string, error) {
	payload := c.buildOrder(pdfURL, req)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal order payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build order request: %w", err)
	}
	httpReq.Header.Set("X-API-KEY", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("gelato returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	var orderResp models.GelatoOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return "", fmt.Errorf("failed to decode order response: %w", err)
	}
	if orderResp.ID == "" {
		return "", fmt.Errorf("order response is missing an order id")
	}
	return orderResp.ID, nil
}

func (c *GelatoClient) buildOrder(pdfURL string, req *models.OrderRequest) models.GelatoOrder {
	firstName, lastName := splitCustomerName(req.CustomerName)

	return models.GelatoOrder{
		OrderType:           "order",
		OrderReferenceID:    newReferenceID("order"),
		CustomerReferenceID: newReferenceID("customer"),
		Currency:            orderCurrency,
		Items: []models.GelatoItem{
			{
				ItemReferenceID: newReferenceID("item"),
				ProductUID:      c.productUID,
				Files: []models.GelatoFile{
					{Type: "default", URL: pdfURL},
				},
				Quantity:  1,
				PageCount: RequiredPageCount,
			},
		},
		ShipmentMethodUID: shipmentMethod,
		ShippingAddress: models.GelatoAddress{
			CompanyName:  req.CustomerName,
			FirstName:    firstName,
			LastName:     lastName,
			AddressLine1: req.Address,
			City:         req.City,
			State:        "",
			PostCode:     req.PostalCode,
			Country:      req.Country,
			Email:        req.Email,
		},
	}
}

// splitCustomerName derives first and last name from a free-form name.
// A single-token name yields the same token for both.
func splitCustomerName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], fields[len(fields)-1]
}

// newReferenceID builds a short correlation token, e.g. "order-3f2a9c1d".
func newReferenceID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
