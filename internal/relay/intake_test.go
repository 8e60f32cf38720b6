package relay

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/bookorderflow/internal/models"
)

func completeOrderRequest() models.OrderRequest {
	return models.OrderRequest{
		UserID:       "user-1",
		PDFURL:       "https://books.example.com/source.pdf",
		CustomerName: "Ada Lovelace",
		Address:      "12 Analytical Way",
		City:         "London",
		Country:      "GB",
		PostalCode:   "N1 9GU",
		Email:        "ada@example.com",
	}
}

func TestValidateOrderRequestAcceptsCompleteRequest(t *testing.T) {
	req := completeOrderRequest()
	assert.NoError(t, ValidateOrderRequest(&req))
}

func TestValidateOrderRequestNamesFirstMissingField(t *testing.T) {
	cases := []struct {
		field string
		clear func(*models.OrderRequest)
	}{
		{"user_id", func(r *models.OrderRequest) { r.UserID = "" }},
		{"pdf_url", func(r *models.OrderRequest) { r.PDFURL = "" }},
		{"customer_name", func(r *models.OrderRequest) { r.CustomerName = "" }},
		{"address", func(r *models.OrderRequest) { r.Address = "" }},
		{"city", func(r *models.OrderRequest) { r.City = "" }},
		{"country", func(r *models.OrderRequest) { r.Country = "" }},
		{"postal_code", func(r *models.OrderRequest) { r.PostalCode = "" }},
		{"email", func(r *models.OrderRequest) { r.Email = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			req := completeOrderRequest()
			tc.clear(&req)

			err := ValidateOrderRequest(&req)
			require.Error(t, err)

			var stepErr *StepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, StepValidate, stepErr.Step)
			assert.Equal(t, fmt.Sprintf("Missing field: %s", tc.field), stepErr.Msg)
			assert.Equal(t, http.StatusBadRequest, stepErr.HTTPStatus())
		})
	}
}

func TestValidateOrderRequestReportsOnlyFirstMissingField(t *testing.T) {
	req := completeOrderRequest()
	req.UserID = ""
	req.Email = ""

	err := ValidateOrderRequest(&req)
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "Missing field: user_id", stepErr.Msg)
}
