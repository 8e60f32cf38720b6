package models

// These structs define the JSON payload submitted to the Gelato v4 orders API
// and the subset of its response we consume.

// GelatoOrder is the order payload posted to Gelato.
type GelatoOrder struct {
	OrderType           string        `json:"orderType"`
	OrderReferenceID    string        `json:"orderReferenceId"`
	CustomerReferenceID string        `json:"customerReferenceId"`
	Currency            string        `json:"currency"`
	Items               []GelatoItem  `json:"items"`
	ShipmentMethodUID   string        `json:"shipmentMethodUid"`
	ShippingAddress     GelatoAddress `json:"shippingAddress"`
}

// GelatoItem is a single order line.
type GelatoItem struct {
	ItemReferenceID string       `json:"itemReferenceId"`
	ProductUID      string       `json:"productUid"`
	Files           []GelatoFile `json:"files"`
	Quantity        int          `json:"quantity"`
	PageCount       int          `json:"pageCount"`
}

// GelatoFile references a printable asset by URL.
type GelatoFile struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// GelatoAddress is the shipping address block of an order.
type GelatoAddress struct {
	CompanyName  string `json:"companyName"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostCode     string `json:"postCode"`
	Country      string `json:"country"`
	Email        string `json:"email"`
}

// GelatoOrderResponse is the part of Gelato's create-order response we use.
type GelatoOrderResponse struct {
	ID string `json:"id"`
}
