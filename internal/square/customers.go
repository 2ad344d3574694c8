package square

import (
	"context"
	"net/http"
)

// SearchCustomerByEmail returns the first customer whose email matches
// exactly, or nil when none exists.
func (c *Client) SearchCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	body := map[string]any{
		"limit": 1,
		"query": map[string]any{
			"filter": map[string]any{
				"email_address": map[string]any{"exact": email},
			},
		},
	}
	var out struct {
		Customers []Customer `json:"customers"`
	}
	if err := c.do(ctx, "customers.search", http.MethodPost, "/v2/customers/search", body, &out); err != nil {
		return nil, err
	}
	if len(out.Customers) == 0 {
		return nil, nil
	}
	return &out.Customers[0], nil
}

// CreateCustomer creates a customer record. Phone may be empty when the
// provided number could not be normalized.
func (c *Client) CreateCustomer(ctx context.Context, customer Customer) (*Customer, error) {
	var out struct {
		Customer Customer `json:"customer"`
	}
	if err := c.do(ctx, "customers.create", http.MethodPost, "/v2/customers", customer, &out); err != nil {
		return nil, err
	}
	return &out.Customer, nil
}
