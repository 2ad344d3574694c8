package square

import (
	"context"
	"net/http"
)

// PaymentLinkParams describes a hosted payment-link order.
type PaymentLinkParams struct {
	IdempotencyKey  string
	Description     string
	Order           Order
	CheckoutOptions CheckoutOptions
	PaymentNote     string
}

// CreatePaymentLink creates a hosted checkout link for the given order.
func (c *Client) CreatePaymentLink(ctx context.Context, params PaymentLinkParams) (*PaymentLink, error) {
	body := map[string]any{
		"idempotency_key": params.IdempotencyKey,
		"order":           params.Order,
	}
	if params.Description != "" {
		body["description"] = params.Description
	}
	if params.CheckoutOptions.RedirectURL != "" {
		body["checkout_options"] = params.CheckoutOptions
	}
	if params.PaymentNote != "" {
		// Shows up on the Payment record; kept as a fallback copy of the
		// booking details in case staff look there first.
		body["payment_note"] = params.PaymentNote
	}

	var out struct {
		PaymentLink PaymentLink `json:"payment_link"`
	}
	if err := c.do(ctx, "checkout.payment_links.create", http.MethodPost, "/v2/online-checkout/payment-links", body, &out); err != nil {
		return nil, err
	}
	return &out.PaymentLink, nil
}
