// Package square is a thin REST client for the Square v2 API, covering the
// surfaces the booking flow needs: locations, booking team members, bookings,
// catalog, customers, and hosted payment links. Calls are single-attempt with
// no retry; idempotency is carried by caller-supplied keys where Square
// supports them.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/la-masion/booking-api/pkg/logging"
)

const (
	productionBaseURL = "https://connect.squareup.com"
	sandboxBaseURL    = "https://connect.squareupsandbox.com"

	defaultTimeout = 20 * time.Second
)

var tracer = otel.Tracer("lamasion.internal.square")

// Client talks to the Square v2 REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *logging.Logger
}

// NewClient creates a Square client for the given environment
// ("production" selects the live host, anything else the sandbox).
func NewClient(accessToken, environment string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := sandboxBaseURL
	if strings.EqualFold(environment, "production") {
		baseURL = productionBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		logger:      logger,
	}
}

// WithBaseURL overrides the API host (tests point this at a stub server).
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL == "" {
		return c
	}
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// APIError is a non-2xx response from Square, carrying the provider's
// structured error detail when present.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
	Body       string
}

// ErrorDetail is one entry of Square's errors[] array.
type ErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
	Field    string `json:"field"`
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		parts := make([]string, 0, len(e.Errors))
		for _, d := range e.Errors {
			head := strings.Trim(d.Category+"/"+d.Code, "/")
			tail := d.Detail
			if d.Field != "" {
				tail = strings.TrimSpace("field=" + d.Field + " " + d.Detail)
			}
			if head != "" {
				parts = append(parts, head+": "+tail)
			} else {
				parts = append(parts, tail)
			}
		}
		return fmt.Sprintf("square: status %d: %s", e.StatusCode, strings.Join(parts, " | "))
	}
	return fmt.Sprintf("square: status %d: %s", e.StatusCode, e.Body)
}

// do performs one API call: marshal body (if any), send, decode into out
// (if non-nil). Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	ctx, span := tracer.Start(ctx, "square."+operation)
	defer span.End()
	span.SetAttributes(
		attribute.String("square.method", method),
		attribute.String("square.path", path),
	)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("square: %s payload: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("square: %s request: %w", operation, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("square: %s http: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
		var parsed struct {
			Errors []ErrorDetail `json:"errors"`
		}
		if json.Unmarshal(raw, &parsed) == nil {
			apiErr.Errors = parsed.Errors
		}
		c.logger.Warn("square api error", "operation", operation, "status", resp.StatusCode, "body", string(raw))
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("square: %s decode: %w", operation, err)
		}
	}
	return nil
}
