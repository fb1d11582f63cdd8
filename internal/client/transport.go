package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/domain"
	"github.com/go-resty/resty/v2"
)

// CaptionPath is the caption endpoint path on the server.
const CaptionPath = "/api/generate-caption"

const defaultFailureMessage = "Failed to generate caption"

// Transport sends one caption request to the caption service.
type Transport interface {
	GenerateCaption(ctx context.Context, imageData string) (*domain.CaptionResult, error)
}

// RequestError is a non-2xx response from the caption service.
type RequestError struct {
	StatusCode int
	Message    string // user-visible message from the response body
	Details    string
}

func (e *RequestError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("HTTP %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap places RequestError in the NetworkOrServer category.
func (e *RequestError) Unwrap() error { return domain.ErrNetworkOrServer }

// HTTPTransport calls the caption service over HTTP.
type HTTPTransport struct {
	client *resty.Client
}

// HTTPConfig holds configuration for HTTPTransport.
type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration // per-request; zero means no client-level timeout
	Client  *http.Client  // optional underlying client
}

// NewHTTPTransport creates a new caption service client.
// Parameters:
//   - cfg: base URL and timeout of the caption service.
//
// Returns:
//   - *HTTPTransport: initialized transport.
func NewHTTPTransport(cfg *HTTPConfig) *HTTPTransport {
	var client *resty.Client
	if cfg.Client != nil {
		client = resty.NewWithClient(cfg.Client)
	} else {
		client = resty.New()
	}
	client.SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/"))
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &HTTPTransport{client: client}
}

// GenerateCaption posts imageData and decodes the caption result.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imageData: encoded image payload.
//
// Returns:
//   - *domain.CaptionResult: decoded response on HTTP 2xx.
//   - error: *RequestError for non-2xx responses; domain.ErrNetworkOrServer
//     joined with the cause for transport or decode failures.
func (t *HTTPTransport) GenerateCaption(ctx context.Context, imageData string) (*domain.CaptionResult, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(domain.CaptionRequest{ImageData: imageData}).
		Post(CaptionPath)
	if err != nil {
		return nil, errors.Join(domain.ErrNetworkOrServer, err)
	}

	if !resp.IsSuccess() {
		reqErr := &RequestError{StatusCode: resp.StatusCode(), Message: defaultFailureMessage}
		var body domain.ErrorResponse
		if json.Unmarshal(resp.Body(), &body) == nil {
			if body.Error != "" {
				reqErr.Message = body.Error
			}
			reqErr.Details = body.Details
		}
		return nil, reqErr
	}

	var result domain.CaptionResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, errors.Join(domain.ErrNetworkOrServer, fmt.Errorf("failed to decode caption response: %w", err))
	}
	return &result, nil
}
