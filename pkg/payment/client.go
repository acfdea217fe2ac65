package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/craftify/craftify-backend/config"
)

// HTTPGateway talks to a remote payment provider over a JSON API
type HTTPGateway struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewHTTPGateway creates a gateway client for the configured provider
func NewHTTPGateway(cfg config.GatewayConfig) (*HTTPGateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("payment gateway API key is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("payment gateway base URL is required")
	}

	return &HTTPGateway{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (g *HTTPGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	resp, err := g.doRequest(ctx, "charges", req)
	if err != nil {
		return nil, err
	}

	var result ChargeResult
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal charge response: %w", err)
	}
	return &result, nil
}

func (g *HTTPGateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	resp, err := g.doRequest(ctx, "refunds", req)
	if err != nil {
		return nil, err
	}

	var result RefundResult
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refund response: %w", err)
	}
	return &result, nil
}

func (g *HTTPGateway) doRequest(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/%s", g.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, ErrPaymentDeclined
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: status %d: %s", ErrGatewayFailure, resp.StatusCode, string(body))
	}

	return body, nil
}

// NewGateway selects the gateway implementation for the configured provider.
// Unknown providers fall back to the stub.
func NewGateway(cfg config.GatewayConfig) (Gateway, error) {
	switch cfg.Provider {
	case "remote":
		return NewHTTPGateway(cfg)
	default:
		return NewStubGateway(), nil
	}
}
