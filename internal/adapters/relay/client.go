package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/domain/config"
	"github.com/trebuchet-org/treb-relay/internal/signing"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// ClientAdapter calls a remote relay with signed requests
type ClientAdapter struct {
	baseURL    string
	header     string
	signer     *signing.Signer
	httpClient *http.Client
}

// NewClientAdapter creates a relay client from the runtime configuration.
// Deploy requests block until the remote toolchain exits, so the HTTP client has no
// timeout of its own; callers bound it through the context.
func NewClientAdapter(cfg *config.RuntimeConfig) *ClientAdapter {
	return &ClientAdapter{
		baseURL:    strings.TrimRight(cfg.RelayURL, "/"),
		header:     cfg.SignatureHeader,
		signer:     signing.NewSigner(cfg.HMACSecret),
		httpClient: &http.Client{},
	}
}

// Deploy posts a signed deploy request
func (c *ClientAdapter) Deploy(ctx context.Context, req domain.DeployRequest) (*domain.DeployResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var resp domain.DeployResponse
	status, err := c.do(ctx, http.MethodPost, "/deploy", body, &resp)
	if err != nil {
		return nil, err
	}
	// 500 carries a launch failure in the body; anything else outside 2xx is unexpected
	if status != http.StatusOK && status != http.StatusInternalServerError {
		return nil, unexpectedStatus(status, resp.Error)
	}
	return &resp, nil
}

// Status fetches the latest deployment record
func (c *ClientAdapter) Status(ctx context.Context) (*domain.StatusResponse, error) {
	var resp domain.StatusResponse
	status, err := c.do(ctx, http.MethodGet, "/status", nil, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, unexpectedStatus(status, resp.Error)
	}
	return &resp, nil
}

func (c *ClientAdapter) do(ctx context.Context, method, path string, body []byte, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.header, c.signer.Sign(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request to %s failed: %w", c.baseURL+path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return resp.StatusCode, domain.ErrInvalidSignature
	}

	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("unexpected response (HTTP %d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return resp.StatusCode, nil
}

func unexpectedStatus(status int, msg string) error {
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("relay returned HTTP %d: %s", status, msg)
}

// Ensure the adapter implements the interface
var _ usecase.RelayClient = (*ClientAdapter)(nil)
