package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CredentialTransport delivers a JSON payload to a provider endpoint using a
// bearer secret and reports the HTTP status. The response body is not part of
// the contract.
type CredentialTransport interface {
	Send(ctx context.Context, endpoint, secret string, payload any) (int, error)
}

// HTTPTransport is the net/http implementation of CredentialTransport.
type HTTPTransport struct {
	httpClient *http.Client
}

// NewHTTPTransport wraps httpClient. When httpClient is nil a client is built
// with the given timeout; zero means no timeout.
func NewHTTPTransport(httpClient *http.Client, timeout time.Duration) *HTTPTransport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPTransport{httpClient: httpClient}
}

// Send posts payload to endpoint with an Authorization: Bearer header.
func (t *HTTPTransport) Send(ctx context.Context, endpoint, secret string, payload any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("payment: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("payment: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+secret)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("payment: http request: %w", err)
	}
	defer resp.Body.Close()
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.StatusCode, nil
}
