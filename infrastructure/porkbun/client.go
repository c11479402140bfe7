// Package porkbun implements the HTTP client for the Porkbun registrar API.
//
// Every request is a JSON POST carrying the account credentials in the body.
// Transport and HTTP-level failures are retried with exponential backoff;
// application-level failures (envelope status != SUCCESS) surface immediately.
package porkbun

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/felixgeelhaar/fortify/retry"

	"github.com/felixgeelhaar/porkbun-domain-mcp/domain/registrar"
	"github.com/felixgeelhaar/porkbun-domain-mcp/infrastructure/config"
	"github.com/felixgeelhaar/porkbun-domain-mcp/infrastructure/logging"
)

const (
	userAgent = "porkbun-domain-mcp/0.1.1"

	// maxBodySize limits response body reads.
	maxBodySize = 10 * 1024 * 1024

	// defaultRetryDelay is the base backoff delay: 0.5s, 1s, 2s, ...
	defaultRetryDelay = 500 * time.Millisecond

	// defaultRenewMessage is used when the API omits a renewal message.
	defaultRenewMessage = "Domain renewed successfully"
)

// Client is the Porkbun API client. It holds a single lazily created HTTP
// client handle; concurrent calls share the connection pool and are
// otherwise independent.
type Client struct {
	settings *config.Settings
	retrier  retry.Retry[json.RawMessage]

	mu    sync.Mutex
	httpc *http.Client
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	retryDelay time.Duration
}

// WithRetryDelay overrides the base backoff delay. Intended for tests.
func WithRetryDelay(d time.Duration) Option {
	return func(o *clientOptions) {
		o.retryDelay = d
	}
}

// NewClient creates a Porkbun API client from settings. The HTTP client is
// created on first use; call Close when done with the client.
func NewClient(settings *config.Settings, opts ...Option) *Client {
	options := clientOptions{retryDelay: defaultRetryDelay}
	for _, opt := range opts {
		opt(&options)
	}

	return &Client{
		settings: settings,
		retrier: retry.New[json.RawMessage](retry.Config{
			MaxAttempts:   settings.MaxRetries + 1,
			InitialDelay:  options.retryDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    2.0,
			// Application-level and not-found failures are never retried.
			NonRetryableErrors: []error{registrar.ErrApplication, registrar.ErrNotFound},
		}),
	}
}

// httpClient returns the shared HTTP client, creating it on first use.
func (c *Client) httpClient() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: c.settings.HTTPTimeout()}
		logging.Debug().
			Add(logging.Endpoint(c.settings.BaseURL)).
			Msg("HTTP client initialized")
	}
	return c.httpc
}

// Close releases the HTTP client and its pooled connections.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpc != nil {
		c.httpc.CloseIdleConnections()
		c.httpc = nil
		logging.Debug().Msg("HTTP client closed")
	}
}

// request performs an authenticated API call with retry on transport and
// HTTP-level failures. The returned bytes are the full response body of a
// successful envelope.
func (c *Client) request(ctx context.Context, method, endpoint string, payload map[string]any) (json.RawMessage, error) {
	body := make(map[string]any, len(payload)+2)
	for k, v := range c.settings.AuthPayload() {
		body[k] = v
	}
	for k, v := range payload {
		body[k] = v
	}

	attempt := 0
	data, err := c.retrier.Do(ctx, func(ctx context.Context) (json.RawMessage, error) {
		attempt++
		return c.doOnce(ctx, method, endpoint, body, attempt)
	})
	if err != nil {
		var apiErr *registrar.Error
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, registrar.NewTransportError(err)
	}
	return data, nil
}

// doOnce executes a single HTTP exchange and classifies its failure.
func (c *Client) doOnce(ctx context.Context, method, endpoint string, body map[string]any, attempt int) (json.RawMessage, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, registrar.NewTransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.settings.BaseURL+endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, registrar.NewTransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		logging.Warn().
			Add(logging.Endpoint(endpoint)).
			Add(logging.Attempt(attempt)).
			Add(logging.ErrorField(err)).
			Msg("API request error")
		return nil, registrar.NewTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, registrar.NewTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Warn().
			Add(logging.Endpoint(endpoint)).
			Add(logging.StatusCode(resp.StatusCode)).
			Add(logging.Attempt(attempt)).
			Msg("API request failed")
		return nil, registrar.NewHTTPError(resp.StatusCode, data)
	}

	var envelope registrar.Response
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, registrar.NewAPIError(fmt.Sprintf("invalid JSON response: %v", err), resp.StatusCode, data)
	}
	if !envelope.Success() {
		return nil, registrar.NewAPIError(envelope.Message, resp.StatusCode, data)
	}

	logging.Debug().
		Add(logging.Endpoint(endpoint)).
		Add(logging.Attempt(attempt)).
		Msg("API request successful")
	return data, nil
}

// ListDomains retrieves all domains in the account, in API order.
func (c *Client) ListDomains(ctx context.Context) ([]registrar.Domain, error) {
	logging.Debug().Msg("Listing domains")

	data, err := c.request(ctx, http.MethodPost, "/domain/list/all", nil)
	if err != nil {
		return nil, err
	}

	var resp registrar.DomainsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, registrar.NewAPIError(fmt.Sprintf("invalid domain list: %v", err), 0, data)
	}
	return resp.Domains, nil
}

// GetDomainInfo returns the record for one domain. The API has no
// single-domain endpoint, so this lists everything and scans for an exact
// name match.
func (c *Client) GetDomainInfo(ctx context.Context, domain string) (registrar.Domain, error) {
	logging.Debug().Add(logging.DomainName(domain)).Msg("Getting domain info")

	domains, err := c.ListDomains(ctx)
	if err != nil {
		return registrar.Domain{}, err
	}

	for _, d := range domains {
		if d.Domain == domain {
			return d, nil
		}
	}
	return registrar.Domain{}, registrar.NewNotFoundError(domain)
}

// GetAuthCode fetches the transfer authorization code (EPP code) for a
// domain. Returns the empty string when the API omits the field.
func (c *Client) GetAuthCode(ctx context.Context, domain string) (string, error) {
	logging.Debug().Add(logging.DomainName(domain)).Msg("Getting auth code")

	data, err := c.request(ctx, http.MethodPost, "/domain/getAuthCode/"+domain, nil)
	if err != nil {
		return "", err
	}

	var resp registrar.AuthCodeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", registrar.NewAPIError(fmt.Sprintf("invalid auth code response: %v", err), 0, data)
	}
	return resp.AuthCode, nil
}

// RenewDomain renews a domain for the given number of years.
func (c *Client) RenewDomain(ctx context.Context, domain string, years int) (registrar.RenewalResult, error) {
	logging.Debug().
		Add(logging.DomainName(domain)).
		Add(logging.Years(years)).
		Msg("Renewing domain")

	data, err := c.request(ctx, http.MethodPost, "/domain/renew/"+domain, map[string]any{
		"years": years,
	})
	if err != nil {
		return registrar.RenewalResult{}, err
	}

	var resp registrar.Response
	_ = json.Unmarshal(data, &resp)
	message := resp.Message
	if message == "" {
		message = defaultRenewMessage
	}

	return registrar.RenewalResult{
		Domain:  domain,
		Years:   years,
		Success: true,
		Message: message,
	}, nil
}

// GetPricing fetches TLD pricing. The pricing endpoint is public and is
// called once, outside the retrying request path; failures of any kind
// surface immediately. With a tld filter the result holds the single
// matching entry, or nothing when the TLD is unknown.
func (c *Client) GetPricing(ctx context.Context, tld string) (map[string]registrar.PricingInfo, error) {
	logging.Debug().Add(logging.TLD(tld)).Msg("Getting pricing")

	body := make(map[string]any, 2)
	for k, v := range c.settings.AuthPayload() {
		body[k] = v
	}

	data, err := c.doOnce(ctx, http.MethodPost, "/pricing/get", body, 1)
	if err != nil {
		var apiErr *registrar.Error
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, registrar.NewTransportError(err)
	}

	var resp registrar.PricingResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, registrar.NewAPIError(fmt.Sprintf("invalid pricing response: %v", err), 0, data)
	}

	pricing := make(map[string]registrar.PricingInfo, len(resp.Pricing))
	for key, info := range resp.Pricing {
		info.TLD = key
		pricing[key] = info
	}

	if tld != "" {
		if info, ok := pricing[tld]; ok {
			return map[string]registrar.PricingInfo{tld: info}, nil
		}
		return map[string]registrar.PricingInfo{}, nil
	}
	return pricing, nil
}
