// Package onshape binds the Onshape v6 REST API surface the feature
// builders depend on: documents, part studios, variables, edge queries and
// assemblies. A Client owns transport, auth and error classification; the
// resource bindings layered on top stay thin and typed.
package onshape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/clarsbyte/onshape-mcp/feature"
)

// DefaultBaseURL is the production Onshape API root.
const DefaultBaseURL = "https://cad.onshape.com/api/v6"

const defaultTimeout = 30 * time.Second

// Credentials hold an Onshape API key pair.
type Credentials struct {
	AccessKey string
	SecretKey string
}

// CredentialsFromEnv reads ONSHAPE_ACCESS_KEY and ONSHAPE_SECRET_KEY.
func CredentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		AccessKey: os.Getenv("ONSHAPE_ACCESS_KEY"),
		SecretKey: os.Getenv("ONSHAPE_SECRET_KEY"),
	}
	if creds.AccessKey == "" || creds.SecretKey == "" {
		return Credentials{}, errors.New("onshape: ONSHAPE_ACCESS_KEY and ONSHAPE_SECRET_KEY must be set")
	}
	return creds, nil
}

// ClientConfig tunes a Client. The zero value selects production defaults.
type ClientConfig struct {
	// BaseURL overrides DefaultBaseURL, mainly for tests and enterprise
	// deployments.
	BaseURL string
	// HTTPClient overrides the default 30s-timeout client.
	HTTPClient *http.Client
	// Logger receives per-request debug logs. Defaults to slog.Default.
	Logger *slog.Logger
}

// Client is the authenticated Onshape REST transport.
type Client struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	logger  *slog.Logger
}

// NewClient builds a Client for the given key pair.
func NewClient(creds Credentials, cfg ClientConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		http:    httpClient,
		creds:   creds,
		logger:  logger,
	}
}

// APIError is a non-2xx response from the service: the request reached
// Onshape and was rejected.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		body = http.StatusText(e.Status)
	}
	return fmt.Sprintf("onshape: status %d: %s", e.Status, body)
}

// ErrorCode classifies the rejection for observability and tool output.
func (e *APIError) ErrorCode() string { return feature.CodeRemoteRejected }

// TransportError is a request that never produced a usable response:
// connection failures, timeouts, unreadable or undecodable bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("onshape: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrorCode distinguishes caller cancellation from genuine transport
// failure.
func (e *TransportError) ErrorCode() string {
	if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
		return feature.CodeCancelled
	}
	return feature.CodeTransportFailure
}

// Get issues an authenticated GET and decodes the response into out when
// out is non-nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues an authenticated POST with a JSON body and decodes the
// response into out when out is non-nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, query, body, out)

	durationMS := time.Since(start).Milliseconds()
	obs := RequestObservation{
		Method:     method,
		Path:       path,
		DurationMS: durationMS,
		Success:    err == nil,
	}
	if err != nil {
		obs.ErrorCode = feature.ErrorCode(err)
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			obs.Status = apiErr.Status
		}
		c.logger.Warn("onshape request failed",
			"method", method, "path", path, "duration_ms", durationMS, "error", err)
	} else {
		obs.Status = http.StatusOK
		c.logger.Debug("onshape request",
			"method", method, "path", path, "duration_ms", durationMS)
	}
	emitRequestObservation(obs)
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: "encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &TransportError{Op: "build request", Err: err}
	}
	req.SetBasicAuth(c.creds.AccessKey, c.creds.SecretKey)
	req.Header.Set("Accept", "application/json;charset=UTF-8; qs=0.09")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: "read response", Err: err}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: "decode response", Err: err}
	}
	return nil
}

// StudioRef addresses one part studio element inside a document workspace.
type StudioRef struct {
	DocumentID  string
	WorkspaceID string
	ElementID   string
}

func (r StudioRef) path(resource string) string {
	return fmt.Sprintf("/%s/d/%s/w/%s/e/%s",
		resource,
		url.PathEscape(r.DocumentID),
		url.PathEscape(r.WorkspaceID),
		url.PathEscape(r.ElementID))
}
