// Package testrailsdk is the HTTP client for the TestRail API v2. It offers one
// service per entity family, all sharing one Transport.
package testrailsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/contenox/testrail-mcp/apiframework"
)

// DefaultTimeout bounds every upstream call when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

const apiPrefix = "/api/v2/"

// Config holds configuration for the SDK client
type Config struct {
	// BaseURL is the address of the TestRail instance, e.g. https://example.testrail.io.
	BaseURL  string
	Username string
	APIKey   string
	Timeout  time.Duration
	// Headers are sent with every request, in addition to auth and content type.
	Headers map[string]string
	// HTTPClient overrides the default client. Its own timeout is kept.
	HTTPClient *http.Client
}

// Transport is the connection to one TestRail instance. It is shared by every
// resource service and safe for concurrent use.
type Transport struct {
	client   *http.Client
	baseURL  string
	username string
	apiKey   string

	mu      sync.RWMutex
	headers map[string]string
}

// NewTransport creates the shared transport described by config.
func NewTransport(config Config) *Transport {
	client := config.HTTPClient
	if client == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	headers := make(map[string]string, len(config.Headers))
	maps.Copy(headers, config.Headers)

	return &Transport{
		client:   client,
		baseURL:  strings.TrimSuffix(config.BaseURL, "/"),
		username: config.Username,
		apiKey:   config.APIKey,
		headers:  headers,
	}
}

// SetHeader sets a default header sent with every subsequent request.
func (t *Transport) SetHeader(key, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.headers[key] = value
}

// Get performs GET /api/v2/<endpoint>?<query> and decodes the response into out.
func (t *Transport) Get(ctx context.Context, operation, endpoint string, query url.Values, out any) error {
	return t.do(ctx, operation, http.MethodGet, endpoint, query, nil, out)
}

// Post performs POST /api/v2/<endpoint>?<query> with body encoded as JSON. A nil
// body is sent as {}.
func (t *Transport) Post(ctx context.Context, operation, endpoint string, query url.Values, body, out any) error {
	if body == nil {
		body = struct{}{}
	}
	return t.do(ctx, operation, http.MethodPost, endpoint, query, body, out)
}

func (t *Transport) do(ctx context.Context, operation, method, endpoint string, query url.Values, body, out any) error {
	path := apiPrefix + endpoint
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apiframework.TransportFailure(operation, method, path, fmt.Errorf("encode request body: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return apiframework.TransportFailure(operation, method, path, err)
	}

	t.mu.RLock()
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	t.mu.RUnlock()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(t.username, t.apiKey)
	apiframework.SetTrackingHeaders(ctx, req.Header)

	resp, err := t.client.Do(req)
	if err != nil {
		return apiframework.TransportFailure(operation, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiframework.HandleAPIError(operation, resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiframework.TransportFailure(operation, method, path, fmt.Errorf("read response body: %w", err))
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apiframework.DecodeFailure(operation, resp, err)
	}
	return nil
}

// endpoint builds "<name>/<id>/<id>..." for the path ids of a call.
func endpoint(name string, ids ...any) string {
	var sb strings.Builder
	sb.WriteString(name)
	for _, id := range ids {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(fmt.Sprint(id)))
	}
	return sb.String()
}
