// Package brightdata provides a client for the Bright Data MCP scraping
// service: web search and page-to-markdown over JSON-RPC.
package brightdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://mcp.brightdata.com/rpc"

// JSON-RPC error code the provider returns when a session token has been
// invalidated server-side.
const codeSessionNotFound = -32001

// Client defines the Bright Data operations used by the pipeline.
type Client interface {
	// Search runs a web search and returns up to count result snippets.
	Search(ctx context.Context, query string, count int) ([]SearchResult, error)
	// Scrape fetches a URL and returns its text content as markdown.
	Scrape(ctx context.Context, url string) (string, error)
}

// SearchResult is a single web search result snippet.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// APIError is returned when the service responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("brightdata: HTTP %d: %s", e.StatusCode, e.Body)
}

// RPCError is a JSON-RPC level error returned by the service.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("brightdata: rpc error %d: %s", e.Code, e.Message)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	token   string
	baseURL string
	http    *http.Client

	mu      sync.Mutex
	session string

	nextID atomic.Int64
}

// NewClient creates a Bright Data client. The session is registered lazily
// on the first call and re-registered at most once per call when the
// provider reports it invalidated.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      int64     `json:"id"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	Name      string         `json:"name,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

func (c *httpClient) Search(ctx context.Context, query string, count int) ([]SearchResult, error) {
	raw, err := c.callTool(ctx, "search_engine", map[string]any{
		"query":       query,
		"max_results": count,
	})
	if err != nil {
		return nil, eris.Wrap(err, "brightdata: search")
	}

	var result struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, eris.Wrap(err, "brightdata: unmarshal search results")
	}
	if count > 0 && len(result.Results) > count {
		result.Results = result.Results[:count]
	}
	return result.Results, nil
}

func (c *httpClient) Scrape(ctx context.Context, url string) (string, error) {
	raw, err := c.callTool(ctx, "scrape_as_markdown", map[string]any{
		"url": url,
	})
	if err != nil {
		return "", eris.Wrap(err, "brightdata: scrape")
	}

	var result struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", eris.Wrap(err, "brightdata: unmarshal scrape result")
	}
	return result.Content, nil
}

// callTool issues a tools/call request. A stale-session response triggers
// exactly one re-initialization and retry; a second failure is returned.
func (c *httpClient) callTool(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	session, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, "tools/call", rpcParams{Name: name, Arguments: args, SessionID: session})
	if !isSessionInvalid(err) {
		return raw, err
	}

	zap.L().Warn("brightdata: session invalidated, re-initializing",
		zap.String("tool", name),
	)
	session, err = c.resetSession(ctx, session)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "tools/call", rpcParams{Name: name, Arguments: args, SessionID: session})
}

// ensureSession returns the current session token, registering one if needed.
func (c *httpClient) ensureSession(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != "" {
		return c.session, nil
	}
	session, err := c.initSession(ctx)
	if err != nil {
		return "", err
	}
	c.session = session
	return session, nil
}

// resetSession discards stale and registers a fresh session token. The
// stale argument guards against a concurrent caller having already reset.
func (c *httpClient) resetSession(ctx context.Context, stale string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != "" && c.session != stale {
		return c.session, nil
	}
	session, err := c.initSession(ctx)
	if err != nil {
		c.session = ""
		return "", err
	}
	c.session = session
	return session, nil
}

func (c *httpClient) initSession(ctx context.Context) (string, error) {
	raw, err := c.do(ctx, "initialize", rpcParams{})
	if err != nil {
		return "", eris.Wrap(err, "brightdata: initialize session")
	}
	var result struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", eris.Wrap(err, "brightdata: unmarshal session")
	}
	if result.SessionID == "" {
		return "", eris.New("brightdata: empty session id")
	}
	return result.SessionID, nil
}

func (c *httpClient) do(ctx context.Context, method string, params rpcParams) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read response body")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &RPCError{Code: codeSessionNotFound, Message: "unauthorized"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return nil, eris.Wrap(err, "decode response")
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	return rpcResp.Result, nil
}

// isSessionInvalid reports whether err indicates a stale session token.
func isSessionInvalid(err error) bool {
	if err == nil {
		return false
	}
	var rpcErr *RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == codeSessionNotFound
}
