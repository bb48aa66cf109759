package converse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/murmur"
)

// Interface compliance check.
var _ murmur.Client = (*Client)(nil)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 4 << 10

// Client implements [murmur.Client] for the Converse API.
type Client struct {
	baseURL    string
	path       string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithPath sets the request path. Default is /ask.
func WithPath(path string) Option {
	return func(c *Client) { c.path = path }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for per-request debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new Converse [Client].
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		path:       askPath,
		httpClient: http.DefaultClient,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("converse: HTTP %d", e.Code)
	}
	return fmt.Sprintf("converse: HTTP %d: %s", e.Code, e.Body)
}

// Unwrap makes errors.Is(err, murmur.ErrStatus) hold.
func (e *StatusError) Unwrap() error { return murmur.ErrStatus }

// Chat posts req and decodes the reply.
func (c *Client) Chat(ctx context.Context, req murmur.ChatRequest) (*murmur.ChatResponse, error) {
	body, err := json.Marshal(buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("converse: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("converse: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("converse: %w", err)
	}
	defer resp.Body.Close()
	c.logger.Debug("converse request",
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"generate_image", req.GenerateImage,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseHTTPError(resp)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("converse: decode response: %w", err)
	}
	return &murmur.ChatResponse{
		Reply:          apiResp.Reply,
		Response:       apiResp.Response,
		ConversationID: apiResp.ConversationID,
		Image:          apiResp.Image,
	}, nil
}

func buildRequest(req murmur.ChatRequest) apiRequest {
	r := apiRequest{
		Message:       req.Message,
		GenerateImage: req.GenerateImage,
	}
	if req.ConversationID != "" {
		id := req.ConversationID
		r.ConversationID = &id
	}
	return r
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &StatusError{Code: resp.StatusCode}
	}
	return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
}
