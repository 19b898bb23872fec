// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes client errors for handling.
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota
	ErrKindUnreachable
	ErrKindTimeout
	ErrKindServer
	ErrKindInvalidResponse
)

// ClientError is an error from the backend gateway.
type ClientError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is comparison against the sentinel values below.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinel errors for easy checking.
var (
	ErrUnreachable     = &ClientError{Kind: ErrKindUnreachable, Message: "backend is not reachable"}
	ErrTimeout         = &ClientError{Kind: ErrKindTimeout, Message: "request timed out"}
	ErrInvalidResponse = &ClientError{Kind: ErrKindInvalidResponse, Message: "invalid response from backend"}
)

// IsUnreachable checks if an error indicates the backend is not reachable.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind == ErrKindUnreachable
	}
	return false
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind == ErrKindTimeout
	}
	return false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the gateway client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for chat and document requests (default: 60s; answer
	// generation on the backend can be slow)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 60 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the QA backend.
// It is safe for concurrent use; a chat send and a document upload may be
// in flight at the same time.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a gateway client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a gateway client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that the backend is reachable.
func (c *Client) CheckRunning(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/", nil)
	if err != nil {
		return &ClientError{Kind: ErrKindUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Kind:    ErrKindServer,
			Message: "unexpected status from backend: " + resp.Status,
		}
	}

	return nil
}

// =============================================================================
// CHAT
// =============================================================================

// SendMessage posts a user query and returns the backend's answer with any
// source citations. A 2xx body missing the response field is rejected as an
// invalid response rather than surfaced as an empty answer.
func (c *Client) SendMessage(ctx context.Context, query string) (*ChatResponse, error) {
	body, err := json.Marshal(ChatRequest{Message: query})
	if err != nil {
		return nil, &ClientError{Kind: ErrKindInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Kind: ErrKindUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.errorFromResponse(resp, "chat request failed")
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Kind: ErrKindInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	if result.Response == "" {
		return nil, &ClientError{Kind: ErrKindInvalidResponse, Message: "backend response missing answer text"}
	}

	return &result, nil
}

// =============================================================================
// DOCUMENT OPERATIONS
// =============================================================================

// UploadDocument sends a file as a multipart form under the field "file".
// The multipart writer sets the content-type boundary; callers only provide
// the filename and content. An upload either fully succeeds or fails, there
// is no partial state to clean up.
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (*UploadAck, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &ClientError{Kind: ErrKindUnknown, Message: "failed to create form file", Cause: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, &ClientError{Kind: ErrKindUnknown, Message: "failed to read file content", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &ClientError{Kind: ErrKindUnknown, Message: "failed to finalize form", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/upload", &buf)
	if err != nil {
		return nil, &ClientError{Kind: ErrKindUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.errorFromResponse(resp, "upload failed")
	}

	var ack UploadAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, &ClientError{Kind: ErrKindInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &ack, nil
}

// ListDocuments fetches the backend's document list. Listing is advisory:
// a stale or missing list must not block chat, so any failure degrades to
// an empty slice with a nil error.
func (c *Client) ListDocuments(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/documents", nil)
	if err != nil {
		return []string{}, nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return []string{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []string{}, nil
	}

	var docs []string
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return []string{}, nil
	}
	if docs == nil {
		docs = []string{}
	}

	return docs, nil
}

// DeleteDocument removes a document from the backend.
func (c *Client) DeleteDocument(ctx context.Context, filename string) (*DeleteAck, error) {
	endpoint := c.config.BaseURL + "/documents/" + url.PathEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return nil, &ClientError{Kind: ErrKindUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.errorFromResponse(resp, "failed to delete "+filename)
	}

	var ack DeleteAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		// The ack body is implementation-defined; an empty or unparsable
		// body on a 2xx is still a successful delete.
		return &DeleteAck{Filename: filename}, nil
	}

	return &ack, nil
}

// DocumentContent fetches the raw bytes of a document for preview or
// download. This never mutates backend state.
func (c *Client) DocumentContent(ctx context.Context, filename string) ([]byte, error) {
	endpoint := c.config.BaseURL + "/documents/" + url.PathEscape(filename) + "/content"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ClientError{Kind: ErrKindUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.errorFromResponse(resp, "failed to fetch "+filename)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Kind: ErrKindInvalidResponse, Message: "failed to read content", Cause: err}
	}

	return data, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// errorFromResponse builds a ClientError from a non-2xx response, preferring
// the backend's JSON "detail" message over the transport status text.
func (c *Client) errorFromResponse(resp *http.Response, context string) *ClientError {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Detail != "" {
		return &ClientError{Kind: ErrKindServer, Message: apiErr.Detail}
	}
	return &ClientError{Kind: ErrKindServer, Message: context + ": " + resp.Status}
}
