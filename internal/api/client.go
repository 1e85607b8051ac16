// Package api is the single gateway to the remote content and contact
// service. Every call goes through Client.Do, which applies the header,
// body and error policy; the resource clients are thin wrappers over it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:5000/api/v1"

const contentTypeJSON = "application/json"

// Body is a request payload.
type Body interface {
	encode() (io.Reader, string, error)
}

type jsonBody struct{ v any }

func (b jsonBody) encode() (io.Reader, string, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), contentTypeJSON, nil
}

// JSON returns a body serialized as JSON before sending.
func JSON(v any) Body { return jsonBody{v: v} }

type multipartBody struct {
	r           io.Reader
	contentType string
}

func (b multipartBody) encode() (io.Reader, string, error) {
	return b.r, b.contentType, nil
}

// Multipart returns a pre-encoded form body sent unmodified. contentType
// is the form's own content type (with boundary), as produced by
// multipart.Writer.FormDataContentType; the gateway never substitutes
// JSON for it.
func Multipart(r io.Reader, contentType string) Body {
	return multipartBody{r: r, contentType: contentType}
}

// Client calls the remote service.
type Client struct {
	baseURL string
	hc      *http.Client
	session Session
	logger  *zap.Logger

	Blogs    *BlogClient
	Services *ServiceClient
	Contact  *ContactClient
	Banners  *BannerClient
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithSession sets where bearer tokens come from.
func WithSession(s Session) Option {
	return func(c *Client) { c.session = s }
}

// WithLogger sets the client's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for baseURL. Paths passed to Do are appended to it
// verbatim.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      http.DefaultClient,
		session: NoSession,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Blogs = &BlogClient{c: c}
	c.Services = &ServiceClient{c: c}
	c.Contact = &ContactClient{c: c}
	c.Banners = &BannerClient{c: c}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body Body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Patch issues a PATCH with body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body Body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE and decodes the response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do performs one request. A nil out discards the response body. Failures
// after the request is sent are *Error values. There are no retries.
func (c *Client) Do(ctx context.Context, method, path string, body Body, out any) error {
	start := time.Now()
	err := c.do(ctx, method, path, body, out)
	observe(method, path, err, time.Since(start))
	if err != nil {
		c.logger.Debug("api call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body Body, out any) error {
	switch method {
	case http.MethodGet, http.MethodDelete:
		if body != nil {
			return fmt.Errorf("%w: %s %s", ErrBodyNotAllowed, method, path)
		}
	case http.MethodPost, http.MethodPatch:
		if body == nil {
			return fmt.Errorf("%w: %s %s", ErrBodyRequired, method, path)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	var (
		reader      io.Reader
		contentType = contentTypeJSON
	)
	if body != nil {
		r, ct, err := body.encode()
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		reader, contentType = r, ct
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if token, ok := c.session.Token(); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: MsgNetwork, Err: err}
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(resp.StatusCode, data)
	}
	if readErr != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Message: MsgNetwork, Err: readErr}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindDecode, Status: resp.StatusCode, Message: MsgDecode, Err: err}
	}
	return nil
}

func remoteError(status int, data []byte) *Error {
	e := &Error{Kind: KindRemote, Status: status, Message: httpStatusMessage(status)}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		e.Message = payload.Message
	}
	return e
}
