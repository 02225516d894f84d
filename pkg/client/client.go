// Package client is a typed HTTP client for the registry API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/BlackWidow29/Entrevista-Docket/internal/model"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// APIError is returned for any non-2xx response
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	EntityName string `json:"entityName"`
	ErrorKey   string `json:"errorKey"`
}

func (e *APIError) Error() string {
	if e.ErrorKey != "" {
		return fmt.Sprintf("docket api: status %d: %s (%s)", e.StatusCode, e.Message, e.ErrorKey)
	}
	return fmt.Sprintf("docket api: status %d: %s", e.StatusCode, e.Message)
}

// RegistryInput is the writable part of a registry
type RegistryInput struct {
	Name          string `json:"name"`
	PostalCode    string `json:"postalCode"`
	StreetAddress string `json:"streetAddress"`
	Neighborhood  string `json:"neighborhood"`
	City          string `json:"city"`
	State         string `json:"state"`
}

type registryPayload struct {
	ID *int64 `json:"id,omitempty"`
	RegistryInput
}

// Client talks to a docket server
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithToken sends token as a Bearer credential on every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.http.SetAuthToken(token)
	}
}

// WithLogger sets the logger used for failed calls
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sends requests through hc's transport, cookie jar and
// timeout. Other options keep their effect regardless of order.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc.Transport != nil {
			c.http.SetTransport(hc.Transport)
		}
		if hc.Jar != nil {
			c.http.SetCookieJar(hc.Jar)
		}
		if hc.Timeout > 0 {
			c.http.SetTimeout(hc.Timeout)
		}
	}
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10*time.Second).
			SetHeader("Accept", "application/json"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateRegistry creates a registry and returns it with its assigned id
func (c *Client) CreateRegistry(ctx context.Context, in RegistryInput) (*model.Registry, error) {
	var out model.Registry
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(registryPayload{RegistryInput: in}).
		SetResult(&out).
		SetError(&APIError{}).
		Post("/api/registries")
	if err := c.check(resp, err, "create registry"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRegistry replaces every writable field of the registry with id
func (c *Client) UpdateRegistry(ctx context.Context, id int64, in RegistryInput) (*model.Registry, error) {
	var out model.Registry
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(registryPayload{ID: &id, RegistryInput: in}).
		SetResult(&out).
		SetError(&APIError{}).
		Put("/api/registries/{id}")
	if err := c.check(resp, err, "update registry"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRegistries returns every registry. Each sort value has the form
// "field[,field...][,asc|desc]".
func (c *Client) ListRegistries(ctx context.Context, sort ...string) ([]model.Registry, error) {
	var out []model.Registry
	req := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&APIError{})
	if len(sort) > 0 {
		req.SetQueryParamsFromValues(url.Values{"sort": sort})
	}
	resp, err := req.Get("/api/registries")
	if err := c.check(resp, err, "list registries"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRegistry fetches one registry
func (c *Client) GetRegistry(ctx context.Context, id int64) (*model.Registry, error) {
	var out model.Registry
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&out).
		SetError(&APIError{}).
		Get("/api/registries/{id}")
	if err := c.check(resp, err, "get registry"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRegistry removes a registry; its certificates are kept unassigned
func (c *Client) DeleteRegistry(ctx context.Context, id int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetError(&APIError{}).
		Delete("/api/registries/{id}")
	return c.check(resp, err, "delete registry")
}

func (c *Client) check(resp *resty.Response, err error, call string) error {
	if err != nil {
		c.logger.Error("Docket API call failed", zap.String("call", call), zap.Error(err))
		return fmt.Errorf("%s: %w", call, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.StatusCode = resp.StatusCode()
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	c.logger.Warn("Docket API returned error",
		zap.String("call", call),
		zap.Int("status_code", apiErr.StatusCode),
		zap.String("error_key", apiErr.ErrorKey))
	return apiErr
}
