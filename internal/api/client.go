// Package api contains the remote resource clients for the storefront
// services. Every client performs exactly one attempt per call and never
// lets a raw transport error escape: failures come back as pkg/errors
// typed errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/revoire/storefront/pkg/errors"
	"github.com/revoire/storefront/pkg/logger"
	"github.com/revoire/storefront/pkg/metrics"
	"github.com/revoire/storefront/pkg/types"
)

const defaultTimeout = 10 * time.Second

// Params groups the dependencies shared by every service client.
type Params struct {
	Service    string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *logger.Logger
	Metrics    *metrics.RequestMetrics
	Timeout    time.Duration
}

type client struct {
	service    string
	baseURL    string
	httpClient *http.Client
	logg       *logger.Logger
	metrics    *metrics.RequestMetrics
}

func newClient(params Params) (*client, error) {
	if strings.TrimSpace(params.Service) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service name is required")
	}
	if strings.TrimSpace(params.BaseURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base URL is required")
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &client{
		service:    params.Service,
		baseURL:    strings.TrimRight(params.BaseURL, "/"),
		httpClient: httpClient,
		logg:       params.Logger,
		metrics:    params.Metrics,
	}, nil
}

// do performs one request and decodes the JSON response into out (when out
// is non-nil). The operation label feeds logging and metrics.
func (c *client) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, query, body, out)
	c.metrics.ObserveDuration(c.service, operation, time.Since(start))

	if err != nil {
		code := pkgerrors.CodeInternal
		if typed := pkgerrors.As(err); typed != nil {
			code = typed.Code()
		}
		c.metrics.IncFailure(c.service, operation, string(code))
		if c.logg != nil {
			c.logg.Error(c.logg.WithOperation(ctx, c.service+"."+operation), "remote request failed", err)
		}
		return err
	}

	c.metrics.IncSuccess(c.service, operation)
	return nil
}

func (c *client) doOnce(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, fmt.Sprintf("%s %s unreachable", c.service, path))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeServer, err, "decode response")
	}
	return nil
}

// errorFromResponse maps a non-2xx response into a typed error, carrying the
// server-supplied message when one is present.
func (c *client) errorFromResponse(resp *http.Response) error {
	message := fmt.Sprintf("%s returned status %d", c.service, resp.StatusCode)

	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	code := pkgerrors.CodeServer
	switch resp.StatusCode {
	case http.StatusNotFound:
		code = pkgerrors.CodeNotFound
	case http.StatusUnprocessableEntity:
		code = pkgerrors.CodeStateConflict
	}
	return pkgerrors.New(code, message).WithDetails(map[string]any{"status": resp.StatusCode})
}
