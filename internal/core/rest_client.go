package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EmundoT/apim-governance/internal/types"
	"github.com/EmundoT/apim-governance/internal/version"
)

//go:generate mockgen -source=rest_client.go -destination=rest_client_mock_test.go -package=core

// GovernanceClient talks to the governance REST API.
// ctx cancels the in-flight request.
type GovernanceClient interface {
	GetCompliance(ctx context.Context, artifactID string) (*types.ComplianceResponse, error)
	GetRulesetValidation(ctx context.Context, artifactID, rulesetID string) (*types.RulesetValidationDetail, error)
	ListPolicies(ctx context.Context) ([]types.PolicyDescriptor, error)
	DeletePolicy(ctx context.Context, id string) error
}

// PublisherClient talks to the publisher REST API.
type PublisherClient interface {
	GetAPI(ctx context.Context, apiID string) (*types.APIDescriptor, error)
	ListSubscriptionPolicies(ctx context.Context, async bool, limit int) ([]types.SubscriptionPolicy, error)
	UpdateSubscriptionPolicies(ctx context.Context, apiID string, policies []string) error
}

// Compile-time interface satisfaction checks.
var (
	_ GovernanceClient = (*RESTClient)(nil)
	_ PublisherClient  = (*RESTClient)(nil)
)

// RESTClient implements GovernanceClient and PublisherClient over HTTP/JSON.
// It never retries: a new attempt only happens when the caller asks again.
type RESTClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption configures a RESTClient.
type ClientOption func(*RESTClient)

// WithToken sets the bearer token.
func WithToken(token string) ClientOption {
	return func(c *RESTClient) { c.token = token }
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *RESTClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client (useful for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RESTClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *RESTClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRESTClient creates a client rooted at baseURL.
func NewRESTClient(baseURL string, opts ...ClientOption) *RESTClient {
	c := &RESTClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the REST root the client was created with.
func (c *RESTClient) BaseURL() string {
	return c.baseURL
}

// do sends one request. Non-2xx responses become a *FetchError carrying the status code.
// decode may be nil for bodiless responses.
func (c *RESTClient) do(ctx context.Context, op, method, path string, body any, decode func(io.Reader) error) error {
	endpoint := c.baseURL + path

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return NewFetchError(op, endpoint, 0, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error hides the context error behind its own type; keep it reachable.
		var uerr *url.Error
		if errors.As(err, &uerr) && ctx.Err() != nil {
			err = ctx.Err()
		}
		return NewFetchError(op, endpoint, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return NewFetchError(op, endpoint, resp.StatusCode, errors.New(backendMessage(resp.Status, msg)))
	}

	if decode == nil {
		return nil
	}
	return decode(resp.Body)
}

// backendMessage extracts the "description" or "message" field of an error body,
// falling back to the HTTP status line.
func backendMessage(status string, body []byte) string {
	var envelope struct {
		Message     string `json:"message"`
		Description string `json:"description"`
	}
	if len(body) > 0 && json.Unmarshal(body, &envelope) == nil {
		if envelope.Description != "" {
			return envelope.Description
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return status
}

func decodeJSON(out any) func(io.Reader) error {
	return func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(out); err != nil {
			return &DataShapeError{Field: "body", Reason: "could not be decoded", Err: err}
		}
		return nil
	}
}

// GetCompliance calls GET /governance/compliance/{artifactId}.
func (c *RESTClient) GetCompliance(ctx context.Context, artifactID string) (*types.ComplianceResponse, error) {
	var out *types.ComplianceResponse
	err := c.do(ctx, "get compliance", http.MethodGet, pathCompliance+url.PathEscape(artifactID), nil,
		func(r io.Reader) error {
			resp, err := DecodeComplianceResponse(r)
			out = resp
			return err
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetRulesetValidation calls GET /governance/compliance/{artifactId}/rulesets/{rulesetId}.
func (c *RESTClient) GetRulesetValidation(ctx context.Context, artifactID, rulesetID string) (*types.RulesetValidationDetail, error) {
	var out types.RulesetValidationDetail
	path := pathCompliance + url.PathEscape(artifactID) + "/rulesets/" + url.PathEscape(rulesetID)
	if err := c.do(ctx, "get ruleset validation", http.MethodGet, path, nil, decodeJSON(&out)); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPolicies calls GET /governance/policies.
func (c *RESTClient) ListPolicies(ctx context.Context) ([]types.PolicyDescriptor, error) {
	var out types.PolicyList
	if err := c.do(ctx, "list policies", http.MethodGet, pathPolicies, nil, decodeJSON(&out)); err != nil {
		return nil, err
	}
	return out.List, nil
}

// DeletePolicy calls DELETE /governance/policies/{id}.
func (c *RESTClient) DeletePolicy(ctx context.Context, id string) error {
	err := c.do(ctx, "delete policy", http.MethodDelete, pathPolicies+"/"+url.PathEscape(id), nil, nil)
	if statusOf(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrPolicyNotFound, id)
	}
	return err
}

// GetAPI calls GET /apis/{apiId}.
func (c *RESTClient) GetAPI(ctx context.Context, apiID string) (*types.APIDescriptor, error) {
	var out types.APIDescriptor
	err := c.do(ctx, "get api", http.MethodGet, pathAPIs+url.PathEscape(apiID), nil, decodeJSON(&out))
	if statusOf(err) == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrAPINotFound, apiID)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSubscriptionPolicies calls GET /throttling-policies/subscription, or the streaming
// catalog for async APIs. A positive limit is forwarded for the regular catalog only.
func (c *RESTClient) ListSubscriptionPolicies(ctx context.Context, async bool, limit int) ([]types.SubscriptionPolicy, error) {
	path := pathSubscriptionTiers
	if async {
		path = pathStreamingSubTiers
	} else if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var out types.SubscriptionPolicyList
	if err := c.do(ctx, "list subscription policies", http.MethodGet, path, nil, decodeJSON(&out)); err != nil {
		return nil, err
	}
	return out.List, nil
}

// UpdateSubscriptionPolicies calls PUT /apis/{apiId}/subscription-policies.
func (c *RESTClient) UpdateSubscriptionPolicies(ctx context.Context, apiID string, policies []string) error {
	body := types.SubscriptionPolicyUpdate{Policies: policies}
	return c.do(ctx, "update subscription policies", http.MethodPut,
		pathAPIs+url.PathEscape(apiID)+pathSubscriptionSetting, body, nil)
}

// statusOf returns the HTTP status carried by a FetchError, or 0.
func statusOf(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}
