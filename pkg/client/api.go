package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/internal/version"
	"github.com/huanfeng/connhub-cli/pkg/models"
	"github.com/huanfeng/connhub-cli/pkg/utils"
)

// RequestIDHeader carries a per-attempt correlation ID
const RequestIDHeader = "X-Request-ID"

// RetryConfig controls retries of network errors and retryable statuses
type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig returns default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
	}
}

func (r RetryConfig) delay(attempt int) time.Duration {
	d := time.Duration(float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt-1)))
	if d > r.MaxDelay {
		d = r.MaxDelay
	}
	return d
}

// APIClient talks to the catalog backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryConfig
	userAgent  string
	logger     utils.Logger
}

// Option configures an APIClient
type Option func(*APIClient)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) { c.httpClient = hc }
}

// WithRetry replaces the retry policy
func WithRetry(r RetryConfig) Option {
	return func(c *APIClient) { c.retry = r }
}

// WithLogger sets the logger
func WithLogger(l utils.Logger) Option {
	return func(c *APIClient) { c.logger = l }
}

// WithUserAgent sets the User-Agent product name
func WithUserAgent(product string) Option {
	return func(c *APIClient) { c.userAgent = version.UserAgent(product) }
}

// NewAPIClient creates a client for the backend rooted at baseURL
func NewAPIClient(baseURL string, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      DefaultRetryConfig(),
		userAgent:  version.UserAgent(""),
		logger:     utils.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewAPIClientFromConfig creates a client from the loaded configuration
func NewAPIClientFromConfig(cfg *models.Config, logger utils.Logger) *APIClient {
	retry := DefaultRetryConfig()
	retry.MaxRetries = cfg.API.MaxRetries
	return NewAPIClient(cfg.API.BaseURL,
		WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		WithRetry(retry),
		WithUserAgent(cfg.API.UserAgent),
		WithLogger(logger),
	)
}

// problem is an RFC 7807 body, tolerating the {"message": ...} shape too
type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
	Message  string `json:"message"`
	Error    string `json:"error"`
}

func errorMessage(body []byte) string {
	var p problem
	if err := json.Unmarshal(body, &p); err == nil {
		for _, m := range []string{p.Detail, p.Message, p.Title, p.Error} {
			if m != "" {
				return m
			}
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}

// do performs a request with exponential backoff. Network errors and
// retryable statuses are retried; other 4xx responses fail immediately.
func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return apperrors.WrapError(err, apperrors.ErrorTypeValidation, apperrors.CodeRequestFailed, "failed to encode request")
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			d := c.retry.delay(attempt)
			c.logger.Debug("retrying %s %s in %v (attempt %d/%d)", method, path, d, attempt+1, c.retry.MaxRetries+1)
			select {
			case <-ctx.Done():
				return apperrors.WrapError(ctx.Err(), apperrors.ErrorTypeTimeout, apperrors.CodeRequestFailed, "request cancelled")
			case <-time.After(d):
			}
		}

		err := c.attempt(ctx, method, endpoint, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil || !apperrors.IsRetryable(err) {
			break
		}
	}
	return lastErr
}

func (c *APIClient) attempt(ctx context.Context, method, endpoint string, payload []byte, out interface{}) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperrors.WrapError(err, apperrors.ErrorTypeValidation, apperrors.CodeRequestFailed, "invalid request")
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.WithFields(map[string]interface{}{"request_id": requestID, "method": method})
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("%s failed after %v: %v", endpoint, time.Since(start), err)
		if ctx.Err() != nil {
			return apperrors.WrapError(err, apperrors.ErrorTypeTimeout, apperrors.CodeRequestFailed, "request cancelled")
		}
		return apperrors.NewNetworkError(apperrors.CodeRequestFailed, "catalog backend unreachable").
			WithCause(err).WithContext("url", endpoint)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewNetworkError(apperrors.CodeRequestFailed, "failed to read response").WithCause(err)
	}
	log.Debug("%s -> %d in %v", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		return apperrors.FromStatus(resp.StatusCode, errorMessage(data)).
			WithContext("url", endpoint).
			WithContext("request_id", requestID)
	}
	return decodeBody(data, out)
}

func decodeBody(data []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = strings.TrimSpace(string(data))
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.WrapError(err, apperrors.ErrorTypeParsing, apperrors.CodeDecodeFailed, "unexpected response from catalog backend")
	}
	return nil
}

func requestPath(id int64, suffix string) string {
	return "/requests/" + strconv.FormatInt(id, 10) + suffix
}

// ListApplications returns every catalog record
func (c *APIClient) ListApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.do(ctx, http.MethodGet, "/applications", nil, nil, &apps); err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.Application{}
	}
	return apps, nil
}

// GetApplication returns the detail of one application
func (c *APIClient) GetApplication(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewNotFoundError(apperrors.CodeNotFound, "no application ID provided")
	}
	var d models.ApplicationDetail
	if err := c.do(ctx, http.MethodGet, "/applications/"+url.PathEscape(id), nil, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListImplementations returns the implementations of an application that
// new versions can be attached to
func (c *APIClient) ListImplementations(ctx context.Context, applicationID string) ([]models.Implementation, error) {
	var impls []models.Implementation
	path := "/applications/" + url.PathEscape(applicationID) + "/implementations"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &impls); err != nil {
		return nil, err
	}
	return impls, nil
}

// CategoryCounts returns the number of applications per category
func (c *APIClient) CategoryCounts(ctx context.Context) ([]models.CategoryCount, error) {
	var counts []models.CategoryCount
	if err := c.do(ctx, http.MethodGet, "/categories/counts", nil, nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// TotalDownloads returns the number of connector downloads
func (c *APIClient) TotalDownloads(ctx context.Context) (int64, error) {
	var n int64
	err := c.do(ctx, http.MethodGet, "/downloads/count", nil, nil, &n)
	return n, err
}

// ApplicationDownloads returns the number of downloads of one application
func (c *APIClient) ApplicationDownloads(ctx context.Context, id string) (int64, error) {
	var n int64
	err := c.do(ctx, http.MethodGet, "/applications/"+url.PathEscape(id)+"/downloads/count", nil, nil, &n)
	return n, err
}

// Vote records a vote for a pending integration request. A 400 from the
// backend means the voter already voted.
func (c *APIClient) Vote(ctx context.Context, requestID int64, voter string) error {
	err := c.do(ctx, http.MethodPost, requestPath(requestID, "/vote"), url.Values{"voter": {voter}}, struct{}{}, nil)
	if ce, ok := apperrors.As(err); ok && ce.Status == http.StatusBadRequest {
		return apperrors.NewAlreadyVotedError(requestID).WithCause(err)
	}
	return err
}

// HasVoted reports whether voter already voted for the request
func (c *APIClient) HasVoted(ctx context.Context, requestID int64, voter string) (bool, error) {
	var voted bool
	err := c.do(ctx, http.MethodGet, requestPath(requestID, "/votes/check"), url.Values{"voter": {voter}}, nil, &voted)
	return voted, err
}

// VoteCount returns the number of votes of a request
func (c *APIClient) VoteCount(ctx context.Context, requestID int64) (int64, error) {
	var n int64
	err := c.do(ctx, http.MethodGet, requestPath(requestID, "/votes/count"), nil, nil, &n)
	return n, err
}

// SubmitRequest files a new integration request
func (c *APIClient) SubmitRequest(ctx context.Context, req *models.IntegrationRequest) error {
	return c.do(ctx, http.MethodPost, "/requests", nil, req, nil)
}

// VersionExists asks whether a connector version was already published
func (c *APIClient) VersionExists(ctx context.Context, bundleName, ver string) (bool, error) {
	var exists bool
	q := url.Values{"bundleName": {bundleName}, "version": {ver}}
	err := c.do(ctx, http.MethodGet, "/upload/versions/check", q, nil, &exists)
	return exists, err
}

// Publish uploads a connector and returns the ID assigned by the backend
func (c *APIClient) Publish(ctx context.Context, payload *models.PublishPayload) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/upload/connector", nil, payload, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", apperrors.NewParsingError(apperrors.CodeDecodeFailed, "catalog backend returned no upload id")
	}
	return resp.ID, nil
}
