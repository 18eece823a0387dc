package system

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// Logger is the logging surface the checkers need
type Logger interface {
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Endpoint is a URL the client depends on
type Endpoint struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Required bool   `json:"required"`
}

// EndpointResult is the outcome of probing one endpoint
type EndpointResult struct {
	Endpoint   Endpoint      `json:"endpoint"`
	Reachable  bool          `json:"reachable"`
	StatusCode int           `json:"status_code,omitempty"`
	Latency    time.Duration `json:"latency"`
	ErrorKind  string        `json:"error_kind,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// NetworkChecker probes the catalog backend and reference services
type NetworkChecker struct {
	logger    Logger
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// NewNetworkChecker creates a new network checker
func NewNetworkChecker(logger Logger, userAgent string) *NetworkChecker {
	return &NetworkChecker{
		logger:    logger,
		userAgent: userAgent,
		timeout:   10 * time.Second,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

// SetTimeout sets the per-endpoint timeout
func (nc *NetworkChecker) SetTimeout(d time.Duration) {
	if d > 0 {
		nc.timeout = d
	}
}

// CheckEndpoints probes every endpoint in order
func (nc *NetworkChecker) CheckEndpoints(ctx context.Context, endpoints []Endpoint) []EndpointResult {
	results := make([]EndpointResult, 0, len(endpoints))
	for _, ep := range endpoints {
		if nc.logger != nil {
			nc.logger.Debug("Testing connectivity to: %s", ep.URL)
		}
		results = append(results, nc.probe(ctx, ep))
	}
	return results
}

// probe counts any answer below 500 as reachable. The backend root may
// well return 404.
func (nc *NetworkChecker) probe(ctx context.Context, ep Endpoint) EndpointResult {
	res := EndpointResult{Endpoint: ep}

	ctx, cancel := context.WithTimeout(ctx, nc.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL, nil)
	if err != nil {
		res.ErrorKind = "invalid_url"
		res.Error = err.Error()
		return res
	}
	if nc.userAgent != "" {
		req.Header.Set("User-Agent", nc.userAgent)
	}

	start := time.Now()
	resp, err := nc.client.Do(req)
	res.Latency = time.Since(start)
	if err != nil {
		res.ErrorKind = categorizeNetworkError(err)
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode
	if resp.StatusCode >= http.StatusInternalServerError {
		res.ErrorKind = "server_error"
		res.Error = fmt.Sprintf("unexpected status code %d", resp.StatusCode)
		return res
	}
	res.Reachable = true
	return res
}

// categorizeNetworkError categorizes network errors for better diagnostics
func categorizeNetworkError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns_failure"
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout"):
		return "timeout"
	case strings.Contains(errStr, "connection refused"):
		return "connection_refused"
	case strings.Contains(errStr, "no such host"):
		return "dns_failure"
	case strings.Contains(errStr, "network is unreachable"):
		return "network_unreachable"
	case strings.Contains(errStr, "certificate"):
		return "tls_certificate_error"
	case strings.Contains(errStr, "proxy"):
		return "proxy_error"
	default:
		return "unknown"
	}
}

// Suggestions returns hints for the failed results
func Suggestions(results []EndpointResult) []string {
	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, r := range results {
		if r.Reachable {
			continue
		}
		switch r.ErrorKind {
		case "dns_failure":
			add(fmt.Sprintf("Check the host name in %s", r.Endpoint.URL))
		case "connection_refused":
			add(fmt.Sprintf("Make sure the service behind %s is running", r.Endpoint.URL))
		case "timeout", "network_unreachable":
			add("Check your network connection and firewall")
		case "tls_certificate_error":
			add("Check the server certificate and the system time")
		case "proxy_error":
			add("Check the HTTP_PROXY and HTTPS_PROXY settings")
		case "server_error":
			add(fmt.Sprintf("%s answered with an error, try again later", r.Endpoint.Name))
		case "invalid_url":
			add(fmt.Sprintf("Fix the %s URL in the configuration", r.Endpoint.Name))
		}
	}
	return out
}
