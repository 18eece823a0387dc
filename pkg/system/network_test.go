package system

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEndpoints(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	nc := NewNetworkChecker(nil, "connhub-test/1.0")
	results := nc.CheckEndpoints(context.Background(), []Endpoint{
		{Name: "ok", URL: srv.URL + "/ok", Required: true},
		{Name: "missing", URL: srv.URL + "/missing"},
		{Name: "broken", URL: srv.URL + "/broken"},
	})
	require.Len(t, results, 3)

	assert.True(t, results[0].Reachable)
	assert.Equal(t, http.StatusOK, results[0].StatusCode)
	assert.True(t, results[1].Reachable, "a 404 still means the server answered")
	assert.False(t, results[2].Reachable)
	assert.Equal(t, "server_error", results[2].ErrorKind)
	assert.Equal(t, "connhub-test/1.0", agent)

	assert.Equal(t, []string{"broken answered with an error, try again later"}, Suggestions(results))
}

func TestCheckEndpointsConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	nc := NewNetworkChecker(nil, "")
	nc.SetTimeout(2 * time.Second)
	results := nc.CheckEndpoints(context.Background(), []Endpoint{{Name: "gone", URL: url, Required: true}})
	require.Len(t, results, 1)
	assert.False(t, results[0].Reachable)
	assert.NotEmpty(t, results[0].Error)
}

func TestCheckEndpointsInvalidURL(t *testing.T) {
	nc := NewNetworkChecker(nil, "")
	results := nc.CheckEndpoints(context.Background(), []Endpoint{{Name: "countries", URL: "://bad"}})
	assert.Equal(t, "invalid_url", results[0].ErrorKind)
	assert.Equal(t, []string{"Fix the countries URL in the configuration"}, Suggestions(results))
}

func TestCategorizeNetworkError(t *testing.T) {
	assert.Equal(t, "timeout", categorizeNetworkError(context.DeadlineExceeded))
	assert.Equal(t, "unknown", categorizeNetworkError(assert.AnError))
}
