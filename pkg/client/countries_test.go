package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const countriesBody = `[
	{"name":{"common":"Slovakia","official":"Slovak Republic"},"cca2":"SK"},
	{"name":{"common":"Austria","official":"Republic of Austria"},"cca2":"AT"},
	{"name":{"common":"","official":""},"cca2":"XX"},
	{"name":{"common":"Åland Islands","official":"Åland Islands"},"cca2":"AX"}
]`

func TestParseCountries(t *testing.T) {
	countries, err := ParseCountries([]byte(countriesBody))
	require.NoError(t, err)
	require.Len(t, countries, 3)
	assert.Equal(t, "Åland Islands", countries[0].Name)
	assert.Equal(t, "Austria", countries[1].Name)
	assert.Equal(t, "Republic of Austria", countries[1].Official)
	assert.Equal(t, "SK", countries[2].Code)
}

func TestCountryServiceCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(countriesBody))
	}))
	defer srv.Close()

	cache := NewCacheManager(t.TempDir(), time.Hour)
	svc := NewCountryService(srv.URL, srv.Client(), cache, nil)

	assert.Len(t, svc.Countries(context.Background()), 3)
	assert.Len(t, svc.Countries(context.Background()), 3)
	assert.Equal(t, 1, calls)
}

func TestCountryServiceErrorYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	countries := NewCountryService(srv.URL, nil, nil, nil).Countries(context.Background())
	assert.NotNil(t, countries)
	assert.Empty(t, countries)
}
