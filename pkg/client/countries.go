package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/huanfeng/connhub-cli/pkg/models"
	"github.com/huanfeng/connhub-cli/pkg/utils"
)

// DefaultCountriesURL is the REST Countries query returning names and codes
const DefaultCountriesURL = "https://restcountries.com/v3.1/all?fields=name,cca2"

type restCountry struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA2 string `json:"cca2"`
}

// CountryService provides the reference country list
type CountryService struct {
	url        string
	httpClient *http.Client
	cache      *CacheManager
	logger     utils.Logger
}

// NewCountryService creates a country service. cache may be nil.
func NewCountryService(url string, httpClient *http.Client, cache *CacheManager, logger utils.Logger) *CountryService {
	if url == "" {
		url = DefaultCountriesURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &CountryService{url: url, httpClient: httpClient, cache: cache, logger: logger}
}

// Countries returns the country list sorted by name. Failures are logged
// and yield an empty list.
func (s *CountryService) Countries(ctx context.Context) []models.Country {
	if s.cache != nil {
		var cached []models.Country
		if found, err := s.cache.Get(KeyCountries, &cached); err == nil && found {
			return cached
		}
	}

	countries, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("failed to load countries: %v", err)
		return []models.Country{}
	}
	if s.cache != nil {
		if err := s.cache.Set(KeyCountries, countries, 30*24*time.Hour); err != nil {
			s.logger.Debug("failed to cache countries: %v", err)
		}
	}
	return countries
}

func (s *CountryService) fetch(ctx context.Context) ([]models.Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("countries: HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return ParseCountries(data)
}

// ParseCountries decodes a REST Countries response
func ParseCountries(data []byte) ([]models.Country, error) {
	var raw []restCountry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode countries: %w", err)
	}
	countries := make([]models.Country, 0, len(raw))
	for _, r := range raw {
		if r.Name.Common == "" {
			continue
		}
		countries = append(countries, models.Country{
			Name:     r.Name.Common,
			Official: r.Name.Official,
			Code:     r.CCA2,
		})
	}
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(countries, func(i, j int) bool {
		return c.CompareString(countries[i].Name, countries[j].Name) < 0
	})
	return countries, nil
}
