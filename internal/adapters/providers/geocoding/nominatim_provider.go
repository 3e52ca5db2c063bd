package geocoding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/providers"
	"github.com/petrecem/petrecem-backend/pkg/config"
	apperrors "github.com/petrecem/petrecem-backend/pkg/errors"
	"github.com/petrecem/petrecem-backend/pkg/geo"
)

const (
	defaultHTTPTimeout = 8 * time.Second
	resultLimit        = 1
)

// NominatimProvider implements the GeocodingProvider against a
// Nominatim-style HTTP service. Lookups are restricted to the configured
// country and validated against the Romania bounding box, because the
// upstream happily matches same-named places abroad. The service enforces
// a strict rate limit, so every call passes through a limiter that spaces
// requests out (one per second by default); results are cached in Redis
// under a normalized query key with an explicit TTL.
type NominatimProvider struct {
	baseURL      string
	countryCodes string
	userAgent    string
	httpClient   *http.Client
	cache        providers.CacheProvider
	limiter      *rate.Limiter
	cacheTTL     int
	bounds       geo.BoundingBox
}

// NewNominatimProvider creates a new Nominatim geocoding provider
func NewNominatimProvider(cfg *config.GeocodingConfig, cache providers.CacheProvider) providers.GeocodingProvider {
	return NewNominatimProviderWithOptions(cfg, cache, nil)
}

// NewNominatimProviderWithOptions allows overriding the HTTP client (used for tests)
func NewNominatimProviderWithOptions(cfg *config.GeocodingConfig, cache providers.CacheProvider, httpClient *http.Client) providers.GeocodingProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	minInterval := time.Duration(cfg.MinIntervalMs) * time.Millisecond
	if minInterval <= 0 {
		minInterval = time.Second
	}

	return &NominatimProvider{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		countryCodes: cfg.CountryCodes,
		userAgent:    cfg.UserAgent,
		httpClient:   httpClient,
		cache:        cache,
		limiter:      rate.NewLimiter(rate.Every(minInterval), 1),
		cacheTTL:     cfg.CacheTTLSeconds,
		bounds:       geo.RomaniaBounds,
	}
}

// Resolve converts a free-text place query to a location
func (p *NominatimProvider) Resolve(ctx context.Context, query string) (*entities.ResolvedLocation, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("location query is required")
	}

	cacheKey := "geocode:v1:forward:" + hashKey(strings.ToLower(trimmed))
	if loc := p.cachedLocation(ctx, cacheKey); loc != nil {
		return loc, nil
	}

	params := url.Values{}
	params.Set("q", trimmed)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(resultLimit))
	params.Set("countrycodes", p.countryCodes)
	params.Set("addressdetails", "1")

	var places []nominatimPlace
	if err := p.doRequest(ctx, "/search", params, &places); err != nil {
		return nil, err
	}

	if len(places) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no results for location %q", trimmed))
	}

	loc, err := p.toResolvedLocation(places[0])
	if err != nil {
		return nil, err
	}

	p.storeLocation(ctx, cacheKey, loc)
	return loc, nil
}

// ReverseResolve converts a coordinate pair to a location
func (p *NominatimProvider) ReverseResolve(ctx context.Context, lat, lon float64) (*entities.ResolvedLocation, error) {
	cacheKey := "geocode:v1:reverse:" + hashKey(fmt.Sprintf("%.5f,%.5f", lat, lon))
	if loc := p.cachedLocation(ctx, cacheKey); loc != nil {
		return loc, nil
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")

	var place nominatimPlace
	if err := p.doRequest(ctx, "/reverse", params, &place); err != nil {
		return nil, err
	}

	if place.Error != "" || place.DisplayName == "" {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no results for coordinates %.5f,%.5f", lat, lon))
	}

	loc, err := p.toResolvedLocation(place)
	if err != nil {
		return nil, err
	}

	p.storeLocation(ctx, cacheKey, loc)
	return loc, nil
}

func (p *NominatimProvider) doRequest(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return apperrors.NewExternalError("geocoding rate limiter interrupted", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", p.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to build geocoding request", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalError("geocoding request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewExternalError(fmt.Sprintf("geocoding request returned status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalError("failed to decode geocoding response", err)
	}

	return nil
}

// toResolvedLocation validates the upstream place and derives the city name.
// A place outside the country bounding box is treated as NotFound even
// though the upstream call succeeded.
func (p *NominatimProvider) toResolvedLocation(place nominatimPlace) (*entities.ResolvedLocation, error) {
	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return nil, apperrors.NewExternalError("geocoding response has invalid latitude", err)
	}
	lon, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return nil, apperrors.NewExternalError("geocoding response has invalid longitude", err)
	}

	coords := geo.Coordinates{Latitude: lat, Longitude: lon}
	if !p.bounds.Contains(coords) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("location %q is outside the supported country", place.DisplayName))
	}

	return &entities.ResolvedLocation{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: place.DisplayName,
		CityName:    deriveCityName(place),
	}, nil
}

// deriveCityName prefers a municipality/city-like address component and
// falls back to the first display-name segment. Best-effort: the upstream
// tags localities inconsistently.
func deriveCityName(place nominatimPlace) string {
	addr := place.Address
	for _, candidate := range []string{addr.City, addr.Town, addr.Village, addr.Municipality, addr.Commune} {
		if candidate != "" {
			return candidate
		}
	}

	if idx := strings.Index(place.DisplayName, ","); idx > 0 {
		return strings.TrimSpace(place.DisplayName[:idx])
	}
	return strings.TrimSpace(place.DisplayName)
}

func (p *NominatimProvider) cachedLocation(ctx context.Context, key string) *entities.ResolvedLocation {
	if p.cache == nil {
		return nil
	}

	cached, err := p.cache.Get(ctx, key)
	if err != nil || len(cached) == 0 {
		return nil
	}

	var loc entities.ResolvedLocation
	if err := json.Unmarshal(cached, &loc); err != nil {
		return nil
	}
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return nil
	}
	return &loc
}

func (p *NominatimProvider) storeLocation(ctx context.Context, key string, loc *entities.ResolvedLocation) {
	if p.cache == nil {
		return
	}
	if payload, err := json.Marshal(loc); err == nil {
		_ = p.cache.Set(ctx, key, payload, p.cacheTTL)
	}
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

type nominatimPlace struct {
	PlaceID     int64            `json:"place_id"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
	Error       string           `json:"error,omitempty"`
}

type nominatimAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Commune      string `json:"commune"`
	County       string `json:"county"`
	CountryCode  string `json:"country_code"`
}
