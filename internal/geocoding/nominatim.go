package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/beacon/internal/models"
	"golang.org/x/time/rate"
)

// NominatimBaseURL is the public OpenStreetMap search endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// nominatimUserAgent identifies the service as the Nominatim usage policy requires.
const nominatimUserAgent = "Beacon-Reminder-Service/1.0 (https://github.com/UnknownOlympus/beacon)"

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NominatimGeocoder resolves addresses with OpenStreetMap's Nominatim API.
// Fair use of the public instance is limited to one request per second.
type NominatimGeocoder struct {
	client       HTTPClient
	baseURL      string
	regionSuffix string // appended to every address, e.g. ", Tamil Nadu"
	log          *slog.Logger
	limiter      *rate.Limiter // one request per second
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

// NewNominatimGeocoder creates a geocoder using the public Nominatim endpoint.
func NewNominatimGeocoder(regionSuffix string, log *slog.Logger) *NominatimGeocoder {
	const timeout = 10
	return NewNominatimGeocoderWithClient(&http.Client{Timeout: timeout * time.Second}, regionSuffix, log)
}

// NewNominatimGeocoderWithClient creates a geocoder with a custom HTTP client.
func NewNominatimGeocoderWithClient(client HTTPClient, regionSuffix string, log *slog.Logger) *NominatimGeocoder {
	return &NominatimGeocoder{
		client:       client,
		baseURL:      NominatimBaseURL,
		regionSuffix: regionSuffix,
		log:          log,
		limiter:      rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Geocode returns the coordinates of the best match for address.
func (ng *NominatimGeocoder) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	query := address + ng.regionSuffix
	ng.log.DebugContext(ctx, "Geocoding using Nominatim", "address", query)

	if err := ng.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL, err := url.Parse(ng.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := ng.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		ng.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var places []nominatimPlace
	if err = json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(places) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, places[0].Lat)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, places[0].Lon)
	}

	ng.log.DebugContext(ctx, "Nominatim found result", "address", query, "lat", lat, "lon", lon)

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
