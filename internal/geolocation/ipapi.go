package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/beacon/internal/models"
	"golang.org/x/time/rate"
)

// IPAPIBaseURL is the ip-api.com JSON endpoint.
const IPAPIBaseURL = "http://ip-api.com/json/"

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// IPAPICapability estimates the device position from its public IP address using ip-api.com.
type IPAPICapability struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the ip-api endpoint
	ip      string        // IP to look up, empty means the caller's own address
	timeout time.Duration // Host policy timeout for one request
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter, the free tier allows 45 requests per minute
}

type ipapiResponse struct {
	Status  string  `json:"status"`  // "success" or "fail"
	Message string  `json:"message"` // Reason of a failure
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// NewIPAPICapability creates an ip-api capability allowing perMinute requests per minute.
func NewIPAPICapability(ip string, perMinute int, timeout time.Duration, log *slog.Logger) *IPAPICapability {
	const clientTimeout = 10

	return &IPAPICapability{
		client: &http.Client{
			Timeout: clientTimeout * time.Second,
		},
		baseURL: IPAPIBaseURL,
		ip:      ip,
		timeout: timeout,
		log:     log,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

// NewIPAPICapabilityWithClient allows injecting a custom HTTP client and limiter.
func NewIPAPICapabilityWithClient(
	client HTTPClient,
	ip string,
	limiter *rate.Limiter,
	timeout time.Duration,
	log *slog.Logger,
) *IPAPICapability {
	return &IPAPICapability{
		client:  client,
		baseURL: IPAPIBaseURL,
		ip:      ip,
		timeout: timeout,
		log:     log,
		limiter: limiter,
	}
}

// IsAvailable always reports true, the service needs no local setup.
func (ic *IPAPICapability) IsAvailable() bool {
	return true
}

// RequestPosition asks ip-api.com for the current position.
func (ic *IPAPICapability) RequestPosition(
	ctx context.Context,
	onSuccess func(models.Position),
	onError func(*PositionError),
) {
	requestAsync(ctx, ic.timeout, ic.lookup, onSuccess, onError)
}

func (ic *IPAPICapability) lookup(ctx context.Context) (models.Position, error) {
	if err := ic.limiter.Wait(ctx); err != nil {
		return models.Position{}, &PositionError{
			Code:    Timeout,
			Message: fmt.Sprintf("rate limit exceeded: %v", err),
		}
	}

	reqURL, err := url.Parse(ic.baseURL + url.PathEscape(ic.ip))
	if err != nil {
		return models.Position{}, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("fields", "status,message,lat,lon")
	reqURL.RawQuery = query.Encode()

	ic.log.DebugContext(ctx, "ip-api request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return models.Position{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := ic.client.Do(req)
	if err != nil {
		return models.Position{}, fmt.Errorf("failed to execute position request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Position{}, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusTooManyRequests:
		return models.Position{}, &PositionError{Code: PositionUnavailable, Message: "ip-api rate limit reached"}
	default:
		ic.log.ErrorContext(ctx, "ip-api error", "status", resp.StatusCode, "body", string(body))
		return models.Position{}, fmt.Errorf("ip-api returned status %d: %s", resp.StatusCode, string(body))
	}

	var result ipapiResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return models.Position{}, fmt.Errorf("failed to decode ip-api response: %w", err)
	}

	if result.Status != "success" {
		msg := result.Message
		if msg == "" {
			msg = "ip-api lookup failed"
		}
		return models.Position{}, &PositionError{Code: PositionUnavailable, Message: msg}
	}

	ic.log.DebugContext(ctx, "ip-api found position", "lat", result.Lat, "lon", result.Lon)

	return models.Position{
		Coords: models.Coordinates{Latitude: result.Lat, Longitude: result.Lon},
	}, nil
}
