package geolocation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/beacon/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleCapability locates the device with the Google Geolocation API.
type GoogleCapability struct {
	client  GoogleAPIClient // client is the Google Maps API client
	timeout time.Duration   // timeout is the host policy timeout for one request
	log     *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geolocate(ctx context.Context, r *maps.GeolocationRequest) (*maps.GeolocationResult, error)
}

// NewGoogleCapability creates a GoogleCapability using the given client.
func NewGoogleCapability(client GoogleAPIClient, timeout time.Duration, log *slog.Logger) *GoogleCapability {
	return &GoogleCapability{client: client, timeout: timeout, log: log}
}

func (gc *GoogleCapability) IsAvailable() bool {
	return gc.client != nil
}

// RequestPosition asks the Geolocation API for a position derived from the caller's IP.
func (gc *GoogleCapability) RequestPosition(
	ctx context.Context,
	onSuccess func(models.Position),
	onError func(*PositionError),
) {
	requestAsync(ctx, gc.timeout, gc.lookup, onSuccess, onError)
}

func (gc *GoogleCapability) lookup(ctx context.Context) (models.Position, error) {
	gc.log.DebugContext(ctx, "Locating using Google Geolocation API")

	resp, err := gc.client.Geolocate(ctx, &maps.GeolocationRequest{ConsiderIP: true})
	if err != nil {
		return models.Position{}, fmt.Errorf("failed to geolocate: %w", err)
	}
	if resp == nil {
		return models.Position{}, &PositionError{
			Code:    PositionUnavailable,
			Message: "Google Geolocation API returned empty response",
		}
	}

	return models.Position{
		Coords:   models.Coordinates{Latitude: resp.Location.Lat, Longitude: resp.Location.Lng},
		Accuracy: resp.Accuracy,
	}, nil
}
