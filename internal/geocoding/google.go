package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/beacon/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleGeocoder resolves addresses with the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client       GoogleAPIClient
	regionSuffix string
	log          *slog.Logger
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

func NewGoogleGeocoder(client GoogleAPIClient, regionSuffix string, log *slog.Logger) *GoogleGeocoder {
	return &GoogleGeocoder{client: client, regionSuffix: regionSuffix, log: log}
}

// Geocode returns the location of the first Geocoding API result for address.
func (gg *GoogleGeocoder) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	query := address + gg.regionSuffix
	gg.log.DebugContext(ctx, "Geocoding using Google Maps", "address", query)

	results, err := gg.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}

	loc := results[0].Geometry.Location
	return &models.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
