package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// GeocoderType represents the type of geocoding backend.
type GeocoderType string

const (
	// GeocoderTypeNominatim represents OpenStreetMap Nominatim.
	GeocoderTypeNominatim GeocoderType = "nominatim"
	// GeocoderTypeGoogle represents the Google Maps Geocoding API.
	GeocoderTypeGoogle GeocoderType = "google"
)

// GeocoderConfig holds configuration for creating a geocoder.
type GeocoderConfig struct {
	Type         GeocoderType // Type of geocoder to create
	APIKey       string       // API key (used by Google geocoder)
	RegionSuffix string       // Suffix appended to every address for more accurate matches
	Logger       *slog.Logger // Logger for the geocoder
}

// NewGeocoder creates a geocoder based on the provided configuration.
func NewGeocoder(config GeocoderConfig) (Geocoder, error) {
	switch config.Type {
	case GeocoderTypeNominatim:
		return NewNominatimGeocoder(config.RegionSuffix, config.Logger), nil
	case GeocoderTypeGoogle:
		if config.APIKey == "" {
			return nil, errors.New("API key is required for Google geocoder")
		}
		client, err := maps.NewClient(maps.WithAPIKey(config.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
		}
		return NewGoogleGeocoder(client, config.RegionSuffix, config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported geocoder type: %s", config.Type)
	}
}
