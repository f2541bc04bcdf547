package geolocation

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/beacon/internal/models"
	"googlemaps.github.io/maps"
)

// CapabilityType represents the kind of geolocation capability.
type CapabilityType string

const (
	// CapabilityTypeNone means no geolocation capability is present.
	CapabilityTypeNone CapabilityType = "none"
	// CapabilityTypeStatic reports a fixed configured position.
	CapabilityTypeStatic CapabilityType = "static"
	// CapabilityTypeIPAPI estimates the position from the public IP using ip-api.com.
	CapabilityTypeIPAPI CapabilityType = "ipapi"
	// CapabilityTypeGoogle uses the Google Geolocation API.
	CapabilityTypeGoogle CapabilityType = "google"
	// CapabilityTypeMaxMind looks the public IP up in an offline GeoIP city database.
	CapabilityTypeMaxMind CapabilityType = "maxmind"
)

// CapabilityConfig holds configuration for creating a geolocation capability.
type CapabilityConfig struct {
	Type         CapabilityType      // Type of capability to create
	APIKey       string              // API key (used by Google capability)
	RateLimit    int                 // Requests per minute (ip-api) or per second (Google)
	Timeout      time.Duration       // Host policy timeout for one position request
	Static       *models.Coordinates // Fixed position (used by static capability)
	DatabasePath string              // Path to the GeoIP city database (used by MaxMind capability)
	PublicIP     string              // IP to locate (MaxMind requires it, ip-api defaults to the caller)
	Logger       *slog.Logger        // Logger for the capability
}

// NewCapability creates a geolocation capability based on the provided configuration.
//
// Supported capability types:
// - "none": no capability, every lookup reports "Geolocation not supported"
// - "static": fixed position from configuration
// - "ipapi": ip-api.com (free, no API key required)
// - "google": Google Geolocation API (requires API key)
// - "maxmind": offline GeoIP database, unavailable when the database cannot be opened
//
// A nil Capability with a nil error is returned for "none".
func NewCapability(config CapabilityConfig) (Capability, error) {
	switch config.Type {
	case CapabilityTypeNone:
		return nil, nil //nolint:nilnil // absence of a capability is a valid configuration
	case CapabilityTypeStatic:
		return newStaticCapability(config)
	case CapabilityTypeIPAPI:
		return newIPAPICapability(config)
	case CapabilityTypeGoogle:
		return newGoogleCapability(config)
	case CapabilityTypeMaxMind:
		return newMaxMindCapability(config)
	default:
		return nil, fmt.Errorf("unsupported capability type: %s", config.Type)
	}
}

func newStaticCapability(config CapabilityConfig) (Capability, error) {
	if config.Static == nil {
		return nil, errors.New("coordinates are required for static capability")
	}

	return NewStaticCapability(*config.Static, config.Timeout), nil
}

func newIPAPICapability(config CapabilityConfig) (Capability, error) {
	if config.RateLimit <= 0 {
		config.RateLimit = 45
		config.Logger.Warn("Rate limit for ip-api not set, set a default value", "value", config.RateLimit)
	}

	return NewIPAPICapability(config.PublicIP, config.RateLimit, config.Timeout, config.Logger), nil
}

func newGoogleCapability(config CapabilityConfig) (Capability, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google capability")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleCapability(client, config.Timeout, config.Logger), nil
}

func newMaxMindCapability(config CapabilityConfig) (Capability, error) {
	capability, err := OpenMaxMindCapability(config.DatabasePath, config.PublicIP, config.Timeout, config.Logger)
	if err != nil {
		if errors.Is(err, ErrInvalidIP) {
			return nil, err
		}
		// A missing database is an absent capability, not a startup failure.
		config.Logger.Warn("GeoIP database is not usable, geolocation is unavailable",
			"path", config.DatabasePath, "error", err)
		return &MaxMindCapability{timeout: config.Timeout, log: config.Logger}, nil
	}

	return capability, nil
}
