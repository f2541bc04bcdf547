package geocoding

import (
	"context"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// Geocoder resolves a free-form address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}
