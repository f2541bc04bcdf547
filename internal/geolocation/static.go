package geolocation

import (
	"context"
	"time"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// StaticCapability reports a fixed, configured position.
// The zero value is unavailable.
type StaticCapability struct {
	position   models.Position
	timeout    time.Duration
	configured bool
}

// NewStaticCapability creates a capability that always reports coords within timeout.
// A zero timeout disables the limit.
func NewStaticCapability(coords models.Coordinates, timeout time.Duration) *StaticCapability {
	return &StaticCapability{
		position:   models.Position{Coords: coords},
		timeout:    timeout,
		configured: true,
	}
}

func (sc *StaticCapability) IsAvailable() bool {
	return sc.configured
}

// RequestPosition reports the configured position asynchronously.
func (sc *StaticCapability) RequestPosition(
	ctx context.Context,
	onSuccess func(models.Position),
	onError func(*PositionError),
) {
	requestAsync(ctx, sc.timeout, func(ctx context.Context) (models.Position, error) {
		if err := ctx.Err(); err != nil {
			return models.Position{}, err
		}
		return sc.position, nil
	}, onSuccess, onError)
}
