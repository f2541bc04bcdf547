package geolocation

import (
	"context"
	"errors"
	"time"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// Capability is a host service able to report the current position of the device.
//
// RequestPosition must call exactly one of onSuccess or onError exactly once.
// The call may happen on another goroutine after RequestPosition has returned.
type Capability interface {
	IsAvailable() bool
	RequestPosition(ctx context.Context, onSuccess func(models.Position), onError func(*PositionError))
}

// ErrorCode classifies a failed position request the way host geolocation services do.
type ErrorCode int

const (
	// PermissionDenied means the user or the host refused to share the position.
	PermissionDenied ErrorCode = 1
	// PositionUnavailable means the position could not be determined.
	PositionUnavailable ErrorCode = 2
	// Timeout means the host policy timeout expired before a position was obtained.
	Timeout ErrorCode = 3
)

// PositionError is reported by a capability when a position request fails.
type PositionError struct {
	Code    ErrorCode
	Message string
}

func (e *PositionError) Error() string {
	return e.Message
}

// positionErrorFrom converts an arbitrary error into a PositionError.
func positionErrorFrom(err error) *PositionError {
	var posErr *PositionError
	if errors.As(err, &posErr) {
		return posErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &PositionError{Code: Timeout, Message: "Timeout expired"}
	}

	return &PositionError{Code: PositionUnavailable, Message: err.Error()}
}

// lookupFunc performs one blocking position lookup.
type lookupFunc func(ctx context.Context) (models.Position, error)

// requestAsync runs lookup on its own goroutine bounded by timeout
// and completes through exactly one of the callbacks.
func requestAsync(
	ctx context.Context,
	timeout time.Duration,
	lookup lookupFunc,
	onSuccess func(models.Position),
	onError func(*PositionError),
) {
	go func() {
		reqCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			reqCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		pos, err := lookup(reqCtx)
		if err != nil {
			onError(positionErrorFrom(err))
			return
		}
		onSuccess(pos)
	}()
}
