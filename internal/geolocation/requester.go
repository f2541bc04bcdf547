package geolocation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/beacon/internal/metrics"
	"github.com/UnknownOlympus/beacon/internal/models"
)

// NotSupportedMessage is reported when no geolocation capability is available.
const NotSupportedMessage = "Geolocation not supported"

// unknownErrorMessage is reported when a capability fails without describing why.
const unknownErrorMessage = "Unknown geolocation error"

// Requester performs best-effort lookups of the current position.
// It holds no per-call state, so concurrent calls are independent.
type Requester struct {
	capability   Capability       // capability is the host geolocation service, nil when absent
	log          *slog.Logger     // log is the logger for lookup events
	metrics      *metrics.Metrics // metrics tracks lookup outcomes and durations
	providerName string           // providerName labels the request duration metric
}

// NewRequester creates a Requester on top of the given capability.
// A nil capability behaves as an absent one.
func NewRequester(capability Capability, log *slog.Logger, metrics *metrics.Metrics, providerName string) *Requester {
	return &Requester{
		capability:   capability,
		log:          log,
		metrics:      metrics,
		providerName: providerName,
	}
}

// GetLocation looks up the current position and passes the outcome to callback exactly once.
//
// When the capability is absent the callback runs before GetLocation returns and no request
// is issued. Otherwise exactly one asynchronous request is made and the callback receives the
// reported coordinates or the capability's error message.
func (r *Requester) GetLocation(ctx context.Context, callback func(models.Result)) {
	if r.capability == nil || !r.capability.IsAvailable() {
		r.log.DebugContext(ctx, "Geolocation capability is not available", "capability", r.providerName)
		r.metrics.Lookups.WithLabelValues(metrics.OutcomeUnsupported).Inc()
		callback(models.Failed(NotSupportedMessage))
		return
	}

	var once sync.Once
	startTime := time.Now()
	r.metrics.PendingLookups.Inc()

	complete := func(res models.Result, outcome string) {
		once.Do(func() {
			r.metrics.PendingLookups.Dec()
			r.metrics.RequestSeconds.WithLabelValues(r.providerName).Observe(time.Since(startTime).Seconds())
			r.metrics.Lookups.WithLabelValues(outcome).Inc()
			callback(res)
		})
	}

	r.log.DebugContext(ctx, "Requesting current position", "capability", r.providerName)
	r.capability.RequestPosition(
		ctx,
		func(pos models.Position) {
			r.log.DebugContext(ctx, "Position received",
				"lat", pos.Coords.Latitude, "lon", pos.Coords.Longitude, "accuracy", pos.Accuracy)
			complete(models.Located(pos.Coords), metrics.OutcomeLocated)
		},
		func(posErr *PositionError) {
			msg := unknownErrorMessage
			if posErr != nil && posErr.Message != "" {
				msg = posErr.Message
			}
			r.log.WarnContext(ctx, "Position request failed", "capability", r.providerName, "error", msg)
			complete(models.Failed(msg), metrics.OutcomeFailed)
		},
	)
}

// Locate is a blocking form of GetLocation.
// If ctx ends before the capability answers, the context error is returned as an error result.
func (r *Requester) Locate(ctx context.Context) models.Result {
	results := make(chan models.Result, 1)
	r.GetLocation(ctx, func(res models.Result) {
		results <- res
	})

	select {
	case res := <-results:
		return res
	default:
	}

	select {
	case res := <-results:
		return res
	case <-ctx.Done():
		return models.Failed(ctx.Err().Error())
	}
}
