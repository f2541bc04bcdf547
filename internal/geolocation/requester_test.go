package geolocation_test

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/UnknownOlympus/beacon/internal/geolocation"
	"github.com/UnknownOlympus/beacon/internal/metrics"
	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type coordsKey struct{}

// fakeCapability is a test double for geolocation.Capability.
type fakeCapability struct {
	available bool
	sync      bool // respond on the calling goroutine
	requests  atomic.Int32
	respond   func(ctx context.Context, onSuccess func(models.Position), onError func(*geolocation.PositionError))
}

func (f *fakeCapability) IsAvailable() bool {
	return f.available
}

func (f *fakeCapability) RequestPosition(
	ctx context.Context,
	onSuccess func(models.Position),
	onError func(*geolocation.PositionError),
) {
	f.requests.Add(1)
	if f.sync {
		f.respond(ctx, onSuccess, onError)
		return
	}
	go f.respond(ctx, onSuccess, onError)
}

func newTestRequester(t *testing.T, capability geolocation.Capability) (*geolocation.Requester, *metrics.Metrics) {
	t.Helper()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	return geolocation.NewRequester(capability, slog.Default(), m, "fake"), m
}

// collect returns a callback recording every result and a channel signalled on each call.
func collect() (func(models.Result), *[]models.Result, *sync.Mutex, chan struct{}) {
	var mu sync.Mutex
	results := []models.Result{}
	done := make(chan struct{}, 4)
	return func(res models.Result) {
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
		done <- struct{}{}
	}, &results, &mu, done
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback was not invoked")
	}
}

func TestRequester_GetLocation(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("nil capability is reported synchronously", func(t *testing.T) {
		t.Parallel()
		requester, m := newTestRequester(t, nil)
		callback, results, _, _ := collect()

		requester.GetLocation(ctx, callback)

		require.Len(t, *results, 1)
		msg, ok := (*results)[0].Err()
		require.True(t, ok)
		assert.Equal(t, "Geolocation not supported", msg)
		assert.InDelta(t, 1, testutil.ToFloat64(m.Lookups.WithLabelValues(metrics.OutcomeUnsupported)), 0)
	})

	t.Run("unavailable capability issues no request", func(t *testing.T) {
		t.Parallel()
		capability := &fakeCapability{available: false}
		requester, _ := newTestRequester(t, capability)
		callback, results, _, _ := collect()

		requester.GetLocation(ctx, callback)

		require.Len(t, *results, 1)
		msg, _ := (*results)[0].Err()
		assert.Equal(t, geolocation.NotSupportedMessage, msg)
		assert.Equal(t, int32(0), capability.requests.Load())
	})

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()
		capability := &fakeCapability{
			available: true,
			respond: func(_ context.Context, onSuccess func(models.Position), _ func(*geolocation.PositionError)) {
				onSuccess(models.Position{Coords: models.Coordinates{Latitude: 37.7749, Longitude: -122.4194}})
			},
		}
		requester, m := newTestRequester(t, capability)
		callback, results, mu, done := collect()

		requester.GetLocation(ctx, callback)
		waitFor(t, done)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, *results, 1)
		coords, ok := (*results)[0].Coordinates()
		require.True(t, ok)
		assert.InEpsilon(t, 37.7749, coords.Latitude, 0.0001)
		assert.InEpsilon(t, -122.4194, coords.Longitude, 0.0001)
		_, isErr := (*results)[0].Err()
		assert.False(t, isErr)
		assert.Equal(t, int32(1), capability.requests.Load())
		assert.InDelta(t, 1, testutil.ToFloat64(m.Lookups.WithLabelValues(metrics.OutcomeLocated)), 0)
		assert.InDelta(t, 0, testutil.ToFloat64(m.PendingLookups), 0)
	})

	t.Run("failed request", func(t *testing.T) {
		t.Parallel()
		capability := &fakeCapability{
			available: true,
			respond: func(_ context.Context, _ func(models.Position), onError func(*geolocation.PositionError)) {
				onError(&geolocation.PositionError{Code: geolocation.PermissionDenied, Message: "User denied permission"})
			},
		}
		requester, m := newTestRequester(t, capability)
		callback, results, mu, done := collect()

		requester.GetLocation(ctx, callback)
		waitFor(t, done)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, *results, 1)
		msg, ok := (*results)[0].Err()
		require.True(t, ok)
		assert.Equal(t, "User denied permission", msg)
		_, hasCoords := (*results)[0].Coordinates()
		assert.False(t, hasCoords)
		assert.InDelta(t, 1, testutil.ToFloat64(m.Lookups.WithLabelValues(metrics.OutcomeFailed)), 0)
	})

	for name, posErr := range map[string]*geolocation.PositionError{
		"failure without error":   nil,
		"failure with empty text": {Code: geolocation.PositionUnavailable},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			capability := &fakeCapability{
				available: true,
				sync:      true,
				respond: func(_ context.Context, _ func(models.Position), onError func(*geolocation.PositionError)) {
					onError(posErr)
				},
			}
			requester, _ := newTestRequester(t, capability)
			callback, results, _, _ := collect()

			requester.GetLocation(ctx, callback)

			require.Len(t, *results, 1)
			msg, ok := (*results)[0].Err()
			require.True(t, ok)
			assert.Equal(t, "Unknown geolocation error", msg)
		})
	}

	t.Run("misbehaving capability still completes once", func(t *testing.T) {
		t.Parallel()
		capability := &fakeCapability{
			available: true,
			sync:      true,
			respond: func(_ context.Context, onSuccess func(models.Position), onError func(*geolocation.PositionError)) {
				onSuccess(models.Position{Coords: models.Coordinates{Latitude: 1, Longitude: 2}})
				onError(&geolocation.PositionError{Code: geolocation.Timeout, Message: "late"})
				onSuccess(models.Position{Coords: models.Coordinates{Latitude: 3, Longitude: 4}})
			},
		}
		requester, _ := newTestRequester(t, capability)
		callback, results, _, _ := collect()

		requester.GetLocation(ctx, callback)

		require.Len(t, *results, 1)
		coords, ok := (*results)[0].Coordinates()
		require.True(t, ok)
		assert.InDelta(t, 1.0, coords.Latitude, 0)
	})
}

func TestRequester_ConcurrentCalls(t *testing.T) {
	t.Parallel()
	capability := &fakeCapability{
		available: true,
		respond: func(ctx context.Context, onSuccess func(models.Position), _ func(*geolocation.PositionError)) {
			coords, _ := ctx.Value(coordsKey{}).(models.Coordinates)
			time.Sleep(time.Duration(int(coords.Latitude)%5) * time.Millisecond)
			onSuccess(models.Position{Coords: coords})
		},
	}
	requester, _ := newTestRequester(t, capability)

	const calls = 50
	var wg sync.WaitGroup
	for i := range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			want := models.Coordinates{Latitude: float64(i), Longitude: float64(-i)}
			ctx := context.WithValue(t.Context(), coordsKey{}, want)

			res := requester.Locate(ctx)

			got, ok := res.Coordinates()
			assert.True(t, ok)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(calls), capability.requests.Load())
}

func TestRequester_Locate(t *testing.T) {
	t.Parallel()

	t.Run("returns unsupported immediately", func(t *testing.T) {
		t.Parallel()
		requester, _ := newTestRequester(t, nil)

		res := requester.Locate(t.Context())

		msg, ok := res.Err()
		require.True(t, ok)
		assert.Equal(t, geolocation.NotSupportedMessage, msg)
	})

	t.Run("unsupported wins over a cancelled context", func(t *testing.T) {
		t.Parallel()
		requester, _ := newTestRequester(t, nil)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		res := requester.Locate(ctx)

		msg, _ := res.Err()
		assert.Equal(t, geolocation.NotSupportedMessage, msg)
	})

	t.Run("context ends before the capability answers", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		capability := &fakeCapability{
			available: true,
			respond: func(_ context.Context, onSuccess func(models.Position), _ func(*geolocation.PositionError)) {
				<-release
				onSuccess(models.Position{})
			},
		}
		requester, _ := newTestRequester(t, capability)
		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		res := requester.Locate(ctx)
		close(release)

		msg, ok := res.Err()
		require.True(t, ok)
		assert.Equal(t, context.DeadlineExceeded.Error(), msg)
	})
}
