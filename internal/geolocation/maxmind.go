package geolocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/oschwald/maxminddb-golang"
)

// MMDBReader is the subset of *maxminddb.Reader used by MaxMindCapability.
type MMDBReader interface {
	LookupNetwork(ip net.IP, result any) (*net.IPNet, bool, error)
	Close() error
}

// ErrInvalidIP is returned when the configured public IP cannot be parsed.
var ErrInvalidIP = errors.New("invalid public IP address")

// cityRecord maps the location part of a GeoIP2/GeoLite2 City record.
type cityRecord struct {
	Location struct {
		Latitude       float64 `maxminddb:"latitude"`
		Longitude      float64 `maxminddb:"longitude"`
		AccuracyRadius uint16  `maxminddb:"accuracy_radius"`
	} `maxminddb:"location"`
}

// MaxMindCapability resolves a known public IP against an offline city database.
type MaxMindCapability struct {
	reader  MMDBReader
	ip      net.IP
	timeout time.Duration
	log     *slog.Logger
}

// OpenMaxMindCapability opens the database at path.
func OpenMaxMindCapability(
	path, publicIP string,
	timeout time.Duration,
	log *slog.Logger,
) (*MaxMindCapability, error) {
	ip := net.ParseIP(publicIP)
	if ip == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIP, publicIP)
	}

	reader, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database: %w", err)
	}

	return NewMaxMindCapability(reader, ip, timeout, log), nil
}

// NewMaxMindCapability creates a capability on top of an already opened reader.
func NewMaxMindCapability(reader MMDBReader, ip net.IP, timeout time.Duration, log *slog.Logger) *MaxMindCapability {
	return &MaxMindCapability{reader: reader, ip: ip, timeout: timeout, log: log}
}

func (mc *MaxMindCapability) IsAvailable() bool {
	return mc.reader != nil && mc.ip != nil
}

// RequestPosition looks the configured IP up in the database.
func (mc *MaxMindCapability) RequestPosition(
	ctx context.Context,
	onSuccess func(models.Position),
	onError func(*PositionError),
) {
	requestAsync(ctx, mc.timeout, mc.lookup, onSuccess, onError)
}

// Close releases the database.
func (mc *MaxMindCapability) Close() error {
	if mc.reader == nil {
		return nil
	}
	return mc.reader.Close()
}

func (mc *MaxMindCapability) lookup(ctx context.Context) (models.Position, error) {
	var record cityRecord
	network, found, err := mc.reader.LookupNetwork(mc.ip, &record)
	if err != nil {
		return models.Position{}, fmt.Errorf("failed to look up %s: %w", mc.ip, err)
	}
	if err = ctx.Err(); err != nil {
		return models.Position{}, err
	}
	if !found {
		return models.Position{}, &PositionError{
			Code:    PositionUnavailable,
			Message: fmt.Sprintf("no location known for %s", mc.ip),
		}
	}

	mc.log.DebugContext(ctx, "GeoIP record found", "ip", mc.ip.String(), "network", network.String())

	// accuracy_radius is in kilometers.
	const metersPerKm = 1000

	return models.Position{
		Coords: models.Coordinates{
			Latitude:  record.Location.Latitude,
			Longitude: record.Location.Longitude,
		},
		Accuracy: float64(record.Location.AccuracyRadius) * metersPerKm,
	}, nil
}
