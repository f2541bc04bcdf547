package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/UnknownOlympus/beacon/internal/geocoding"
	"github.com/UnknownOlympus/beacon/internal/geofence"
	"github.com/UnknownOlympus/beacon/internal/metrics"
	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/UnknownOlympus/beacon/internal/repository"
)

var (
	// ErrEmptyAddress is returned when a reminder or route is requested without an address.
	ErrEmptyAddress = errors.New("reminder address is empty")
	// ErrNoReminders is returned when monitoring is started before any reminder exists.
	ErrNoReminders = errors.New("at least one reminder is required to start monitoring")
)

// Locator performs a single blocking location lookup.
type Locator interface {
	Locate(ctx context.Context) models.Result
}

// CheckReport is the outcome of one reminder check.
type CheckReport struct {
	Location      *models.Coordinates `json:"location,omitempty"`       // Location is the position used for the check
	LocationError string              `json:"location_error,omitempty"` // LocationError is set when the lookup failed
	Alerts        []models.Alert      `json:"alerts"`                   // Alerts raised by this check
}

// ReminderService keeps geofence reminders and checks them against the current position.
type ReminderService struct {
	log      *slog.Logger         // Logger for logging service activities
	locator  Locator              // Locator for the current position
	geocoder geocoding.Geocoder   // Geocoder for reminder addresses
	repo     repository.Interface // Interface for reminder storage
	metrics  *metrics.Metrics     // Metrics for alerts and stored reminders
	radiusKm float64              // Alert radius in kilometers

	mu    sync.RWMutex
	route *models.Route // route being monitored, nil when idle
}

// NewReminderService creates a new instance of ReminderService.
func NewReminderService(
	log *slog.Logger,
	locator Locator,
	geocoder geocoding.Geocoder,
	repo repository.Interface,
	metrics *metrics.Metrics,
	radiusKm float64,
) *ReminderService {
	if radiusKm <= 0 {
		radiusKm = geofence.DefaultRadiusKm
	}

	return &ReminderService{
		log:      log,
		locator:  locator,
		geocoder: geocoder,
		repo:     repo,
		metrics:  metrics,
		radiusKm: radiusKm,
	}
}

// AddReminder geocodes address and stores it as a new reminder.
func (rs *ReminderService) AddReminder(ctx context.Context, address string) (models.Reminder, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return models.Reminder{}, ErrEmptyAddress
	}

	coords, err := rs.geocoder.Geocode(ctx, address)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to geocode reminder address: %w", err)
	}

	id, err := rs.repo.AddReminder(ctx, address, *coords)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to store reminder: %w", err)
	}

	rs.metrics.RemindersAdded.Inc()
	rs.log.InfoContext(ctx, "Reminder added", "ID", id, "address", address,
		"lat", coords.Latitude, "lon", coords.Longitude)

	return models.Reminder{ID: id, Name: address, Location: *coords}, nil
}

// ListReminders returns every stored reminder.
func (rs *ReminderService) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := rs.repo.ListReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	return reminders, nil
}

// CheckReminders looks up the current position once and raises an alert for every reminder
// within the alert radius. A failed lookup is reported in the CheckReport, not as an error.
func (rs *ReminderService) CheckReminders(ctx context.Context) (CheckReport, error) {
	report := CheckReport{Alerts: []models.Alert{}}

	res := rs.locator.Locate(ctx)
	current, ok := res.Coordinates()
	if !ok {
		report.LocationError, _ = res.Err()
		rs.log.WarnContext(ctx, "Unable to get current location", "error", report.LocationError)
		return report, nil
	}
	report.Location = &current

	reminders, err := rs.repo.ListReminders(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list reminders: %w", err)
	}

	for _, alert := range geofence.Check(current, reminders, rs.radiusKm) {
		if err = rs.repo.MarkAlerted(ctx, alert.Reminder.ID); err != nil {
			rs.log.ErrorContext(ctx, "Could not mark reminder as alerted", "ID", alert.Reminder.ID, "error", err)
			continue
		}
		alert.Reminder.Alerted = true
		report.Alerts = append(report.Alerts, alert)
		rs.metrics.Alerts.Inc()
		rs.log.InfoContext(ctx, "Approaching reminder",
			"ID", alert.Reminder.ID, "name", alert.Reminder.Name, "distance_km", alert.DistanceKm)
	}

	return report, nil
}

// StartMonitoring geocodes the start and destination of a journey and records it as the
// monitored route. Both addresses and at least one stored reminder are required.
func (rs *ReminderService) StartMonitoring(ctx context.Context, start, destination string) (models.Route, error) {
	start = strings.TrimSpace(start)
	destination = strings.TrimSpace(destination)
	if start == "" || destination == "" {
		return models.Route{}, ErrEmptyAddress
	}

	reminders, err := rs.repo.ListReminders(ctx)
	if err != nil {
		return models.Route{}, fmt.Errorf("failed to list reminders: %w", err)
	}
	if len(reminders) == 0 {
		return models.Route{}, ErrNoReminders
	}

	startCoords, err := rs.geocoder.Geocode(ctx, start)
	if err != nil {
		return models.Route{}, fmt.Errorf("failed to geocode start: %w", err)
	}
	destCoords, err := rs.geocoder.Geocode(ctx, destination)
	if err != nil {
		return models.Route{}, fmt.Errorf("failed to geocode destination: %w", err)
	}

	route := models.Route{
		StartName:       start,
		Start:           *startCoords,
		DestinationName: destination,
		Destination:     *destCoords,
	}

	rs.mu.Lock()
	rs.route = &route
	rs.mu.Unlock()

	rs.log.InfoContext(ctx, "Monitoring started", "start", start, "destination", destination,
		"reminders", len(reminders))

	return route, nil
}

// Route returns the monitored route, if monitoring has been started.
func (rs *ReminderService) Route() (models.Route, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	if rs.route == nil {
		return models.Route{}, false
	}

	return *rs.route, true
}

// ResetAlerts stops monitoring and re-arms every reminder.
func (rs *ReminderService) ResetAlerts(ctx context.Context) error {
	if err := rs.repo.ResetAlerts(ctx); err != nil {
		return fmt.Errorf("failed to reset alerts: %w", err)
	}

	rs.mu.Lock()
	rs.route = nil
	rs.mu.Unlock()

	rs.log.InfoContext(ctx, "Reminder alerts reset")

	return nil
}
