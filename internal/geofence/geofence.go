// Package geofence decides which reminders are close enough to the current position to alert on.
package geofence

import (
	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/tidwall/geodesic"
)

// DefaultRadiusKm is the distance below which a reminder raises an alert.
const DefaultRadiusKm = 1.0

const metersPerKm = 1000

// Distance returns the geodesic distance between a and b on the WGS-84 ellipsoid in kilometers.
func Distance(a, b models.Coordinates) float64 {
	var meters float64
	geodesic.WGS84.Inverse(a.Latitude, a.Longitude, b.Latitude, b.Longitude, &meters, nil, nil)

	return meters / metersPerKm
}

// Check returns an alert for every reminder that has not alerted yet and lies within radiusKm
// of current, in the order of reminders. It does not modify the reminders.
func Check(current models.Coordinates, reminders []models.Reminder, radiusKm float64) []models.Alert {
	alerts := []models.Alert{}
	for _, rem := range reminders {
		if rem.Alerted {
			continue
		}
		dist := Distance(current, rem.Location)
		if dist <= radiusKm {
			alerts = append(alerts, models.Alert{Reminder: rem, DistanceKm: dist})
		}
	}

	return alerts
}
