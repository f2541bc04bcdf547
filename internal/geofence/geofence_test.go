package geofence_test

import (
	"testing"

	"github.com/UnknownOlympus/beacon/internal/geofence"
	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	theni     = models.Coordinates{Latitude: 10.0104, Longitude: 77.4768}
	andipatti = models.Coordinates{Latitude: 9.9988, Longitude: 77.6210}
	madurai   = models.Coordinates{Latitude: 9.9252, Longitude: 78.1198}
)

func TestDistance(t *testing.T) {
	t.Parallel()

	t.Run("same point", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0, geofence.Distance(madurai, madurai), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, geofence.Distance(theni, madurai), geofence.Distance(madurai, theni), 1e-9)
	})

	t.Run("one degree of latitude at the equator", func(t *testing.T) {
		t.Parallel()
		a := models.Coordinates{Latitude: 0, Longitude: 0}
		b := models.Coordinates{Latitude: 1, Longitude: 0}
		assert.InDelta(t, 110.574, geofence.Distance(a, b), 0.01)
	})

	t.Run("one degree of longitude at the equator", func(t *testing.T) {
		t.Parallel()
		a := models.Coordinates{Latitude: 0, Longitude: 0}
		b := models.Coordinates{Latitude: 0, Longitude: 1}
		assert.InDelta(t, 111.319, geofence.Distance(a, b), 0.01)
	})

	t.Run("equatorial antipodes go over the pole", func(t *testing.T) {
		t.Parallel()
		a := models.Coordinates{Latitude: 0, Longitude: 0}
		b := models.Coordinates{Latitude: 0, Longitude: 180}
		assert.InDelta(t, 20003.93, geofence.Distance(a, b), 0.1)
	})

	t.Run("theni to madurai", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 71.0, geofence.Distance(theni, madurai), 1.0)
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	reminders := []models.Reminder{
		{ID: 1, Name: "Andipatti", Location: andipatti},
		{ID: 2, Name: "Madurai", Location: madurai},
		{ID: 3, Name: "Andipatti again", Location: andipatti, Alerted: true},
		{ID: 4, Name: "Near Andipatti", Location: models.Coordinates{Latitude: 10.0038, Longitude: 77.6210}},
	}

	t.Run("alerts within radius in input order", func(t *testing.T) {
		t.Parallel()
		alerts := geofence.Check(andipatti, reminders, geofence.DefaultRadiusKm)

		require.Len(t, alerts, 2)
		assert.Equal(t, 1, alerts[0].Reminder.ID)
		assert.InDelta(t, 0, alerts[0].DistanceKm, 1e-9)
		assert.Equal(t, 4, alerts[1].Reminder.ID)
		assert.Less(t, alerts[1].DistanceKm, geofence.DefaultRadiusKm)
	})

	t.Run("already alerted reminders are skipped", func(t *testing.T) {
		t.Parallel()
		alerts := geofence.Check(andipatti, reminders[2:3], geofence.DefaultRadiusKm)

		assert.Empty(t, alerts)
	})

	t.Run("nothing in range", func(t *testing.T) {
		t.Parallel()
		alerts := geofence.Check(theni, reminders, geofence.DefaultRadiusKm)

		assert.NotNil(t, alerts)
		assert.Empty(t, alerts)
	})

	t.Run("ellipsoidal distance just inside the radius alerts", func(t *testing.T) {
		t.Parallel()
		origin := models.Coordinates{Latitude: 0, Longitude: 0}
		near := []models.Reminder{{ID: 7, Name: "Equator", Location: models.Coordinates{Latitude: 0.009, Longitude: 0}}}

		alerts := geofence.Check(origin, near, geofence.DefaultRadiusKm)

		require.Len(t, alerts, 1)
		assert.Equal(t, 7, alerts[0].Reminder.ID)
		assert.InDelta(t, 0.995, alerts[0].DistanceKm, 0.001)
	})

	t.Run("larger radius", func(t *testing.T) {
		t.Parallel()
		alerts := geofence.Check(theni, reminders, 20)

		require.Len(t, alerts, 2)
		assert.Equal(t, 1, alerts[0].Reminder.ID)
		assert.Equal(t, 4, alerts[1].Reminder.ID)
	})
}
