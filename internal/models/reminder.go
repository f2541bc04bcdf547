package models

import "time"

// Reminder is a named place the user wants to be alerted about when approaching it.
type Reminder struct {
	ID        int         `json:"id"`         // ID is the unique identifier for the reminder.
	Name      string      `json:"name"`       // Name is the address the reminder was created from.
	Location  Coordinates `json:"location"`   // Location is the geocoded point of the reminder.
	Alerted   bool        `json:"alerted"`    // Alerted is set once the user came within the alert radius.
	CreatedAt time.Time   `json:"created_at"` // CreatedAt is the time the reminder was stored.
}

// Alert reports that the current position is within the alert radius of a reminder.
type Alert struct {
	Reminder   Reminder `json:"reminder"`
	DistanceKm float64  `json:"distance_km"`
}

// Route is the journey being monitored, from a geocoded start to a geocoded destination.
type Route struct {
	StartName       string      `json:"start_name"`
	Start           Coordinates `json:"start"`
	DestinationName string      `json:"destination_name"`
	Destination     Coordinates `json:"destination"`
}
