package models

// Coordinates represents a geographical point defined by its latitude and longitude in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}

// Position is a fix reported by a geolocation capability.
// Coords is nested the same way host positions nest it under "coords".
type Position struct {
	Coords   Coordinates // Coords holds the reported point.
	Accuracy float64     // Accuracy radius in meters, zero when the capability does not know it.
}
