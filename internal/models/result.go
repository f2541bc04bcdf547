package models

import (
	"encoding/json"
	"errors"
)

// Result is the outcome of a single location lookup.
// It holds either a pair of coordinates or an error message, never both.
type Result struct {
	coords *Coordinates
	err    string
}

// ErrInvalidResult is returned when decoding JSON that holds neither or both result variants.
var ErrInvalidResult = errors.New("result must hold either coordinates or an error")

// Located creates a successful Result.
func Located(coords Coordinates) Result {
	return Result{coords: &coords}
}

// Failed creates an error Result with a human-readable message.
func Failed(message string) Result {
	return Result{err: message}
}

// Coordinates returns the located point and true, or false for an error result.
func (r Result) Coordinates() (Coordinates, bool) {
	if r.coords == nil {
		return Coordinates{}, false
	}
	return *r.coords, true
}

// Err returns the error message and true, or false for a located result.
func (r Result) Err() (string, bool) {
	if r.coords != nil {
		return "", false
	}
	return r.err, true
}

// OK reports whether the result holds coordinates.
func (r Result) OK() bool {
	return r.coords != nil
}

type resultJSON struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Error     *string  `json:"error,omitempty"`
}

// MarshalJSON encodes the result in its flat form:
// {"latitude":..,"longitude":..} or {"error":".."}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.coords != nil {
		lat, lon := r.coords.Latitude, r.coords.Longitude
		return json.Marshal(resultJSON{Latitude: &lat, Longitude: &lon})
	}
	msg := r.err
	return json.Marshal(resultJSON{Error: &msg})
}

// UnmarshalJSON decodes the flat form produced by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	hasCoords := raw.Latitude != nil && raw.Longitude != nil
	switch {
	case hasCoords && raw.Error == nil:
		*r = Located(Coordinates{Latitude: *raw.Latitude, Longitude: *raw.Longitude})
	case !hasCoords && raw.Latitude == nil && raw.Longitude == nil && raw.Error != nil:
		*r = Failed(*raw.Error)
	default:
		return ErrInvalidResult
	}

	return nil
}
