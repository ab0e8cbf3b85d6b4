package domain

import (
	"fmt"
	"math"
)

// UnknownDistanceMeters is reported when no location was supplied, so callers can
// tell "unknown" apart from "far but known".
const UnknownDistanceMeters = 9999

type Coordinate struct {
	Lat float64 `json:"latitude" yaml:"lat"`
	Lon float64 `json:"longitude" yaml:"lon"`
}

// NewCoordinate returns nil when either component is missing.
func NewCoordinate(lat, lon *float64) *Coordinate {
	if lat == nil || lon == nil {
		return nil
	}
	return &Coordinate{Lat: *lat, Lon: *lon}
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinate, c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinate, c.Lon)
	}
	return nil
}

type Office struct {
	Name         string     `json:"name" yaml:"name"`
	Location     Coordinate `json:"location" yaml:"location"`
	RadiusMeters float64    `json:"radius_meters" yaml:"radius_meters"`
}

type GeofenceResult struct {
	Inside         bool `json:"inside"`
	DistanceMeters int  `json:"distance_meters"`
	LocationKnown  bool `json:"location_known"`
}

func UnknownLocation() GeofenceResult {
	return GeofenceResult{Inside: false, DistanceMeters: UnknownDistanceMeters}
}

// DisplayDistance renders the distance the way the time clock shows it.
func (r GeofenceResult) DisplayDistance() string {
	if r.DistanceMeters > 1000 {
		return fmt.Sprintf("%.1f km", float64(r.DistanceMeters)/1000)
	}
	return fmt.Sprintf("%d m", r.DistanceMeters)
}
