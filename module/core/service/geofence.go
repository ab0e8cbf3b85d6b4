package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/geodesic"

	"github.com/23f3000115/agency-os/module/core/domain"
)

const earthRadiusMeters = 6371000

type DistanceMethod string

const (
	// MethodWGS84 measures along the WGS-84 ellipsoid.
	MethodWGS84 DistanceMethod = "wgs84"
	// MethodHaversine assumes a sphere; it can differ from WGS-84 by a few meters
	// per kilometer, which matters only right at the radius.
	MethodHaversine DistanceMethod = "haversine"
)

func ParseDistanceMethod(s string) (DistanceMethod, error) {
	switch DistanceMethod(strings.ToLower(strings.TrimSpace(s))) {
	case "", MethodWGS84:
		return MethodWGS84, nil
	case MethodHaversine:
		return MethodHaversine, nil
	}
	return "", fmt.Errorf("unknown distance method %q", s)
}

// Evaluate decides whether reported lies within radiusMeters of office. A nil
// reported coordinate is an unknown location, never inside.
func Evaluate(office domain.Coordinate, radiusMeters float64, reported *domain.Coordinate, method DistanceMethod) (domain.GeofenceResult, error) {
	if math.IsNaN(radiusMeters) || math.IsInf(radiusMeters, 0) || radiusMeters < 0 {
		return domain.GeofenceResult{}, domain.NewValidationError("radius_meters", "must be a non-negative number").Wrap(domain.ErrInvalidRadius)
	}
	if err := office.Validate(); err != nil {
		return domain.GeofenceResult{}, domain.NewValidationError("office", err.Error()).Wrap(domain.ErrInvalidCoordinate)
	}
	if reported == nil {
		return domain.UnknownLocation(), nil
	}
	if err := reported.Validate(); err != nil {
		return domain.GeofenceResult{}, domain.NewValidationError("location", err.Error()).Wrap(domain.ErrInvalidCoordinate)
	}

	var dist float64
	switch method {
	case MethodHaversine:
		dist = haversine(office.Lat, office.Lon, reported.Lat, reported.Lon)
	default:
		dist = wgs84(office.Lat, office.Lon, reported.Lat, reported.Lon)
	}

	// compare before truncating: 100.9m must not pass a 100m radius
	return domain.GeofenceResult{
		Inside:         dist <= radiusMeters,
		DistanceMeters: int(math.Trunc(dist)),
		LocationKnown:  true,
	}, nil
}

func wgs84(lat1, lon1, lat2, lon2 float64) float64 {
	var s12 float64
	geodesic.WGS84.Inverse(lat1, lon1, lat2, lon2, &s12, nil, nil)
	return s12
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// GeofenceService checks reported positions against the configured office.
type GeofenceService struct {
	office domain.Office
	method DistanceMethod
}

func NewGeofenceService(office domain.Office, method DistanceMethod) *GeofenceService {
	return &GeofenceService{office: office, method: method}
}

func (s *GeofenceService) Office() domain.Office {
	return s.office
}

func (s *GeofenceService) Check(reported *domain.Coordinate) (domain.GeofenceResult, error) {
	return Evaluate(s.office.Location, s.office.RadiusMeters, reported, s.method)
}
