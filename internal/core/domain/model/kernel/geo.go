package kernel

import (
	"errors"
	"fmt"
	"math"

	"mealmarket/internal/pkg/errs"
	"mealmarket/internal/pkg/guard"
)

const (
	// MinLatitude and MaxLatitude bound valid latitude values in degrees.
	MinLatitude float64 = -90
	MaxLatitude float64 = 90
	// MinLongitude and MaxLongitude bound valid longitude values in degrees.
	MinLongitude float64 = -180
	MaxLongitude float64 = 180

	// earthRadiusKm is the fixed Earth radius used for great-circle distance.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. Points must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic coordinate with validated latitude and
// longitude. GeoPoint is an immutable value object; the zero value is invalid
// and fails validation.
//
// Example:
//
//	pickup, err := kernel.NewGeoPoint(40.7128, -74.0060)
//	if err != nil {
//	    // handle validation error
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the specified coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks if the GeoPoint was properly constructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// String returns "GeoPoint(lat,lng)". Implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceKm calculates the great-circle distance to another point in
// kilometers using the haversine formula with a fixed Earth radius of 6371 km.
// Both points must be properly constructed.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - p.lat) * math.Pi / 180
	dLng := (other.lng - p.lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// setLat sets the latitude with range validation.
// Pointer receiver is intentional for self-encapsulated construction.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

// setLng sets the longitude with range validation.
func (p *GeoPoint) setLng(lng float64) error {
	if lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, MinLongitude, MaxLongitude)
	}

	p.lng = lng
	return nil
}
