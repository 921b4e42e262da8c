package queries

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrDriversNearQueryIsNotConstructed = errors.New(
	"DriversNearQuery must be created via NewDriversNearQuery constructor",
)

// DefaultDriversNearRadiusKm bounds the search when the caller does not
// specify a radius.
const DefaultDriversNearRadiusKm = 10.0

// DefaultDriversNearLimit caps the result to bound matching cost when the
// caller does not specify a limit.
const DefaultDriversNearLimit = 20

// DriversNearQuery retrieves dispatchable drivers near a point, closest
// first. Dispatch tooling and the manual assignment flow use it to preview
// candidates.
type DriversNearQuery struct {
	point    kernel.GeoPoint
	radiusKm float64
	limit    int

	guard guard.ConstructorGuard
}

// NewDriversNearQuery creates a proximity query. A radius of zero or less
// falls back to DefaultDriversNearRadiusKm; a limit of zero or less falls
// back to DefaultDriversNearLimit.
func NewDriversNearQuery(point kernel.GeoPoint, radiusKm float64, limit int) (DriversNearQuery, error) {
	if err := point.Validate(); err != nil {
		return DriversNearQuery{}, err
	}
	if radiusKm <= 0 {
		radiusKm = DefaultDriversNearRadiusKm
	}
	if limit <= 0 {
		limit = DefaultDriversNearLimit
	}

	return DriversNearQuery{
		point:    point,
		radiusKm: radiusKm,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q DriversNearQuery) Validate() error {
	return q.guard.Validate(ErrDriversNearQueryIsNotConstructed)
}

// Point returns the search center.
func (q DriversNearQuery) Point() kernel.GeoPoint { return q.point }

// RadiusKm returns the search radius.
func (q DriversNearQuery) RadiusKm() float64 { return q.radiusKm }

// Limit returns the maximum number of drivers to return.
func (q DriversNearQuery) Limit() int { return q.limit }

// DriversNearQueryResponse is one nearby driver with its distance to the
// search center.
type DriversNearQueryResponse struct {
	ID         kernel.UUID
	Name       string
	Location   kernel.GeoPoint
	Rating     float64
	DistanceKm float64
}
