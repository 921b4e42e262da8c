package queries

import (
	"context"
	"math"
	"sort"

	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DriversNearQueryHandler finds dispatchable drivers near a point. A raw SQL
// pass narrows the fleet to a bounding box around the search center; the
// exact great-circle distance and radius cut happen in Go on the survivors.
type DriversNearQueryHandler struct {
	db *gorm.DB
}

// NewDriversNearQueryHandler creates a handler for driver proximity queries.
func NewDriversNearQueryHandler(db *gorm.DB) DriversNearQueryHandler {
	return DriversNearQueryHandler{db: db}
}

// Handle executes the query. Results come back closest first, distance ties
// broken by descending rating, capped at the query limit.
func (h DriversNearQueryHandler) Handle(
	ctx context.Context, query DriversNearQuery,
) ([]DriversNearQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	// One degree of latitude is about 111 km. A degree of longitude shrinks
	// by cos(lat) toward the poles, so the longitude window widens by the
	// inverse to stay a superset of the radius; the cosine is clamped to
	// keep the window finite near the poles.
	latDegrees := query.RadiusKm()/111.0 + 0.01
	cosLat := math.Cos(query.Point().Lat() * math.Pi / 180)
	if cosLat < 0.1 {
		cosLat = 0.1
	}
	lngDegrees := latDegrees / cosLat

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			location_lat,
			location_lng,
			rating
		FROM drivers
		WHERE available = TRUE
		  AND verification_status = ?
		  AND location_lat BETWEEN ? AND ?
		  AND location_lng BETWEEN ? AND ?
	`,
		string(driver.VerificationApproved),
		query.Point().Lat()-latDegrees, query.Point().Lat()+latDegrees,
		query.Point().Lng()-lngDegrees, query.Point().Lng()+lngDegrees,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]DriversNearQueryResponse, 0)
	for rows.Next() {
		var (
			id       uuid.UUID
			name     string
			lat, lng float64
			rating   float64
		)
		if err = rows.Scan(&id, &name, &lat, &lng, &rating); err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		location, locErr := kernel.NewGeoPoint(lat, lng)
		if locErr != nil {
			return nil, locErr
		}
		distance, distErr := location.DistanceKm(query.Point())
		if distErr != nil {
			return nil, distErr
		}
		if distance > query.RadiusKm() {
			continue
		}

		drivers = append(drivers, DriversNearQueryResponse{
			ID:         driverID,
			Name:       name,
			Location:   location,
			Rating:     rating,
			DistanceKm: distance,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(drivers, func(i, j int) bool {
		if drivers[i].DistanceKm != drivers[j].DistanceKm {
			return drivers[i].DistanceKm < drivers[j].DistanceKm
		}
		return drivers[i].Rating > drivers[j].Rating
	})

	if len(drivers) > query.Limit() {
		drivers = drivers[:query.Limit()]
	}

	return drivers, nil
}
