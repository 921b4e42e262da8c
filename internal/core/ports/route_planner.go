package ports

import (
	"context"

	"mealmarket/internal/core/domain/model/kernel"
)

// Route is a distance/duration estimate between two points.
type Route struct {
	DistanceKm float64
	Minutes    int
}

// RoutePlanner estimates travel between two points. The default adapter
// computes great-circle distance locally; an external routing service can be
// substituted without touching callers.
type RoutePlanner interface {
	DistanceAndETA(ctx context.Context, from, to kernel.GeoPoint) (Route, error)
}
