// Package georoute estimates travel locally from great-circle distance,
// assuming an average urban courier speed of 20 km/h.
package georoute

import (
	"context"
	"math"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/ports"
)

const minutesPerKm = 3.0

// Planner implements ports.RoutePlanner without external calls.
type Planner struct{}

func NewPlanner() *Planner {
	return &Planner{}
}

func (p *Planner) DistanceAndETA(_ context.Context, from, to kernel.GeoPoint) (ports.Route, error) {
	distance, err := from.DistanceKm(to)
	if err != nil {
		return ports.Route{}, err
	}
	return ports.Route{
		DistanceKm: distance,
		Minutes:    int(math.Ceil(distance * minutesPerKm)),
	}, nil
}
