package services

import (
	"errors"
	"sort"

	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/kernel"
)

// ErrNoDriversInRadius is returned when no dispatchable driver exists within
// the search radius. Callers surface this as NotFound rather than retrying,
// since the fleet state will not change within the request.
var ErrNoDriversInRadius = errors.New("no drivers in radius")

// DefaultCandidateLimit caps the ranked candidate list to bound matching
// cost. Callers must not assume every eligible driver is returned.
const DefaultCandidateLimit = 20

// Candidate is a dispatchable driver paired with its distance to a pickup
// point, produced by the matcher's ranking.
type Candidate struct {
	Driver     *driver.Driver
	DistanceKm float64
}

// DispatchMatcher is a domain service that ranks drivers for a ready order.
// It is pure over the fleet snapshot it is given; loading drivers and
// persisting the chosen assignment are the caller's responsibility.
type DispatchMatcher struct{}

// NewDispatchMatcher creates a new DispatchMatcher instance.
func NewDispatchMatcher() DispatchMatcher {
	return DispatchMatcher{}
}

// RankCandidates filters the fleet snapshot down to dispatchable drivers
// within radiusKm of pickup and orders them by ascending distance, ties
// broken by descending rating. The result is capped at limit; a limit of
// zero or less falls back to DefaultCandidateLimit.
func (m DispatchMatcher) RankCandidates(
	pickup kernel.GeoPoint,
	fleet []*driver.Driver,
	radiusKm float64,
	limit int,
) ([]Candidate, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	candidates := make([]Candidate, 0, len(fleet))
	for _, d := range fleet {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if !d.IsDispatchable() {
			continue
		}

		distance, err := d.Location().DistanceKm(pickup)
		if err != nil {
			return nil, err
		}
		if distance > radiusKm {
			continue
		}

		candidates = append(candidates, Candidate{Driver: d, DistanceKm: distance})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DistanceKm != candidates[j].DistanceKm {
			return candidates[i].DistanceKm < candidates[j].DistanceKm
		}
		return candidates[i].Driver.Rating() > candidates[j].Driver.Rating()
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

// BestCandidate returns the top-ranked candidate for the pickup point, or
// ErrNoDriversInRadius when the radius holds no dispatchable driver.
func (m DispatchMatcher) BestCandidate(
	pickup kernel.GeoPoint,
	fleet []*driver.Driver,
	radiusKm float64,
) (Candidate, error) {
	candidates, err := m.RankCandidates(pickup, fleet, radiusKm, 1)
	if err != nil {
		return Candidate{}, err
	}
	if len(candidates) == 0 {
		return Candidate{}, ErrNoDriversInRadius
	}
	return candidates[0], nil
}
