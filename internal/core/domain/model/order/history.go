package order

import (
	"time"

	"mealmarket/internal/core/domain/model/kernel"
)

// HistoryEntry is one row of the append-only status audit log: exactly one per
// accepted transition, never mutated or deleted. Entries are strictly ordered
// per order by Seq, which the aggregate increments on every transition.
type HistoryEntry struct {
	// Seq is the per-order logical clock; each new entry's Seq exceeds the prior.
	Seq int
	// From is empty for the creation entry, otherwise the previous status.
	From Status
	// To is the status the order entered.
	To Status
	// ActorID identifies who requested the transition; nil for system actions.
	ActorID *kernel.UUID
	// ActorRole names the requesting party: customer, chef, driver, admin, system.
	ActorRole string
	// Note carries a free-form reason (rejection reason, cancel reason).
	Note string
	// At is when the transition was accepted.
	At time.Time
}
