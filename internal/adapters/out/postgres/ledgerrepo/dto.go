// Package ledgerrepo persists the append-only earnings ledger. Rows are only
// ever inserted; corrections arrive as reversing entries with negated
// amounts.
package ledgerrepo

import (
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// EntryDTO is the database row for one ledger entry. ActorID is null for
// platform entries.
type EntryDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index"`
	ActorType   string     `gorm:"index"`
	ActorID     *uuid.UUID `gorm:"type:uuid;index"`
	Kind        string
	AmountCents int64
	CreatedAt   time.Time
}

// TableName maps the DTO to the "ledger_entries" table.
func (EntryDTO) TableName() string {
	return "ledger_entries"
}

func fromDomain(entry *ledger.Entry) EntryDTO {
	var actorID *uuid.UUID
	if id := entry.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return EntryDTO{
		ID:          entry.ID().Bytes(),
		OrderID:     entry.OrderID().Bytes(),
		ActorType:   string(entry.ActorType()),
		ActorID:     actorID,
		Kind:        string(entry.Kind()),
		AmountCents: entry.AmountCents(),
		CreatedAt:   entry.CreatedAt(),
	}
}

func toDomain(dto EntryDTO) (*ledger.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		aID, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actorID = &aID
	}

	return ledger.RestoreEntry(
		id, orderID,
		ledger.ActorType(dto.ActorType),
		actorID,
		ledger.EntryKind(dto.Kind),
		dto.AmountCents,
		dto.CreatedAt,
	)
}
