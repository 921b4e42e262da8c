// Package outbox holds the transactional outbox record. State changes that
// need external side effects (notifications, refunds) write a message in the
// same transaction; a background relay executes pending messages later.
package outbox
