// Package order provides the Order aggregate root and its status state graph.
//
// The package includes:
//   - Status: the static transition table every component consults
//   - Order: the aggregate managing identity, money snapshot, driver
//     reservation, and the append-only status history
//   - Item: order lines with prices snapshotted at order time
//   - Breakdown: the persisted money split computed at creation
//   - HistoryEntry: one audit row per accepted transition
//
// Key business rules:
//   - Orders start in PENDING and move only along the state graph's edges
//   - DELIVERED and REFUNDED are terminal
//   - Money fields are a creation-time snapshot; later fee-rate changes never
//     retroactively alter an existing order
//   - Actor authorization is enforced per operation: chefs act on their own
//     orders, drivers on orders assigned to them, customers within their
//     cancellation window
package order
