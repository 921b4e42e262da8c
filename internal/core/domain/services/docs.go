// Package services provides domain services that implement business logic
// spanning multiple aggregates.
//
// The package includes:
//   - CommissionPolicy: pure money-split arithmetic for order creation and
//     proportional refund splitting
//   - DispatchMatcher: eligibility filtering and distance ranking of drivers
//     for a ready order, plus the pickup ETA policy
//
// Both services are pure over their inputs; loading aggregates and persisting
// outcomes belong to the application layer.
package services
