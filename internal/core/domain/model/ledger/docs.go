// Package ledger holds the append-only earnings ledger. Settlement on
// delivery writes one credit per party (chef earning, driver earning,
// platform fee) and refunds of settled orders write matching reversals.
package ledger
