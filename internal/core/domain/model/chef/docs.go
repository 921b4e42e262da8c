// Package chef models the selling side of the marketplace as the order core
// sees it: the gates an order must pass at creation (active, verified,
// payment-onboarded, minimum order) and the menu items whose prices get
// snapshotted onto orders. Chef CRUD and profile management live outside the
// core and are not modeled here.
package chef
