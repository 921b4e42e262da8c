// Package driver models the delivery fleet: the Driver aggregate with the
// eligibility state dispatch filters on (availability, verification, known
// location) and the Assignment entity representing a proposed driver-order
// pairing pending the driver's confirmation.
package driver
