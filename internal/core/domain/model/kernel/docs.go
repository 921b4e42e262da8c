// Package kernel provides the shared value objects used across the domain
// model: validated UUIDs for entity identity and geographic points with
// great-circle distance computation.
//
// All kernel types follow the constructor guard pattern: the zero value is
// invalid, construction goes through factory functions, and Validate detects
// instances that bypassed them.
package kernel
