// Package guard provides the constructor guard pattern used by domain value
// objects and commands to detect zero-value instances that bypassed their
// constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied for a zero-value guard.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it in a
// struct and set it via NewConstructorGuard inside the constructor; the zero
// value fails Validate, so structs instantiated directly are detectable.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns err, or ErrDefaultConstructorGuard when err is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
