// Package guard provides a zero-value detector for commands and value
// objects. It distinguishes objects created through their designated
// constructor from accidental zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// passed as the validation error, so that validation always fails with a
// meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and commands are only created through
// their designated constructor functions. Embedding a ConstructorGuard in a
// struct makes zero-value instances detectable: the internal flag is only set
// when the object is built via NewConstructorGuard.
//
// Example usage:
//
//	var ErrFeeNotConstructed = errors.New("Fee must be created via NewFee")
//
//	type Fee struct {
//	    amount float64
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewFee(amount float64) (Fee, error) {
//	    if amount < 0 {
//	        return Fee{}, errors.New("amount cannot be negative")
//	    }
//	    return Fee{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (f Fee) Validate() error {
//	    return f.guard.Validate(ErrFeeNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was created through its
// constructor. For zero-value instances it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
