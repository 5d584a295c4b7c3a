package godecor

import (
	"errors"
	"fmt"
)

// ErrNotFunction is returned when a wrap target cannot be introspected
// (it is nil, or not a function value)
var ErrNotFunction = errors.New("godecor: target is not an introspectable function")

// ReservedNameError is returned when a target declares a parameter or
// attribute whose name is reserved by the wrapper generator
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("godecor: %q is a reserved name", e.Name)
}

// BindingError is returned by named-argument calls when the supplied
// arguments cannot be bound against the declared parameter list
type BindingError struct {
	Func   string
	Reason string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("godecor: cannot bind arguments of %s: %s", e.Func, e.Reason)
}
