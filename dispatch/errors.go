package dispatch

import (
	"fmt"
	"reflect"
	"strings"
)

// NoImplementationError is returned when no registered type tuple matches
// the runtime types of the arguments and the generic function has no default
// body
type NoImplementationError struct {
	Name  string
	Types []reflect.Type
}

func (e *NoImplementationError) Error() string {
	names := make([]string, len(e.Types))
	for i, t := range e.Types {
		names[i] = t.String()
	}
	return fmt.Sprintf("dispatch: %s is not implemented for (%s)", e.Name, strings.Join(names, ", "))
}

// AmbiguousError is returned when a concrete type satisfies two registered
// virtual ancestors that are not ordered with respect to each other
type AmbiguousError struct {
	Name   string
	Type   reflect.Type
	First  reflect.Type
	Second reflect.Type
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("dispatch: ambiguous dispatch of %s for %s: %s or %s?", e.Name, e.Type, e.First, e.Second)
}

// ArityError is returned when the number of types or arguments does not
// match the generic function's dispatch arity
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("dispatch: %s expects %d dispatch arguments, got %d", e.Name, e.Want, e.Got)
}
