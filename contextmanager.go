package godecor

import (
	"reflect"
)

// Acquire opens a scoped resource and returns its release function.
// Release must be safe to call exactly once.
type Acquire func() (release func(), err error)

// ContextManager bridges an acquire/release pair into something that is
// simultaneously usable as a scoped block (With) and as a
// signature-preserving decorator: decorating a function is equivalent to
// wrapping its entire body in the scoped block. Release runs on every exit
// path, including panics propagating out of the body.
type ContextManager struct {
	acquire Acquire
}

func NewContextManager(acquire Acquire) *ContextManager {
	return &ContextManager{acquire: acquire}
}

// With runs body inside the scope
func (cm *ContextManager) With(body func() error) error {
	release, err := cm.acquire()
	if err != nil {
		return err
	}
	defer release()
	return body()
}

// Caller returns the caller-function form of the scope, usable with
// Decorate or Decorator. Acquisition failure aborts the call with a panic,
// since the wrapped function's own results cannot express it.
func (cm *ContextManager) Caller() Caller {
	return func(target *Func, in []reflect.Value) []reflect.Value {
		release, err := cm.acquire()
		if err != nil {
			panic(err)
		}
		defer release()
		return target.Call(in)
	}
}

// Decorate wraps target so that every call runs inside the scope
func (cm *ContextManager) Decorate(target any) (*Func, error) {
	return Decorate(target, cm.Caller())
}

// Wrap is the typed form of Decorate
func Wrap[T any](cm *ContextManager, target T) (T, error) {
	return Apply(target, cm.Caller())
}
