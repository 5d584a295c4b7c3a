package godecor

import (
	"fmt"
	"reflect"

	"github.com/pablor21/godecor/inspect"
	"github.com/pablor21/godecor/signature"
)

// Caller is the user supplied function every invocation of a wrapper is
// routed through. It receives the original target and the exact argument
// values the caller of the wrapper supplied; its results become the
// wrapper's results. For variadic targets the variadic arguments arrive
// collected into the final slice element of in.
type Caller func(target *Func, in []reflect.Value) []reflect.Value

// Decorate wraps target with caller. The wrapper's function type is
// observably identical to the target's; call Interface (or Typed) on the
// result to obtain it as a plain function.
func Decorate(target any, caller Caller) (*Func, error) {
	maker, err := NewFuncMaker(target)
	if err != nil {
		return nil, err
	}
	return maker.Make(caller)
}

// DecorateWithConfig is Decorate plus source-level introspection: when the
// config enables inspection, the wrapper's descriptor is upgraded with the
// declared parameter names, documentation and annotations of the target.
func DecorateWithConfig(config *Config, target any, caller Caller) (*Func, error) {
	if config == nil {
		return Decorate(target, caller)
	}

	maker, err := NewFuncMaker(target)
	if err != nil {
		return nil, err
	}

	if config.Inspect != inspect.ModeNone {
		src, err := inspect.Source(target, config.Inspect)
		if err != nil {
			return nil, fmt.Errorf("godecor: cannot introspect %s: %w", maker.Signature().QualName(), err)
		}
		mergeSource(maker, src)
	}

	return maker.Make(caller)
}

// mergeSource copies declared names, docs and annotations from a
// source-level descriptor onto the maker's runtime one
func mergeSource(maker *FuncMaker, src *signature.Func) {
	sig := maker.Signature()
	for i, p := range src.Params() {
		if i >= len(sig.Params()) {
			break
		}
		if p.Name() != "" {
			sig.Params()[i].SetName(p.Name())
		}
		if p.HasDefault() {
			sig.Params()[i].WithDefault(p.Default())
		}
	}
	if src.Doc() != "" {
		maker.SetDoc(src.Doc())
	}
	if src.Annotations() != nil {
		maker.SetAnnotations(src.Annotations())
		for name, value := range src.Annotations() {
			sig.SetAnnotation(name, value)
		}
	}
}

// Apply is the typed form of Decorate: the wrapper comes back as the same
// concrete function type as the target.
func Apply[T any](target T, caller Caller) (T, error) {
	var zero T
	f, err := Decorate(target, caller)
	if err != nil {
		return zero, err
	}
	return Typed[T](f), nil
}

// MustApply is Apply for use sites where a construction error is a bug
func MustApply[T any](target T, caller Caller) T {
	wrapped, err := Apply(target, caller)
	if err != nil {
		panic(err)
	}
	return wrapped
}

// Decorator converts a caller function into a reusable decorator, so the
// same interception logic can be applied to many targets without repeating
// the Decorate boilerplate.
func Decorator(caller Caller) func(target any) (*Func, error) {
	return func(target any) (*Func, error) {
		return Decorate(target, caller)
	}
}

// DecoratorFor is the typed form of Decorator for a fixed function type
func DecoratorFor[T any](caller Caller) func(target T) (T, error) {
	return func(target T) (T, error) {
		return Apply(target, caller)
	}
}
