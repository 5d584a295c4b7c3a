package godecor

import (
	"fmt"
	"reflect"

	"github.com/pablor21/godecor/signature"
)

// Func couples a Go function value with its signature descriptor and
// metadata. For wrappers produced by Decorate the function value has the
// exact same type as the original target, so the wrapper is indistinguishable
// from it at the call site.
type Func struct {
	value reflect.Value
	sig   *signature.Func
	info  *FuncInfo
}

// Interface returns the plain function value, assignable to the original
// target's type
func (f *Func) Interface() any {
	return f.value.Interface()
}

// Value returns the underlying reflect value
func (f *Func) Value() reflect.Value {
	return f.value
}

// Signature returns the signature descriptor
func (f *Func) Signature() *signature.Func {
	return f.sig
}

// Info returns the callable metadata
func (f *Func) Info() *FuncInfo {
	return f.info
}

// Unwrap returns the original callable this wrapper was generated from,
// nil if f is not a wrapper
func (f *Func) Unwrap() any {
	if f.info == nil {
		return nil
	}
	return f.info.Wrapped
}

func (f *Func) Name() string {
	if f.info != nil && f.info.Name != "" {
		return f.info.Name
	}
	return f.sig.Name()
}

func (f *Func) String() string {
	return f.sig.String()
}

// Call invokes the function. For variadic functions the final argument may
// arrive either expanded or already collected into a slice (the form the
// wrapper's interceptor receives it in); both are forwarded correctly.
func (f *Func) Call(in []reflect.Value) []reflect.Value {
	t := f.value.Type()
	if t.IsVariadic() && len(in) == t.NumIn() {
		last := in[len(in)-1]
		if last.Kind() == reflect.Slice && last.Type().AssignableTo(t.In(t.NumIn()-1)) {
			return f.value.CallSlice(in)
		}
	}
	return f.value.Call(in)
}

// CallSlice invokes a variadic function with the final slice argument left
// unexpanded, like reflect.Value.CallSlice
func (f *Func) CallSlice(in []reflect.Value) []reflect.Value {
	return f.value.CallSlice(in)
}

// CallNamed binds arguments by declared parameter name, fills descriptor
// defaults for missing ones, and invokes the function. Unknown names and
// missing required parameters are binding errors, mirroring the binding
// rules a call against the declared parameter list would enforce.
func (f *Func) CallNamed(kwargs map[string]any) ([]any, error) {
	t := f.value.Type()
	params := f.sig.Params()

	for name := range kwargs {
		if f.sig.Param(name) == nil {
			return nil, &BindingError{Func: f.Name(), Reason: fmt.Sprintf("unknown argument %q", name)}
		}
	}

	in := make([]reflect.Value, 0, len(params))
	for i, p := range params {
		want := p.Type()
		if want == nil && i < t.NumIn() {
			want = t.In(i)
		}

		value, supplied := kwargs[p.Name()]
		if !supplied {
			switch {
			case p.HasDefault():
				value = p.Default()
			case p.IsVariadic():
				// no variadic arguments
				in = append(in, reflect.MakeSlice(want, 0, 0))
				continue
			default:
				return nil, &BindingError{Func: f.Name(), Reason: fmt.Sprintf("missing argument %q", p.Name())}
			}
		}

		rv, err := bindValue(f.Name(), p.Name(), value, want)
		if err != nil {
			return nil, err
		}
		in = append(in, rv)
	}

	out := f.Call(in)
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}

// bindValue converts one named argument to the parameter's type
func bindValue(fn string, param string, value any, want reflect.Type) (reflect.Value, error) {
	if value == nil {
		if want == nil {
			return reflect.Value{}, &BindingError{Func: fn, Reason: fmt.Sprintf("cannot bind nil to %q without type information", param)}
		}
		switch want.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, &BindingError{Func: fn, Reason: fmt.Sprintf("cannot bind nil to non-nilable parameter %q", param)}
		}
	}

	rv := reflect.ValueOf(value)
	if want == nil || rv.Type() == want || rv.Type().AssignableTo(want) {
		if want != nil && want.Kind() == reflect.Interface && rv.Type() != want {
			converted := reflect.New(want).Elem()
			converted.Set(rv)
			return converted, nil
		}
		return rv, nil
	}
	if rv.Type().ConvertibleTo(want) {
		return rv.Convert(want), nil
	}
	return reflect.Value{}, &BindingError{Func: fn, Reason: fmt.Sprintf("argument %q has type %s, want %s", param, rv.Type(), want)}
}

// Typed returns the wrapper as its concrete function type. It panics if T
// does not match, exactly as an ordinary failed type assertion would.
func Typed[T any](f *Func) T {
	return f.Interface().(T)
}
