package godecor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablor21/godecor/signature"
)

// passthrough forwards every call to the target unchanged
func passthrough(target *Func, in []reflect.Value) []reflect.Value {
	return target.Call(in)
}

func TestDecorate_PreservesSignature(t *testing.T) {
	tests := []struct {
		name   string
		target any
	}{
		{"niladic", func() {}},
		{"one arg one result", func(a int) int { return a }},
		{"multiple args", func(a int, b string, c float64) (string, error) { return b, nil }},
		{"variadic", func(prefix string, rest ...int) int { return len(rest) }},
		{"slices and maps", func(a []string, b map[string]int) []string { return a }},
		{"func arg", func(f func(int) int, v int) int { return f(v) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped, err := Decorate(tt.target, passthrough)
			require.NoError(t, err)

			want := reflect.TypeOf(tt.target)
			got := reflect.TypeOf(wrapped.Interface())
			assert.Equal(t, want, got, "wrapper type must be identical to the target type")
			assert.Equal(t, want.IsVariadic(), got.IsVariadic())

			// the descriptor mirrors the type too
			sig := wrapped.Signature()
			assert.Len(t, sig.Params(), want.NumIn())
			assert.Len(t, sig.Results(), want.NumOut())
			assert.Equal(t, want.IsVariadic(), sig.IsVariadic())
		})
	}
}

func TestDecorate_ForwardsArguments(t *testing.T) {
	calls := 0
	var gotArgs []any

	add := func(a, b int) int { return a + b }

	wrapped, err := Apply(add, func(target *Func, in []reflect.Value) []reflect.Value {
		calls++
		gotArgs = nil
		for _, v := range in {
			gotArgs = append(gotArgs, v.Interface())
		}
		return target.Call(in)
	})
	require.NoError(t, err)

	assert.Equal(t, 7, wrapped(3, 4))
	assert.Equal(t, 1, calls, "caller must be invoked exactly once per call")
	assert.Equal(t, []any{3, 4}, gotArgs)

	assert.Equal(t, -1, wrapped(0, -1))
	assert.Equal(t, 2, calls)
	assert.Equal(t, []any{0, -1}, gotArgs)
}

func TestDecorate_ForwardsVariadic(t *testing.T) {
	join := func(sep string, parts ...string) string {
		out := ""
		for i, p := range parts {
			if i > 0 {
				out += sep
			}
			out += p
		}
		return out
	}

	var sawParts []string
	wrapped, err := Apply(join, func(target *Func, in []reflect.Value) []reflect.Value {
		// variadic arguments arrive collected in the final slice
		sawParts = in[1].Interface().([]string)
		return target.Call(in)
	})
	require.NoError(t, err)

	assert.Equal(t, "a-b-c", wrapped("-", "a", "b", "c"))
	assert.Equal(t, []string{"a", "b", "c"}, sawParts)

	assert.Equal(t, "", wrapped("-"))
	assert.Empty(t, sawParts)
}

func TestDecorate_ReturnValueIsCallers(t *testing.T) {
	double := func(a int) int { return a * 2 }

	wrapped, err := Apply(double, func(target *Func, in []reflect.Value) []reflect.Value {
		out := target.Call(in)
		// the caller decides the result
		return []reflect.Value{reflect.ValueOf(out[0].Interface().(int) + 1)}
	})
	require.NoError(t, err)

	assert.Equal(t, 11, wrapped(5))
}

func TestDecorate_NotFunction(t *testing.T) {
	tests := []struct {
		name   string
		target any
	}{
		{"nil", nil},
		{"int", 42},
		{"struct", struct{}{}},
		{"nil func", (func())(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped, err := Decorate(tt.target, passthrough)
			assert.Nil(t, wrapped)
			assert.ErrorIs(t, err, ErrNotFunction)
		})
	}
}

func TestDecorate_ReservedParameterName(t *testing.T) {
	maker, err := NewFuncMaker(func(a int) int { return a })
	require.NoError(t, err)

	// simulate a target whose declared parameter uses a reserved name
	maker.Signature().Params()[0].SetName(signature.ReservedCall)

	wrapped, err := maker.Make(passthrough)
	assert.Nil(t, wrapped, "no wrapper may be produced on a naming conflict")

	var rerr *ReservedNameError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, signature.ReservedCall, rerr.Name)
}

func TestDecorate_ReservedAttrName(t *testing.T) {
	maker, err := NewFuncMaker(func() {})
	require.NoError(t, err)

	err = maker.SetAttrs(map[string]any{signature.ReservedFunc: "boom"})
	var rerr *ReservedNameError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, signature.ReservedFunc, rerr.Name)
}

func TestDecorate_MetadataIndependence(t *testing.T) {
	target := func(a int) int { return a }

	maker, err := NewFuncMaker(target)
	require.NoError(t, err)
	require.NoError(t, maker.SetAttrs(map[string]any{"color": "red"}))

	first, err := maker.Make(passthrough)
	require.NoError(t, err)

	// mutating the wrapper's attribute bag is not observed on later wrappers
	first.Info().Attrs["color"] = "blue"

	second, err := maker.Make(passthrough)
	require.NoError(t, err)
	assert.Equal(t, "red", second.Info().Attrs["color"])

	// each wrapper carries its own identity and the back-reference
	assert.NotEqual(t, first.Info().ID, second.Info().ID)
	assert.NotNil(t, first.Unwrap())
}

func TestDecorate_DescriptorIndependence(t *testing.T) {
	maker, err := NewFuncMaker(func(a int) int { return a })
	require.NoError(t, err)

	first, err := maker.Make(passthrough)
	require.NoError(t, err)

	// upgrading one wrapper's descriptor is not observed on later wrappers
	first.Signature().Params()[0].SetName("mutated")
	first.Signature().Params()[0].WithDefault(9)

	second, err := maker.Make(passthrough)
	require.NoError(t, err)
	assert.Equal(t, "arg0", second.Signature().Params()[0].Name())
	assert.False(t, second.Signature().Params()[0].HasDefault())

	// the maker's own descriptor is untouched too
	assert.Equal(t, "arg0", maker.Signature().Params()[0].Name())
	assert.NotSame(t, first.Signature(), second.Signature())
}

func TestDecorate_WrapperMetadata(t *testing.T) {
	wrapped, err := Decorate(namedTarget, passthrough)
	require.NoError(t, err)

	info := wrapped.Info()
	assert.Equal(t, "namedTarget", info.Name)
	assert.Equal(t, "github.com/pablor21/godecor", info.Package)

	// the attribute bag holds the generator's closure entries
	assert.NotNil(t, info.Attrs[signature.ReservedFunc])
	assert.NotNil(t, info.Attrs[signature.ReservedCall])
}

func namedTarget(a, b string) string { return a + b }

func TestDecorator_Factory(t *testing.T) {
	calls := 0
	dec := Decorator(func(target *Func, in []reflect.Value) []reflect.Value {
		calls++
		return target.Call(in)
	})

	first, err := dec(func(a int) int { return a })
	require.NoError(t, err)
	second, err := dec(func(s string) string { return s })
	require.NoError(t, err)

	assert.Equal(t, 1, Typed[func(int) int](first)(1))
	assert.Equal(t, "x", Typed[func(string) string](second)("x"))
	assert.Equal(t, 2, calls)
}

func TestDecoratorFor_Typed(t *testing.T) {
	dec := DecoratorFor[func(int) int](passthrough)

	wrapped, err := dec(func(a int) int { return a * 3 })
	require.NoError(t, err)
	assert.Equal(t, 9, wrapped(3))
}

func TestDecorate_ConcurrentWrapping(t *testing.T) {
	target := func(a int) int { return a }

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				wrapped, err := Apply(target, passthrough)
				if err != nil || wrapped(j) != j {
					t.Error("concurrent decorate produced a broken wrapper")
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
