// Package godecor builds signature-preserving function wrappers. A wrapper
// produced by Decorate has exactly the same function type as its target and
// routes every invocation through a user supplied caller, which decides
// whether and how to invoke the target. See also the dispatch subpackage for
// multiple dispatch on argument types.
package godecor

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/pablor21/godecor/signature"
)

// FuncMaker assembles signature-preserving wrappers for one target: it
// collects the target's signature descriptor and metadata, validates the
// generator's naming invariants, and produces the wrapper function via
// reflect.MakeFunc. The expensive part (introspection, validation, metadata
// copy) happens once at make time, never per call.
type FuncMaker struct {
	target reflect.Value
	sig    *signature.Func
	info   *FuncInfo
}

// NewFuncMaker introspects target and prepares a maker for it. The target
// must be a non-nil function value, anything else fails with ErrNotFunction.
func NewFuncMaker(target any) (*FuncMaker, error) {
	if target == nil {
		return nil, ErrNotFunction
	}
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, ErrNotFunction
	}

	sig, err := signature.FromValue(target)
	if err != nil {
		return nil, ErrNotFunction
	}

	info := &FuncInfo{
		Name:     sig.Name(),
		QualName: sig.QualName(),
		Package:  sig.Package(),
		Attrs:    make(map[string]any),
	}

	return &FuncMaker{
		target: v,
		sig:    sig,
		info:   info,
	}, nil
}

// Signature exposes the descriptor so it can be upgraded (e.g. with declared
// names recovered from source) before the wrapper is made
func (m *FuncMaker) Signature() *signature.Func {
	return m.sig
}

// SetDoc attaches documentation text
func (m *FuncMaker) SetDoc(doc string) {
	m.sig.SetDoc(doc)
	m.info.Doc = doc
}

// SetAnnotations replaces the annotation mapping
func (m *FuncMaker) SetAnnotations(annotations map[string]any) {
	m.info.Annotations = annotations
}

// SetAttrs merges attrs into the target's attribute bag. Keys reserved by
// the generator are rejected.
func (m *FuncMaker) SetAttrs(attrs map[string]any) error {
	for k, v := range attrs {
		if signature.IsReserved(k) {
			return &ReservedNameError{Name: k}
		}
		m.info.Attrs[k] = v
	}
	return nil
}

// Make generates the wrapper. The returned Func's value has the identical
// function type as the target; every call transfers control to caller with
// the target and the exact argument values. Construction fails, producing
// nothing, on a reserved-name collision.
func (m *FuncMaker) Make(caller Caller) (*Func, error) {
	if caller == nil {
		return nil, &BindingError{Func: m.info.Name, Reason: "caller is nil"}
	}

	for _, p := range m.sig.Params() {
		if signature.IsReserved(p.Name()) {
			return nil, &ReservedNameError{Name: p.Name()}
		}
	}
	for k := range m.info.Attrs {
		if signature.IsReserved(k) {
			return nil, &ReservedNameError{Name: k}
		}
	}
	if err := m.sig.Validate(); err != nil {
		return nil, err
	}

	original := &Func{
		value: m.target,
		sig:   m.sig,
		info:  m.info,
	}

	info := m.info.clone()
	info.ID = uuid.New()
	info.Wrapped = m.target.Interface()
	if info.Annotations == nil && m.sig.Annotations() != nil {
		info.Annotations = m.sig.Annotations()
	}
	// the namespace the forwarding function closes over
	info.Attrs[signature.ReservedFunc] = m.target.Interface()
	info.Attrs[signature.ReservedCall] = caller

	// each wrapper owns its descriptor, so post-creation upgrades (renamed
	// parameters, defaults) are never observed on the original or on later
	// wrappers from the same maker
	wrapper := &Func{
		sig:  m.sig.Clone(),
		info: info,
	}
	wrapper.value = reflect.MakeFunc(m.target.Type(), func(in []reflect.Value) []reflect.Value {
		return caller(original, in)
	})

	return wrapper, nil
}
