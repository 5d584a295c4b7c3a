// Package dispatch implements experimental multiple dispatch: a registry
// mapping tuples of argument types to specialized implementations, with
// fallback to a default body and structural matching against registered
// interface types ("virtual ancestors").
//
// The registry performs no memoization of resolved dispatches, and the
// tie-break among unrelated matching ancestors is deterministic but
// unspecified.
package dispatch

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	anyType = reflect.TypeOf((*any)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// TypeFor returns the reflect.Type of T. Unlike reflect.TypeOf on a value,
// it also works for interface types.
func TypeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// node is one level of the registration trie, keyed by the type at its
// position of the tuple
type node struct {
	impl     reflect.Value
	set      bool
	children map[reflect.Type]*node
}

func (n *node) child(t reflect.Type) *node {
	if n.children == nil {
		n.children = make(map[reflect.Type]*node)
	}
	c, ok := n.children[t]
	if !ok {
		c = &node{}
		n.children[t] = c
	}
	return c
}

// Generic is one logical generic function: a name, a dispatch arity, an
// optional default body and the registered implementations.
type Generic struct {
	name  string
	arity int

	mu         sync.RWMutex
	root       node
	vanc       *vancestors
	def        reflect.Value
	hasDefault bool
}

// On declares a generic function dispatching on its first arity arguments
func On(name string, arity int) *Generic {
	if arity < 1 {
		panic("dispatch: arity must be at least 1")
	}
	return &Generic{
		name:  name,
		arity: arity,
		vanc:  newVancestors(arity),
	}
}

func (g *Generic) Name() string {
	return g.name
}

func (g *Generic) Arity() int {
	return g.arity
}

// Default sets the fallback body invoked when no registered tuple matches
func (g *Generic) Default(impl any) *Generic {
	v := reflect.ValueOf(impl)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Sprintf("dispatch: default of %s is not a function", g.name))
	}
	g.mu.Lock()
	g.def = v
	g.hasDefault = true
	g.mu.Unlock()
	return g
}

// Register associates an implementation with a tuple of dispatch types.
// Registering an interface type makes it a virtual ancestor: any concrete
// type structurally satisfying it matches that position. Re-registering a
// tuple replaces the previous implementation.
func (g *Generic) Register(impl any, types ...reflect.Type) error {
	if len(types) != g.arity {
		return &ArityError{Name: g.name, Want: g.arity, Got: len(types)}
	}
	v := reflect.ValueOf(impl)
	if v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("dispatch: implementation of %s is not a function", g.name)
	}
	if t := v.Type(); t.NumIn() < g.arity && !t.IsVariadic() {
		return &ArityError{Name: g.name, Want: g.arity, Got: t.NumIn()}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n := &g.root
	for _, t := range types {
		n = n.child(t)
	}
	n.impl = v
	n.set = true

	for i, t := range types {
		if t.Kind() == reflect.Interface && t != anyType {
			g.vanc.insert(i, t)
		}
	}
	return nil
}

// MustRegister is Register for declaration sites, panicking on error
func (g *Generic) MustRegister(impl any, types ...reflect.Type) *Generic {
	if err := g.Register(impl, types...); err != nil {
		panic(err)
	}
	return g
}

// get looks up an exact tuple in the trie. Callers must hold the lock.
func (g *Generic) get(types []reflect.Type) (reflect.Value, bool) {
	n := &g.root
	for _, t := range types {
		c, ok := n.children[t]
		if !ok {
			return reflect.Value{}, false
		}
		n = c
	}
	return n.impl, n.set
}

// lookup finds the most specific implementation for a tuple of concrete
// types: exact match first, then a product search over each position's
// nominal ancestor chain, substituting matched virtual ancestors.
// Callers must hold at least a read lock.
func (g *Generic) lookup(types []reflect.Type) (reflect.Value, bool, error) {
	// fast path
	if impl, ok := g.get(types); ok {
		return impl, true, nil
	}

	anc := make([][]reflect.Type, len(types))
	for i, t := range types {
		anc[i] = ancestors(t)
	}

	combo := make([]reflect.Type, len(types))
	idx := make([]int, len(types))
	for {
		for i := range combo {
			combo[i] = anc[i][idx[i]]
		}

		if impl, ok := g.get(combo); ok {
			return impl, true, nil
		}
		if !g.vanc.empty() {
			subst, matched, err := g.vanc.resolve(g.name, combo)
			if err != nil {
				return reflect.Value{}, false, err
			}
			if matched {
				// unmatched positions keep the candidate type
				for i := range subst {
					if subst[i] == nil {
						subst[i] = combo[i]
					}
				}
				if impl, ok := g.get(subst); ok {
					return impl, true, nil
				}
			}
		}

		// odometer over the ancestor lists
		i := len(idx) - 1
		for i >= 0 {
			idx[i]++
			if idx[i] < len(anc[i]) {
				break
			}
			idx[i] = 0
			i--
		}
		if i < 0 {
			break
		}
	}

	return reflect.Value{}, false, nil
}

// Call dispatches on the runtime types of the first arity arguments and
// invokes the selected implementation with all of them. A trailing error
// result of the implementation is split off and returned as Call's error.
func (g *Generic) Call(args ...any) (any, error) {
	if len(args) < g.arity {
		return nil, &ArityError{Name: g.name, Want: g.arity, Got: len(args)}
	}

	types := make([]reflect.Type, g.arity)
	for i := 0; i < g.arity; i++ {
		if args[i] == nil {
			return nil, fmt.Errorf("dispatch: %s: dispatch argument %d is nil", g.name, i)
		}
		types[i] = reflect.TypeOf(args[i])
	}

	g.mu.RLock()
	impl, ok, err := g.lookup(types)
	def, hasDefault := g.def, g.hasDefault
	g.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if !ok {
		if !hasDefault {
			return nil, &NoImplementationError{Name: g.name, Types: types}
		}
		impl = def
	}

	return g.invoke(impl, args)
}

// MustCall is Call panicking on error, for scenarios where a failed
// dispatch is a bug
func (g *Generic) MustCall(args ...any) any {
	result, err := g.Call(args...)
	if err != nil {
		panic(err)
	}
	return result
}

func (g *Generic) invoke(impl reflect.Value, args []any) (any, error) {
	t := impl.Type()
	if !t.IsVariadic() && len(args) != t.NumIn() {
		return nil, &ArityError{Name: g.name, Want: t.NumIn(), Got: len(args)}
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var want reflect.Type
		switch {
		case t.IsVariadic() && i >= t.NumIn()-1:
			want = t.In(t.NumIn() - 1).Elem()
		case i < t.NumIn():
			want = t.In(i)
		default:
			return nil, &ArityError{Name: g.name, Want: t.NumIn(), Got: len(args)}
		}
		v, err := conform(g.name, arg, want)
		if err != nil {
			return nil, err
		}
		in[i] = v
	}

	out := impl.Call(in)

	var err error
	if n := len(out); n > 0 && out[n-1].Type() == errType {
		if !out[n-1].IsNil() {
			err = out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	default:
		results := make([]any, len(out))
		for i, v := range out {
			results[i] = v.Interface()
		}
		return results, err
	}
}

// conform converts one argument to the parameter type the implementation
// declares
func conform(name string, arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, fmt.Errorf("dispatch: %s: cannot pass nil as %s", name, want)
		}
	}

	v := reflect.ValueOf(arg)
	if v.Type() == want {
		return v, nil
	}
	if v.Type().AssignableTo(want) {
		if want.Kind() == reflect.Interface {
			boxed := reflect.New(want).Elem()
			boxed.Set(v)
			return boxed, nil
		}
		return v, nil
	}
	if v.Type().ConvertibleTo(want) {
		return v.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("dispatch: %s: argument of type %s is not assignable to %s", name, v.Type(), want)
}
