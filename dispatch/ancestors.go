package dispatch

import "reflect"

// ancestors returns the nominal ancestor chain of a type: the type itself,
// then the embedded (promoted) types breadth-first. Pointer types include
// their element's chain, since their method sets subsume it.
func ancestors(t reflect.Type) []reflect.Type {
	var out []reflect.Type
	seen := map[reflect.Type]bool{}
	queue := []reflect.Type{t}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		out = append(out, cur)

		base := cur
		if base.Kind() == reflect.Pointer {
			queue = append(queue, base.Elem())
			continue
		}
		if base.Kind() == reflect.Struct {
			for i := 0; i < base.NumField(); i++ {
				if f := base.Field(i); f.Anonymous {
					queue = append(queue, f.Type)
				}
			}
		}
	}
	return out
}

// satisfies reports whether a type's own method set satisfies an interface.
// A value type whose pointer implements iface does not count: the argument
// could never be viewed as that interface by the selected implementation.
// Pointer arguments match through their own type in the ancestor chain.
func satisfies(t reflect.Type, iface reflect.Type) bool {
	return t.Implements(iface)
}

// vancestors keeps, per dispatch position, a partially ordered list of the
// registered virtual ancestors (interface types), most specific first. The
// order among unrelated interfaces is whatever insertion produced; no total
// order is guaranteed.
type vancestors struct {
	perPos [][]reflect.Type
}

func newVancestors(arity int) *vancestors {
	return &vancestors{
		perPos: make([][]reflect.Type, arity),
	}
}

// insert adds an interface at position i, keeping the partial ordering
func (v *vancestors) insert(i int, iface reflect.Type) {
	list := v.perPos[i]
	for j, existing := range list {
		if iface == existing {
			return
		}
		if iface.Implements(existing) {
			// more specialized, goes first
			list = append(list[:j], append([]reflect.Type{iface}, list[j:]...)...)
			v.perPos[i] = list
			return
		}
	}
	v.perPos[i] = append(list, iface)
}

// empty reports whether no virtual ancestors are registered at all
func (v *vancestors) empty() bool {
	for _, list := range v.perPos {
		if len(list) > 0 {
			return false
		}
	}
	return true
}

// resolve returns, for each position, the most specific registered virtual
// ancestor satisfied by the corresponding type (nil when none matches).
// A type satisfying two unrelated ancestors is an ambiguity error.
func (v *vancestors) resolve(name string, types []reflect.Type) ([]reflect.Type, bool, error) {
	out := make([]reflect.Type, len(types))
	matched := false

	for i, t := range types {
		var best reflect.Type
		for _, iface := range v.perPos[i] {
			if !satisfies(t, iface) {
				continue
			}
			switch {
			case best == nil:
				best = iface
			case iface.Implements(best):
				best = iface
			case best.Implements(iface):
				// keep the more specific one we already have
			default:
				return nil, false, &AmbiguousError{Name: name, Type: t, First: best, Second: iface}
			}
		}
		if best != nil {
			out[i] = best
			matched = true
		}
	}
	return out, matched, nil
}
