package godecor

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// FuncInfo carries the callable metadata attached to a wrapper: display
// name, qualified name, documentation, originating package, annotations and
// an arbitrary attribute bag. Wrappers additionally carry a back-reference
// to the original callable.
type FuncInfo struct {
	// ID uniquely identifies one generated wrapper
	ID          uuid.UUID
	Name        string
	QualName    string
	Package     string
	Doc         string
	Annotations map[string]any
	Attrs       map[string]any
	// Wrapped is the original callable, nil for plain functions
	Wrapped any
}

// clone copies the info with fresh (shallow) maps, so mutations on the
// wrapper's metadata are never observed on the original
func (i *FuncInfo) clone() *FuncInfo {
	c := &FuncInfo{
		ID:       i.ID,
		Name:     i.Name,
		QualName: i.QualName,
		Package:  i.Package,
		Doc:      i.Doc,
		Wrapped:  i.Wrapped,
	}
	if i.Annotations != nil {
		c.Annotations = make(map[string]any, len(i.Annotations))
		for k, v := range i.Annotations {
			c.Annotations[k] = v
		}
	}
	c.Attrs = make(map[string]any, len(i.Attrs))
	for k, v := range i.Attrs {
		c.Attrs[k] = v
	}
	return c
}

// Registry is a named lookup of wrapped functions, for diagnostics and
// tooling. Registrations after startup racing lookups need no extra
// synchronization here, but no ordering is guaranteed.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]*Func
}

func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]*Func),
	}
}

// Register associates a wrapper with its qualified name. Re-registering the
// same name is an error so that collisions surface instead of silently
// replacing an implementation.
func (r *Registry) Register(f *Func) error {
	if f == nil {
		return fmt.Errorf("godecor: cannot register a nil function")
	}
	name := f.Info().QualName
	if name == "" {
		name = f.Info().Name
	}
	if name == "" {
		return fmt.Errorf("godecor: cannot register an unnamed function")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("godecor: %q is already registered", name)
	}
	r.funcs[name] = f
	return nil
}

// Lookup returns the wrapper registered under name
func (r *Registry) Lookup(name string) (*Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.funcs[name]
	return f, ok
}

// Entries returns a snapshot of the registered wrappers (order unspecified)
func (r *Registry) Entries() []*Func {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]*Func, 0, len(r.funcs))
	for _, f := range r.funcs {
		entries = append(entries, f)
	}
	return entries
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.funcs)
}

// Reset clears all registered entries
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs = make(map[string]*Func)
}

// DefaultRegistry is the package level registry used by MustRegister
var DefaultRegistry = NewRegistry()
