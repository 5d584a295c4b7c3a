// Package signature models introspectable function signatures: ordered named
// parameters, variadic markers, results, defaults and annotations. Descriptors
// are built from live function values via reflection and can be upgraded with
// declared names and documentation recovered from source.
package signature

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

const (
	// ReservedFunc is the attribute key under which the wrapper generator
	// stores the original target
	ReservedFunc = "_func_"
	// ReservedCall is the attribute key under which the wrapper generator
	// stores the caller function
	ReservedCall = "_call_"

	// ReturnKey is the annotation key describing the return value
	ReturnKey = "return"
)

// IsReserved reports whether name is reserved by the wrapper generator
func IsReserved(name string) bool {
	return name == ReservedFunc || name == ReservedCall
}

// Parameter represents a single declared parameter
type Parameter struct {
	name       string
	typeName   string
	rtype      reflect.Type
	variadic   bool
	hasDefault bool
	defValue   any
}

// NewParameter creates a parameter descriptor
func NewParameter(name string, typeName string, rtype reflect.Type) *Parameter {
	return &Parameter{
		name:     name,
		typeName: typeName,
		rtype:    rtype,
	}
}

func (p *Parameter) Name() string {
	return p.name
}

func (p *Parameter) TypeName() string {
	return p.typeName
}

// Type returns the runtime type, nil for descriptors built from source only
func (p *Parameter) Type() reflect.Type {
	return p.rtype
}

func (p *Parameter) IsVariadic() bool {
	return p.variadic
}

func (p *Parameter) SetVariadic(variadic bool) {
	p.variadic = variadic
}

// SetName renames the parameter (used when upgrading placeholder names with
// the declared ones recovered from source)
func (p *Parameter) SetName(name string) {
	p.name = name
}

// WithDefault attaches a default value, used by named-argument binding
func (p *Parameter) WithDefault(value any) *Parameter {
	p.hasDefault = true
	p.defValue = value
	return p
}

func (p *Parameter) HasDefault() bool {
	return p.hasDefault
}

func (p *Parameter) Default() any {
	return p.defValue
}

func (p *Parameter) String() string {
	typeName := p.typeName
	if p.variadic {
		typeName = "..." + strings.TrimPrefix(typeName, "[]")
	}
	if p.name == "" {
		return typeName
	}
	return p.name + " " + typeName
}

// Result represents a single declared result
type Result struct {
	name     string
	typeName string
	rtype    reflect.Type
}

// NewResult creates a result descriptor
func NewResult(name string, typeName string, rtype reflect.Type) *Result {
	return &Result{
		name:     name,
		typeName: typeName,
		rtype:    rtype,
	}
}

func (r *Result) Name() string {
	return r.name
}

func (r *Result) TypeName() string {
	return r.typeName
}

func (r *Result) Type() reflect.Type {
	return r.rtype
}

// Func is the full signature descriptor of a callable
type Func struct {
	name        string
	qualName    string
	pkg         string
	doc         string
	params      []*Parameter
	results     []*Result
	variadic    bool
	annotations map[string]any
	comments    []string
}

// NewFunc creates an empty descriptor with the given names
func NewFunc(name string, qualName string, pkg string) *Func {
	return &Func{
		name:     name,
		qualName: qualName,
		pkg:      pkg,
	}
}

func (f *Func) Name() string {
	return f.name
}

func (f *Func) QualName() string {
	return f.qualName
}

func (f *Func) Package() string {
	return f.pkg
}

func (f *Func) SetPackage(pkg string) {
	f.pkg = pkg
}

func (f *Func) Doc() string {
	return f.doc
}

func (f *Func) SetDoc(doc string) {
	f.doc = doc
}

func (f *Func) SetName(name string) {
	f.name = name
}

func (f *Func) Comments() []string {
	return f.comments
}

func (f *Func) SetComments(comments []string) {
	f.comments = comments
}

func (f *Func) Params() []*Parameter {
	return f.params
}

func (f *Func) Results() []*Result {
	return f.results
}

func (f *Func) IsVariadic() bool {
	return f.variadic
}

// Param returns the parameter with the given name, or nil
func (f *Func) Param(name string) *Parameter {
	for _, p := range f.params {
		if p.name == name {
			return p
		}
	}
	return nil
}

// AddParameter appends a parameter, keeping the variadic flag in sync
func (f *Func) AddParameter(param *Parameter) {
	f.params = append(f.params, param)
	if param.variadic {
		f.variadic = true
	}
}

// AddResult appends a result
func (f *Func) AddResult(result *Result) {
	f.results = append(f.results, result)
}

// Annotations returns the annotation mapping (parameter name -> value, plus
// the ReturnKey entry for the return value)
func (f *Func) Annotations() map[string]any {
	return f.annotations
}

// SetAnnotation records an annotation for a parameter name or ReturnKey
func (f *Func) SetAnnotation(name string, value any) {
	if f.annotations == nil {
		f.annotations = map[string]any{}
	}
	f.annotations[name] = value
}

// Validate checks the descriptor invariants: parameter names must be unique
// and must not collide with the generator's reserved names.
func (f *Func) Validate() error {
	seen := make(map[string]struct{}, len(f.params))
	for _, p := range f.params {
		if IsReserved(p.name) {
			return fmt.Errorf("signature: %q is a reserved parameter name", p.name)
		}
		if p.name == "" {
			continue
		}
		if _, dup := seen[p.name]; dup {
			return fmt.Errorf("signature: duplicate parameter name %q", p.name)
		}
		seen[p.name] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the descriptor
func (f *Func) Clone() *Func {
	clone := &Func{
		name:     f.name,
		qualName: f.qualName,
		pkg:      f.pkg,
		doc:      f.doc,
		variadic: f.variadic,
	}
	clone.params = make([]*Parameter, len(f.params))
	for i, p := range f.params {
		cp := *p
		clone.params[i] = &cp
	}
	clone.results = make([]*Result, len(f.results))
	for i, r := range f.results {
		cr := *r
		clone.results[i] = &cr
	}
	if f.annotations != nil {
		clone.annotations = make(map[string]any, len(f.annotations))
		for k, v := range f.annotations {
			clone.annotations[k] = v
		}
	}
	if f.comments != nil {
		clone.comments = append([]string(nil), f.comments...)
	}
	return clone
}

// String renders the descriptor in Go declaration syntax
func (f *Func) String() string {
	var sb strings.Builder
	sb.WriteString("func ")
	sb.WriteString(f.name)
	sb.WriteByte('(')
	for i, p := range f.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	switch len(f.results) {
	case 0:
	case 1:
		if f.results[0].name == "" {
			sb.WriteByte(' ')
			sb.WriteString(f.results[0].typeName)
			break
		}
		fallthrough
	default:
		sb.WriteString(" (")
		for i, r := range f.results {
			if i > 0 {
				sb.WriteString(", ")
			}
			if r.name != "" {
				sb.WriteString(r.name + " ")
			}
			sb.WriteString(r.typeName)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// FromType builds a runtime descriptor from a function type. Parameter names
// are not available through reflection, so placeholders arg0..argN are used
// until the descriptor is upgraded from source.
func FromType(t reflect.Type) (*Func, error) {
	if t == nil || t.Kind() != reflect.Func {
		return nil, fmt.Errorf("signature: %v is not a function type", t)
	}

	f := &Func{variadic: t.IsVariadic()}
	for i := 0; i < t.NumIn(); i++ {
		in := t.In(i)
		p := NewParameter(fmt.Sprintf("arg%d", i), in.String(), in)
		if t.IsVariadic() && i == t.NumIn()-1 {
			p.variadic = true
		}
		f.params = append(f.params, p)
	}
	for i := 0; i < t.NumOut(); i++ {
		out := t.Out(i)
		f.results = append(f.results, NewResult("", out.String(), out))
	}
	return f, nil
}

// FromValue builds a runtime descriptor from a live function value, filling
// name, qualified name and package from the runtime symbol table.
func FromValue(fn any) (*Func, error) {
	if fn == nil {
		return nil, fmt.Errorf("signature: cannot introspect nil")
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("signature: %T is not a function", fn)
	}
	if v.IsNil() {
		return nil, fmt.Errorf("signature: cannot introspect a nil function")
	}

	f, err := FromType(v.Type())
	if err != nil {
		return nil, err
	}

	if rf := runtime.FuncForPC(v.Pointer()); rf != nil {
		f.pkg, f.qualName, f.name = SplitSymbol(rf.Name())
	}
	return f, nil
}

// SplitSymbol splits a runtime symbol name like
// "github.com/x/pkg.(*T).Method-fm" into package path, qualified name and
// bare name.
func SplitSymbol(full string) (pkg string, qualName string, name string) {
	full = strings.TrimSuffix(full, "-fm")

	// the package path is everything up to the first dot after the last slash
	slash := strings.LastIndexByte(full, '/')
	dot := strings.IndexByte(full[slash+1:], '.')
	if dot < 0 {
		return "", full, full
	}
	dot += slash + 1

	pkg = full[:dot]
	qualName = full[dot+1:]

	name = qualName
	if i := strings.LastIndexByte(qualName, '.'); i >= 0 {
		name = qualName[i+1:]
	}
	return pkg, qualName, name
}
