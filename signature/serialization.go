package signature

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SerializedParameter is the wire form of a Parameter
type SerializedParameter struct {
	Name       string `json:"name,omitempty"`
	Type       string `json:"type"`
	IsVariadic bool   `json:"isVariadic,omitempty"`
	Default    any    `json:"default,omitempty"`
}

// SerializedResult is the wire form of a Result
type SerializedResult struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// SerializedFunc is the wire form of a Func descriptor
type SerializedFunc struct {
	Name        string                 `json:"name"`
	QualName    string                 `json:"qualName,omitempty"`
	Package     string                 `json:"package,omitempty"`
	Doc         string                 `json:"doc,omitempty"`
	Parameters  []*SerializedParameter `json:"parameters,omitempty"`
	Results     []*SerializedResult    `json:"results,omitempty"`
	IsVariadic  bool                   `json:"isVariadic,omitempty"`
	Annotations map[string]any         `json:"annotations,omitempty"`
	Comments    []string               `json:"comments,omitempty"`
}

// Serialize returns a serializable representation of the descriptor
func (f *Func) Serialize() any {
	params := make([]*SerializedParameter, len(f.params))
	for i, p := range f.params {
		params[i] = &SerializedParameter{
			Name:       p.name,
			Type:       p.typeName,
			IsVariadic: p.variadic,
		}
		if p.hasDefault {
			params[i].Default = p.defValue
		}
	}

	results := make([]*SerializedResult, len(f.results))
	for i, r := range f.results {
		results[i] = &SerializedResult{
			Name: r.name,
			Type: r.typeName,
		}
	}

	return &SerializedFunc{
		Name:        f.name,
		QualName:    f.qualName,
		Package:     f.pkg,
		Doc:         f.doc,
		Parameters:  params,
		Results:     results,
		IsVariadic:  f.variadic,
		Annotations: f.annotations,
		Comments:    f.comments,
	}
}

func (f *Func) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Serialize())
}

// FromSerialized rebuilds a descriptor from its wire form. Runtime types are
// not restored; the descriptor is source-level only.
func FromSerialized(sf *SerializedFunc) *Func {
	f := NewFunc(sf.Name, sf.QualName, sf.Package)
	f.SetDoc(sf.Doc)
	f.SetComments(sf.Comments)
	for _, p := range sf.Parameters {
		param := NewParameter(p.Name, p.Type, nil)
		param.SetVariadic(p.IsVariadic)
		if p.Default != nil {
			param.WithDefault(p.Default)
		}
		f.AddParameter(param)
	}
	for _, r := range sf.Results {
		f.AddResult(NewResult(r.Name, r.Type, nil))
	}
	for name, value := range sf.Annotations {
		f.SetAnnotation(name, value)
	}
	return f
}
