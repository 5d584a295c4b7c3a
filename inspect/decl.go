package inspect

import (
	"go/ast"
	"go/types"
	"strings"

	"github.com/pablor21/godecor/annotations"
	"github.com/pablor21/godecor/signature"
)

// FuncFromDecl builds a signature descriptor from a parsed function
// declaration. The type information is optional; when present it provides
// fully qualified type names, otherwise the literal source expressions are
// used.
func FuncFromDecl(decl *ast.FuncDecl, info *types.Info, mode Mode) *signature.Func {
	name := decl.Name.Name
	qualName := name
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		recv := types.ExprString(decl.Recv.List[0].Type)
		if strings.HasPrefix(recv, "*") {
			// runtime symbol style: (*T).Method
			qualName = "(" + recv + ")." + name
		} else {
			qualName = recv + "." + name
		}
	}

	f := signature.NewFunc(name, qualName, "")

	var sig *types.Signature
	if info != nil {
		if obj, ok := info.Defs[decl.Name].(*types.Func); ok && obj != nil {
			sig, _ = obj.Type().(*types.Signature)
		}
	}

	idx := 0
	for _, field := range decl.Type.Params.List {
		idents := field.Names
		if len(idents) == 0 {
			// unnamed parameter
			idents = []*ast.Ident{nil}
		}
		for _, ident := range idents {
			pname := ""
			if ident != nil && ident.Name != "_" {
				pname = ident.Name
			}
			typeName := types.ExprString(field.Type)
			if sig != nil && idx < sig.Params().Len() {
				typeName = sig.Params().At(idx).Type().String()
			}
			p := signature.NewParameter(pname, typeName, nil)
			if _, variadic := field.Type.(*ast.Ellipsis); variadic {
				p.SetVariadic(true)
			}
			f.AddParameter(p)
			idx++
		}
	}

	if decl.Type.Results != nil {
		idx = 0
		for _, field := range decl.Type.Results.List {
			idents := field.Names
			if len(idents) == 0 {
				idents = []*ast.Ident{nil}
			}
			for _, ident := range idents {
				rname := ""
				if ident != nil && ident.Name != "_" {
					rname = ident.Name
				}
				typeName := types.ExprString(field.Type)
				if sig != nil && idx < sig.Results().Len() {
					typeName = sig.Results().At(idx).Type().String()
				}
				f.AddResult(signature.NewResult(rname, typeName, nil))
				idx++
			}
		}
	}

	if decl.Doc != nil {
		doc := decl.Doc.Text()
		if mode.Has(ModeDocs) {
			f.SetDoc(doc)
			f.SetComments(parseComments(doc))
		}
		if mode.Has(ModeAnnotations) {
			for _, ann := range annotations.ParseText(doc) {
				f.SetAnnotation(ann.Name, annotationValue(ann))
			}
		}
	}

	return f
}

// annotationValue flattens an annotation into the descriptor mapping: a bare
// marker becomes true, a single positional argument becomes that value,
// anything richer keeps the whole value map.
func annotationValue(ann annotations.Annotation) any {
	if ann.Values == nil {
		return true
	}
	if len(ann.Values) == 1 {
		if v, ok := ann.Values["value"]; ok {
			return v
		}
	}
	return ann.Values
}

// a comment is any doc line that does not start with a @
func parseComments(doc string) []string {
	if doc == "" {
		return nil
	}

	var comments []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "@") {
			comments = append(comments, line)
		}
	}
	return comments
}
