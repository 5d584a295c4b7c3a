package inspect

import (
	"fmt"
	"go/ast"
	"reflect"
	"runtime"

	"golang.org/x/tools/go/packages"

	"github.com/pablor21/godecor/signature"
)

// Source locates the declaration of a live function value and builds a
// descriptor with its declared parameter names, documentation and
// annotations. The function's source must be available on disk; generated or
// synthesized functions cannot be resolved.
func Source(fn any, mode Mode) (*signature.Func, error) {
	if fn == nil {
		return nil, fmt.Errorf("inspect: cannot locate nil")
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("inspect: %T is not a function", fn)
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return nil, fmt.Errorf("inspect: no runtime symbol for %T", fn)
	}
	file, _ := rf.FileLine(rf.Entry())
	if file == "" {
		return nil, fmt.Errorf("inspect: no source file for %s", rf.Name())
	}

	pkgPath, qualName, name := signature.SplitSymbol(rf.Name())

	config := &packages.Config{
		Mode: loadMode(mode) | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(config, "file="+file)
	if err != nil {
		return nil, fmt.Errorf("inspect: failed to load %s: %w", file, err)
	}

	for _, pkg := range pkgs {
		for _, syntax := range pkg.Syntax {
			for _, decl := range syntax.Decls {
				fd, ok := decl.(*ast.FuncDecl)
				if !ok || fd.Name.Name != name {
					continue
				}
				f := FuncFromDecl(fd, pkg.TypesInfo, mode)
				if f.QualName() != qualName {
					// same bare name on a different receiver
					continue
				}
				f.SetPackage(pkgPath)
				return f, nil
			}
		}
	}

	return nil, fmt.Errorf("inspect: declaration of %s not found in %s", rf.Name(), file)
}
