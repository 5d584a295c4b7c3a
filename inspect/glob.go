package inspect

import (
	"strings"

	"golang.org/x/tools/go/packages"
)

// PackageGlob represents a package glob pattern
type PackageGlob struct {
	Pattern   string
	Recursive bool
}

// ParseGlob parses a glob pattern and returns a PackageGlob
func ParseGlob(pattern string) *PackageGlob {
	return &PackageGlob{
		Pattern: pattern,
		// **/ anywhere or a trailing /** means recursive
		Recursive: strings.Contains(pattern, "**/") || strings.HasSuffix(pattern, "/**"),
	}
}

// Expand converts the glob into the pattern syntax go/packages understands
// (./pkg/** becomes ./pkg/..., module/path/** becomes module/path/...)
func (g *PackageGlob) Expand() string {
	pattern := g.Pattern
	if strings.HasSuffix(pattern, "/...") {
		return pattern
	}
	if strings.HasSuffix(pattern, "/**") {
		return strings.TrimSuffix(pattern, "/**") + "/..."
	}
	if strings.Contains(pattern, "**/") {
		return strings.ReplaceAll(pattern, "**/", "") + "/..."
	}
	return pattern
}

// loadMode maps an inspection Mode to the go/packages load flags it needs
func loadMode(mode Mode) packages.LoadMode {
	// always need basic package info
	lm := packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles

	if mode.Has(ModeSignatures) || mode.Has(ModeMethods) {
		lm |= packages.NeedTypes | packages.NeedTypesInfo
	}
	if mode.Has(ModeDocs) || mode.Has(ModeAnnotations) || mode.Has(ModeSignatures) {
		lm |= packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo
	}
	return lm
}

// LoadPackages loads all packages matching the provided glob patterns
func LoadPackages(mode Mode, patterns ...string) ([]*packages.Package, error) {
	expanded := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		expanded = append(expanded, ParseGlob(pattern).Expand())
	}

	config := &packages.Config{
		Mode: loadMode(mode),
	}
	return packages.Load(config, expanded...)
}
