package inspect

import (
	"fmt"
	"go/ast"
	"os"
	"time"

	"golang.org/x/tools/go/packages"
	"gopkg.in/yaml.v3"

	"github.com/pablor21/godecor/logger"
	"github.com/pablor21/godecor/signature"
)

// Config holds the settings for a package inspection run
type Config struct {
	Packages    []string        `json:"packages" yaml:"packages"`
	Mode        Mode            `json:"mode" yaml:"mode"`
	LogLevel    logger.LogLevel `json:"log_level" yaml:"log_level"`
	CacheFile   string          `json:"cache_file,omitempty" yaml:"cache_file,omitempty"`
	CacheMaxAge int64           `json:"cache_max_age,omitempty" yaml:"cache_max_age,omitempty"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Packages: []string{"./..."},
		Mode:     ModeFull,
		LogLevel: logger.LogLevelInfo,
	}
}

// LoadConfig reads a Config from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := NewDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("inspect: invalid config %s: %w", path, err)
	}
	return config, nil
}

// Inspector extracts function signature descriptors from Go packages
type Inspector struct {
	Config *Config
	Logger logger.Logger
}

func NewInspector(config *Config) *Inspector {
	if config == nil {
		config = NewDefaultConfig()
	}
	l := logger.NewDefaultLogger()
	l.SetLevel(config.LogLevel)
	return &Inspector{
		Config: config,
		Logger: l,
	}
}

// Inspect scans the configured package patterns and returns a descriptor for
// every function and (with ModeMethods) method found
func (in *Inspector) Inspect() (*Result, error) {
	now := time.Now()
	result := NewResult()

	if in.Config.CacheFile != "" && ShouldUseCache(in.Config.CacheFile, in.Config.CacheMaxAge) {
		in.Logger.Debug(fmt.Sprintf("using cached descriptors from %s", in.Config.CacheFile))
		return ReadCache(in.Config.CacheFile)
	}

	pkgs, err := LoadPackages(in.Config.Mode, in.Config.Packages...)
	if err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		if err := in.inspectPackage(pkg, result); err != nil {
			return nil, err
		}
	}

	in.Logger.Info(fmt.Sprintf("Inspection completed in %v, found %d functions across %d packages", time.Since(now), result.Len(), len(pkgs)))

	if in.Config.CacheFile != "" {
		if err := WriteCache(in.Config.CacheFile, result); err != nil {
			in.Logger.Warn(fmt.Sprintf("failed to write descriptor cache: %v", err))
		}
	}

	return result, nil
}

func (in *Inspector) inspectPackage(pkg *packages.Package, result *Result) error {
	if len(pkg.Errors) > 0 {
		return fmt.Errorf("inspect: failed to load %s: %v", pkg.PkgPath, pkg.Errors[0])
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			if fn.Recv != nil && !in.Config.Mode.Has(ModeMethods) {
				continue
			}
			if !isExported(fn.Name.Name) {
				continue
			}

			f := FuncFromDecl(fn, pkg.TypesInfo, in.Config.Mode)
			f.SetPackage(pkg.PkgPath)
			result.Add(f)
			in.Logger.Debug(fmt.Sprintf("resolved function: %s.%s", pkg.PkgPath, f.QualName()))
		}
	}
	return nil
}

// isExported reports whether name is an exported Go symbol
func isExported(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// Result holds the descriptors produced by an inspection run, keyed by
// package-qualified name
type Result struct {
	funcs map[string]*signature.Func
	order []string
}

func NewResult() *Result {
	return &Result{
		funcs: make(map[string]*signature.Func),
	}
}

func (r *Result) Add(f *signature.Func) {
	id := f.Package() + "." + f.QualName()
	if _, exists := r.funcs[id]; !exists {
		r.order = append(r.order, id)
	}
	r.funcs[id] = f
}

func (r *Result) Get(id string) (*signature.Func, bool) {
	f, exists := r.funcs[id]
	return f, exists
}

func (r *Result) Keys() []string {
	return r.order
}

func (r *Result) Funcs() []*signature.Func {
	funcs := make([]*signature.Func, 0, len(r.order))
	for _, id := range r.order {
		funcs = append(funcs, r.funcs[id])
	}
	return funcs
}

func (r *Result) Len() int {
	return len(r.funcs)
}

func (r *Result) Serialize() any {
	result := make(map[string]any, len(r.funcs))
	for id, f := range r.funcs {
		result[id] = f.Serialize()
	}
	return result
}
