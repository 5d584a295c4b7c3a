package inspect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablor21/godecor/logger"
)

type captureLogger struct {
	msgs []string
}

func (l *captureLogger) Debug(msg string)               { l.msgs = append(l.msgs, msg) }
func (l *captureLogger) Info(msg string)                { l.msgs = append(l.msgs, msg) }
func (l *captureLogger) Warn(msg string)                { l.msgs = append(l.msgs, msg) }
func (l *captureLogger) Error(msg string)               { l.msgs = append(l.msgs, msg) }
func (l *captureLogger) SetLevel(level logger.LogLevel) {}

func TestInspector_Inspect(t *testing.T) {
	in := NewInspector(&Config{
		Packages: []string{"./"},
		Mode:     ModeFull,
		LogLevel: logger.LogLevelNone,
	})
	logged := &captureLogger{}
	in.Logger = logged

	result, err := in.Inspect()
	require.NoError(t, err)
	require.NotZero(t, result.Len())

	f, ok := result.Get("github.com/pablor21/godecor/inspect.LoadConfig")
	require.True(t, ok)
	require.Len(t, f.Params(), 1)
	assert.Equal(t, "path", f.Params()[0].Name())
	assert.Contains(t, f.Doc(), "reads a Config from a YAML file")

	// methods are included under ModeFull
	_, ok = result.Get("github.com/pablor21/godecor/inspect.(*Inspector).Inspect")
	assert.True(t, ok)

	var completion string
	for _, msg := range logged.msgs {
		if strings.Contains(msg, "Inspection completed") {
			completion = msg
		}
	}
	require.NotEmpty(t, completion)
	assert.Contains(t, completion, "across")
	assert.NotContains(t, completion, "accross")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `packages:
  - ./pkg/**
  - ./cmd
mode: signatures,docs
log_level: debug
cache_file: .godecor.cache
cache_max_age: 3600
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"./pkg/**", "./cmd"}, cfg.Packages)
	assert.Equal(t, ModeDefault, cfg.Mode)
	assert.Equal(t, logger.LogLevelDebug, cfg.LogLevel)
	assert.Equal(t, ".godecor.cache", cfg.CacheFile)
	assert.Equal(t, int64(3600), cfg.CacheMaxAge)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_file: x.cache\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"./..."}, cfg.Packages)
	assert.Equal(t, ModeFull, cfg.Mode)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: [broken\n"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestIsExported(t *testing.T) {
	assert.True(t, isExported("Frob"))
	assert.False(t, isExported("frob"))
	assert.False(t, isExported("_frob"))
	assert.False(t, isExported(""))
}
