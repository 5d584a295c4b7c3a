package inspect

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {
	f, err := Source(LoadConfig, ModeFull)
	require.NoError(t, err)

	assert.Equal(t, "LoadConfig", f.Name())
	assert.Equal(t, "LoadConfig", f.QualName())
	assert.Equal(t, "github.com/pablor21/godecor/inspect", f.Package())

	require.Len(t, f.Params(), 1)
	assert.Equal(t, "path", f.Params()[0].Name())
	require.Len(t, f.Results(), 2)
	assert.Contains(t, f.Doc(), "reads a Config from a YAML file")
}

func TestSource_Method(t *testing.T) {
	in := NewInspector(nil)

	f, err := Source(in.Inspect, ModeDefault)
	require.NoError(t, err)
	assert.Equal(t, "Inspect", f.Name())
	assert.Equal(t, "(*Inspector).Inspect", f.QualName())
	assert.Contains(t, f.Doc(), "scans the configured package patterns")
}

func TestSource_Errors(t *testing.T) {
	_, err := Source(nil, ModeFull)
	assert.Error(t, err)

	_, err = Source(42, ModeFull)
	assert.Error(t, err)

	// synthesized functions have no declaration on disk
	made := reflect.MakeFunc(reflect.TypeOf(func() {}), func(in []reflect.Value) []reflect.Value {
		return nil
	}).Interface()
	_, err = Source(made, ModeFull)
	assert.Error(t, err)
}
