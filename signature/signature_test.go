package signature

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(a int, b string, rest ...float64) (int, error) { return a, nil }

func TestFromValue(t *testing.T) {
	f, err := FromValue(sample)
	require.NoError(t, err)

	assert.Equal(t, "sample", f.Name())
	assert.Equal(t, "sample", f.QualName())
	assert.Equal(t, "github.com/pablor21/godecor/signature", f.Package())

	require.Len(t, f.Params(), 3)
	assert.Equal(t, "arg0", f.Params()[0].Name())
	assert.Equal(t, "int", f.Params()[0].TypeName())
	assert.Equal(t, "string", f.Params()[1].TypeName())
	assert.True(t, f.Params()[2].IsVariadic())
	assert.True(t, f.IsVariadic())

	require.Len(t, f.Results(), 2)
	assert.Equal(t, "int", f.Results()[0].TypeName())
	assert.Equal(t, "error", f.Results()[1].TypeName())
}

func TestFromValue_Errors(t *testing.T) {
	_, err := FromValue(nil)
	assert.Error(t, err)

	_, err = FromValue(42)
	assert.Error(t, err)

	_, err = FromValue((func())(nil))
	assert.Error(t, err)
}

func TestFromType(t *testing.T) {
	f, err := FromType(reflect.TypeOf(func(m map[string]int, ch chan bool) {}))
	require.NoError(t, err)

	require.Len(t, f.Params(), 2)
	assert.Equal(t, "map[string]int", f.Params()[0].TypeName())
	assert.Equal(t, "chan bool", f.Params()[1].TypeName())
	assert.Equal(t, reflect.TypeOf(map[string]int(nil)), f.Params()[0].Type())
	assert.False(t, f.IsVariadic())

	_, err = FromType(reflect.TypeOf(1))
	assert.Error(t, err)
}

func TestSplitSymbol(t *testing.T) {
	tests := []struct {
		full     string
		pkg      string
		qualName string
		name     string
	}{
		{"github.com/x/pkg.Frob", "github.com/x/pkg", "Frob", "Frob"},
		{"github.com/x/pkg.(*T).Method-fm", "github.com/x/pkg", "(*T).Method", "Method"},
		{"github.com/x/pkg.T.Method", "github.com/x/pkg", "T.Method", "Method"},
		{"main.main", "main", "main", "main"},
		{"main.run.func1", "main", "run.func1", "func1"},
		{"noDotsAtAll", "", "noDotsAtAll", "noDotsAtAll"},
	}

	for _, tt := range tests {
		t.Run(tt.full, func(t *testing.T) {
			pkg, qualName, name := SplitSymbol(tt.full)
			assert.Equal(t, tt.pkg, pkg)
			assert.Equal(t, tt.qualName, qualName)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestValidate(t *testing.T) {
	f := NewFunc("f", "f", "pkg")
	f.AddParameter(NewParameter("a", "int", nil))
	f.AddParameter(NewParameter("b", "int", nil))
	assert.NoError(t, f.Validate())

	f.AddParameter(NewParameter("a", "string", nil))
	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	g := NewFunc("g", "g", "pkg")
	g.AddParameter(NewParameter(ReservedFunc, "int", nil))
	err = g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")

	// unnamed parameters never collide
	h := NewFunc("h", "h", "pkg")
	h.AddParameter(NewParameter("", "int", nil))
	h.AddParameter(NewParameter("", "int", nil))
	assert.NoError(t, h.Validate())
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved(ReservedFunc))
	assert.True(t, IsReserved(ReservedCall))
	assert.False(t, IsReserved("return"))
	assert.False(t, IsReserved("x"))
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Func
		want  string
	}{
		{
			"niladic",
			func() *Func { return NewFunc("f", "f", "p") },
			"func f()",
		},
		{
			"params and single result",
			func() *Func {
				f := NewFunc("add", "add", "p")
				f.AddParameter(NewParameter("a", "int", nil))
				f.AddParameter(NewParameter("b", "int", nil))
				f.AddResult(NewResult("", "int", nil))
				return f
			},
			"func add(a int, b int) int",
		},
		{
			"variadic and named results",
			func() *Func {
				f := NewFunc("join", "join", "p")
				f.AddParameter(NewParameter("sep", "string", nil))
				p := NewParameter("parts", "[]string", nil)
				p.SetVariadic(true)
				f.AddParameter(p)
				f.AddResult(NewResult("out", "string", nil))
				f.AddResult(NewResult("err", "error", nil))
				return f
			},
			"func join(sep string, parts ...string) (out string, err error)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build().String())
		})
	}
}

func TestClone(t *testing.T) {
	f, err := FromValue(sample)
	require.NoError(t, err)
	f.SetDoc("doc")
	f.SetAnnotation("cache", true)

	c := f.Clone()
	c.Params()[0].SetName("renamed")
	c.SetAnnotation("cache", false)

	assert.Equal(t, "arg0", f.Params()[0].Name())
	assert.Equal(t, true, f.Annotations()["cache"])
	assert.Equal(t, "doc", c.Doc())
}

func TestSerializationRoundtrip(t *testing.T) {
	f, err := FromValue(sample)
	require.NoError(t, err)
	f.SetDoc("sample does things")
	f.Params()[0].SetName("a")
	f.Params()[0].WithDefault(7)
	f.SetAnnotation("cache", map[string]any{"ttl": 60})

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var s SerializedFunc
	require.NoError(t, json.Unmarshal(data, &s))

	back := FromSerialized(&s)
	assert.Equal(t, f.Name(), back.Name())
	assert.Equal(t, f.Package(), back.Package())
	assert.Equal(t, f.Doc(), back.Doc())
	require.Len(t, back.Params(), len(f.Params()))
	assert.Equal(t, "a", back.Params()[0].Name())
	assert.True(t, back.Params()[0].HasDefault())
	assert.True(t, back.IsVariadic())
	assert.True(t, back.Params()[2].IsVariadic())
}
