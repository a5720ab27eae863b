package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pyrt "github.com/jeff5/very-slow-jython-sub016/runtime"
)

func TestCatalog(t *testing.T) {
	one := pyrt.NewInt(1).ToObject()
	two := pyrt.NewInt(2).ToObject()
	binary := func(name string) pyrt.BinaryOpFunc {
		fn, ok := catalog{}.Implementation(name, pyrt.OpAdd)
		require.True(t, ok, name)
		return fn.(pyrt.BinaryOpFunc)
	}
	for _, cas := range []struct {
		name string
		want string
	}{
		{"decline", "NotImplemented"},
		{"left", "1"},
		{"right", "2"},
		{"const_7", "7"},
		{"const_0x10", "16"},
		{"const_2.5", "2.5"},
	} {
		got, err := binary(cas.name)(one, two)
		require.NoError(t, err)
		assert.Equal(t, cas.want, got.String(), cas.name)
	}

	fn, ok := catalog{}.Implementation("const_-1", pyrt.OpNeg)
	require.True(t, ok)
	got, err := fn.(pyrt.UnaryOpFunc)(one)
	require.NoError(t, err)
	assert.Equal(t, "-1", got.String())

	for _, name := range []string{"const_x", "nope", ""} {
		_, ok := catalog{}.Implementation(name, pyrt.OpAdd)
		assert.False(t, ok, name)
	}
	_, ok = catalog{}.Implementation("right", pyrt.OpNeg)
	assert.False(t, ok)
}

func TestTabulate(t *testing.T) {
	table, err := tabulate(pyrt.OpAdd, []*pyrt.Type{pyrt.IntType, pyrt.FloatType})
	require.NoError(t, err)
	assert.Equal(t, [][]cell{
		{{"int.__add__", true}, {"int.__add__ then float.__add__", true}},
		{{"float.__add__ then int.__add__", true}, {"float.__add__", true}},
	}, table.cells)

	table, err = tabulate(pyrt.OpSub, []*pyrt.Type{pyrt.StrType, pyrt.IntType})
	require.NoError(t, err)
	assert.Equal(t, unsupported, table.cells[0][0].String())
	assert.Equal(t, "int.__sub__", table.cells[0][1].String())
	resolved, failed := table.counts()
	assert.Equal(t, 3, resolved)
	assert.Equal(t, 1, failed)

	table, err = tabulate(pyrt.OpNeg, []*pyrt.Type{pyrt.BoolType, pyrt.StrType})
	require.NoError(t, err)
	assert.Equal(t, [][]cell{{{"int.__neg__", true}}, {{}}}, table.cells)
}

func TestWrite(t *testing.T) {
	table, err := tabulate(pyrt.OpSub, []*pyrt.Type{pyrt.StrType, pyrt.IntType})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, table.write(&buf, false))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `^__sub__ \(-\) +str +int$`, lines[0])
	assert.Regexp(t, `^str +unsupported +int.__sub__$`, lines[1])
	assert.Regexp(t, `^int +int.__sub__ +int.__sub__$`, lines[2])
	assert.NotContains(t, buf.String(), "\x1b[")

	buf.Reset()
	require.NoError(t, table.write(&buf, true))
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[1m__sub__"))
	assert.Contains(t, buf.String(), "\x1b[31munsupported\x1b[0m")
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vector.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
types:
  - name: Vector
    methods:
      __add__: const_1
      __radd__: decline
`), 0o644))
	var buf bytes.Buffer
	require.NoError(t, run(&buf, path, []string{"+", "__neg__"}, "error", false))
	out := buf.String()
	assert.Contains(t, out, "__add__ (+)")
	assert.Contains(t, out, "__neg__ (unary -)")
	assert.Contains(t, out, "int.__add__ then Vector.__add__")
	assert.Contains(t, out, "Vector.__add__ then int.__add__")
	assert.Regexp(t, `\d+ plans, \d+ unsupported across 9 types and 2 operators\n$`, out)
}

func TestRunErrors(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, "", []string{"ad"}, "", false)
	assert.EqualError(t, err, `unknown operator "ad", did you mean "add"?`)
	err = run(&buf, "", []string{"add"}, "chatty", false)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
types:
  - name: Vector
    methods:
      __add__: const_one
`), 0o644))
	err = run(&buf, path, []string{"add"}, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no implementation named "const_one"`)
	assert.Empty(t, buf.String())
}
