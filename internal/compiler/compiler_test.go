// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"errors"
	iofs "io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/fs"
	"gopkg.microglot.org/peg.go/internal/idl"
)

func newTestCompiler(t *testing.T, files fstest.MapFS) idl.Compiler {
	t.Helper()
	local, err := fs.NewFileSystemLocal("/", fs.WithOptionFSFactory(func(string) iofs.FS { return files }))
	require.NoError(t, err)
	c, err := New(
		OptionWithFS(local),
		OptionWithLookupEnv(func(string) (string, bool) { return "", false }),
		OptionWithMaxConcurrency(2),
	)
	require.NoError(t, err)
	return c
}

func TestCompile(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t, fstest.MapFS{
		"grammars/calc.peg": {Data: []byte(calcGrammar)},
		"inputs/a.txt":      {Data: []byte("1+2")},
		"inputs/b.txt":      {Data: []byte("(3*4)")},
		"inputs/c.txt":      {Data: []byte("5")},
	})

	out, err := c.Compile(context.Background(), &idl.CompileRequest{
		Grammar: "grammars/calc.peg",
		Files:   []string{"inputs"},
	})
	require.NoError(t, err)
	require.Len(t, out.Trees, 3)
	require.Equal(t, "/inputs/a.txt", out.Trees[0].URI)
	require.Equal(t, "1+2", out.Trees[0].Root.Text)
	require.Equal(t, "/inputs/b.txt", out.Trees[1].URI)
	require.Equal(t, "/inputs/c.txt", out.Trees[2].URI)
}

func TestCompileStartOverride(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t, fstest.MapFS{
		"calc.peg": {Data: []byte(calcGrammar)},
		"n.txt":    {Data: []byte("123")},
	})

	out, err := c.Compile(context.Background(), &idl.CompileRequest{
		Grammar: "file:///calc.peg",
		Start:   "Number",
		Files:   []string{"n.txt"},
	})
	require.NoError(t, err)
	require.Len(t, out.Trees, 1)
	require.Equal(t, "Number", out.Trees[0].Root.Rule)
}

func TestCompileParseFailures(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t, fstest.MapFS{
		"calc.peg":     {Data: []byte(calcGrammar)},
		"inputs/a.txt": {Data: []byte("1+2")},
		"inputs/b.txt": {Data: []byte("1+")},
		"inputs/c.txt": {Data: []byte("(1+2")},
	})

	out, err := c.Compile(context.Background(), &idl.CompileRequest{
		Grammar: "calc.peg",
		Files:   []string{"inputs"},
	})
	var me MultiException
	require.True(t, errors.As(err, &me))
	require.Len(t, me, 2)
	require.NotNil(t, out)
	require.Len(t, out.Trees, 1)
	require.Equal(t, "/inputs/a.txt", out.Trees[0].URI)

	byURI := map[string]exc.Exception{}
	for _, e := range me {
		byURI[e.Location().URI] = e
	}
	require.Equal(t, exc.CodeTrailingInput, byURI["/inputs/b.txt"].Code())
	require.Equal(t, exc.CodeSyntax, byURI["/inputs/c.txt"].Code())
	require.Equal(t, 5, byURI["/inputs/c.txt"].Location().Column)
}

func TestCompileGrammarErrors(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t, fstest.MapFS{
		"bad.peg": {Data: []byte("A <- B\nC <- D")},
		"in.txt":  {Data: []byte("x")},
	})

	_, err := c.Compile(context.Background(), &idl.CompileRequest{
		Grammar: "bad.peg",
		Files:   []string{"in.txt"},
	})
	var me MultiException
	require.True(t, errors.As(err, &me))
	require.Len(t, me, 2)
	require.Equal(t, exc.CodeUndefinedRule, me[0].Code())
	require.Contains(t, me.Error(), "; ")

	_, err = c.Compile(context.Background(), &idl.CompileRequest{
		Grammar: "missing.peg",
		Files:   []string{"in.txt"},
	})
	var e exc.Exception
	require.True(t, errors.As(err, &e))
	require.Equal(t, exc.CodeFileNotFound, e.Code())
}

func TestOptionWithMaxConcurrency(t *testing.T) {
	t.Parallel()
	_, err := New(OptionWithMaxConcurrency(0))
	require.Error(t, err)
}

func TestSearchPath(t *testing.T) {
	t.Parallel()
	lookup := func(k string) (string, bool) {
		if k == "PEGC_PATH" {
			return "/a::/b", true
		}
		return "", false
	}
	require.Equal(t, []string{"/a", "/b"}, getSearchPath(lookup))
	require.Nil(t, getSearchPath(func(string) (string, bool) { return "", false }))

	f, err := NewDefaultFS(lookup)
	require.NoError(t, err)
	require.NotNil(t, f)
}
