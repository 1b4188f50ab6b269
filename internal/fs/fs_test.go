// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/idl"
)

func testFS(t *testing.T, files fstest.MapFS) idl.FileSystem {
	f, err := NewFileSystemLocal("/", WithOptionFSFactory(func(string) iofs.FS { return files }))
	require.NoError(t, err)
	return f
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	require.Equal(t, idl.FileKindGrammarPEG, KindOf("/a/calc.peg"))
	require.Equal(t, idl.FileKindGrammarYAML, KindOf("calc.yml"))
	require.Equal(t, idl.FileKindGrammarYAML, KindOf("calc.YAML"))
	require.Equal(t, idl.FileKindGrammarTOML, KindOf("calc.toml"))
	require.Equal(t, idl.FileKindText, KindOf("input.txt"))
	require.Equal(t, idl.FileKindText, KindOf("input"))
}

func TestFileSystemLocal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	local := testFS(t, fstest.MapFS{
		"grammar/calc.peg": {Data: []byte("Sum <- [0-9]+")},
		"inputs/one.txt":   {Data: []byte("1")},
		"inputs/two.txt":   {Data: []byte("22")},
		"inputs/.hidden":   {Data: []byte("x")},
	})

	files, err := local.Open(ctx, "/grammar/calc.peg")
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, idl.FileKindGrammarPEG, files[0].Kind(ctx))
	content, err := files[0].Content(ctx)
	require.NoError(t, err)
	require.Equal(t, "Sum <- [0-9]+", content)

	files, err = local.Open(ctx, "file:///inputs")
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "/inputs/one.txt", files[0].Path(ctx))
	require.Equal(t, idl.FileKindText, files[1].Kind(ctx))

	_, err = local.Open(ctx, "/missing.peg")
	var e exc.Exception
	require.True(t, errors.As(err, &e))
	require.Equal(t, exc.CodeFileNotFound, e.Code())
}

func TestFileSystemMulti(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	multi := FileSystemMulti{
		testFS(t, fstest.MapFS{"a.peg": {Data: []byte("A <- 'a'")}}),
		testFS(t, fstest.MapFS{"b.peg": {Data: []byte("B <- 'b'")}}),
	}

	files, err := multi.Open(ctx, "b.peg")
	require.NoError(t, err)
	content, err := files[0].Content(ctx)
	require.NoError(t, err)
	require.Equal(t, "B <- 'b'", content)

	_, err = multi.Open(ctx, "c.peg")
	require.Error(t, err)
	require.Error(t, multi.Write(ctx, "c.peg", ""))
}

func TestFileString(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	f := NewFileString("/in.txt", "hello", idl.FileKindText)
	content, err := f.Content(ctx)
	require.NoError(t, err)
	require.Equal(t, "hello", content)

	cancel()
	_, err = f.Content(ctx)
	require.Error(t, err)
}

func TestFileSystemLocalWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	local, err := NewFileSystemLocal(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, local.Write(ctx, "/trees/inputs/a.txt.tree", "Sum 1:1 \"1\"\n"))
	require.NoError(t, local.Write(ctx, "file:///calc.peg", "Sum <- [0-9]+\n"))

	files, err := local.Open(ctx, "/trees/inputs/a.txt.tree")
	require.NoError(t, err)
	require.Len(t, files, 1)
	content, err := files[0].Content(ctx)
	require.NoError(t, err)
	require.Equal(t, "Sum 1:1 \"1\"\n", content)

	files, err = local.Open(ctx, "/calc.peg")
	require.NoError(t, err)
	require.Equal(t, idl.FileKindGrammarPEG, files[0].Kind(ctx))
}
