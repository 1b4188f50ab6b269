// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"io"
	"strings"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/idl"
)

// NewFileString wraps static string content in idl.File.
func NewFileString(path string, content string, kind idl.FileKind) idl.File {
	return NewFileFN(path, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}, kind)
}

type fileIOFunc struct {
	path string
	kind idl.FileKind
	body func() (io.ReadCloser, error)
}

// NewFileFN is intended to wrap actual file based content in the idl.File
// interface. The given body function is used each time there is a call to the
// idl.File.Content method so it must return a new io.ReadCloser handle. There
// is no guarantee that only on output of the body function will be used at a
// time.
func NewFileFN(path string, body func() (io.ReadCloser, error), kind idl.FileKind) idl.File {
	return &fileIOFunc{
		path: path,
		kind: kind,
		body: body,
	}
}

func (f *fileIOFunc) Path(ctx context.Context) string {
	return f.path
}

func (f *fileIOFunc) Kind(ctx context.Context) idl.FileKind {
	return f.kind
}

func (f *fileIOFunc) Content(ctx context.Context) (string, error) {
	rc, err := f.body()
	if err != nil {
		return "", fsErr(f.path, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(&ctxReader{ctx: ctx, r: rc})
	if err != nil {
		return "", exc.WrapUnknown(exc.Location{URI: f.path}, err)
	}
	return string(b), nil
}

// ctxReader stops a read of a large file once the context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (self *ctxReader) Read(p []byte) (int, error) {
	if err := self.ctx.Err(); err != nil {
		return 0, err
	}
	return self.r.Read(p)
}
