// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/tliron/commonlog"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/idl"
	"gopkg.microglot.org/peg.go/internal/target"
)

var log = commonlog.GetLogger("pegc.compiler")

type Option func(c *compiler) error

func OptionWithFS(fs idl.FileSystem) Option {
	return func(c *compiler) error {
		c.FS = fs
		return nil
	}
}

func OptionWithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(c *compiler) error {
		c.LookupENV = lookupEnv
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(c *compiler) error {
		c.Reporter = reporter
		return nil
	}
}

func OptionWithMaxConcurrency(limit int) Option {
	return func(c *compiler) error {
		if limit < 1 {
			return fmt.Errorf("max concurrency must be at least 1, got %d", limit)
		}
		c.MaxConcurrency = limit
		return nil
	}
}

func New(opts ...Option) (idl.Compiler, error) {
	c := &compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.LookupENV == nil {
		c.LookupENV = os.LookupEnv
	}
	if c.FS == nil {
		dfs, err := NewDefaultFS(c.LookupENV)
		if err != nil {
			return nil, err
		}
		c.FS = dfs
	}
	if c.MaxConcurrency == 0 {
		limit := runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if limit > cpus {
			limit = cpus
		}
		c.MaxConcurrency = limit
	}
	if c.Semaphore == nil {
		c.Semaphore = newSemaphore(c.MaxConcurrency)
	}
	if c.Reporter == nil {
		c.Reporter = exc.NewReporter(nil)
	}
	if c.SubCompilers == nil {
		c.SubCompilers = DefaultSubCompilers()
	}
	return c, nil
}

type compiler struct {
	LookupENV      func(string) (string, bool)
	FS             idl.FileSystem
	MaxConcurrency int
	Semaphore      *semaphore
	Reporter       exc.Reporter
	SubCompilers   map[idl.FileKind]SubCompiler
}

// Compile loads the grammar and parses every input file with it. Inputs are
// parsed concurrently and the trees come back in target order. Inputs that
// fail to parse are reported and left out of the response.
func (self *compiler) Compile(ctx context.Context, req *idl.CompileRequest) (*idl.CompileResponse, error) {
	// The reporter may be shared between calls, so only what is reported
	// from here on belongs to this compilation.
	before := len(self.Reporter.Fatal())
	grammar, err := self.loadGrammar(ctx, req.Grammar, req.Start)
	if err != nil {
		if caught := self.Reporter.Fatal()[before:]; len(caught) > 0 {
			return nil, MultiException(caught)
		}
		return nil, err
	}

	files := make([]idl.File, 0, len(req.Files))
	for _, name := range req.Files {
		in, err := self.FS.Open(ctx, target.Normalize(name))
		if err != nil {
			return nil, err
		}
		files = append(files, in...)
	}

	results := make(chan fileResult, len(files))
	for offset, file := range files {
		go func(offset int, file idl.File) {
			tree, err := self.parseFile(ctx, grammar, file)
			results <- fileResult{offset: offset, tree: tree, err: err}
		}(offset, file)
	}

	trees := make([]*idl.ParseTree, len(files))
	for x := 0; x < len(files); x = x + 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-results:
			if result.err != nil {
				return nil, result.err
			}
			trees[result.offset] = result.tree
		}
	}

	final := &idl.CompileResponse{}
	for _, tree := range trees {
		if tree != nil {
			final.Trees = append(final.Trees, tree)
		}
	}
	if caught := self.Reporter.Fatal()[before:]; len(caught) > 0 {
		return final, MultiException(caught)
	}
	return final, nil
}

func (self *compiler) loadGrammar(ctx context.Context, name string, start string) (*Grammar, error) {
	return LoadGrammar(ctx, self.FS, self.Reporter, self.SubCompilers, name, start)
}

// LoadGrammar opens the named grammar through the file system and compiles
// it with CompileGrammar. The name must resolve to exactly one file.
func LoadGrammar(ctx context.Context, f idl.FileSystem, r exc.Reporter, subCompilers map[idl.FileKind]SubCompiler, name string, start string) (*Grammar, error) {
	if name == "" {
		return nil, r.Report(exc.New(exc.Location{}, exc.CodeFileNotFound, "no grammar given"))
	}
	in, err := f.Open(ctx, target.Normalize(name))
	if err != nil {
		return nil, err
	}
	if len(in) != 1 {
		e := exc.New(exc.Location{URI: name}, exc.CodeUnsupportedFileFormat, fmt.Sprintf("expected one grammar file, found %d", len(in)))
		return nil, r.Report(e)
	}
	return CompileGrammar(ctx, r, subCompilers, in[0], start)
}

// CompileGrammar reads, links and checks one grammar file. An empty start
// uses the start rule named in the file, or else its first rule.
func CompileGrammar(ctx context.Context, r exc.Reporter, subCompilers map[idl.FileKind]SubCompiler, file idl.File, start string) (*Grammar, error) {
	sc := subCompilers[file.Kind(ctx)]
	if sc == nil {
		e := exc.New(exc.Location{URI: file.Path(ctx)}, exc.CodeUnsupportedFileFormat, fmt.Sprintf("unsupported grammar format %s", file.Kind(ctx)))
		return nil, r.Report(e)
	}
	parsed, err := sc.ParseGrammar(ctx, r, file)
	if err != nil {
		return nil, err
	}
	grammar, err := link(parsed, start, r)
	if err != nil {
		return nil, err
	}
	check(parsed, grammar.Start, r)
	log.Debugf("loaded grammar %s with %d rules, starting at %s", grammar.URI, len(grammar.Rules), grammar.Start)
	return grammar, nil
}

func (self *compiler) parseFile(ctx context.Context, grammar *Grammar, file idl.File) (*idl.ParseTree, error) {
	self.Semaphore.Lock()
	defer self.Semaphore.Unlock()
	uri := file.Path(ctx)
	content, err := file.Content(ctx)
	if err != nil {
		return nil, err
	}
	root, err := grammar.Parse(uri, content)
	if err != nil {
		e, ok := err.(exc.Exception)
		if !ok {
			return nil, err
		}
		log.Infof("failed to parse %s: %s", uri, e.Error())
		_ = self.Reporter.Report(e)
		return nil, nil
	}
	log.Debugf("parsed %s", uri)
	return &idl.ParseTree{URI: uri, Root: root}, nil
}

type fileResult struct {
	offset int
	tree   *idl.ParseTree
	err    error
}

type MultiException []exc.Exception

func (self MultiException) Error() string {
	var b strings.Builder
	for _, err := range self[:len(self)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(self[len(self)-1].Error())
	return b.String()
}
