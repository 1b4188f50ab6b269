// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package idl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.microglot.org/peg.go/internal/exc"
)

type FileKind uint32

const (
	FileKindNone FileKind = iota
	FileKindGrammarPEG
	FileKindGrammarYAML
	FileKindGrammarTOML
	FileKindText
)

func (k FileKind) String() string {
	switch k {
	case FileKindNone:
		return "none"
	case FileKindGrammarPEG:
		return "grammar-peg"
	case FileKindGrammarYAML:
		return "grammar-yaml"
	case FileKindGrammarTOML:
		return "grammar-toml"
	case FileKindText:
		return "text"
	default:
		return fmt.Sprintf("unknown-%d", k)
	}
}

// IsGrammar reports whether files of this kind hold grammar definitions.
func (k FileKind) IsGrammar() bool {
	switch k {
	case FileKindGrammarPEG, FileKindGrammarYAML, FileKindGrammarTOML:
		return true
	default:
		return false
	}
}

type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	// Content reads the whole file. Parsers work on in-memory strings only.
	Content(ctx context.Context) (string, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
	Write(ctx context.Context, uri string, content string) error
}

type Compiler interface {
	Compile(ctx context.Context, req *CompileRequest) (*CompileResponse, error)
}

type CompileRequest struct {
	// Grammar is the path or URI of the grammar definition.
	Grammar string
	// Start overrides the start rule named by the grammar.
	Start string
	// Files are the inputs to parse with the grammar.
	Files []string
}

type CompileResponse struct {
	Trees []*ParseTree
}

type ParseTree struct {
	URI  string
	Root *Node
}

// Node is a match of a named grammar rule. Text is the exact input the rule
// consumed and Children are the rule matches nested inside it.
type Node struct {
	Rule     string
	Text     string
	Location exc.Location
	Children []*Node
}

// Dump writes an indented outline of the tree.
func (n *Node) Dump(w io.Writer) error {
	return n.dump(w, 0)
}

func (n *Node) dump(w io.Writer, depth int) error {
	_, err := fmt.Fprintf(w, "%s%s %d:%d %q\n", strings.Repeat("  ", depth), n.Rule, n.Location.Line, n.Location.Column, n.Text)
	if err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.dump(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) String() string {
	var b strings.Builder
	_ = n.Dump(&b)
	return b.String()
}
