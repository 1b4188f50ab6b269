// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"path"
	"strings"

	"gopkg.microglot.org/peg.go/internal/idl"
	"gopkg.microglot.org/peg.go/internal/target"
)

// WriteTrees writes the outline of each tree to out, at the path of its input
// with a .tree extension added.
func WriteTrees(ctx context.Context, out idl.FileSystem, trees []*idl.ParseTree) error {
	for _, tree := range trees {
		uri := target.Normalize(tree.URI) + ".tree"
		if err := out.Write(ctx, uri, tree.Root.String()); err != nil {
			return err
		}
		log.Debugf("wrote %s", uri)
	}
	return nil
}

// WriteGrammar writes the grammar to out in PEG notation. The file is named
// after the grammar source with its extension replaced by .peg.
func WriteGrammar(ctx context.Context, out idl.FileSystem, grammar *Grammar) error {
	base := path.Base(target.Normalize(grammar.URI))
	uri := "/" + strings.TrimSuffix(base, path.Ext(base)) + ".peg"
	if err := out.Write(ctx, uri, grammar.String()); err != nil {
		return err
	}
	log.Debugf("wrote %s", uri)
	return nil
}
