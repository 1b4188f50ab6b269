// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/idl"
)

type SubCompilerTOML struct{}

func (self *SubCompilerTOML) ParseGrammar(ctx context.Context, r exc.Reporter, file idl.File) (*astGrammar, error) {
	uri := file.Path(ctx)
	content, err := file.Content(ctx)
	if err != nil {
		return nil, err
	}
	var doc grammarDocument
	md, err := toml.Decode(content, &doc)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			loc := exc.Location{URI: uri, Line: perr.Position.Line, Column: perr.Position.Col}
			return nil, r.Report(exc.New(loc, exc.CodeInvalidGrammar, perr.Message))
		}
		return nil, r.Report(exc.Wrap(exc.Location{URI: uri}, exc.CodeInvalidGrammar, err))
	}
	failed := false
	for _, key := range md.Undecoded() {
		if r.Report(exc.New(exc.Location{URI: uri}, exc.CodeInvalidGrammar, fmt.Sprintf("unknown key %s", key.String()))) != nil {
			failed = true
		}
	}
	if failed {
		return nil, fmt.Errorf("invalid grammar %s", uri)
	}
	// TOML does not expose positions of decoded values, so rule errors carry
	// only the URI and name the rule in the message.
	return buildGrammar(uri, doc, nil, r)
}
