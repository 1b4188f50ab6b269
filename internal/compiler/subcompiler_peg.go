// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/idl"
)

type SubCompilerPEG struct{}

func (self *SubCompilerPEG) ParseGrammar(ctx context.Context, r exc.Reporter, file idl.File) (*astGrammar, error) {
	content, err := file.Content(ctx)
	if err != nil {
		return nil, err
	}
	grammar, err := parseGrammar(file.Path(ctx), content)
	if err != nil {
		if e, ok := err.(exc.Exception); ok {
			return nil, r.Report(e)
		}
		return nil, err
	}
	return grammar, nil
}
