// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"fmt"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/idl"
)

// SubCompiler reads one grammar source format.
type SubCompiler interface {
	ParseGrammar(ctx context.Context, r exc.Reporter, file idl.File) (*astGrammar, error)
}

func DefaultSubCompilers() map[idl.FileKind]SubCompiler {
	return map[idl.FileKind]SubCompiler{
		idl.FileKindGrammarPEG:  &SubCompilerPEG{},
		idl.FileKindGrammarYAML: &SubCompilerYAML{},
		idl.FileKindGrammarTOML: &SubCompilerTOML{},
	}
}

// grammarDocument is the shape shared by the YAML and TOML formats:
//
//	start: Sum
//	rules:
//	  - name: Sum
//	    expr: Number ('+' Number)*
type grammarDocument struct {
	Start string        `yaml:"start" toml:"start"`
	Rules []grammarRule `yaml:"rules" toml:"rules"`
}

type grammarRule struct {
	Name string `yaml:"name" toml:"name"`
	Expr string `yaml:"expr" toml:"expr"`
}

// position of a rule within its document. The expression and the name are
// located separately; zero when unknown.
type position struct {
	line       int
	column     int
	nameLine   int
	nameColumn int
}

// buildGrammar parses every rule expression of a decoded document. Each bad
// rule is reported so that all of them are shown at once.
func buildGrammar(uri string, doc grammarDocument, positions []position, r exc.Reporter) (*astGrammar, error) {
	grammar := &astGrammar{uri: uri, start: doc.Start}
	failed := false
	for x, rule := range doc.Rules {
		var pos position
		if x < len(positions) {
			pos = positions[x]
		}
		loc := exc.Location{URI: uri, Line: pos.line, Column: pos.column}
		if !isRuleName(rule.Name) {
			if pos.nameLine > 0 {
				loc = exc.Location{URI: uri, Line: pos.nameLine, Column: pos.nameColumn}
			}
			if r.Report(exc.New(loc, exc.CodeInvalidGrammar, fmt.Sprintf("invalid rule name %q", rule.Name))) != nil {
				failed = true
			}
			continue
		}
		parsed, err := parseRule(uri, rule.Name, rule.Expr, pos.line, pos.column)
		if err != nil {
			e, ok := err.(exc.Exception)
			if !ok {
				e = exc.WrapUnknown(loc, err)
			}
			if pos.line == 0 {
				e = exc.New(loc, e.Code(), fmt.Sprintf("rule %s: %s", rule.Name, e.Message()))
			}
			if r.Report(e) != nil {
				failed = true
			}
			continue
		}
		parsed.unplaced = pos.line == 0
		grammar.rules = append(grammar.rules, parsed)
	}
	if failed {
		return nil, fmt.Errorf("invalid grammar %s", uri)
	}
	return grammar, nil
}
