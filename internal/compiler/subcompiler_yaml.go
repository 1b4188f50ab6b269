// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"

	"gopkg.in/yaml.v3"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/idl"
)

type SubCompilerYAML struct{}

func (self *SubCompilerYAML) ParseGrammar(ctx context.Context, r exc.Reporter, file idl.File) (*astGrammar, error) {
	uri := file.Path(ctx)
	content, err := file.Content(ctx)
	if err != nil {
		return nil, err
	}
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(content), &root); err != nil {
		return nil, r.Report(exc.Wrap(exc.Location{URI: uri}, exc.CodeInvalidGrammar, err))
	}
	var doc grammarDocument
	if err := root.Decode(&doc); err != nil {
		return nil, r.Report(exc.Wrap(exc.Location{URI: uri, Line: root.Line, Column: root.Column}, exc.CodeInvalidGrammar, err))
	}
	return buildGrammar(uri, doc, yamlRulePositions(&root), r)
}

// yamlRulePositions finds where each rule expression starts in the document.
func yamlRulePositions(root *yaml.Node) []position {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	rules := mappingValue(doc, "rules")
	if rules == nil || rules.Kind != yaml.SequenceNode {
		return nil
	}
	positions := make([]position, 0, len(rules.Content))
	for _, rule := range rules.Content {
		pos := position{line: rule.Line, column: rule.Column, nameLine: rule.Line, nameColumn: rule.Column}
		if name := mappingValue(rule, "name"); name != nil {
			pos.nameLine = name.Line
			pos.nameColumn = name.Column
		}
		expr := mappingValue(rule, "expr")
		if expr == nil {
			positions = append(positions, pos)
			continue
		}
		pos.line = expr.Line
		pos.column = expr.Column
		// Quoted scalars start after the quote.
		if expr.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 {
			pos.column = pos.column + 1
		}
		// Block scalars start on the following line.
		if expr.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
			pos.line = pos.line + 1
			pos.column = rule.Column + 2
		}
		positions = append(positions, pos)
	}
	return positions
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for x := 0; x+1 < len(n.Content); x = x + 2 {
		if n.Content[x].Value == key {
			return n.Content[x+1]
		}
	}
	return nil
}
