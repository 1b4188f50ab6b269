// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"fmt"
	"strings"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/idl"
	"gopkg.microglot.org/peg.go/peg"
)

// Grammar is a linked set of rules ready to parse input. A Grammar is safe
// for concurrent use.
type Grammar struct {
	URI   string
	Start string
	// Rules holds rule names in definition order.
	Rules []string
	rules map[string]*peg.Rewritable[*idl.Node]
	ast   *astGrammar
}

// String writes the rules back out in PEG notation.
func (self *Grammar) String() string {
	var b strings.Builder
	for _, rule := range self.ast.rules {
		b.WriteString(formatRule(rule))
		b.WriteByte('\n')
	}
	return b.String()
}

// Rule returns the parser for the named rule.
func (self *Grammar) Rule(name string) (peg.Parser[*idl.Node], bool) {
	slot, ok := self.rules[name]
	if !ok {
		return nil, false
	}
	return slot, true
}

// Define replaces the body of an existing rule with a hand-written parser.
// Rules that already refer to it pick up the new definition. Matches of the
// rule have no children.
func (self *Grammar) Define(name string, p peg.Parser[string]) error {
	slot, ok := self.rules[name]
	if !ok {
		return exc.New(exc.Location{URI: self.URI}, exc.CodeUndefinedRule, fmt.Sprintf("rule %s is not defined", name))
	}
	slot.Set(&ruleParser{name: name, body: discard(p)})
	return nil
}

// Parse matches the whole input against the start rule.
func (self *Grammar) Parse(uri string, input string) (*idl.Node, error) {
	return self.ParseRule(self.Start, uri, input)
}

// ParseRule matches the whole input against the named rule.
func (self *Grammar) ParseRule(name string, uri string, input string) (*idl.Node, error) {
	p, ok := self.Rule(name)
	if !ok {
		return nil, exc.New(exc.Location{URI: self.URI}, exc.CodeMissingStart, fmt.Sprintf("rule %s is not defined", name))
	}
	root, err := peg.Parse(p, uri, input)
	if err != nil {
		return nil, err
	}
	resolveLocations(root, uri, input)
	return root, nil
}
