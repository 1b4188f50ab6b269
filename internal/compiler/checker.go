// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"fmt"

	"gopkg.microglot.org/peg.go/internal/exc"
)

// check() looks for rules that can never take part in a parse.
// reports: rules unreachable from the start rule
func check(grammar *astGrammar, start string, reporter exc.Reporter) {
	checker := grammarChecker{
		grammar:  grammar,
		reporter: reporter,
		byName:   make(map[string]*astRule, len(grammar.rules)),
		reached:  make(map[string]bool, len(grammar.rules)),
	}
	checker.check(start)
}

type grammarChecker struct {
	grammar  *astGrammar
	reporter exc.Reporter
	byName   map[string]*astRule
	reached  map[string]bool
}

func (c *grammarChecker) check(start string) {
	for _, rule := range c.grammar.rules {
		if _, ok := c.byName[rule.name]; !ok {
			c.byName[rule.name] = rule
		}
	}
	c.visit(start)
	for _, rule := range c.grammar.rules {
		if c.reached[rule.name] {
			continue
		}
		// only report the first definition of a duplicated name
		if c.byName[rule.name] != rule {
			continue
		}
		_ = c.reporter.Report(exc.New(rule.locate(rule), exc.CodeUnusedRule, fmt.Sprintf("rule %s is never used", rule.name)))
	}
}

func (c *grammarChecker) visit(name string) {
	if c.reached[name] {
		return
	}
	rule, ok := c.byName[name]
	if !ok {
		return
	}
	c.reached[name] = true
	walkRule(rule, func(_ *astRule, n node) {
		if id, ok := n.(*astIdentifier); ok {
			c.visit(id.name)
		}
	})
}
