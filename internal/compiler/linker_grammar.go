// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"errors"
	"fmt"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/idl"
	"gopkg.microglot.org/peg.go/peg"
)

type nodes = []*idl.Node

// link() turns a parsed grammar into a graph of parsers, one per rule.
// Every rule is declared as an empty slot before any body is compiled so that
// rules may refer to each other in any order, including recursively.
// reports: duplicate rules, undefined references, a missing start rule
func link(grammar *astGrammar, start string, r exc.Reporter) (*Grammar, error) {
	l := &linker{
		reporter: r,
		rules:    make(map[string]*peg.Rewritable[*idl.Node], len(grammar.rules)),
	}
	result := &Grammar{
		URI:   grammar.uri,
		rules: l.rules,
		ast:   grammar,
	}

	defs := make([]*astRule, 0, len(grammar.rules))
	var duplicates []*astRule
	for _, rule := range grammar.rules {
		if _, ok := l.rules[rule.name]; ok {
			l.report(exc.New(rule.locate(rule), exc.CodeDuplicateRule, fmt.Sprintf("rule %s is already defined", rule.name)))
			duplicates = append(duplicates, rule)
			continue
		}
		l.rules[rule.name] = peg.NewRewritable[*idl.Node](nil)
		result.Rules = append(result.Rules, rule.name)
		defs = append(defs, rule)
	}

	for _, rule := range defs {
		l.rules[rule.name].Set(&ruleParser{
			name: rule.name,
			body: l.compile(rule, rule.body),
		})
	}
	// Duplicate bodies are never used but are still checked for references
	// to undefined rules.
	for _, rule := range duplicates {
		_ = l.compile(rule, rule.body)
	}

	if start == "" {
		start = grammar.start
	}
	if start == "" && len(defs) > 0 {
		start = defs[0].name
	}
	if _, ok := l.rules[start]; !ok {
		message := fmt.Sprintf("start rule %s is not defined", start)
		if start == "" {
			message = "grammar defines no rules"
		}
		l.report(exc.New(exc.Location{URI: grammar.uri}, exc.CodeMissingStart, message))
	}
	result.Start = start

	if l.failed {
		return nil, errors.New("link error")
	}
	return result, nil
}

type linker struct {
	reporter exc.Reporter
	rules    map[string]*peg.Rewritable[*idl.Node]
	failed   bool
}

func (l *linker) report(e exc.Exception) {
	if l.reporter.Report(e) != nil {
		l.failed = true
	}
}

func (l *linker) compile(rule *astRule, e expr) peg.Parser[nodes] {
	switch n := e.(type) {
	case *astLiteral:
		return discard(peg.Literal(n.text))
	case *astClass:
		return discard(peg.Class(n.sets...))
	case *astAny:
		return discard(peg.Any())
	case *astIdentifier:
		slot, ok := l.rules[n.name]
		if !ok {
			l.report(exc.New(rule.locate(n), exc.CodeUndefinedRule, fmt.Sprintf("rule %s is not defined", n.name)))
			return discard(peg.Parser[*idl.Node](peg.NewRewritable[*idl.Node](nil)))
		}
		return peg.Map(peg.Parser[*idl.Node](slot), func(match *idl.Node) nodes {
			return nodes{match}
		})
	case *astSequence:
		if len(n.items) == 0 {
			return peg.Func[nodes](func(input string) peg.Result[nodes] {
				return peg.Success[nodes](nil, input)
			})
		}
		p := l.compile(rule, n.items[0])
		for _, item := range n.items[1:] {
			p = peg.Map(peg.Seq(p, l.compile(rule, item)), func(v peg.Pair[nodes, nodes]) nodes {
				return append(v.First, v.Second...)
			})
		}
		return p
	case *astChoice:
		alternatives := make([]peg.Parser[nodes], 0, len(n.alternatives))
		for _, alternative := range n.alternatives {
			alternatives = append(alternatives, l.compile(rule, alternative))
		}
		return peg.OneOf(alternatives...)
	case *astRepeat:
		inner := l.compile(rule, n.inner)
		switch n.operator {
		case "?":
			return peg.Map(peg.Optional(inner), func(v peg.Option[nodes]) nodes {
				return v.ValueOr(nil)
			})
		case "*":
			return peg.Map(peg.ZeroOrMore(inner), flatten)
		default:
			return peg.Map(peg.OneOrMore(inner), flatten)
		}
	case *astLookahead:
		inner := l.compile(rule, n.inner)
		if n.negate {
			return discard(peg.NotAhead(inner))
		}
		return discard(peg.Lookahead(inner))
	default:
		panic(fmt.Sprintf("unknown expression type %T", e))
	}
}

func discard[T any](p peg.Parser[T]) peg.Parser[nodes] {
	return peg.Map(p, func(T) nodes {
		return nil
	})
}

func flatten(groups []nodes) nodes {
	var out nodes
	for _, group := range groups {
		out = append(out, group...)
	}
	return out
}

// ruleParser wraps the body of a rule so that each match becomes a Node. The
// Location.Offset of the Node temporarily holds the length of the input that
// remained when the rule started; resolveLocations fixes it up once the
// whole input is known.
type ruleParser struct {
	name string
	body peg.Parser[nodes]
}

func (self *ruleParser) Apply(input string) peg.Result[*idl.Node] {
	r := self.body.Apply(input)
	if !r.IsSuccess() {
		return peg.Failure[*idl.Node](r.Message(), r.Remaining())
	}
	return peg.Success(&idl.Node{
		Rule:     self.name,
		Text:     r.Consumed(input),
		Location: exc.Location{Offset: len(input)},
		Children: r.Value(),
	}, r.Remaining())
}
