// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/peg"
)

// interface for all AST nodes
type node interface {
	node()
	// rest is the length of the rule source remaining at the start of the
	// node. It is turned into a Location with astRule.locate.
	rest() int
}

// interface for all parsing expression types
type expr interface {
	node
	expr()
}

type astNode struct {
	remaining int
}

func (astNode) node() {}

func (n astNode) rest() int {
	return n.remaining
}

type astExpr struct {
	astNode
}

func (astExpr) expr() {}

type astGrammar struct {
	uri string
	// start is the rule named by the grammar document, if any.
	start string
	rules []*astRule
}

type astRule struct {
	astNode
	name string
	body expr
	// source is the text the rule was parsed from. For .peg files that is the
	// whole file. For YAML and TOML it is only the rule expression, located in
	// the document by line and column.
	uri    string
	source string
	line   int
	column int
	// unplaced is set when the document gives no position for the rule, as
	// with TOML. Its locations then carry only the URI.
	unplaced bool
}

func (r *astRule) locate(n node) exc.Location {
	return r.locateRest(n.rest())
}

func (r *astRule) locateRest(rest int) exc.Location {
	if r.unplaced {
		return exc.Location{URI: r.uri}
	}
	if rest > len(r.source) {
		rest = len(r.source)
	}
	loc := exc.LocationOf(r.uri, r.source, r.source[len(r.source)-rest:])
	if r.line > 0 {
		if loc.Line == 1 {
			loc.Column = loc.Column + r.column - 1
		}
		loc.Line = loc.Line + r.line - 1
	}
	return loc
}

type astChoice struct {
	astExpr
	alternatives []expr
}

type astSequence struct {
	astExpr
	items []expr
}

type astLookahead struct {
	astExpr
	negate bool
	inner  expr
}

type astRepeat struct {
	astExpr
	// operator is one of '?', '*' or '+'.
	operator string
	inner    expr
}

type astIdentifier struct {
	astExpr
	name string
}

type astLiteral struct {
	astExpr
	text string
}

type astClass struct {
	astExpr
	sets []peg.CharSet
}

type astAny struct {
	astExpr
}

// formatExpr writes e back out in PEG notation with the minimum of
// parentheses.
func formatExpr(e expr) string {
	switch n := e.(type) {
	case *astChoice:
		parts := make([]string, 0, len(n.alternatives))
		for _, alternative := range n.alternatives {
			parts = append(parts, formatExpr(alternative))
		}
		return strings.Join(parts, " / ")
	case *astSequence:
		if len(n.items) == 0 {
			return "()"
		}
		parts := make([]string, 0, len(n.items))
		for _, item := range n.items {
			if _, ok := item.(*astChoice); ok {
				parts = append(parts, "("+formatExpr(item)+")")
				continue
			}
			parts = append(parts, formatExpr(item))
		}
		return strings.Join(parts, " ")
	case *astLookahead:
		op := "&"
		if n.negate {
			op = "!"
		}
		return op + formatOperand(n.inner)
	case *astRepeat:
		return formatOperand(n.inner) + n.operator
	case *astIdentifier:
		return n.name
	case *astLiteral:
		return quoteLiteral(n.text)
	case *astClass:
		var b strings.Builder
		b.WriteByte('[')
		for _, set := range n.sets {
			b.WriteString(set.String())
		}
		b.WriteByte(']')
		return b.String()
	case *astAny:
		return "."
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

// formatOperand parenthesizes anything that binds looser than a prefix or
// suffix operator.
func formatOperand(e expr) string {
	switch n := e.(type) {
	case *astChoice, *astLookahead, *astRepeat:
		return "(" + formatExpr(e) + ")"
	case *astSequence:
		if len(n.items) == 0 {
			return formatExpr(e)
		}
		return "(" + formatExpr(e) + ")"
	default:
		return formatExpr(e)
	}
}

func quoteLiteral(s string) string {
	return strconv.Quote(s)
}

func formatRule(rule *astRule) string {
	return rule.name + " <- " + formatExpr(rule.body)
}
