// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"sort"
	"unicode/utf8"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/idl"
)

func walkGrammar(grammar *astGrammar, f func(*astRule, node)) {
	for _, rule := range grammar.rules {
		walkRule(rule, f)
	}
}

func walkRule(rule *astRule, f func(*astRule, node)) {
	f(rule, rule)
	walkExpr(rule, rule.body, f)
}

func walkExpr(rule *astRule, e expr, f func(*astRule, node)) {
	f(rule, e)
	switch n := e.(type) {
	case *astChoice:
		for _, alternative := range n.alternatives {
			walkExpr(rule, alternative, f)
		}
	case *astSequence:
		for _, item := range n.items {
			walkExpr(rule, item, f)
		}
	case *astLookahead:
		walkExpr(rule, n.inner, f)
	case *astRepeat:
		walkExpr(rule, n.inner, f)
	}
}

func walkTree(n *idl.Node, f func(*idl.Node)) {
	f(n)
	for _, child := range n.Children {
		walkTree(child, f)
	}
}

// lineIndex converts byte offsets into line and column positions without
// rescanning the input for every node.
type lineIndex struct {
	uri    string
	input  string
	starts []int
}

func newLineIndex(uri string, input string) *lineIndex {
	starts := []int{0}
	for x := 0; x < len(input); x = x + 1 {
		if input[x] == '\n' {
			starts = append(starts, x+1)
		}
	}
	return &lineIndex{uri: uri, input: input, starts: starts}
}

func (self *lineIndex) locate(offset int) exc.Location {
	line := sort.SearchInts(self.starts, offset+1) - 1
	return exc.Location{
		URI:    self.uri,
		Offset: offset,
		Line:   line + 1,
		Column: utf8.RuneCountInString(self.input[self.starts[line]:offset]) + 1,
	}
}

// resolveLocations replaces the remaining input length that rule matches
// record in Location.Offset with a real position in input.
func resolveLocations(root *idl.Node, uri string, input string) {
	index := newLineIndex(uri, input)
	walkTree(root, func(n *idl.Node) {
		n.Location = index.locate(len(input) - n.Location.Offset)
	})
}
