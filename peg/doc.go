// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package peg is a parser combinator library with Parsing Expression Grammar
// semantics.
//
// A Parser is any value that can be applied to an input string. Applying a
// parser either consumes a prefix of the input and produces a value, or fails
// without consuming anything so that an enclosing combinator may backtrack and
// try something else. Grammars are built by composing the primitive parsers
// (Literal, Class, Any) with the combinators (Seq, Choice, Optional,
// ZeroOrMore, OneOrMore, Lookahead, NotAhead):
//
//	digit := peg.Class(peg.Range{Lo: '0', Hi: '9'})
//	number := peg.Capture(peg.OneOrMore(digit))
//	sum := peg.Seq(number, peg.ZeroOrMore(peg.Seq(peg.Literal("+"), number)))
//
// Recursive rules cannot be built as a plain value graph in a single step. Use
// Ref to defer construction of a rule until it is first applied, or a
// Rewritable to declare a rule before its body is known and patch it in later.
//
// Evaluation is a direct recursive walk of the combinator graph. There is no
// memoization and no left-recursion detection, so left-recursive grammars
// will not terminate.
package peg
