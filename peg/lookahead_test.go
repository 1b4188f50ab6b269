// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package peg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookahead(t *testing.T) {
	t.Parallel()

	require.Equal(t, Success(Unit{}, "abc"), Lookahead(Literal("ab")).Apply("abc"))
	require.Equal(t, Failure[Unit](`expected "x"`, "abc"), Lookahead(Literal("x")).Apply("abc"))
	require.Equal(t, Failure[Unit]("", "abc"), NotAhead(Literal("ab")).Apply("abc"))
	require.Equal(t, Success(Unit{}, "abc"), NotAhead(Literal("x")).Apply("abc"))
}

func TestLookaheadNeverConsumes(t *testing.T) {
	t.Parallel()
	parsers := []Parser[string]{
		Literal("a"),
		Literal("ab"),
		Any(),
		Capture(ZeroOrMore(Any())),
		Capture(Seq(Literal("a"), Literal("x"))),
		Capture(Optional(Literal("b"))),
	}
	inputs := []string{"", "a", "ab", "abc", "xyz"}
	for _, p := range parsers {
		for _, input := range inputs {
			positive := Lookahead(p).Apply(input)
			require.Equal(t, input, positive.Remaining())
			require.Equal(t, p.Apply(input).IsSuccess(), positive.IsSuccess())

			negative := NotAhead(p).Apply(input)
			require.Equal(t, input, negative.Remaining())
			require.Equal(t, !p.Apply(input).IsSuccess(), negative.IsSuccess())
		}
	}
}

func TestLookaheadInSequence(t *testing.T) {
	t.Parallel()
	// A keyword that must not be followed by an identifier character.
	keyword := Seq(Literal("if"), NotAhead(Class(Range{Lo: 'a', Hi: 'z'})))

	require.Equal(t, Success(Unit{}, " x").Drop(), keyword.Apply("if x").Drop())
	require.Equal(t, Failure[Unit]("", "fy x"), keyword.Apply("iffy x").Drop())
}
