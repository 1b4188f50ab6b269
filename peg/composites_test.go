// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package peg

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/peg.go/internal/optional"
)

func TestSeq(t *testing.T) {
	t.Parallel()
	ab := Seq(Literal("a"), Literal("b"))

	require.Equal(t, Success(Pair[string, string]{First: "a", Second: "b"}, ""), ab.Apply("ab"))
	// The second parser's failure position is reported, not the start.
	require.Equal(t, Failure[Unit]("", "c"), ab.Apply("ac").Drop())
	require.Equal(t, Failure[Unit]("", "xb"), ab.Apply("xb").Drop())
	require.Equal(t, `expected "b"`, ab.Apply("ac").Message())
}

func TestChoice(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		parser   Parser[string]
		input    string
		expected Result[string]
	}{
		{
			name:     "second alternative after backtrack",
			parser:   Choice(Literal("ab"), Literal("ac")),
			input:    "ac",
			expected: Success("ac", ""),
		},
		{
			name:     "first alternative wins",
			parser:   Choice(Literal("a"), Literal("ab")),
			input:    "ab",
			expected: Success("a", "b"),
		},
		{
			name:     "failure of second is returned verbatim",
			parser:   Choice(Literal("x"), Literal("y")),
			input:    "z",
			expected: Failure[string](`expected "y"`, "z"),
		},
		{
			name:     "one of",
			parser:   OneOf(Literal("x"), Literal("y"), Literal("z")),
			input:    "z!",
			expected: Success("z", "!"),
		},
		{
			name:     "one of nothing",
			parser:   OneOf[string](),
			input:    "z",
			expected: Failure[string]("no alternatives", "z"),
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, testCase.expected, testCase.parser.Apply(testCase.input))
		})
	}
}

func TestOptional(t *testing.T) {
	t.Parallel()
	p := Optional(Literal("a"))

	require.Equal(t, Success(optional.Some("a"), "b"), p.Apply("ab"))
	require.Equal(t, Success(optional.None[string](), "xb"), p.Apply("xb"))
	require.Equal(t, Success(optional.None[string](), ""), p.Apply(""))
}

func TestRepetition(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		parser   Parser[[]string]
		input    string
		expected Result[[]string]
	}{
		{
			name:     "zero or more of nothing",
			parser:   ZeroOrMore(Literal("a")),
			input:    "",
			expected: Success([]string{}, ""),
		},
		{
			name:     "zero or more",
			parser:   ZeroOrMore(Literal("a")),
			input:    "aaab",
			expected: Success([]string{"a", "a", "a"}, "b"),
		},
		{
			name:     "one or more of nothing",
			parser:   OneOrMore(Literal("a")),
			input:    "",
			expected: Failure[[]string](`expected "a"`, ""),
		},
		{
			name:     "one or more single",
			parser:   OneOrMore(Literal("a")),
			input:    "a",
			expected: Success([]string{"a"}, ""),
		},
		{
			name:     "one or more many",
			parser:   OneOrMore(Class(Range{Lo: '0', Hi: '9'})),
			input:    "123x",
			expected: Success([]string{"1", "2", "3"}, "x"),
		},
		{
			name:     "repetition backtracks the failed attempt",
			parser:   ZeroOrMore(Literal("ab")),
			input:    "ababa",
			expected: Success([]string{"ab", "ab"}, "a"),
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, testCase.expected, testCase.parser.Apply(testCase.input))
		})
	}
}

func TestRepetitionOfNonConsumingParser(t *testing.T) {
	t.Parallel()

	opt := ZeroOrMore(Optional(Literal("a")))
	require.Equal(t, Success([]Option[string]{optional.None[string]()}, "b"), opt.Apply("b"))
	require.Equal(t, Success([]Option[string]{
		optional.Some("a"),
		optional.Some("a"),
		optional.None[string](),
	}, "b"), opt.Apply("aab"))

	not := OneOrMore(NotAhead(Literal("x")))
	require.Equal(t, Success([]Unit{{}}, "ab"), not.Apply("ab"))
	require.Equal(t, Failure[Unit]("", "xb"), not.Apply("xb").Drop())
}

func TestMapAndCapture(t *testing.T) {
	t.Parallel()
	digits := Capture(OneOrMore(Class(Range{Lo: '0', Hi: '9'})))
	number := Map(digits, func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	})

	require.Equal(t, Success("42", "+1"), digits.Apply("42+1"))
	require.Equal(t, Success(42, "+1"), number.Apply("42+1"))
	require.Equal(t, Failure[int](`unexpected '+' (expecting [0-9])`, "+1"), number.Apply("+1"))
}

func TestConsumedRoundTrip(t *testing.T) {
	t.Parallel()
	word := Capture(OneOrMore(Class(Range{Lo: 'a', Hi: 'z'})))
	p := Seq(word, ZeroOrMore(Seq(Literal(" "), word)))
	inputs := []string{"", "a", "ab cd", "ab cd ef!", "ab  cd", " x"}
	for _, input := range inputs {
		r := p.Apply(input)
		if r.IsSuccess() {
			require.Equal(t, input, r.Consumed(input)+r.Remaining())
			require.LessOrEqual(t, len(r.Remaining()), len(input))
		}
	}
}
