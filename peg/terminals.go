// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package peg

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Literal matches text exactly.
func Literal(text string) Parser[string] {
	return &literal{text: text}
}

type literal struct {
	text string
}

func (self *literal) Apply(input string) Result[string] {
	if strings.HasPrefix(input, self.text) {
		return Success(self.text, input[len(self.text):])
	}
	return Failure[string](fmt.Sprintf("expected %q", self.text), input)
}

// CharSet is a set of characters accepted by Class.
type CharSet interface {
	Contains(c rune) bool
	String() string
}

// Range is the inclusive set of characters from Lo to Hi.
type Range struct {
	Lo rune
	Hi rune
}

func (self Range) Contains(c rune) bool {
	return self.Lo <= c && c <= self.Hi
}

func (self Range) String() string {
	if self.Lo == self.Hi {
		return escapeClassRune(self.Lo)
	}
	return escapeClassRune(self.Lo) + "-" + escapeClassRune(self.Hi)
}

// Chars is the set of characters in the string.
type Chars string

func (self Chars) Contains(c rune) bool {
	return strings.ContainsRune(string(self), c)
}

func (self Chars) String() string {
	var b strings.Builder
	for _, c := range string(self) {
		b.WriteString(escapeClassRune(c))
	}
	return b.String()
}

func escapeClassRune(c rune) string {
	switch c {
	case '-', ']', '[', '\\':
		return `\` + string(c)
	}
	q := strconv.QuoteRune(c)
	return q[1 : len(q)-1]
}

// Class matches a single character that belongs to any of the given sets. The
// value is the matched character.
func Class(sets ...CharSet) Parser[string] {
	var b strings.Builder
	b.WriteByte('[')
	for _, set := range sets {
		b.WriteString(set.String())
	}
	b.WriteByte(']')
	return &class{sets: sets, description: b.String()}
}

type class struct {
	sets        []CharSet
	description string
}

func (self *class) Apply(input string) Result[string] {
	if len(input) == 0 {
		return Failure[string](fmt.Sprintf("unexpected EOF (expecting %s)", self.description), input)
	}
	c, size := utf8.DecodeRuneInString(input)
	for _, set := range self.sets {
		if set.Contains(c) {
			return Success(input[:size], input[size:])
		}
	}
	return Failure[string](fmt.Sprintf("unexpected %q (expecting %s)", c, self.description), input)
}

type anyParser struct{}

var anyChar = &anyParser{}

func (self *anyParser) Apply(input string) Result[string] {
	if len(input) == 0 {
		return Failure[string]("unexpected EOF", input)
	}
	_, size := utf8.DecodeRuneInString(input)
	return Success(input[:size], input[size:])
}

// Any matches any single character.
func Any() Parser[string] {
	return anyChar
}

// EOF succeeds only at the end of the input.
func EOF() Parser[Unit] {
	return eof
}

var eof Parser[Unit] = Func[Unit](func(input string) Result[Unit] {
	if len(input) != 0 {
		return Failure[Unit]("expected EOF", input)
	}
	return Success(Unit{}, input)
})
