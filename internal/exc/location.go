// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"strings"
	"unicode/utf8"
)

// Location identifies a position within a named input. Line and Column are
// 1-based and count characters; Offset is a 0-based byte offset. A zero Line
// means the location only names the input.
type Location struct {
	URI    string
	Offset int
	Line   int
	Column int
}

// LocationOf derives the position of remaining within input. Parsers only ever
// hand back suffixes of their input, so the offset is the difference in length.
func LocationOf(uri string, input string, remaining string) Location {
	offset := len(input) - len(remaining)
	if offset < 0 || offset > len(input) {
		offset = len(input)
	}
	consumed := input[:offset]
	line := strings.Count(consumed, "\n") + 1
	lineStart := strings.LastIndexByte(consumed, '\n') + 1
	return Location{
		URI:    uri,
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(consumed[lineStart:]) + 1,
	}
}
