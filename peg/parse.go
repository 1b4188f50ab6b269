// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package peg

import (
	"fmt"

	"gopkg.microglot.org/peg.go/internal/exc"
)

// Parse applies p to the whole of input. A failure, or a success that leaves
// input unconsumed, is returned as an error carrying the line and column at
// which parsing stopped. The uri only labels the error.
func Parse[T any](p Parser[T], uri string, input string) (T, error) {
	var zero T
	r := p.Apply(input)
	if !r.IsSuccess() {
		message := r.Message()
		if message == "" {
			message = "syntax error"
		}
		return zero, exc.New(exc.LocationOf(uri, input, r.Remaining()), exc.CodeSyntax, message)
	}
	if r.Remaining() != "" {
		return zero, exc.New(exc.LocationOf(uri, input, r.Remaining()), exc.CodeTrailingInput, fmt.Sprintf("unexpected trailing input %s", preview(r.Remaining())))
	}
	return r.Value(), nil
}

func preview(s string) string {
	const previewRunes = 16
	n := 0
	for x := range s {
		if n == previewRunes {
			return fmt.Sprintf("%q...", s[:x])
		}
		n = n + 1
	}
	return fmt.Sprintf("%q", s)
}
