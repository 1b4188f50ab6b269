// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package peg

import (
	"fmt"
)

// Unit is the value produced by parsers that have nothing to report, such as
// the lookahead predicates.
type Unit struct{}

// Pair is the value produced by Seq.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Result is the outcome of applying a parser. A successful Result holds a value
// and the input that remains after the consumed prefix. A failed Result holds
// a diagnostic message and the input at which the failure was detected.
type Result[T any] struct {
	ok        bool
	value     T
	message   string
	remaining string
}

// Success returns a successful Result.
func Success[T any](value T, remaining string) Result[T] {
	return Result[T]{
		ok:        true,
		value:     value,
		remaining: remaining,
	}
}

// Failure returns a failed Result.
func Failure[T any](message string, remaining string) Result[T] {
	return Result[T]{
		message:   message,
		remaining: remaining,
	}
}

func (self Result[T]) IsSuccess() bool {
	return self.ok
}

// Value is the zero value of T for a failed Result.
func (self Result[T]) Value() T {
	return self.value
}

// Message is empty for a successful Result.
func (self Result[T]) Message() string {
	return self.message
}

func (self Result[T]) Remaining() string {
	return self.remaining
}

// Consumed returns the prefix of input that the parser matched. The input must
// be the string the Result was produced from.
func (self Result[T]) Consumed(input string) string {
	n := len(input) - len(self.remaining)
	if n < 0 {
		return ""
	}
	return input[:n]
}

// Drop discards the success value or the failure message so that two results
// can be compared by outcome and position alone.
func (self Result[T]) Drop() Result[Unit] {
	if self.ok {
		return Success(Unit{}, self.remaining)
	}
	return Failure[Unit]("", self.remaining)
}

func (self Result[T]) String() string {
	if self.ok {
		return fmt.Sprintf("Success(%v, %q)", self.value, self.remaining)
	}
	return fmt.Sprintf("Failure(%q, %q)", self.message, self.remaining)
}

// failed converts a failure to another value type.
func failed[T, U any](r Result[U]) Result[T] {
	return Failure[T](r.message, r.remaining)
}
