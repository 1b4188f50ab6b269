// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package peg

// Lookahead succeeds when inner matches but consumes nothing either way.
func Lookahead[T any](inner Parser[T]) Parser[Unit] {
	return &predicate[T]{inner: inner}
}

// NotAhead succeeds when inner does not match. It consumes nothing and its
// failure carries no message.
func NotAhead[T any](inner Parser[T]) Parser[Unit] {
	return &predicate[T]{inner: inner, negate: true}
}

type predicate[T any] struct {
	inner  Parser[T]
	negate bool
}

func (self *predicate[T]) Apply(input string) Result[Unit] {
	r := self.inner.Apply(input)
	switch {
	case r.IsSuccess() && self.negate:
		return Failure[Unit]("", input)
	case r.IsSuccess():
		return Success(Unit{}, input)
	case self.negate:
		return Success(Unit{}, input)
	default:
		return Failure[Unit](r.Message(), input)
	}
}
