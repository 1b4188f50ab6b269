// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package peg

import (
	"gopkg.microglot.org/peg.go/internal/optional"
)

// Option is the value produced by Optional.
type Option[T any] = optional.Optional[T]

// Seq applies a and then b to whatever a left over. A failure of b is
// reported at the position where b failed; backtracking over the whole
// sequence is the caller's job.
func Seq[A, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return &sequence[A, B]{first: a, second: b}
}

type sequence[A, B any] struct {
	first  Parser[A]
	second Parser[B]
}

func (self *sequence[A, B]) Apply(input string) Result[Pair[A, B]] {
	a := self.first.Apply(input)
	if !a.IsSuccess() {
		return failed[Pair[A, B]](a)
	}
	b := self.second.Apply(a.Remaining())
	if !b.IsSuccess() {
		return failed[Pair[A, B]](b)
	}
	return Success(Pair[A, B]{First: a.Value(), Second: b.Value()}, b.Remaining())
}

// Choice is ordered choice. The first success wins, otherwise b is applied to
// the original input and its outcome is returned as-is.
func Choice[T any](a Parser[T], b Parser[T]) Parser[T] {
	return &choice[T]{first: a, second: b}
}

type choice[T any] struct {
	first  Parser[T]
	second Parser[T]
}

func (self *choice[T]) Apply(input string) Result[T] {
	r := self.first.Apply(input)
	if r.IsSuccess() {
		return r
	}
	return self.second.Apply(input)
}

// OneOf is ordered choice over any number of alternatives. With no
// alternatives the parser always fails.
func OneOf[T any](alternatives ...Parser[T]) Parser[T] {
	if len(alternatives) == 0 {
		return Func[T](func(input string) Result[T] {
			return Failure[T]("no alternatives", input)
		})
	}
	p := alternatives[len(alternatives)-1]
	for x := len(alternatives) - 2; x >= 0; x = x - 1 {
		p = Choice(alternatives[x], p)
	}
	return p
}

// Optional always succeeds. The value is present only when inner matched.
func Optional[T any](inner Parser[T]) Parser[Option[T]] {
	return &optionalParser[T]{inner: inner}
}

type optionalParser[T any] struct {
	inner Parser[T]
}

func (self *optionalParser[T]) Apply(input string) Result[Option[T]] {
	r := self.inner.Apply(input)
	if !r.IsSuccess() {
		return Success(optional.None[T](), input)
	}
	return Success(optional.Some(r.Value()), r.Remaining())
}

// ZeroOrMore applies inner greedily until it fails and never fails itself.
// A match that consumes nothing is kept once and ends the repetition.
func ZeroOrMore[T any](inner Parser[T]) Parser[[]T] {
	return &repetition[T]{inner: inner}
}

// OneOrMore is ZeroOrMore except that the first application of inner must
// succeed. That first failure is returned as-is.
func OneOrMore[T any](inner Parser[T]) Parser[[]T] {
	return &repetition[T]{inner: inner, atLeastOnce: true}
}

type repetition[T any] struct {
	inner       Parser[T]
	atLeastOnce bool
}

func (self *repetition[T]) Apply(input string) Result[[]T] {
	values := []T{}
	if self.atLeastOnce {
		r := self.inner.Apply(input)
		if !r.IsSuccess() {
			return failed[[]T](r)
		}
		values = append(values, r.Value())
		if len(r.Remaining()) == len(input) {
			return Success(values, input)
		}
		input = r.Remaining()
	}
	for {
		r := self.inner.Apply(input)
		if !r.IsSuccess() {
			return Success(values, input)
		}
		values = append(values, r.Value())
		if len(r.Remaining()) == len(input) {
			return Success(values, input)
		}
		input = r.Remaining()
	}
}

// Map transforms the value of a successful match.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return &mapped[T, U]{inner: p, f: f}
}

type mapped[T, U any] struct {
	inner Parser[T]
	f     func(T) U
}

func (self *mapped[T, U]) Apply(input string) Result[U] {
	r := self.inner.Apply(input)
	if !r.IsSuccess() {
		return failed[U](r)
	}
	return Success(self.f(r.Value()), r.Remaining())
}

// Capture replaces the value of p with the text it consumed.
func Capture[T any](p Parser[T]) Parser[string] {
	return Func[string](func(input string) Result[string] {
		r := p.Apply(input)
		if !r.IsSuccess() {
			return failed[string](r)
		}
		return Success(r.Consumed(input), r.Remaining())
	})
}
