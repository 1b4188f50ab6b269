// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package peg

// Parser is implemented by every combinator. Apply must either succeed with a
// suffix of the input as the remainder or fail with the input it was given.
type Parser[T any] interface {
	Apply(input string) Result[T]
}

// Func is an adaptor that turns a plain function into a Parser. Use like:
//
//	Func[string](func(input string) Result[string] { return Success("", input) })
//
// Note that this type should never be referenced directly in any signature.
// Always use Parser as an input or output type.
type Func[T any] func(input string) Result[T]

func (f Func[T]) Apply(input string) Result[T] {
	return f(input)
}
