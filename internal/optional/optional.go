// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package optional holds a value that may or may not be present. It is the
// result type of the optional combinator.
package optional

import (
	"fmt"
)

type Optional[T any] struct {
	present bool
	value   T
}

func (self Optional[T]) IsPresent() bool {
	return self.present
}

// Value is the zero value of T when nothing is present.
func (self Optional[T]) Value() T {
	return self.value
}

// ValueOr returns the value if present and fallback otherwise.
func (self Optional[T]) ValueOr(fallback T) T {
	if !self.present {
		return fallback
	}
	return self.value
}

func (self Optional[T]) String() string {
	if !self.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", self.value)
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{
		present: true,
		value:   v,
	}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}
