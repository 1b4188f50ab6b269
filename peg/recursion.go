// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package peg

import (
	"sync"
)

// Ref defers construction of a parser until it is first applied. The supplier
// is called at most once and its parser is reused for every later call. This
// is how a rule refers to itself:
//
//	var parens Parser[Unit]
//	parens = Ref(func() Parser[Unit] {
//		return Map(Optional(Seq(Literal("("), Seq(parens, Literal(")")))), ...)
//	})
//
// A Ref is safe for concurrent use.
func Ref[T any](supplier func() Parser[T]) Parser[T] {
	return &reference[T]{supplier: supplier}
}

type reference[T any] struct {
	once     sync.Once
	supplier func() Parser[T]
	resolved Parser[T]
}

func (self *reference[T]) Apply(input string) Result[T] {
	self.once.Do(func() {
		self.resolved = self.supplier()
		self.supplier = nil
	})
	if self.resolved == nil {
		return Failure[T]("reference resolved to nil parser", input)
	}
	return self.resolved.Apply(input)
}

// Rewritable is a parser slot whose content can be replaced after it has been
// used to build other parsers. It is the forward declaration of a rule:
// declare it, reference it from other rules, then Set its real definition.
type Rewritable[T any] struct {
	lock   sync.RWMutex
	parser Parser[T]
}

// NewRewritable returns a slot holding initial, which may be nil.
func NewRewritable[T any](initial Parser[T]) *Rewritable[T] {
	return &Rewritable[T]{parser: initial}
}

// Set replaces the parser in the slot. It is safe to call while other
// goroutines apply the slot; each application sees either the old or the new
// parser.
func (self *Rewritable[T]) Set(p Parser[T]) {
	self.lock.Lock()
	defer self.lock.Unlock()
	self.parser = p
}

func (self *Rewritable[T]) Get() Parser[T] {
	self.lock.RLock()
	defer self.lock.RUnlock()
	return self.parser
}

func (self *Rewritable[T]) Apply(input string) Result[T] {
	p := self.Get()
	if p == nil {
		return Failure[T]("undefined parser", input)
	}
	return p.Apply(input)
}
