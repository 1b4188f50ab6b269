// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/peg"
)

// The grammar notation is parsed with the combinators it describes:
//
//	Grammar    <- Spacing Definition+ EndOfFile
//	Definition <- Identifier '<-' Expression
//	Expression <- Sequence ('/' Sequence)*
//	Sequence   <- Prefix*
//	Prefix     <- ('&' / '!')? Suffix
//	Suffix     <- Primary ('?' / '*' / '+')?
//	Primary    <- Identifier !'<-' / '(' Expression ')' / Literal / Class / '.'
//
// Spacing is whitespace and '#' comments. Every token consumes the spacing
// that follows it.
type notation struct {
	grammar    peg.Parser[[]*astRule]
	expression peg.Parser[expr]
	name       peg.Parser[string]
}

var getNotation = sync.OnceValue(newNotation)

type located[T any] struct {
	rest  int
	value T
}

// at records how much input remained when p started matching.
func at[T any](p peg.Parser[T]) peg.Parser[located[T]] {
	return peg.Func[located[T]](func(input string) peg.Result[located[T]] {
		r := p.Apply(input)
		if !r.IsSuccess() {
			return peg.Failure[located[T]](r.Message(), r.Remaining())
		}
		return peg.Success(located[T]{rest: len(input), value: r.Value()}, r.Remaining())
	})
}

func first[A, B any](p peg.Pair[A, B]) A {
	return p.First
}

func second[A, B any](p peg.Pair[A, B]) B {
	return p.Second
}

func exprAt(rest int) astExpr {
	return astExpr{astNode{remaining: rest}}
}

// end matches the end of input and otherwise names the character it found.
func end(expecting string) peg.Parser[peg.Unit] {
	unexpected := peg.Func[peg.Unit](func(input string) peg.Result[peg.Unit] {
		c, _ := utf8.DecodeRuneInString(input)
		return peg.Failure[peg.Unit](fmt.Sprintf("unexpected %q (expecting %s)", c, expecting), input)
	})
	return peg.Choice(peg.EOF(), unexpected)
}

func hexEscape(prefix string, digits int, decode func(uint64) string) peg.Parser[string] {
	hexDigit := peg.Class(peg.Range{Lo: '0', Hi: '9'}, peg.Range{Lo: 'a', Hi: 'f'}, peg.Range{Lo: 'A', Hi: 'F'})
	hex := hexDigit
	for x := 1; x < digits; x = x + 1 {
		hex = peg.Capture(peg.Seq(hex, hexDigit))
	}
	return peg.Map(peg.Seq(peg.Literal(prefix), hex), func(p peg.Pair[string, string]) string {
		v, _ := strconv.ParseUint(p.Second, 16, 32)
		return decode(v)
	})
}

func newNotation() *notation {
	comment := peg.Capture(peg.Seq(
		peg.Literal("#"),
		peg.ZeroOrMore(peg.Seq(peg.NotAhead(peg.Literal("\n")), peg.Any())),
	))
	whitespace := peg.Capture(peg.OneOrMore(peg.Class(peg.Chars(" \t\r\n"))))
	spacing := peg.ZeroOrMore(peg.Choice(whitespace, comment))

	token := func(p peg.Parser[string]) peg.Parser[string] {
		return peg.Map(peg.Seq(p, spacing), first[string, []string])
	}

	identStart := peg.Class(peg.Range{Lo: 'a', Hi: 'z'}, peg.Range{Lo: 'A', Hi: 'Z'}, peg.Chars("_"))
	identRest := peg.Class(peg.Range{Lo: 'a', Hi: 'z'}, peg.Range{Lo: 'A', Hi: 'Z'}, peg.Range{Lo: '0', Hi: '9'}, peg.Chars("_"))
	name := peg.Capture(peg.Seq(identStart, peg.ZeroOrMore(identRest)))
	identifier := token(name)
	arrow := token(peg.Literal("<-"))

	simpleEscape := peg.Map(
		peg.Seq(peg.Literal(`\`), peg.Class(peg.Chars(`abfnrtv'"\[]-`))),
		func(p peg.Pair[string, string]) string {
			switch p.Second {
			case "a":
				return "\a"
			case "b":
				return "\b"
			case "f":
				return "\f"
			case "n":
				return "\n"
			case "r":
				return "\r"
			case "t":
				return "\t"
			case "v":
				return "\v"
			default:
				return p.Second
			}
		},
	)
	// \xNN is a single byte, \uNNNN and \UNNNNNNNN are code points. These are
	// the forms strconv.Quote produces.
	escape := peg.OneOf(
		hexEscape(`\x`, 2, func(v uint64) string { return string([]byte{byte(v)}) }),
		hexEscape(`\u`, 4, func(v uint64) string { return string(rune(v)) }),
		hexEscape(`\U`, 8, func(v uint64) string { return string(rune(v)) }),
		simpleEscape,
	)
	// char matches one possibly escaped character that is not terminator.
	char := func(terminator string) peg.Parser[string] {
		plain := peg.Map(peg.Seq(peg.NotAhead(peg.Literal(terminator)), peg.Any()), second[peg.Unit, string])
		return peg.Choice(escape, plain)
	}
	quoted := func(quote string) peg.Parser[string] {
		body := peg.Map(peg.ZeroOrMore(char(quote)), func(chars []string) string {
			return strings.Join(chars, "")
		})
		return peg.Map(peg.Seq(peg.Literal(quote), peg.Seq(body, token(peg.Literal(quote)))), func(p peg.Pair[string, peg.Pair[string, string]]) string {
			return p.Second.First
		})
	}
	literal := peg.Map(at(peg.Choice(quoted("'"), quoted(`"`))), func(l located[string]) expr {
		return &astLiteral{astExpr: exprAt(l.rest), text: l.value}
	})

	classChar := peg.Map(char("]"), func(s string) rune {
		r, _ := utf8.DecodeRuneInString(s)
		return r
	})
	classRange := peg.Map(
		peg.Seq(classChar, peg.Optional(peg.Seq(peg.Literal("-"), classChar))),
		func(p peg.Pair[rune, peg.Option[peg.Pair[string, rune]]]) peg.CharSet {
			if !p.Second.IsPresent() {
				return peg.Range{Lo: p.First, Hi: p.First}
			}
			return peg.Range{Lo: p.First, Hi: p.Second.Value().Second}
		},
	)
	class := peg.Map(
		at(peg.Seq(peg.Literal("["), peg.Seq(peg.ZeroOrMore(classRange), token(peg.Literal("]"))))),
		func(l located[peg.Pair[string, peg.Pair[[]peg.CharSet, string]]]) expr {
			return &astClass{astExpr: exprAt(l.rest), sets: l.value.Second.First}
		},
	)

	dot := peg.Map(at(token(peg.Literal("."))), func(l located[string]) expr {
		return &astAny{astExpr: exprAt(l.rest)}
	})

	reference := peg.Map(
		at(peg.Seq(identifier, peg.NotAhead(arrow))),
		func(l located[peg.Pair[string, peg.Unit]]) expr {
			return &astIdentifier{astExpr: exprAt(l.rest), name: l.value.First}
		},
	)

	expression := peg.NewRewritable[expr](nil)
	group := peg.Map(
		peg.Seq(token(peg.Literal("(")), peg.Seq(peg.Parser[expr](expression), token(peg.Literal(")")))),
		func(p peg.Pair[string, peg.Pair[expr, string]]) expr {
			return p.Second.First
		},
	)
	primary := peg.OneOf(reference, group, literal, class, dot)

	suffix := peg.Map(
		at(peg.Seq(primary, peg.Optional(token(peg.Class(peg.Chars("?*+")))))),
		func(l located[peg.Pair[expr, peg.Option[string]]]) expr {
			if !l.value.Second.IsPresent() {
				return l.value.First
			}
			return &astRepeat{astExpr: exprAt(l.rest), operator: l.value.Second.Value(), inner: l.value.First}
		},
	)
	prefix := peg.Map(
		at(peg.Seq(peg.Optional(token(peg.Class(peg.Chars("&!")))), suffix)),
		func(l located[peg.Pair[peg.Option[string], expr]]) expr {
			if !l.value.First.IsPresent() {
				return l.value.Second
			}
			return &astLookahead{astExpr: exprAt(l.rest), negate: l.value.First.Value() == "!", inner: l.value.Second}
		},
	)
	sequence := peg.Map(at(peg.ZeroOrMore(prefix)), func(l located[[]expr]) expr {
		if len(l.value) == 1 {
			return l.value[0]
		}
		return &astSequence{astExpr: exprAt(l.rest), items: l.value}
	})
	slash := token(peg.Literal("/"))
	expression.Set(peg.Map(
		at(peg.Seq(sequence, peg.ZeroOrMore(peg.Map(peg.Seq(slash, sequence), second[string, expr])))),
		func(l located[peg.Pair[expr, []expr]]) expr {
			if len(l.value.Second) == 0 {
				return l.value.First
			}
			return &astChoice{astExpr: exprAt(l.rest), alternatives: append([]expr{l.value.First}, l.value.Second...)}
		},
	))

	definition := peg.Map(
		at(peg.Seq(identifier, peg.Seq(arrow, peg.Parser[expr](expression)))),
		func(l located[peg.Pair[string, peg.Pair[string, expr]]]) *astRule {
			return &astRule{astNode: astNode{remaining: l.rest}, name: l.value.First, body: l.value.Second.Second}
		},
	)

	grammar := peg.Map(
		peg.Seq(spacing, peg.Seq(peg.OneOrMore(definition), end("rule definition"))),
		func(p peg.Pair[[]string, peg.Pair[[]*astRule, peg.Unit]]) []*astRule {
			return p.Second.First
		},
	)
	standalone := peg.Map(
		peg.Seq(spacing, peg.Seq(peg.Parser[expr](expression), end("end of expression"))),
		func(p peg.Pair[[]string, peg.Pair[expr, peg.Unit]]) expr {
			return p.Second.First
		},
	)

	return &notation{
		grammar:    grammar,
		expression: standalone,
		name:       name,
	}
}

// parseGrammar parses a whole grammar written in PEG notation.
func parseGrammar(uri string, source string) (*astGrammar, error) {
	r := getNotation().grammar.Apply(source)
	if !r.IsSuccess() {
		return nil, exc.New(exc.LocationOf(uri, source, r.Remaining()), exc.CodeSyntax, r.Message())
	}
	rules := r.Value()
	for _, rule := range rules {
		rule.uri = uri
		rule.source = source
	}
	return &astGrammar{uri: uri, rules: rules}, nil
}

// parseRule parses a single rule expression found at line and column of a
// grammar document.
func parseRule(uri string, name string, source string, line int, column int) (*astRule, error) {
	rule := &astRule{
		astNode: astNode{remaining: len(source)},
		name:    name,
		uri:     uri,
		source:  source,
		line:    line,
		column:  column,
	}
	r := getNotation().expression.Apply(source)
	if !r.IsSuccess() {
		return nil, exc.New(rule.locateRest(len(r.Remaining())), exc.CodeSyntax, r.Message())
	}
	rule.body = r.Value()
	return rule, nil
}

// isRuleName reports whether name is usable as a rule identifier.
func isRuleName(name string) bool {
	r := getNotation().name.Apply(name)
	return r.IsSuccess() && r.Remaining() == ""
}
