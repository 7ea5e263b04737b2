// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package typeexpr parses textual SCALE type expressions into type trees.
//
// The grammar covers what historical chain schemas actually contain:
// primitives, tuples, fixed arrays, Vec/Option/Result/Compact/Box
// applications, generic applications over unknown names, and qualified
// identifiers. Anything the parser does not recognize becomes a Named
// reference for the registry to resolve.
package typeexpr

import (
	"strconv"
	"strings"
	"text/scanner"

	"github.com/dolthub/descale/types"
)

// ParseType parses a type expression, e.g.
//
//	Vec<(Compact<u32>, balances::AccountData)>
//
// Parsing is pure and idempotent; the same text always yields a structurally
// equal tree. Trailing characters after a complete expression are an error.
func ParseType(code string) (typ *types.Type, err error) {
	p := newParser(strings.NewReader(code))
	err = catchSyntaxError(func() {
		typ = p.parseType()
		p.ensureAtEnd()
	})
	return
}

type parser struct {
	lex *lexer
}

func newParser(r *strings.Reader) *parser {
	s := scanner.Scanner{}
	s.Init(r)
	s.Mode = scanner.ScanIdents | scanner.ScanInts
	s.Error = func(s *scanner.Scanner, msg string) {}
	return &parser{lex: &lexer{scanner: &s}}
}

func (p *parser) ensureAtEnd() {
	tok := p.lex.next()
	if tok != scanner.EOF {
		p.lex.raiseSyntaxError("trailing characters after type expression")
	}
}

var primitiveNames = map[string]types.TypeKind{
	"u8":     types.Uint8Kind,
	"u16":    types.Uint16Kind,
	"u32":    types.Uint32Kind,
	"u64":    types.Uint64Kind,
	"u128":   types.Uint128Kind,
	"i8":     types.Int8Kind,
	"i16":    types.Int16Kind,
	"i32":    types.Int32Kind,
	"i64":    types.Int64Kind,
	"i128":   types.Int128Kind,
	"f32":    types.Float32Kind,
	"f64":    types.Float64Kind,
	"bool":   types.BoolKind,
	"str":    types.StrKind,
	"String": types.StrKind,
	"Text":   types.StrKind,
	"Null":   types.NullKind,
}

// parseType parses a single type expression without consuming past it.
func (p *parser) parseType() *types.Type {
	tok := p.lex.next()
	switch tok {
	case '(':
		return p.parseTupleOrUnit()
	case '[':
		return p.parseFixedArray()
	case scanner.Ident:
		return p.parseIdentType(p.parseQualifiedName())
	default:
		p.lex.unexpectedToken(tok)
	}
	panic("unreachable")
}

// parseTupleOrUnit parses the remainder after '('. The unit tuple () is the
// Null type; a parenthesized single type is that type.
func (p *parser) parseTupleOrUnit() *types.Type {
	if p.lex.eatIf(')') {
		return types.MakeNullType()
	}
	elems := []*types.Type{p.parseType()}
	for p.lex.eatIf(',') {
		if p.lex.peek() == ')' {
			break
		}
		elems = append(elems, p.parseType())
	}
	p.lex.eat(')')
	if len(elems) == 1 {
		return elems[0]
	}
	return types.MakeTupleType(elems...)
}

// parseFixedArray parses the remainder after '[' of [T; N].
func (p *parser) parseFixedArray() *types.Type {
	elem := p.parseType()
	p.lex.eat(';')
	p.lex.eat(scanner.Int)
	size, err := strconv.ParseUint(p.lex.tokenText(), 10, 32)
	if err != nil {
		p.lex.raiseSyntaxError("array length out of range: " + p.lex.tokenText())
	}
	p.lex.eat(']')
	return types.MakeArrayType(elem, uint32(size))
}

// parseQualifiedName consumes an identifier path. Both `module::Type` and
// dotted `module.Type` forms appear in historical schemas; the final segment
// is the symbol, earlier segments are scoping noise.
func (p *parser) parseQualifiedName() string {
	name := p.lex.tokenText()
	for {
		switch p.lex.peek() {
		case ':':
			p.lex.next()
			p.lex.eat(':')
		case '.':
			p.lex.next()
		default:
			return name
		}
		p.lex.eat(scanner.Ident)
		name = p.lex.tokenText()
	}
}

func (p *parser) parseIdentType(name string) *types.Type {
	if p.lex.peek() == '<' {
		return p.parseGenericApplication(name)
	}
	if k, ok := primitiveNames[name]; ok {
		return types.MakePrimitiveType(k)
	}
	if name == "BitVec" {
		return types.MakeBitSequenceType()
	}
	return types.MakeNamedType(name)
}

// parseGenericApplication parses `<A, B, ...>` after name. Well-known wrappers
// lower to their structural form here so nothing downstream special-cases
// them; everything else stays a Generic for the registry to substitute.
func (p *parser) parseGenericApplication(name string) *types.Type {
	p.lex.eat('<')
	args := []*types.Type{p.parseType()}
	for p.lex.eatIf(',') {
		args = append(args, p.parseType())
	}
	p.lex.eat('>')

	switch name {
	case "Vec":
		p.checkArity(name, args, 1)
		return types.MakeSequenceType(args[0])
	case "Option":
		p.checkArity(name, args, 1)
		return types.MakeEnumType(
			types.EnumVariant{Name: "None", Index: 0},
			types.EnumVariant{Name: "Some", Index: 1, Type: args[0]},
		)
	case "Result":
		p.checkArity(name, args, 2)
		return types.MakeEnumType(
			types.EnumVariant{Name: "Ok", Index: 0, Type: args[0]},
			types.EnumVariant{Name: "Err", Index: 1, Type: args[1]},
		)
	case "Compact":
		p.checkArity(name, args, 1)
		return types.MakeCompactType(args[0])
	case "Box":
		p.checkArity(name, args, 1)
		return args[0]
	}
	return types.MakeGenericType(name, args...)
}

func (p *parser) checkArity(name string, args []*types.Type, want int) {
	if len(args) != want {
		p.lex.raiseSyntaxError(name + " takes " + strconv.Itoa(want) + " type argument(s), got " + strconv.Itoa(len(args)))
	}
}
