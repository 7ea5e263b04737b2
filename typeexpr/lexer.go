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

package typeexpr

import (
	"fmt"
	"text/scanner"

	"gopkg.in/src-d/go-errors.v1"
)

// ParseError is returned for malformed type expressions: unbalanced generics,
// bad array lengths, empty identifiers, trailing characters.
var ParseError = errors.NewKind("parse type expression: %s at %s")

type lexer struct {
	scanner   *scanner.Scanner
	peeked    bool
	peekedTok rune
}

func (lex *lexer) next() rune {
	if lex.peeked {
		lex.peeked = false
		return lex.peekedTok
	}
	return lex.scanner.Scan()
}

func (lex *lexer) peek() rune {
	if !lex.peeked {
		lex.peekedTok = lex.scanner.Scan()
		lex.peeked = true
	}
	return lex.peekedTok
}

func (lex *lexer) tokenText() string {
	return lex.scanner.TokenText()
}

func (lex *lexer) eat(expected rune) rune {
	tok := lex.next()
	lex.check(expected, tok)
	return tok
}

func (lex *lexer) eatIf(expected rune) bool {
	tok := lex.peek()
	if tok == expected {
		lex.next()
		return true
	}
	return false
}

func (lex *lexer) check(expected, actual rune) {
	if expected != actual {
		lex.tokenMismatch(expected, actual)
	}
}

func (lex *lexer) tokenMismatch(expected, actual rune) {
	lex.raiseSyntaxError(fmt.Sprintf("expected %s, found %s", scanner.TokenString(expected), scanner.TokenString(actual)))
}

func (lex *lexer) unexpectedToken(tok rune) {
	lex.raiseSyntaxError(fmt.Sprintf("unexpected token %s", scanner.TokenString(tok)))
}

func (lex *lexer) raiseSyntaxError(msg string) {
	panic(syntaxError{ParseError.New(msg, lex.scanner.Pos().String())})
}

type syntaxError struct {
	err error
}

// catchSyntaxError recovers the panics the lexer raises on malformed input,
// turning them back into ordinary errors at the package boundary. Any other
// panic is re-raised.
func catchSyntaxError(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(syntaxError); ok {
				err = se.err
				return
			}
			panic(r)
		}
	}()

	f()
	return
}
