// Package parser provides an error-tolerant recursive-descent parser for C,
// covering C89 through C23.
//
// # Overview
//
// The parser consumes an already lexed token sequence and produces a syntax
// tree rooted at a TranslationUnit. It keeps going after syntax errors, so a
// single Parse reports as many problems as it can while still returning the
// declarations it understood.
//
//	┌─────────────┐     ┌─────────────┐     ┌──────────────┐
//	│  c/lexer    │────▶│ TokenStream │────▶│    Parser    │
//	│  (tokens)   │     │  (cursor)   │     │ (Node, errs) │
//	└─────────────┘     └─────────────┘     └──────────────┘
//	                                               │
//	                        ┌──────────────────────┼──────────────────┐
//	                        ▼                      ▼                  ▼
//	                 ┌─────────────┐      ┌────────────────┐  ┌──────────────┐
//	                 │StateManager │      │RecoveryManager │  │ErrorReporter │
//	                 └─────────────┘      └────────────────┘  └──────────────┘
//
// # Usage
//
//	toks, _ := lexer.Tokenize(src, lexer.WithFile("main.c"))
//	p, err := parser.New(parser.DefaultConfig())
//	if err != nil {
//	    return err // invalid configuration
//	}
//	unit, err := p.Parse(parser.NewTokenStream(toks))
//	// err is the first error; p.Diagnostics() has all of them
//
// # Error Recovery
//
// Productions report problems through the parser and return nil. Only two
// loops act on failures: the translation unit loop and the compound
// statement loop. They ask the RecoveryManager, which tries its strategies
// in order:
//
//  1. PhraseLevel: pretend a ';' was present, or drop a doubled ';' or ','
//  2. ErrorProduction: accept a trailing comma, a missing ';' before '}' or
//     a keyword, or a missing '}' at end of file
//  3. PanicMode: skip at most 50 tokens to a synchronization token
//
// If the cursor has not moved past the start of the failed item afterwards,
// one token is consumed. Every failed iteration therefore makes progress,
// and the number of failures per loop is capped as well.
//
// # Scopes and State
//
// The StateManager tracks the symbol table, used to recognize typedef names
// at the start of declarations, a stack of named contexts that doubles as
// the recursion depth guard, and the InFunction, InLoop and InSwitch flags
// that decide whether break, continue, case and default are valid.
//
// Casts are recognized only when the parenthesized type starts with a
// keyword. "(T)x" with a typedef name T parses as a parenthesized
// expression followed by a syntax error.
package parser
