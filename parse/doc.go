// Package parse turns EBNF grammar text into a position-annotated parse tree.
//
// # Dialect
//
// A grammar is a sequence of products separated by white space and comments:
//
//	name = definition list ;
//
// Definitions are separated by `|`, `/` or `!` and consist of terms separated
// by `,`. A term is an optional repetition count `N *`, a primary and an
// optional exception `- primary`. Primaries are terminals quoted with `"`, `'`
// or a backtick, identifiers, repeats `{ }` or `(/ /)`, options `[ ]` or
// `(: :)`, groups `( )`, special sequences `? ?` and the empty string. A
// product ends with `;` or `.`. Comments `(* *)` nest and may appear wherever
// white space may. Identifiers may contain interior white space:
//
//	A Very Long Name = "x" ;
//
// # Trees
//
// Every character of the input ends up in exactly one leaf, so the text of a
// parsed tree is the input:
//
//	tree, err := parse.FromString(`a = "b";`)
//	// tree.Text() == `a = "b";`
//
// # Errors
//
// Parsing stops at the first syntax error, reported as an *Error whose Kind
// identifies the mismatch:
//
//	if errors.Is(err, parse.ErrEOF) { ... }
//
// Every *Error wraps ErrParsing, which wraps ErrEBNF. The tree built so far is
// returned alongside the error and in Error.Tree. It is partial: the root and,
// repeatedly, the last child of a partial node may be incomplete, while every
// other node is complete and well formed. pt.Prefix returns those nodes.
//
// Nesting of groups, options, repeats and comments is handled by recursion,
// so input nested deeply enough will exhaust the stack.
package parse
