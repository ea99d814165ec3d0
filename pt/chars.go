package pt

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Delimiters are the characters that carry syntactic meaning in the EBNF
// dialect. They never appear in names.
const Delimiters = "()[]{}\"'`*,-.;=?|/!:"

// Quotes open and close terminals.
const Quotes = "\"'`"

// IsDelimiter reports whether c is one of the structural delimiters.
func IsDelimiter(c rune) bool {
	return c < utf8.RuneSelf && strings.ContainsRune(Delimiters, c)
}

// IsQuote reports whether c opens a terminal.
func IsQuote(c rune) bool {
	return c < utf8.RuneSelf && strings.ContainsRune(Quotes, c)
}

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// IsNameChar reports whether c may appear in an identifier: printable ASCII
// other than white space and delimiters, or a non-ASCII letter or digit.
func IsNameChar(c rune) bool {
	if c < utf8.RuneSelf {
		return c > ' ' && c < 0x7f && !IsDelimiter(c)
	}
	return unicode.IsLetter(c) || unicode.IsDigit(c)
}

// IsNameStart reports whether c may start an identifier. Digits start numbers.
func IsNameStart(c rune) bool {
	return IsNameChar(c) && !IsDigit(c)
}

// IsSpace reports whether c is insignificant: white space, control
// characters, and anything else that is neither a name character nor a
// delimiter.
func IsSpace(c rune) bool {
	return !IsNameChar(c) && !IsDelimiter(c)
}

func runeLen(c rune) int {
	if n := utf8.RuneLen(c); n > 0 {
		return n
	}
	return len(string(utf8.RuneError))
}
