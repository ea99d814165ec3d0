package pt

import "fmt"

// Position is a location in the source text. Offset is a byte offset from the
// start of the input, Line and Column are 1-based and Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Start is the position of the first character of any input.
var Start = Position{Offset: 0, Line: 1, Column: 1}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Advance returns the position following c.
func (p Position) Advance(c rune) Position {
	p.Offset += runeLen(c)
	if c == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
	return p
}

// Span is the half-open range [Start, End) of source text covered by a node.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Contains reports whether p lies inside s. An empty span contains its start.
func (s Span) Contains(p Position) bool {
	if s.Len() == 0 {
		return p.Offset == s.Start.Offset
	}
	return p.Offset >= s.Start.Offset && p.Offset < s.End.Offset
}
