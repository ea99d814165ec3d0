// Package source adapts character suppliers for the parser and tracks the
// position of the next unread character.
package source

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/ebnfpt/pt"
)

// Func supplies up to n characters. It returns fewer, possibly none, only at
// the end of input. An error other than io.EOF stops reading.
type Func func(n int) (string, error)

// FromString supplies the characters of s.
func FromString(s string) Func {
	return func(n int) (string, error) {
		end := 0
		for i := 0; i < n && end < len(s); i++ {
			_, size := utf8.DecodeRuneInString(s[end:])
			end += size
		}
		chunk := s[:end]
		s = s[end:]
		return chunk, nil
	}
}

// FromReader supplies the UTF-8 decoded characters of r.
func FromReader(r io.Reader) Func {
	br := bufio.NewReader(r)
	return func(n int) (string, error) {
		var b strings.Builder
		for i := 0; i < n; i++ {
			c, _, err := br.ReadRune()
			if errors.Is(err, io.EOF) {
				return b.String(), nil
			}
			if err != nil {
				return b.String(), err
			}
			b.WriteRune(c)
		}
		return b.String(), nil
	}
}

// Reader serves characters from a Func with a small lookahead window. It
// requests only as many characters as the lookahead needs and never rewinds.
type Reader struct {
	fn  Func
	buf []rune
	pos pt.Position
	eof bool
	err error
}

func NewReader(fn Func) *Reader {
	return &Reader{fn: fn, pos: pt.Start}
}

// fill makes at least n characters available unless the input ends first.
func (r *Reader) fill(n int) {
	for len(r.buf) < n && !r.eof {
		want := n - len(r.buf)
		chunk, err := r.fn(want)
		for _, c := range chunk {
			r.buf = append(r.buf, c)
		}
		switch {
		case err != nil && !errors.Is(err, io.EOF):
			r.err = err
			r.eof = true
		case err != nil, utf8.RuneCountInString(chunk) < want:
			r.eof = true
		}
	}
}

// Peek returns the next character without consuming it. ok is false at the
// end of input.
func (r *Reader) Peek() (rune, bool) {
	return r.PeekAt(0)
}

// PeekAt returns the character i positions after the next one.
func (r *Reader) PeekAt(i int) (rune, bool) {
	r.fill(i + 1)
	if i >= len(r.buf) {
		return 0, false
	}
	return r.buf[i], true
}

// Advance consumes the next character.
func (r *Reader) Advance() (rune, bool) {
	c, ok := r.Peek()
	if !ok {
		return 0, false
	}
	r.buf = r.buf[1:]
	r.pos = r.pos.Advance(c)
	return c, true
}

// Pos returns the position of the next character.
func (r *Reader) Pos() pt.Position {
	return r.pos
}

// Err returns the error that ended the input early, if any.
func (r *Reader) Err() error {
	return r.err
}
