package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/ebnfpt/pt"
)

var (
	// ErrEBNF is the root of every error this module reports.
	ErrEBNF = errors.New("ebnf")
	// ErrParsing is wrapped by every syntax error.
	ErrParsing = fmt.Errorf("%w: parsing", ErrEBNF)
)

// ErrorKind distinguishes syntax errors. It implements error so that a kind
// can be used as an errors.Is target.
type ErrorKind int

const (
	ErrEOF ErrorKind = iota + 1
	ErrUnexpectedCharacter
	ErrNoSpace
	ErrNoLiteral
	ErrUndelimitedTerm
	ErrMultipleTermRepetitions
	ErrMultipleTermExceptions
	ErrMultipleTermPrimaries
	ErrUnexpectedLiteral
)

var errorKindNames = map[ErrorKind]string{
	ErrEOF:                     "EOFError",
	ErrUnexpectedCharacter:     "UnexpectedCharacterError",
	ErrNoSpace:                 "NoSpaceError",
	ErrNoLiteral:               "NoLiteralError",
	ErrUndelimitedTerm:         "UndelimitedTermError",
	ErrMultipleTermRepetitions: "MultipleTermRepetitions",
	ErrMultipleTermExceptions:  "MultipleTermExceptions",
	ErrMultipleTermPrimaries:   "MultipleTermPrimariesError",
	ErrUnexpectedLiteral:       "UnexpectedLiteralError",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k ErrorKind) Error() string {
	return k.String()
}

// Error is a syntax error. Tree holds the partially built tree; Node is the
// node whose production failed, or for the term errors, the offending term.
type Error struct {
	Kind     ErrorKind
	Pos      pt.Position
	Found    string
	Expected []string
	Reason   string
	Node     *pt.Node
	Tree     *pt.Tree
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case ErrEOF:
		msg = fmt.Sprintf("did not expect EOF at %s", e.Pos)
	case ErrUnexpectedCharacter:
		msg = fmt.Sprintf("did not expect character %s at %s", quote(e.Found), e.Pos)
	case ErrNoSpace:
		msg = fmt.Sprintf("expected a space character at %s, but found %s", e.Pos, quote(e.Found))
	case ErrNoLiteral:
		msg = fmt.Sprintf("could not match %s at %s", expected(e.Expected), e.Pos)
	case ErrUndelimitedTerm:
		msg = fmt.Sprintf("start of another term at %s before previous term at %s terminated", e.Pos, e.nodeStart())
	case ErrMultipleTermRepetitions:
		msg = fmt.Sprintf("term can only have one repetition, another defined at %s, last one defined at %s",
			e.Pos, e.childStart(pt.KindRepetition))
	case ErrMultipleTermExceptions:
		msg = fmt.Sprintf("unexpected `-`, term started at %s already has an exception defined at %s",
			e.nodeStart(), e.childStart(pt.KindException))
	case ErrMultipleTermPrimaries:
		msg = fmt.Sprintf("term started at %s can only have one primary, however another defined at %s",
			e.nodeStart(), e.Pos)
	case ErrUnexpectedLiteral:
		msg = fmt.Sprintf("did not expect literal %s at %s", quote(e.Found), e.Pos)
	default:
		msg = fmt.Sprintf("syntax error at %s", e.Pos)
	}
	if e.Reason != "" {
		msg += ", " + e.Reason
	}
	return msg
}

func (e *Error) Unwrap() error {
	return ErrParsing
}

func (e *Error) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

func (e *Error) nodeStart() pt.Position {
	if e.Node == nil {
		return e.Pos
	}
	return e.Node.Span.Start
}

func (e *Error) childStart(kind pt.Kind) pt.Position {
	if e.Node == nil {
		return e.Pos
	}
	if child := e.Node.FirstChildOfKind(kind); child != nil {
		return child.Span.Start
	}
	return e.Pos
}

func quote(s string) string {
	return "`" + s + "`"
}

func expected(literals []string) string {
	quoted := make([]string, len(literals))
	for i, lit := range literals {
		quoted[i] = quote(lit)
	}
	return strings.Join(quoted, " or ")
}
