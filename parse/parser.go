package parse

import (
	"fmt"
	"strings"

	"github.com/dhamidi/ebnfpt/pt"
	"github.com/dhamidi/ebnfpt/source"
)

// literals lists every fixed token of the dialect, longest first.
var literals = []string{
	"(*", "*)", "(/", "/)", "(:", ":)",
	"(", ")", "[", "]", "{", "}", "?", "*", ",", "-", ".", ";", "=", "|", "/", "!",
}

// parser builds a tree by recursive descent, one method per production.
//
// Space and comments read after a token are held in pending until the next
// node is appended, so that they end up in whichever node claims the next
// token. A production that fails moves pending into its own node and returns
// without closing it; nothing appended is ever taken back.
type parser struct {
	r       *source.Reader
	tree    *pt.Tree
	pending []*pt.Node
}

func newParser(fn source.Func) *parser {
	return &parser{
		r:    source.NewReader(fn),
		tree: pt.New(),
	}
}

func (p *parser) peek() (rune, bool) {
	return p.r.Peek()
}

func (p *parser) peekIs(i int, c rune) bool {
	got, ok := p.r.PeekAt(i)
	return ok && got == c
}

func (p *parser) at(lit string) bool {
	i := 0
	for _, c := range lit {
		if !p.peekIs(i, c) {
			return false
		}
		i++
	}
	return true
}

func (p *parser) pos() pt.Position {
	return p.r.Pos()
}

func (p *parser) flush(parent *pt.Node) {
	for _, n := range p.pending {
		p.tree.Append(parent, n)
	}
	p.pending = nil
}

// open appends a new interior node to parent at the current position.
func (p *parser) open(parent *pt.Node, kind pt.Kind) *pt.Node {
	p.flush(parent)
	n := p.tree.NewNode(kind, p.pos())
	p.tree.Append(parent, n)
	return n
}

func (p *parser) close(n *pt.Node) {
	p.tree.Close(n)
}

func (p *parser) appendLeaf(parent *pt.Node, kind pt.Kind, start pt.Position, data string) *pt.Node {
	p.flush(parent)
	n := p.tree.NewLeaf(kind, pt.Span{Start: start, End: p.pos()}, data)
	p.tree.Append(parent, n)
	return n
}

// fail attaches pending trivia to n and passes err on.
func (p *parser) fail(n *pt.Node, err error) error {
	p.flush(n)
	return err
}

// consume reads characters while accept holds.
func (p *parser) consume(accept func(rune) bool) string {
	var b strings.Builder
	for {
		c, ok := p.peek()
		if !ok || !accept(c) {
			return b.String()
		}
		p.r.Advance()
		b.WriteRune(c)
	}
}

// literal consumes lit, which the caller has already seen, as a Literal leaf.
func (p *parser) literal(parent *pt.Node, lit string) *pt.Node {
	start := p.pos()
	for range lit {
		p.r.Advance()
	}
	return p.appendLeaf(parent, pt.KindLiteral, start, lit)
}

// expect consumes one of want as a Literal leaf of parent.
func (p *parser) expect(parent *pt.Node, reason string, want ...string) error {
	for _, lit := range want {
		if p.at(lit) {
			p.literal(parent, lit)
			return nil
		}
	}

	c, ok := p.peek()
	var e *Error
	switch {
	case !ok:
		e = p.errorf(ErrEOF, parent, "expected %s", expected(want))
	case p.knownLiteral() != "":
		e = p.errorf(ErrUnexpectedLiteral, parent, "expected %s", expected(want))
		e.Found = p.knownLiteral()
	default:
		e = p.errorf(ErrNoLiteral, parent, "%s", reason)
		e.Found = string(c)
	}
	e.Expected = want
	return e
}

func (p *parser) knownLiteral() string {
	for _, lit := range literals {
		if p.at(lit) {
			return lit
		}
	}
	return ""
}

func (p *parser) errorf(kind ErrorKind, n *pt.Node, format string, args ...any) *Error {
	e := &Error{
		Kind:   kind,
		Pos:    p.pos(),
		Reason: fmt.Sprintf(format, args...),
		Node:   n,
		Tree:   p.tree,
	}
	if c, ok := p.peek(); ok {
		e.Found = string(c)
	}
	return e
}

func (p *parser) parseRoot() error {
	root := p.tree.Root
	for {
		c, ok := p.peek()
		if !ok {
			break
		}
		switch {
		case pt.IsSpace(c) || p.at("(*"):
			err := p.parseGap()
			p.flush(root)
			if err != nil {
				return err
			}
		case c == '(':
			e := p.errorf(ErrNoLiteral, root, "expected a comment")
			e.Expected = []string{"(*"}
			return e
		case pt.IsNameStart(c):
			if err := p.parseProduct(root); err != nil {
				return err
			}
		default:
			return p.errorf(ErrUnexpectedCharacter, root,
				"expected a name character, white space or a `(*` literal")
		}
	}
	p.close(root)
	return nil
}

// parseGap reads any run of space and comments into pending.
func (p *parser) parseGap() error {
	for {
		c, ok := p.peek()
		switch {
		case !ok:
			return nil
		case pt.IsSpace(c):
			space, err := p.parseSpace()
			if err != nil {
				return err
			}
			p.pending = append(p.pending, space)
		case p.at("(*"):
			comment := p.tree.NewNode(pt.KindComment, p.pos())
			held := p.pending
			p.pending = nil
			err := p.parseComment(comment)
			p.pending = append(held, comment)
			if err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *parser) parseSpace() (*pt.Node, error) {
	c, ok := p.peek()
	if !ok || !pt.IsSpace(c) {
		return nil, p.errorf(ErrNoSpace, nil, "")
	}
	start := p.pos()
	data := p.consume(pt.IsSpace)
	return p.tree.NewLeaf(pt.KindSpace, pt.Span{Start: start, End: p.pos()}, data), nil
}

// parseComment fills comment, which starts at `(*`. Comments nest.
func (p *parser) parseComment(comment *pt.Node) error {
	p.literal(comment, "(*")

	var text strings.Builder
	textStart := p.pos()
	flushText := func() {
		if text.Len() > 0 {
			p.appendLeaf(comment, pt.KindText, textStart, text.String())
			text.Reset()
		}
	}

	for {
		switch {
		case p.at("*)"):
			flushText()
			p.literal(comment, "*)")
			p.close(comment)
			return nil
		case p.at("(*"):
			flushText()
			nested := p.open(comment, pt.KindComment)
			if err := p.parseComment(nested); err != nil {
				return err
			}
			textStart = p.pos()
		default:
			c, ok := p.r.Advance()
			if !ok {
				flushText()
				e := p.errorf(ErrEOF, comment, "comment not terminated")
				e.Expected = []string{"*)"}
				return e
			}
			text.WriteRune(c)
		}
	}
}

func (p *parser) parseProduct(root *pt.Node) error {
	product := p.open(root, pt.KindProduct)

	p.parseIdentifier(product)
	if err := p.parseGap(); err != nil {
		return p.fail(product, err)
	}
	if err := p.expect(product, "expected `=` after the product name", "="); err != nil {
		return p.fail(product, err)
	}
	if err := p.parseGap(); err != nil {
		return p.fail(product, err)
	}
	if err := p.parseDefinitionList(product); err != nil {
		return p.fail(product, err)
	}
	if err := p.parseGap(); err != nil {
		return p.fail(product, err)
	}
	if err := p.expect(product, "expected a product terminator", ";", "."); err != nil {
		return p.fail(product, err)
	}

	p.close(product)
	return nil
}

// parseIdentifier reads a name. Space between name characters belongs to the
// name; trailing space is split off into pending.
func (p *parser) parseIdentifier(parent *pt.Node) *pt.Node {
	start := p.pos()
	var b strings.Builder
	nameLen := 0
	nameEnd := start
	for {
		c, ok := p.peek()
		if !ok || !(pt.IsNameChar(c) || pt.IsSpace(c)) {
			break
		}
		p.r.Advance()
		b.WriteRune(c)
		if pt.IsNameChar(c) {
			nameLen = b.Len()
			nameEnd = p.pos()
		}
	}

	data := b.String()
	p.flush(parent)
	id := p.tree.NewLeaf(pt.KindIdentifier, pt.Span{Start: start, End: nameEnd}, data[:nameLen])
	p.tree.Append(parent, id)
	if nameLen < len(data) {
		space := p.tree.NewLeaf(pt.KindSpace, pt.Span{Start: nameEnd, End: p.pos()}, data[nameLen:])
		p.pending = append(p.pending, space)
	}
	return id
}

// separator returns the alternation separator at the current position.
func (p *parser) separator() (string, bool) {
	c, ok := p.peek()
	switch {
	case !ok:
		return "", false
	case c == '|' || c == '!':
		return string(c), true
	case c == '/' && !p.at("/)"):
		return "/", true
	}
	return "", false
}

func (p *parser) parseDefinitionList(parent *pt.Node) error {
	list := p.open(parent, pt.KindDefinitionList)
	for {
		if err := p.parseDefinition(list); err != nil {
			return p.fail(list, err)
		}
		if err := p.parseGap(); err != nil {
			return p.fail(list, err)
		}
		sep, ok := p.separator()
		if !ok {
			break
		}
		p.literal(list, sep)
		if err := p.parseGap(); err != nil {
			return p.fail(list, err)
		}
	}
	p.close(list)
	return nil
}

func (p *parser) parseDefinition(list *pt.Node) error {
	def := p.open(list, pt.KindDefinition)
	for {
		if err := p.parseTerm(def); err != nil {
			return p.fail(def, err)
		}
		if err := p.parseGap(); err != nil {
			return p.fail(def, err)
		}
		if !p.at(",") {
			break
		}
		p.literal(def, ",")
		if err := p.parseGap(); err != nil {
			return p.fail(def, err)
		}
	}
	p.close(def)
	return nil
}

func (p *parser) parseTerm(def *pt.Node) error {
	term := p.open(def, pt.KindTerm)

	var repetition, exception *pt.Node
	if c, ok := p.peek(); ok && pt.IsDigit(c) {
		var err error
		if repetition, err = p.parseRepetition(term); err != nil {
			return p.fail(term, err)
		}
		if err := p.parseGap(); err != nil {
			return p.fail(term, err)
		}
		if c, ok := p.peek(); ok && pt.IsDigit(c) {
			return p.fail(term, p.errorf(ErrMultipleTermRepetitions, term, ""))
		}
	}

	if _, err := p.parsePrimary(term); err != nil {
		return p.fail(term, err)
	}

	for {
		if err := p.parseGap(); err != nil {
			return p.fail(term, err)
		}
		c, ok := p.peek()
		if !ok {
			break
		}
		switch {
		case c == '-':
			if exception != nil {
				return p.fail(term, p.errorf(ErrMultipleTermExceptions, term, ""))
			}
			var err error
			if exception, err = p.parseException(term); err != nil {
				return p.fail(term, err)
			}
		case pt.IsDigit(c):
			if repetition != nil {
				return p.fail(term, p.errorf(ErrMultipleTermRepetitions, term, ""))
			}
			return p.fail(term, p.errorf(ErrUndelimitedTerm, term, "expected `,` before a repetition"))
		case p.atPrimary():
			if exception != nil {
				return p.fail(term, p.errorf(ErrUndelimitedTerm, term, "expected `,` between terms"))
			}
			return p.fail(term, p.errorf(ErrMultipleTermPrimaries, term, ""))
		default:
			p.close(term)
			return nil
		}
	}

	p.close(term)
	return nil
}

func (p *parser) parseRepetition(term *pt.Node) (*pt.Node, error) {
	repetition := p.open(term, pt.KindRepetition)

	start := p.pos()
	p.appendLeaf(repetition, pt.KindNumber, start, p.consume(pt.IsDigit))
	if err := p.parseGap(); err != nil {
		return repetition, p.fail(repetition, err)
	}
	if err := p.expect(repetition, "expected `*` after a repetition count", "*"); err != nil {
		return repetition, p.fail(repetition, err)
	}

	p.close(repetition)
	return repetition, nil
}

func (p *parser) parseException(term *pt.Node) (*pt.Node, error) {
	exception := p.open(term, pt.KindException)

	p.literal(exception, "-")
	if err := p.parseGap(); err != nil {
		return exception, p.fail(exception, err)
	}
	if _, err := p.parsePrimary(exception); err != nil {
		return exception, p.fail(exception, err)
	}

	p.close(exception)
	return exception, nil
}

// atPrimary reports whether the next character starts a non-empty primary.
func (p *parser) atPrimary() bool {
	c, ok := p.peek()
	if !ok {
		return false
	}
	switch c {
	case '{', '[', '(', '?':
		return true
	}
	return pt.IsQuote(c) || pt.IsNameStart(c)
}

// parsePrimary dispatches on the next character. Any delimiter that cannot
// start a primary yields an EmptyString.
func (p *parser) parsePrimary(parent *pt.Node) (*pt.Node, error) {
	c, ok := p.peek()
	switch {
	case !ok:
		return nil, p.errorf(ErrEOF, parent, "expected a primary")
	case pt.IsQuote(c):
		return p.parseTerminal(parent)
	case pt.IsNameStart(c):
		return p.parseIdentifier(parent), nil
	case c == '{' || p.at("(/"):
		return p.parseBracketed(parent, pt.KindRepeat, []string{"}", "/)"})
	case c == '[' || p.at("(:"):
		return p.parseBracketed(parent, pt.KindOption, []string{"]", ":)"})
	case c == '(':
		return p.parseBracketed(parent, pt.KindGroup, []string{")"})
	case c == '?':
		return p.parseSpecial(parent)
	case pt.IsDelimiter(c):
		return p.appendLeaf(parent, pt.KindEmptyString, p.pos(), ""), nil
	}
	return nil, p.errorf(ErrUnexpectedCharacter, parent, "expected a primary")
}

func (p *parser) parseTerminal(parent *pt.Node) (*pt.Node, error) {
	start := p.pos()
	quote, _ := p.r.Advance()

	var b strings.Builder
	b.WriteRune(quote)
	for {
		c, ok := p.r.Advance()
		if !ok {
			p.appendLeaf(parent, pt.KindTerminal, start, b.String())
			e := p.errorf(ErrEOF, parent, "terminal not terminated")
			e.Expected = []string{string(quote)}
			return nil, e
		}
		b.WriteRune(c)
		if c == quote {
			return p.appendLeaf(parent, pt.KindTerminal, start, b.String()), nil
		}
	}
}

// parseBracketed reads a repeat, option or group, whichever opener is next.
func (p *parser) parseBracketed(parent *pt.Node, kind pt.Kind, closers []string) (*pt.Node, error) {
	n := p.open(parent, kind)

	opener := p.knownLiteral()
	p.literal(n, opener)
	if err := p.parseGap(); err != nil {
		return n, p.fail(n, err)
	}
	if err := p.parseDefinitionList(n); err != nil {
		return n, p.fail(n, err)
	}
	if err := p.parseGap(); err != nil {
		return n, p.fail(n, err)
	}
	reason := fmt.Sprintf("%s started at %s not terminated", strings.ToLower(kind.String()), n.Span.Start)
	if err := p.expect(n, reason, closers...); err != nil {
		return n, p.fail(n, err)
	}

	p.close(n)
	return n, nil
}

func (p *parser) parseSpecial(parent *pt.Node) (*pt.Node, error) {
	special := p.open(parent, pt.KindSpecial)

	p.literal(special, "?")
	start := p.pos()
	text := p.consume(func(c rune) bool { return c != '?' })
	p.appendLeaf(special, pt.KindText, start, text)
	if _, ok := p.peek(); !ok {
		e := p.errorf(ErrEOF, special, "special sequence not terminated")
		e.Expected = []string{"?"}
		return special, e
	}
	p.literal(special, "?")

	p.close(special)
	return special, nil
}
