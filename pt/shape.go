package pt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ShapeError reports a node that breaks the structural contract of its kind.
type ShapeError struct {
	Node   *Node
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Node.Kind, e.Node.Span.Start, e.Reason)
}

// Validate checks the subtree rooted at n: child order per kind, parent
// handles, contiguous spans and leaf data.
func (t *Tree) Validate(n *Node) error {
	if err := t.validateNode(n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := t.Validate(child); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePrefix checks every node of a partially built tree that is not on
// its rightmost spine.
func (t *Tree) ValidatePrefix() error {
	for _, n := range Prefix(t.Root) {
		if err := t.Validate(n); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) validateNode(n *Node) error {
	fail := func(format string, args ...any) error {
		return &ShapeError{Node: n, Reason: fmt.Sprintf(format, args...)}
	}

	if n.Span.End.Offset < n.Span.Start.Offset {
		return fail("span %s ends before it starts", n.Span)
	}
	if n.Kind.IsLeaf() {
		if len(n.Children) > 0 {
			return fail("leaf has %d children", len(n.Children))
		}
		if n.Span.Len() != len(n.Data) {
			return fail("span %s covers %d bytes, data has %d", n.Span, n.Span.Len(), len(n.Data))
		}
		return validateLeaf(n, fail)
	}
	if n.Data != "" {
		return fail("interior node carries data %q", n.Data)
	}

	prev := n.Span.Start
	for i, child := range n.Children {
		if child.parent != n.id {
			return fail("child %d (%s) has parent %d", i, child.Kind, child.parent)
		}
		if child.Span.Start != prev {
			return fail("child %d (%s) starts at %s, want %s", i, child.Kind, child.Span.Start, prev)
		}
		prev = child.Span.End
	}
	if prev != n.Span.End {
		return fail("children end at %s, node ends at %s", prev, n.Span.End)
	}

	c := &cursor{nodes: n.Children}
	if err := c.match(n.Kind); err != nil {
		return fail("%v", err)
	}
	if !c.done() {
		return fail("unexpected %s at child %d", c.nodes[c.i].Kind, c.i)
	}
	return nil
}

func validateLeaf(n *Node, fail func(string, ...any) error) error {
	switch n.Kind {
	case KindSpace:
		if n.Data == "" || strings.IndexFunc(n.Data, func(r rune) bool { return !IsSpace(r) }) >= 0 {
			return fail("space data %q", n.Data)
		}
	case KindNumber:
		if n.Data == "" || strings.IndexFunc(n.Data, func(r rune) bool { return !IsDigit(r) }) >= 0 {
			return fail("number data %q", n.Data)
		}
	case KindIdentifier:
		first, _ := utf8.DecodeRuneInString(n.Data)
		last, _ := utf8.DecodeLastRuneInString(n.Data)
		if n.Data == "" || !IsNameStart(first) || !IsNameChar(last) {
			return fail("identifier data %q", n.Data)
		}
		if strings.IndexFunc(n.Data, func(r rune) bool { return !IsNameChar(r) && !IsSpace(r) }) >= 0 {
			return fail("identifier data %q", n.Data)
		}
	case KindTerminal:
		q, size := utf8.DecodeRuneInString(n.Data)
		if len(n.Data) < 2 || !IsQuote(q) || !strings.HasSuffix(n.Data, string(q)) ||
			strings.ContainsRune(n.Data[size:len(n.Data)-size], q) {
			return fail("terminal data %q", n.Data)
		}
	case KindLiteral:
		if n.Data == "" {
			return fail("empty literal")
		}
	case KindEmptyString:
		if n.Data != "" {
			return fail("empty string carries %q", n.Data)
		}
	case KindText:
	}
	return nil
}

// cursor matches a child list against the shape of its parent's kind.
type cursor struct {
	nodes []*Node
	i     int
}

func (c *cursor) done() bool {
	return c.i == len(c.nodes)
}

func (c *cursor) peek() *Node {
	if c.done() {
		return nil
	}
	return c.nodes[c.i]
}

func (c *cursor) gap() {
	for n := c.peek(); n != nil && n.Kind.IsTrivia(); n = c.peek() {
		c.i++
	}
}

func (c *cursor) is(kind Kind) bool {
	n := c.peek()
	return n != nil && n.Kind == kind
}

func (c *cursor) isLiteral(values ...string) bool {
	n := c.peek()
	if n == nil || n.Kind != KindLiteral {
		return false
	}
	for _, v := range values {
		if n.Data == v {
			return true
		}
	}
	return false
}

func (c *cursor) kind(kind Kind) error {
	if !c.is(kind) {
		return c.want(kind.String())
	}
	c.i++
	return nil
}

func (c *cursor) literal(values ...string) error {
	if !c.isLiteral(values...) {
		return c.want(fmt.Sprintf("literal %q", values))
	}
	c.i++
	return nil
}

func (c *cursor) primary() error {
	n := c.peek()
	if n == nil || !n.Kind.IsPrimary() {
		return c.want("primary")
	}
	c.i++
	return nil
}

func (c *cursor) want(what string) error {
	if n := c.peek(); n != nil {
		return fmt.Errorf("child %d: want %s, got %s", c.i, what, n.Kind)
	}
	return fmt.Errorf("child %d: want %s, got end", c.i, what)
}

func (c *cursor) match(kind Kind) error {
	switch kind {
	case KindRoot:
		for n := c.peek(); n != nil; n = c.peek() {
			if n.Kind != KindComment && n.Kind != KindProduct && n.Kind != KindSpace {
				return c.want("Comment, Product or Space")
			}
			c.i++
		}
		return nil
	case KindComment:
		if err := c.literal("(*"); err != nil {
			return err
		}
		for c.is(KindComment) || c.is(KindText) {
			c.i++
		}
		return c.literal("*)")
	case KindProduct:
		if err := c.kind(KindIdentifier); err != nil {
			return err
		}
		c.gap()
		if err := c.literal("="); err != nil {
			return err
		}
		c.gap()
		if err := c.kind(KindDefinitionList); err != nil {
			return err
		}
		c.gap()
		return c.literal(";", ".")
	case KindDefinitionList:
		return c.list(KindDefinition, "|", "/", "!")
	case KindDefinition:
		return c.list(KindTerm, ",")
	case KindTerm:
		if c.is(KindRepetition) {
			c.i++
			c.gap()
		}
		if err := c.primary(); err != nil {
			return err
		}
		mark := c.i
		c.gap()
		if c.is(KindException) {
			c.i++
		} else {
			c.i = mark
		}
		return nil
	case KindRepetition:
		if err := c.kind(KindNumber); err != nil {
			return err
		}
		c.gap()
		return c.literal("*")
	case KindException:
		if err := c.literal("-"); err != nil {
			return err
		}
		c.gap()
		return c.primary()
	case KindRepeat:
		return c.bracketed([]string{"{", "(/"}, []string{"}", "/)"})
	case KindOption:
		return c.bracketed([]string{"[", "(:"}, []string{"]", ":)"})
	case KindGroup:
		return c.bracketed([]string{"("}, []string{")"})
	case KindSpecial:
		if err := c.literal("?"); err != nil {
			return err
		}
		if err := c.kind(KindText); err != nil {
			return err
		}
		return c.literal("?")
	case KindInvalid:
		return fmt.Errorf("invalid kind")
	case KindTerminal, KindIdentifier, KindEmptyString, KindText, KindSpace, KindLiteral, KindNumber:
		return nil
	}
	return fmt.Errorf("unknown kind %d", kind)
}

func (c *cursor) list(item Kind, separators ...string) error {
	if err := c.kind(item); err != nil {
		return err
	}
	for {
		mark := c.i
		c.gap()
		if !c.isLiteral(separators...) {
			c.i = mark
			return nil
		}
		c.i++
		c.gap()
		if err := c.kind(item); err != nil {
			return err
		}
	}
}

func (c *cursor) bracketed(open, close []string) error {
	if err := c.literal(open...); err != nil {
		return err
	}
	c.gap()
	if err := c.kind(KindDefinitionList); err != nil {
		return err
	}
	c.gap()
	return c.literal(close...)
}
