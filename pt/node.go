package pt

import (
	"strconv"
	"strings"
)

// NodeID identifies a node within the arena of the tree that created it.
type NodeID int

// NoNode is the parent of the root and of nodes not yet appended anywhere.
const NoNode NodeID = -1

// Node is one constituent of a parse tree. Leaves carry Data and have no
// children; every other kind carries children and no data.
type Node struct {
	Kind     Kind
	Span     Span
	Data     string
	Children []*Node

	id     NodeID
	parent NodeID
}

// ID returns the handle of n in its tree.
func (n *Node) ID() NodeID {
	return n.id
}

// ParentID returns the handle of n's parent, or NoNode.
func (n *Node) ParentID() NodeID {
	return n.parent
}

func (n *Node) IsLeaf() bool {
	return n.Kind.IsLeaf()
}

func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// LastChild returns the rightmost child of n, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// LHS returns the identifier a product defines.
func (n *Node) LHS() *Node {
	if n.Kind != KindProduct {
		return nil
	}
	return n.FirstChildOfKind(KindIdentifier)
}

// RHS returns the definition list of a product.
func (n *Node) RHS() *Node {
	if n.Kind != KindProduct {
		return nil
	}
	return n.FirstChildOfKind(KindDefinitionList)
}

// Repetition returns the repetition prefix of a term, or nil.
func (n *Node) Repetition() *Node {
	if n.Kind != KindTerm {
		return nil
	}
	return n.FirstChildOfKind(KindRepetition)
}

// Exception returns the exception suffix of a term, or nil.
func (n *Node) Exception() *Node {
	if n.Kind != KindTerm {
		return nil
	}
	return n.FirstChildOfKind(KindException)
}

// Primary returns the primary of a term or an exception.
func (n *Node) Primary() *Node {
	if n.Kind != KindTerm && n.Kind != KindException {
		return nil
	}
	for _, child := range n.Children {
		if child.Kind.IsPrimary() {
			return child
		}
	}
	return nil
}

// Open returns the opening literal of a repeat, option, group, comment or
// special sequence.
func (n *Node) Open() *Node {
	switch n.Kind {
	case KindRepeat, KindOption, KindGroup, KindComment, KindSpecial:
		return n.FirstChildOfKind(KindLiteral)
	}
	return nil
}

// Int returns the value of a number leaf.
func (n *Node) Int() (int, error) {
	return strconv.Atoi(n.Data)
}

// Text returns the yield of n: the data of its leaves in order.
func (n *Node) Text() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	if n.Kind.IsLeaf() {
		b.WriteString(n.Data)
		return
	}
	for _, child := range n.Children {
		child.writeText(b)
	}
}

func (n *Node) String() string {
	var b strings.Builder
	n.writeIndent(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.writeIndent(&b, 0, true)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString(" [" + n.Span.String() + "]")
	}
	if n.Kind.IsLeaf() {
		b.WriteString(" " + strconv.Quote(n.Data))
	}
	b.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}
