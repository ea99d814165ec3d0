package pt

import "fmt"

// Tree owns a root node and every node created for it. Nodes are only ever
// appended; none is detached or reordered once attached.
type Tree struct {
	Root *Node

	nodes []*Node
}

// New returns a tree holding an empty root at the start of the input.
func New() *Tree {
	t := &Tree{}
	t.Root = t.NewNode(KindRoot, Start)
	return t
}

// NewNode registers an interior node starting at start. It has no parent
// until it is appended.
func (t *Tree) NewNode(kind Kind, start Position) *Node {
	n := &Node{
		Kind:   kind,
		Span:   Span{Start: start, End: start},
		id:     NodeID(len(t.nodes)),
		parent: NoNode,
	}
	t.nodes = append(t.nodes, n)
	return n
}

// NewLeaf registers a leaf covering span with the given data.
func (t *Tree) NewLeaf(kind Kind, span Span, data string) *Node {
	n := t.NewNode(kind, span.Start)
	n.Span.End = span.End
	n.Data = data
	return n
}

// Append adds child as the last child of parent and extends parent's span to
// cover it.
func (t *Tree) Append(parent, child *Node) {
	child.parent = parent.id
	parent.Children = append(parent.Children, child)
	parent.Span.End = child.Span.End
}

// Close fixes the end of n once no more children will be appended.
func (t *Tree) Close(n *Node) {
	if last := n.LastChild(); last != nil {
		n.Span.End = last.Span.End
		return
	}
	n.Span.End = n.Span.Start
}

// Node returns the node registered under id, or nil.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Parent returns the parent of n, or nil for the root.
func (t *Tree) Parent(n *Node) *Node {
	return t.Node(n.parent)
}

// Depth returns the number of ancestors of n. The root has depth 0.
func (t *Tree) Depth(n *Node) int {
	depth := 0
	for p := t.Parent(n); p != nil; p = t.Parent(p) {
		depth++
	}
	return depth
}

// Count returns the number of nodes reachable from the root.
func (t *Tree) Count() int {
	return Count(t.Root)
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	return Height(t.Root)
}

// MaxDegree returns the largest number of children of any node.
func (t *Tree) MaxDegree() int {
	return MaxDegree(t.Root)
}

// Text reconstructs the source text covered by the tree.
func (t *Tree) Text() string {
	return t.Root.Text()
}

func (t *Tree) String() string {
	return fmt.Sprintf("Tree count=%d height=%d maxDegree=%d\n", t.Count(), t.Height(), t.MaxDegree()) +
		t.Root.StringWithPositions()
}

func Count(n *Node) int {
	count := 1
	for _, child := range n.Children {
		count += Count(child)
	}
	return count
}

func Height(n *Node) int {
	height := 0
	for _, child := range n.Children {
		height = max(height, Height(child))
	}
	return height + 1
}

func MaxDegree(n *Node) int {
	degree := len(n.Children)
	for _, child := range n.Children {
		degree = max(degree, MaxDegree(child))
	}
	return degree
}
