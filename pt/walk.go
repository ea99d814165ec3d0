package pt

// Spine returns the rightmost path starting at n: n, its last child, that
// child's last child, and so on down to a node without children. After a
// failed parse these are the nodes whose contents are not guaranteed.
func Spine(n *Node) []*Node {
	var spine []*Node
	for ; n != nil; n = n.LastChild() {
		spine = append(spine, n)
	}
	return spine
}

// Walk visits n and its descendants depth first, in source order. When
// partial is true n is treated as the root of a partially built tree and fn
// is told, for every node, whether it lies on the rightmost spine. Returning
// false from fn skips the node's children.
func Walk(n *Node, partial bool, fn func(n *Node, partial bool) bool) {
	if !fn(n, partial) {
		return
	}
	for i, child := range n.Children {
		Walk(child, partial && i == len(n.Children)-1, fn)
	}
}

// Prefix returns the complete nodes of a partially built tree in source
// order: every child of a spine node that is not itself on the spine. Their
// concatenated text is a prefix of the input.
func Prefix(root *Node) []*Node {
	var nodes []*Node
	Walk(root, true, func(n *Node, partial bool) bool {
		if partial {
			return true
		}
		nodes = append(nodes, n)
		return false
	})
	return nodes
}
