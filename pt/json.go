package pt

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Span     jsonSpan    `json:"span" yaml:"span"`
	Data     *string     `json:"data,omitempty" yaml:"data,omitempty"`
	Children []*jsonNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start" yaml:"start"`
	End   jsonPosition `json:"end" yaml:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

// MarshalYAML returns the same document shape as MarshalJSON.
func (n *Node) MarshalYAML() (any, error) {
	return n.toJSON(), nil
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
		Span: jsonSpan{
			Start: jsonPosition(n.Span.Start),
			End:   jsonPosition(n.Span.End),
		},
	}

	if n.Kind.IsLeaf() {
		data := n.Data
		jn.Data = &data
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}
