package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/ebnfpt/pt"
)

// LineEncoder writes one tab separated record per node:
//
//	depth	kind	start	end	state	data
//
// start and end are line:column pairs, state is `partial` or `-`, and data
// is quoted for leaves and `-` otherwise.
type LineEncoder struct {
	w    io.Writer
	tree *pt.Tree
	opts options
}

func NewLineEncoder(w io.Writer, opts ...Option) *LineEncoder {
	return &LineEncoder{w: w, opts: apply(opts)}
}

func (e *LineEncoder) Encode(tree *pt.Tree) error {
	e.tree = tree
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	pt.Walk(e.tree.Root, e.opts.partial, func(n *pt.Node, partial bool) bool {
		fmt.Fprintf(&sb, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.tree.Depth(n),
			n.Kind,
			n.Span.Start,
			n.Span.End,
			state(partial),
			data(n),
		)
		return true
	})
	return []byte(sb.String()), nil
}

func state(partial bool) string {
	if partial {
		return "partial"
	}
	return "-"
}

func data(n *pt.Node) string {
	if !n.IsLeaf() {
		return "-"
	}
	return strconv.Quote(n.Data)
}
