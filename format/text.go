package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/ebnfpt/pt"
)

// TextEncoder writes an indented dump of the tree with spans. Nodes on the
// partial spine are marked with a trailing `!`.
type TextEncoder struct {
	w    io.Writer
	tree *pt.Tree
	opts options
}

func NewTextEncoder(w io.Writer, opts ...Option) *TextEncoder {
	return &TextEncoder{w: w, opts: apply(opts)}
}

func (e *TextEncoder) Encode(tree *pt.Tree) error {
	e.tree = tree
	return write(e.w, e)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	pt.Walk(e.tree.Root, e.opts.partial, func(n *pt.Node, partial bool) bool {
		sb.WriteString(strings.Repeat("  ", e.tree.Depth(n)))
		sb.WriteString(n.Kind.String())
		if partial {
			sb.WriteString("!")
		}
		sb.WriteString(" [" + n.Span.String() + "]")
		if n.IsLeaf() {
			sb.WriteString(" " + strconv.Quote(n.Data))
		}
		sb.WriteString("\n")
		return true
	})
	return []byte(sb.String()), nil
}

// SourceEncoder writes the text the tree was parsed from.
type SourceEncoder struct {
	w    io.Writer
	tree *pt.Tree
}

func NewSourceEncoder(w io.Writer) *SourceEncoder {
	return &SourceEncoder{w: w}
}

func (e *SourceEncoder) Encode(tree *pt.Tree) error {
	e.tree = tree
	return write(e.w, e)
}

func (e *SourceEncoder) MarshalText() ([]byte, error) {
	return []byte(e.tree.Text()), nil
}
