package pt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builder lays out leaves left to right, tracking positions the way a parser
// would.
type builder struct {
	t   *Tree
	pos Position
}

func (b *builder) leaf(parent *Node, kind Kind, data string) *Node {
	start := b.pos
	for _, c := range data {
		b.pos = b.pos.Advance(c)
	}
	n := b.t.NewLeaf(kind, Span{Start: start, End: b.pos}, data)
	b.t.Append(parent, n)
	return n
}

func (b *builder) open(parent *Node, kind Kind) *Node {
	n := b.t.NewNode(kind, b.pos)
	b.t.Append(parent, n)
	return n
}

// sampleTree builds the tree for `a = "b";`.
func sampleTree() *Tree {
	b := &builder{t: New(), pos: Start}
	root := b.t.Root
	prod := b.open(root, KindProduct)
	b.leaf(prod, KindIdentifier, "a")
	b.leaf(prod, KindSpace, " ")
	b.leaf(prod, KindLiteral, "=")
	b.leaf(prod, KindSpace, " ")
	dl := b.open(prod, KindDefinitionList)
	def := b.open(dl, KindDefinition)
	term := b.open(def, KindTerm)
	b.leaf(term, KindTerminal, `"b"`)
	b.t.Close(term)
	b.t.Close(def)
	b.t.Close(dl)
	b.leaf(prod, KindLiteral, ";")
	b.t.Close(prod)
	b.t.Close(root)
	return b.t
}

func TestPositionAdvance(t *testing.T) {
	tests := []struct {
		input string
		want  Position
	}{
		{"", Position{0, 1, 1}},
		{"abc", Position{3, 1, 4}},
		{"a\nb", Position{3, 2, 2}},
		{"\n\n", Position{2, 3, 1}},
		{"é", Position{2, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pos := Start
			for _, c := range tt.input {
				pos = pos.Advance(c)
			}
			assert.Equal(t, tt.want, pos)
		})
	}
}

func TestCharClasses(t *testing.T) {
	for _, c := range Delimiters {
		assert.True(t, IsDelimiter(c), "%q", c)
		assert.False(t, IsNameChar(c), "%q", c)
		assert.False(t, IsSpace(c), "%q", c)
	}
	for _, c := range "aZ_~@#é" {
		assert.True(t, IsNameStart(c), "%q", c)
	}
	for _, c := range " \t\n\r\x00\x7f\u00a0" {
		assert.True(t, IsSpace(c), "%q", c)
	}
	assert.True(t, IsNameChar('7'))
	assert.False(t, IsNameStart('7'))
}

func TestKindCategories(t *testing.T) {
	leaves := []Kind{KindTerminal, KindIdentifier, KindEmptyString, KindText, KindSpace, KindLiteral, KindNumber}
	primaries := []Kind{KindTerminal, KindIdentifier, KindRepeat, KindOption, KindGroup, KindSpecial, KindEmptyString}

	for k := KindRoot; k <= KindNumber; k++ {
		assert.Equal(t, contains(leaves, k), k.IsLeaf(), k.String())
		assert.Equal(t, contains(primaries, k), k.IsPrimary(), k.String())
		got, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	assert.Equal(t, "Unknown", Kind(99).String())
}

func contains(kinds []Kind, k Kind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

func TestTreeStats(t *testing.T) {
	tree := sampleTree()

	assert.Equal(t, 11, tree.Count())
	assert.Equal(t, 6, tree.Height())
	assert.Equal(t, 6, tree.MaxDegree())
	assert.Equal(t, `a = "b";`, tree.Text())
	assert.Equal(t, Position{8, 1, 9}, tree.Root.Span.End)
	require.NoError(t, tree.Validate(tree.Root))
}

func TestTreeParents(t *testing.T) {
	tree := sampleTree()
	prod := tree.Root.Children[0]
	terminal := prod.RHS().Children[0].Children[0].Primary()

	require.NotNil(t, terminal)
	assert.Equal(t, KindTerminal, terminal.Kind)
	assert.Equal(t, 5, tree.Depth(terminal))
	assert.Nil(t, tree.Parent(tree.Root))
	assert.Same(t, prod, tree.Parent(prod.LHS()))
	assert.Same(t, terminal, tree.Node(terminal.ID()))
	assert.Nil(t, tree.Node(NoNode))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tree *Tree)
	}{
		{"missing terminator", func(tree *Tree) {
			prod := tree.Root.Children[0]
			prod.Children = prod.Children[:len(prod.Children)-1]
			tree.Close(prod)
		}},
		{"space with letters", func(tree *Tree) {
			tree.Root.Children[0].Children[1].Data = "x"
		}},
		{"gap in spans", func(tree *Tree) {
			tree.Root.Children[0].Children[1].Span.End.Offset++
		}},
		{"unclosed terminal", func(tree *Tree) {
			term := tree.Root.Children[0].RHS().Children[0].Children[0]
			term.Children[0].Data = `"b'`
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := sampleTree()
			tt.mutate(tree)
			var shapeErr *ShapeError
			require.ErrorAs(t, tree.Validate(tree.Root), &shapeErr)
		})
	}
}

func TestSpineAndPrefix(t *testing.T) {
	tree := sampleTree()

	spine := Spine(tree.Root)
	require.Len(t, spine, 3)
	assert.Equal(t, KindRoot, spine[0].Kind)
	assert.Equal(t, KindProduct, spine[1].Kind)
	assert.Equal(t, KindLiteral, spine[2].Kind)

	var text string
	for _, n := range Prefix(tree.Root) {
		text += n.Text()
	}
	assert.Equal(t, `a = "b"`, text)
	require.NoError(t, tree.ValidatePrefix())
}

func TestNodeJSON(t *testing.T) {
	tree := sampleTree()
	data, err := json.Marshal(tree.Root.Children[0].LHS())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "Identifier",
		"span": {"start": {"offset": 0, "line": 1, "column": 1}, "end": {"offset": 1, "line": 1, "column": 2}},
		"data": "a"
	}`, string(data))
}

func TestNodeString(t *testing.T) {
	tree := sampleTree()
	want := "Product\n" +
		"  Identifier \"a\"\n" +
		"  Space \" \"\n" +
		"  Literal \"=\"\n" +
		"  Space \" \"\n" +
		"  DefinitionList\n" +
		"    Definition\n" +
		"      Term\n" +
		"        Terminal \"\\\"b\\\"\"\n" +
		"  Literal \";\"\n"
	assert.Equal(t, want, tree.Root.Children[0].String())
}
