package format

import (
	"bytes"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/ebnfpt/pt"
)

type treeDocument struct {
	Count     int      `json:"count" yaml:"count"`
	Height    int      `json:"height" yaml:"height"`
	MaxDegree int      `json:"maxDegree" yaml:"maxDegree"`
	Partial   bool     `json:"partial,omitempty" yaml:"partial,omitempty"`
	Root      *pt.Node `json:"root" yaml:"root"`
}

func newTreeDocument(tree *pt.Tree, opts options) *treeDocument {
	return &treeDocument{
		Count:     tree.Count(),
		Height:    tree.Height(),
		MaxDegree: tree.MaxDegree(),
		Partial:   opts.partial,
		Root:      tree.Root,
	}
}

type JSONEncoder struct {
	w    io.Writer
	tree *pt.Tree
	opts options
}

func NewJSONEncoder(w io.Writer, opts ...Option) *JSONEncoder {
	return &JSONEncoder{w: w, opts: apply(opts)}
}

func (e *JSONEncoder) Encode(tree *pt.Tree) error {
	e.tree = tree
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(newTreeDocument(e.tree, e.opts), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type YAMLEncoder struct {
	w    io.Writer
	tree *pt.Tree
	opts options
}

func NewYAMLEncoder(w io.Writer, opts ...Option) *YAMLEncoder {
	return &YAMLEncoder{w: w, opts: apply(opts)}
}

func (e *YAMLEncoder) Encode(tree *pt.Tree) error {
	e.tree = tree
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(newTreeDocument(e.tree, e.opts)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
