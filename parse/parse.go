package parse

import (
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ebnfpt/pt"
	"github.com/dhamidi/ebnfpt/source"
)

var log = commonlog.GetLogger("ebnfpt.parse")

// FromFunc parses the characters supplied by fn. The tree is returned even
// when err is non-nil; after a syntax error it is partial.
func FromFunc(fn source.Func) (*pt.Tree, error) {
	p := newParser(fn)
	err := p.parseRoot()
	if readErr := p.r.Err(); readErr != nil {
		return p.tree, fmt.Errorf("reading grammar: %w", readErr)
	}
	return p.tree, err
}

// FromString parses s.
func FromString(s string) (*pt.Tree, error) {
	return FromFunc(source.FromString(s))
}

// FromReader parses the UTF-8 text read from r.
func FromReader(r io.Reader) (*pt.Tree, error) {
	return FromFunc(source.FromReader(r))
}

// FromFile parses the grammar stored at path.
func FromFile(path string) (*pt.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tree, err := FromReader(f)
	if err != nil {
		log.Debugf("%s: %v", path, err)
		return tree, err
	}
	log.Debugf("%s: parsed %d nodes", path, tree.Count())
	return tree, nil
}
