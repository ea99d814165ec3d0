package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/ebnfpt/pt"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(tree *pt.Tree) error
}

// Option configures encoders that can mark the partial spine of a tree.
type Option func(*options)

type options struct {
	partial bool
}

// Partial marks the encoded tree as the result of a failed parse.
func Partial(partial bool) Option {
	return func(o *options) {
		o.partial = partial
	}
}

var encoders = map[string]func(w io.Writer, opts ...Option) Encoder{
	"text":   func(w io.Writer, opts ...Option) Encoder { return NewTextEncoder(w, opts...) },
	"line":   func(w io.Writer, opts ...Option) Encoder { return NewLineEncoder(w, opts...) },
	"json":   func(w io.Writer, opts ...Option) Encoder { return NewJSONEncoder(w, opts...) },
	"yaml":   func(w io.Writer, opts ...Option) Encoder { return NewYAMLEncoder(w, opts...) },
	"source": func(w io.Writer, _ ...Option) Encoder { return NewSourceEncoder(w) },
}

// Names lists the formats NewEncoder accepts.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer, opts ...Option) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q, want one of %v", name, Names())
	}
	return newEncoder(w, opts...), nil
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
