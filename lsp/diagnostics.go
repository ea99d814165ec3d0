package lsp

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/ebnfpt/parse"
	"github.com/dhamidi/ebnfpt/pt"
	"github.com/dhamidi/ebnfpt/workspace"
)

// diagnostics reports the syntax error of f, if any. The range covers the
// offending character, or is empty at the end of input.
func diagnostics(f *workspace.File) []protocol.Diagnostic {
	out := []protocol.Diagnostic{}
	if f == nil || f.Err == nil {
		return out
	}

	var perr *parse.Error
	if !errors.As(f.Err, &perr) {
		out = append(out, diagnostic(protocol.Range{}, "", f.Err.Error()))
		return out
	}

	end := perr.Pos
	if perr.Pos.Offset < len(f.Content) {
		r, size := utf8.DecodeRune(f.Content[perr.Pos.Offset:])
		end = end.Advance(r)
		end.Offset = perr.Pos.Offset + size
	}
	rng := protocol.Range{
		Start: toPosition(f.Content, perr.Pos),
		End:   toPosition(f.Content, end),
	}
	out = append(out, diagnostic(rng, perr.Kind.String(), perr.Error()))
	return out
}

func diagnostic(rng protocol.Range, code, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	d := protocol.Diagnostic{
		Range:    rng,
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
	if code != "" {
		d.Code = &protocol.IntegerOrString{Value: code}
	}
	return d
}

// symbols lists one symbol per product of f, named after its left-hand side.
func symbols(f *workspace.File) []protocol.DocumentSymbol {
	out := []protocol.DocumentSymbol{}
	if f == nil || f.Tree == nil {
		return out
	}
	for _, product := range f.Tree.Root.ChildrenOfKind(pt.KindProduct) {
		lhs := product.LHS()
		if lhs == nil {
			continue
		}
		out = append(out, protocol.DocumentSymbol{
			Name:           lhs.Data,
			Kind:           protocol.SymbolKindFunction,
			Range:          toRange(f.Content, product.Span),
			SelectionRange: toRange(f.Content, lhs.Span),
		})
	}
	return out
}

func toRange(content []byte, span pt.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(content, span.Start),
		End:   toPosition(content, span.End),
	}
}

// toPosition converts p to a zero-based line and a character offset counted
// in UTF-16 code units.
func toPosition(content []byte, p pt.Position) protocol.Position {
	offset := min(p.Offset, len(content))
	lineStart := offset
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}

	var character int
	for _, r := range string(content[lineStart:offset]) {
		if n := utf16.RuneLen(r); n > 0 {
			character += n
		} else {
			character++
		}
	}

	return protocol.Position{
		Line:      protocol.UInteger(max(p.Line-1, 0)),
		Character: protocol.UInteger(character),
	}
}
