package convert

import (
	"fmt"

	"marker/internal/host"
	"marker/pkg/ast"
)

// span converts a source map range into a file-relative span.
func (c *Converter) span(s host.Span) ast.Span {
	src, file := c.spanSource(s)
	if s.Hi < s.Lo || !file.Contains(s.Hi) {
		c.fail(fmt.Errorf("convert: span %d..%d crosses the end of %s", s.Lo, s.Hi, file.Name.Path))
	}
	return ast.NewSpan(src, uint32(s.Lo-file.StartPos), uint32(s.Hi-file.StartPos))
}

// spanSource interns one SpanSource per host file and pass.
func (c *Converter) spanSource(s host.Span) (*ast.SpanSource, *host.SourceFile) {
	file, ok := c.sess.LookupSourceFile(s.Lo)
	if !ok {
		c.fail(fmt.Errorf("convert: no source file contains position %d", s.Lo))
	}
	if src, ok := c.sources[file.Name]; ok {
		return src, c.sourceFiles[src]
	}
	if file.Name.Kind != host.FileNameReal {
		c.notYetImplemented("span source "+file.Name.Kind.String(), s)
	}

	src := newNode(c.store, &c.store.spans.sources, ast.NewFileSource(file.Name.Path))
	c.sources[file.Name] = src
	c.sourceFiles[src] = file
	return src, file
}
