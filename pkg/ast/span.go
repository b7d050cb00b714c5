package ast

import "fmt"

// SpanSourceKind tells where the text of a span comes from.
type SpanSourceKind uint8

const (
	// SpanSourceFile is a span inside a real file on disk.
	SpanSourceFile SpanSourceKind = iota + 1
)

// SpanSource is the origin of a span. Drivers intern one SpanSource per
// distinct file and pass, so two spans from the same file share the pointer.
type SpanSource struct {
	kind SpanSourceKind
	file string
}

// NewFileSource is intended for drivers.
func NewFileSource(path string) SpanSource {
	return SpanSource{kind: SpanSourceFile, file: path}
}

func (s *SpanSource) Kind() SpanSourceKind { return s.kind }

// File returns the canonical path of a file source.
func (s *SpanSource) File() (string, bool) {
	if s == nil || s.kind != SpanSourceFile {
		return "", false
	}
	return s.file, true
}

// Span is a byte range relative to the start of its source.
type Span struct {
	source *SpanSource
	start  uint32 // inclusive
	end    uint32 // exclusive
}

// NewSpan is intended for drivers.
func NewSpan(source *SpanSource, start, end uint32) Span {
	return Span{source: source, start: start, end: end}
}

func (s Span) Source() *SpanSource { return s.source }
func (s Span) Start() uint32       { return s.start }
func (s Span) End() uint32         { return s.end }

func (s Span) Len() uint32 {
	if s.end < s.start {
		return 0
	}
	return s.end - s.start
}

func (s Span) IsEmpty() bool { return s.start >= s.end }

// Contains reports whether other lies inside s. Spans from different sources
// never contain each other.
func (s Span) Contains(other Span) bool {
	return s.source == other.source && s.start <= other.start && other.end <= s.end
}

func (s Span) String() string {
	if file, ok := s.source.File(); ok {
		return fmt.Sprintf("%s:%d-%d", file, s.start, s.end)
	}
	return fmt.Sprintf("<unknown>:%d-%d", s.start, s.end)
}

// SpanOwnerKind selects what a SpanOwner refers to.
type SpanOwnerKind uint8

const (
	SpanOwnerItem SpanOwnerKind = iota + 1
	SpanOwnerSpecific
)

// SpanOwner is a reference to something that has a span: either an item or a
// concrete SpanId stored in a node.
type SpanOwner struct {
	kind SpanOwnerKind
	item ItemId
	span SpanId
}

func SpanOwnerOfItem(id ItemId) SpanOwner { return SpanOwner{kind: SpanOwnerItem, item: id} }
func SpanOwnerOfSpan(id SpanId) SpanOwner { return SpanOwner{kind: SpanOwnerSpecific, span: id} }

func (o SpanOwner) Kind() SpanOwnerKind { return o.kind }

func (o SpanOwner) Item() (ItemId, bool) {
	return o.item, o.kind == SpanOwnerItem
}

func (o SpanOwner) SpanID() (SpanId, bool) {
	return o.span, o.kind == SpanOwnerSpecific
}
