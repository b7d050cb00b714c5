// Package host models the host compiler's internal syntax tree as the driver
// sees it: lowered, name-resolved items addressed by DefId, bodies addressed by
// BodyId and nodes inside bodies addressed by HirId.
//
// This representation belongs to the host and changes with every host
// release. Lint crates never see it; internal/convert maps it to pkg/ast.
package host

// CrateNum numbers the crates of one compilation. LocalCrate is the crate
// being compiled.
type CrateNum uint32

const LocalCrate CrateNum = 0

// DefIndex indexes definitions inside a crate.
type DefIndex uint32

// DefId identifies any definition of any crate.
type DefId struct {
	Krate CrateNum
	Index DefIndex
}

// LocalDefId returns the DefId of a definition in the local crate.
func LocalDefId(index DefIndex) DefId {
	return DefId{Krate: LocalCrate, Index: index}
}

// IsLocal reports whether the definition belongs to the local crate.
func (id DefId) IsLocal() bool { return id.Krate == LocalCrate }

// ItemLocalId numbers nodes inside one owner.
type ItemLocalId uint32

// HirId identifies a node within the item that owns it.
type HirId struct {
	Owner DefIndex
	Local ItemLocalId
}

// BodyId is the HirId of a body's root expression.
type BodyId struct {
	Owner DefIndex
	Local ItemLocalId
}

// HirId returns the body's HirId.
func (id BodyId) HirId() HirId { return HirId{Owner: id.Owner, Local: id.Local} }

// Symbol is an interned string of the host session.
type Symbol uint32

// BytePos is an absolute position in the host's source map. All loaded files
// share one position space; SourceFile.StartPos marks where a file begins.
type BytePos uint32

// Span is a range in the host's source map.
type Span struct {
	Lo BytePos
	Hi BytePos
}

// DummySpan marks nodes without a source location.
var DummySpan = Span{}

func (s Span) IsDummy() bool { return s.Lo == 0 && s.Hi == 0 }

// Ident is a name with the span it was written at.
type Ident struct {
	Name Symbol
	Span Span
}
