// Package hostmem is an in-memory host.Session. Trees are assembled with the
// builder methods; the conversion engine and the driver cannot tell it apart
// from a session backed by a real compiler.
package hostmem

import (
	"fmt"

	"fortio.org/safecast"

	"marker/internal/host"
	"marker/internal/source"
)

// Session implements host.Session.
type Session struct {
	symbols   *source.Interner
	crateName host.Symbol
	root      *host.Item

	items     map[host.DefId]*host.Item
	implItems map[host.DefId]*host.ImplItem
	bodies    map[host.BodyId]*host.Body

	files   []*host.SourceFile
	nextPos host.BytePos

	nextDef   host.DefIndex
	nextLocal map[host.DefIndex]host.ItemLocalId
}

var _ host.Session = (*Session)(nil)

// New creates a session for crate crateName with an empty root module.
func New(crateName string) *Session {
	s := &Session{
		symbols:   source.NewInterner(),
		items:     make(map[host.DefId]*host.Item),
		implItems: make(map[host.DefId]*host.ImplItem),
		bodies:    make(map[host.BodyId]*host.Body),
		nextLocal: make(map[host.DefIndex]host.ItemLocalId),
		// position 0 is reserved for the dummy span
		nextPos: 1,
	}
	s.crateName = s.Sym(crateName)
	s.root = &host.Item{
		DefId: s.NewDefId(),
		Ident: host.Ident{Name: s.crateName},
		Kind:  host.ItemMod,
		Mod:   &host.Mod{},
	}
	s.items[s.root.DefId] = s.root
	return s
}

// Sym interns name.
func (s *Session) Sym(name string) host.Symbol {
	return host.Symbol(s.symbols.Intern(name))
}

// Ident interns name and pairs it with span.
func (s *Session) Ident(name string, span host.Span) host.Ident {
	return host.Ident{Name: s.Sym(name), Span: span}
}

func (s *Session) NewDefId() host.DefId {
	id := host.LocalDefId(s.nextDef)
	s.nextDef++
	return id
}

// NewHirId allocates the next node id inside owner.
func (s *Session) NewHirId(owner host.DefId) host.HirId {
	local := s.nextLocal[owner.Index]
	s.nextLocal[owner.Index] = local + 1
	return host.HirId{Owner: owner.Index, Local: local}
}

// AddFile loads src into the source map after all previously added files.
func (s *Session) AddFile(name host.FileName, src string) *host.SourceFile {
	n, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("source too large: %w", err))
	}
	f := &host.SourceFile{
		Name:     name,
		StartPos: s.nextPos,
		EndPos:   s.nextPos + host.BytePos(n),
		Src:      src,
		HasSrc:   true,
	}
	// leave a gap so that EndPos of one file is never StartPos of the next
	s.nextPos = f.EndPos + 1
	s.files = append(s.files, f)
	return f
}

// AddRealFile is AddFile for a file on disk.
func (s *Session) AddRealFile(path, src string) *host.SourceFile {
	return s.AddFile(host.FileName{Kind: host.FileNameReal, Path: path}, src)
}

// Span converts file-relative offsets into a source map span.
func (s *Session) Span(f *host.SourceFile, start, end int) host.Span {
	lo, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(err)
	}
	hi, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(err)
	}
	return host.Span{Lo: f.StartPos + host.BytePos(lo), Hi: f.StartPos + host.BytePos(hi)}
}

// Root returns the crate root module.
func (s *Session) Root() *host.Item { return s.root }

// AddItem registers item and appends it to module parent. A zero DefId is
// replaced by a fresh one; the root module already uses index 0.
func (s *Session) AddItem(parent, item *host.Item) *host.Item {
	if parent == nil || parent.Kind != host.ItemMod || parent.Mod == nil {
		panic("hostmem: parent is not a module")
	}
	s.register(item)
	parent.Mod.Items = append(parent.Mod.Items, item.DefId)
	return item
}

// AddDetachedItem registers item without placing it in a module, the way
// items declared in a block are only reachable from their statement.
func (s *Session) AddDetachedItem(item *host.Item) *host.Item {
	s.register(item)
	return item
}

func (s *Session) register(item *host.Item) {
	if item.DefId == (host.DefId{}) {
		item.DefId = s.NewDefId()
	}
	if item.Kind == host.ItemMod && item.Mod == nil {
		item.Mod = &host.Mod{}
	}
	s.items[item.DefId] = item
}

// AddImplItem registers it and appends a reference to it to impl.
func (s *Session) AddImplItem(impl *host.Item, it *host.ImplItem) *host.ImplItem {
	if impl == nil || impl.Kind != host.ItemImpl || impl.Impl == nil {
		panic("hostmem: parent is not an impl")
	}
	if it.DefId == (host.DefId{}) {
		it.DefId = s.NewDefId()
	}
	s.implItems[it.DefId] = it
	impl.Impl.Items = append(impl.Impl.Items, host.ImplItemRef{Id: it.DefId, Ident: it.Ident, Span: it.Span})
	return it
}

// NewBodyId allocates the id of a body owned by owner.
func (s *Session) NewBodyId(owner host.DefId) host.BodyId {
	hir := s.NewHirId(owner)
	return host.BodyId{Owner: hir.Owner, Local: hir.Local}
}

// AddBody registers b under b.Id.
func (s *Session) AddBody(b *host.Body) *host.Body {
	s.bodies[b.Id] = b
	return b
}

func (s *Session) RootModule() *host.Item { return s.root }

func (s *Session) CrateName() host.Symbol { return s.crateName }

func (s *Session) Item(id host.DefId) (*host.Item, bool) {
	it, ok := s.items[id]
	return it, ok
}

func (s *Session) ImplItem(id host.DefId) (*host.ImplItem, bool) {
	it, ok := s.implItems[id]
	return it, ok
}

func (s *Session) Body(id host.BodyId) (*host.Body, bool) {
	b, ok := s.bodies[id]
	return b, ok
}

func (s *Session) SymbolStr(sym host.Symbol) string {
	str, ok := s.symbols.Lookup(source.StringID(sym))
	if !ok {
		panic(fmt.Sprintf("hostmem: unknown symbol %d", sym))
	}
	return str
}

func (s *Session) Intern(str string) host.Symbol { return s.Sym(str) }

func (s *Session) LookupSourceFile(pos host.BytePos) (*host.SourceFile, bool) {
	for _, f := range s.files {
		if f.Contains(pos) {
			return f, true
		}
	}
	return nil, false
}
