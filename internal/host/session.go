package host

type FileNameKind uint8

const (
	// FileNameReal is a file on disk, possibly remapped.
	FileNameReal FileNameKind = iota + 1
	FileNameMacroExpansion
	FileNameProcMacroSource
	FileNameQuoteExpansion
	FileNameAnon
	FileNameCfgSpec
	FileNameCliCrateAttr
	FileNameCustom
	FileNameDocTest
	FileNameInlineAsm
)

func (k FileNameKind) String() string {
	switch k {
	case FileNameReal:
		return "real"
	case FileNameMacroExpansion:
		return "macro expansion"
	case FileNameProcMacroSource:
		return "proc-macro source"
	case FileNameQuoteExpansion:
		return "quote expansion"
	case FileNameAnon:
		return "anon"
	case FileNameCfgSpec:
		return "cfg spec"
	case FileNameCliCrateAttr:
		return "cli crate attr"
	case FileNameCustom:
		return "custom"
	case FileNameDocTest:
		return "doctest"
	case FileNameInlineAsm:
		return "inline asm"
	}
	return "unknown"
}

// FileName names the origin of a SourceFile. Path is set for real files;
// Hash distinguishes synthetic sources.
type FileName struct {
	Kind FileNameKind
	Path string
	Hash uint64
}

// SourceFile is a file loaded into the host's source map, covering
// [StartPos, EndPos). Src is only set when HasSrc is true.
type SourceFile struct {
	Name     FileName
	StartPos BytePos
	EndPos   BytePos
	Src      string
	HasSrc   bool
}

// Contains reports whether pos lies inside the file.
func (f *SourceFile) Contains(pos BytePos) bool {
	return f.StartPos <= pos && pos <= f.EndPos
}

// Session is the read-only view of one host compilation the driver works on.
// Implementations are not required to be safe for concurrent use.
type Session interface {
	// RootModule returns the module item of the crate root.
	RootModule() *Item
	CrateName() Symbol
	Item(id DefId) (*Item, bool)
	ImplItem(id DefId) (*ImplItem, bool)
	Body(id BodyId) (*Body, bool)
	SymbolStr(sym Symbol) string
	// Intern returns the symbol for s, adding it if needed.
	Intern(s string) Symbol
	// LookupSourceFile returns the file containing pos.
	LookupSourceFile(pos BytePos) (*SourceFile, bool)
}
