package source

type (
	// FileID identifies a file within one FileSet.
	FileID uint32
	// FileFlags records how a file entered the set.
	FileFlags uint8
)

const (
	// FileVirtual marks content that was handed over in memory (host source
	// map, tests) rather than read from disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one source text together with its line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the byte offset of every '\n'.
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}
