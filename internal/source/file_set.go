package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns the source texts diagnostics are rendered against.
type FileSet struct {
	files []File
	index map[string]FileID
}

func NewFileSet() *FileSet {
	return &FileSet{
		index: make(map[string]FileID),
	}
}

// Add stores content under path and returns a fresh FileID, even when the
// path is already known. Lookups by path return the newest file.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(n)
	norm := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    norm,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	fs.index[norm] = id
	return id
}

// AddVirtual adds in-memory content with the FileVirtual flag.
func (fs *FileSet) AddVirtual(path string, content []byte) FileID {
	return fs.Add(path, content, FileVirtual)
}

// Load reads path from disk, strips a BOM and normalizes line endings.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

func (fs *FileSet) Len() int { return len(fs.files) }

// GetLatest returns the newest FileID registered for path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.index[normalizePath(path)]
	return id, ok
}

// Resolve converts both ends of span to line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fs.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Snippet returns the text covered by span, if span lies inside the file.
func (fs *FileSet) Snippet(span Span) (string, bool) {
	if int(span.File) >= len(fs.files) {
		return "", false
	}
	f := &fs.files[span.File]
	if span.Start > span.End || int(span.End) > len(f.Content) {
		return "", false
	}
	return string(f.Content[span.Start:span.End]), true
}

// GetLine returns line lineNum (1-based) without its terminator, or "" when
// the file has fewer lines.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(f.LineIdx)+1 {
		return ""
	}
	var start uint32
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	end := uint32(len(f.Content)) //nolint:gosec // checked in Add
	if int(lineNum) <= len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
