package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddKeepsOldVersions(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("src/lib.rs", []byte("fn a() {}"), 0)
	id2 := fs.Add("src/lib.rs", []byte("fn b() {}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("src/lib.rs")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "fn a() {}" {
		t.Errorf("first version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestFileSetNormalizesPath(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("src/./nested/../lib.rs", nil)

	if got := fs.Get(id).Path; got != "src/lib.rs" {
		t.Errorf("Path = %q, want src/lib.rs", got)
	}
	if fs.Get(id).Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if _, ok := fs.GetLatest("src/lib.rs"); !ok {
		t.Error("lookup by clean path failed")
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lib.rs", []byte("fn main() {\n    let x = 1;\n}\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{11, LineCol{Line: 1, Col: 12}}, // the newline itself
		{12, LineCol{Line: 2, Col: 1}},
		{16, LineCol{Line: 2, Col: 5}},
		{27, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFileGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("lib.rs", []byte("first\nsecond\nthird")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestFileSetSnippet(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lib.rs", []byte("let answer = 42;"))

	if got, ok := fs.Snippet(Span{File: id, Start: 4, End: 10}); !ok || got != "answer" {
		t.Errorf("Snippet = %q, %v", got, ok)
	}
	if _, ok := fs.Snippet(Span{File: id, Start: 4, End: 100}); ok {
		t.Error("out-of-range span must not produce a snippet")
	}
	if _, ok := fs.Snippet(Span{File: id + 1}); ok {
		t.Error("unknown file must not produce a snippet")
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rs")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF", f.Flags)
	}
}

func TestFileSetLoadMissing(t *testing.T) {
	if _, err := NewFileSet().Load(filepath.Join(t.TempDir(), "missing.rs")); err == nil {
		t.Fatal("expected error")
	}
}
