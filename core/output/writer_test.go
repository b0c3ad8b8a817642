package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Design Notes": "design-notes",
		"Café au lait": "cafe-au-lait",
		"  On  Call  ": "on-call",
		"!!!":          fallbackName,
		"":             fallbackName,
		"v2.1 Release": "v2-1-release",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNameFor(t *testing.T) {
	tests := []struct {
		title, source, want string
	}{
		{"Runbook", "export/Doc.html", "Runbook"},
		{"", "export/Doc.html", "Doc"},
		{"", "https://example.com/docs/intro.html", "intro"},
		{"", "https://example.com/", "example.com"},
	}
	for _, tt := range tests {
		if got := NameFor(tt.title, tt.source); got != tt.want {
			t.Errorf("NameFor(%q, %q) = %q, want %q", tt.title, tt.source, got, tt.want)
		}
	}
}

func TestWriter_WriteNamed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path, err := w.WriteNamed("Design Notes", []byte("# x\n"), ".md")
	if err != nil {
		t.Fatalf("WriteNamed() error = %v", err)
	}
	if want := filepath.Join(dir, "design-notes.md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	assertFile(t, path, "# x\n")
	assertOnlyFiles(t, dir, 1)
}

func TestWriter_WriteTree(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	path, err := w.WriteTree(filepath.Join("Team Docs", "On Call.html"), []byte("a"), ".md")
	if err != nil {
		t.Fatalf("WriteTree() error = %v", err)
	}
	if want := filepath.Join(dir, "team-docs", "on-call.md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	assertFile(t, path, "a")

	path, err = w.WriteTree("../escape.html", []byte("b"), ".json")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "escape.json"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.md")
	if _, err := WriteFile(path, []byte("old")); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteFile(path, []byte("new")); err != nil {
		t.Fatal(err)
	}
	assertFile(t, path, "new")
	assertOnlyFiles(t, filepath.Dir(path), 1)
}

func assertFile(t *testing.T, path, want string) {
	t.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if string(got) != want {
		t.Errorf("%s = %q, want %q", path, got, want)
	}
}

// assertOnlyFiles checks that no temporary files were left behind.
func assertOnlyFiles(t *testing.T, dir string, n int) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != n {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected %d entries in %s, got %v", n, dir, names)
	}
}
