// Package output handles file naming and writing for converted documents.
// Single documents are named after their title (e.g. design-notes.md).
// In --all mode, output mirrors the relative path of each export with every
// path segment turned into a wiki-friendly slug.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

const fallbackName = "document"

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteNamed writes data to <dir>/<slug(name)><ext>.
func (w *Writer) WriteNamed(name string, data []byte, ext string) (string, error) {
	return WriteFile(filepath.Join(w.OutputDir, Slug(name)+ext), data)
}

// WriteTree writes data mirroring rel, a slash or OS separated path relative
// to the batch root. Example: Team Docs/On Call.html -> team-docs/on-call.md
func (w *Writer) WriteTree(rel string, data []byte, ext string) (string, error) {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, path.Ext(rel))

	parts := []string{w.OutputDir}
	for seg := range strings.SplitSeq(rel, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		parts = append(parts, Slug(seg))
	}
	if len(parts) == 1 {
		parts = append(parts, fallbackName)
	}
	return WriteFile(filepath.Join(parts...)+ext, data)
}

// WriteFile writes data to path, creating parent directories. The file is
// written to a temporary name first so a failed write leaves no partial file.
func WriteFile(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// NameFor picks the output base name for a document: its title, or else the
// file name (or last URL path segment) of its source.
func NameFor(title, source string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	if u, err := url.Parse(source); err == nil && u.Host != "" {
		p := strings.Trim(u.Path, "/")
		if p == "" {
			return u.Host
		}
		source = p
	}
	base := filepath.Base(filepath.FromSlash(source))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Slug turns a name into a lower-case, dash separated file name.
func Slug(name string) string {
	if s := slug.Make(name); s != "" {
		return s
	}
	return fallbackName
}
