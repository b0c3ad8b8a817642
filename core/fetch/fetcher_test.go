package fetch

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestIsURL(t *testing.T) {
	tests := map[string]bool{
		"https://docs.google.com/document/d/x/pub": true,
		"http://localhost:8080/doc.html":           true,
		"export/Doc.html":                          false,
		"/abs/path.html":                           false,
		"httpdocs/file.html":                       false,
	}
	for in, want := range tests {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Doc.html")
	if err := os.WriteFile(path, []byte("<p>\U0001F846x</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := NewFile().Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.Source != path || res.HTML != "<p>\U0001F846x</p>" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestFileFetcher_Latin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.html")
	doc := []byte("<meta charset=\"iso-8859-1\"><p>caf\xe9</p>")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := NewFile().Fetch(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<meta charset=\"iso-8859-1\"><p>café</p>"; res.HTML != want {
		t.Errorf("HTML = %q, want %q", res.HTML, want)
	}
}

func TestFileFetcher_NotFound(t *testing.T) {
	_, err := NewFile().Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.html"))

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error must match ErrNotFound and fs.ErrNotExist: %v", err)
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/doc":
			if r.Header.Get("User-Agent") == "" {
				t.Error("missing User-Agent")
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<h1>Doc</h1>"))
		case "/boom":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTP(srv.Client())
	ctx := context.Background()

	res, err := f.Fetch(ctx, srv.URL+"/doc")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.HTML != "<h1>Doc</h1>" || res.Source != srv.URL+"/doc" {
		t.Errorf("unexpected result %+v", res)
	}

	_, err = f.Fetch(ctx, srv.URL+"/missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = f.Fetch(ctx, srv.URL+"/boom")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected StatusError 500, got %v", err)
	}
}

func TestSource_Dispatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "local.html")
	if err := os.WriteFile(path, []byte("local"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New()
	for loc, want := range map[string]string{srv.URL: "remote", path: "local"} {
		res, err := s.Fetch(context.Background(), loc)
		if err != nil {
			t.Fatalf("Fetch(%q) error = %v", loc, err)
		}
		if res.HTML != want {
			t.Errorf("Fetch(%q) = %q, want %q", loc, res.HTML, want)
		}
	}
}
