package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("<p>x</p>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"Part 10.html",
		"Part 2.html",
		"notes.txt",
		"images/image1.png",
		"images/embedded.html",
		"Team/On Call.HTM",
		"Team/Doc_files/frame.html",
		".git/index.html",
	)

	jobs, err := Discover(root, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	var rels []string
	for _, j := range jobs {
		rels = append(rels, filepath.ToSlash(j.Rel))
	}
	want := []string{"Part 2.html", "Part 10.html", "Team/On Call.HTM"}
	if diff := cmp.Diff(want, rels); diff != "" {
		t.Errorf("discovered jobs mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "Doc.html")

	jobs, err := Discover(filepath.Join(root, "Doc.html"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 || jobs[0].Rel != "Doc.html" {
		t.Errorf("unexpected jobs %+v", jobs)
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestQueue_Dedup(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.html")

	q := NewQueue()
	if !q.Add(Job{Path: filepath.Join(root, "a.html")}) {
		t.Fatal("first add must succeed")
	}
	if q.Add(Job{Path: filepath.Join(root, ".", "x", "..", "a.html")}) {
		t.Error("equivalent path must be deduplicated")
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestRules(t *testing.T) {
	for path, want := range map[string]bool{
		"a.html": true, "b.HTM": true, "c.xhtml": true, "d.md": false, "e": false,
	} {
		if got := IsExport(path); got != want {
			t.Errorf("IsExport(%q) = %v", path, got)
		}
	}
	for name, want := range map[string]bool{
		"images": true, "Images": true, ".cache": true, "Doc_files": true, "_files": true,
		"node_modules": true, "docs": false, ".": false,
	} {
		if got := IsAssetDir(name); got != want {
			t.Errorf("IsAssetDir(%q) = %v", name, got)
		}
	}
}

func TestRunner_Run(t *testing.T) {
	jobs := []Job{{Path: "a", Rel: "a"}, {Path: "bad", Rel: "bad"}, {Path: "c", Rel: "c"}}
	var calls atomic.Int32

	results, err := NewRunner(zaptest.NewLogger(t), 2).Run(context.Background(), jobs,
		func(_ context.Context, job Job) (string, error) {
			calls.Add(1)
			if job.Path == "bad" {
				return "", errors.New("boom")
			}
			return job.Path + ".md", nil
		})

	if calls.Load() != 3 {
		t.Errorf("convert called %d times, want 3", calls.Load())
	}
	if len(multierr.Errors(err)) != 1 || !strings.Contains(err.Error(), "bad: boom") {
		t.Errorf("unexpected error %v", err)
	}
	if results[0].Output != "a.md" || results[2].Output != "c.md" || results[1].Err == nil {
		t.Errorf("unexpected results %+v", results)
	}
	for i, r := range results {
		if r.Job != jobs[i] {
			t.Errorf("result %d has job %+v, want %+v", i, r.Job, jobs[i])
		}
	}
}

func TestRunner_FailureKeepsContext(t *testing.T) {
	jobs := []Job{{Path: "bad", Rel: "bad"}, {Path: "next", Rel: "next"}}

	results, err := NewRunner(nil, 1).Run(context.Background(), jobs,
		func(ctx context.Context, job Job) (string, error) {
			if job.Path == "bad" {
				return "", errors.New("boom")
			}
			if ctx.Err() != nil {
				t.Errorf("job %s saw a cancelled context: %v", job.Path, ctx.Err())
			}
			return job.Path + ".md", nil
		})

	if len(multierr.Errors(err)) != 1 {
		t.Errorf("unexpected error %v", err)
	}
	if results[1].Output != "next.md" || results[1].Err != nil {
		t.Errorf("unexpected result %+v", results[1])
	}
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, 1).Run(ctx, []Job{{Path: "a"}}, func(context.Context, Job) (string, error) {
		t.Error("convert must not run after cancellation")
		return "", nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
