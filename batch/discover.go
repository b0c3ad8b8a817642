// Package batch converts every export below a directory.
// Discovery walks the tree, skipping asset directories, and the runner
// converts the jobs in parallel with a bounded number of workers.
package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// Job is one export found below a batch root.
type Job struct {
	Path string // path to read the export from
	Rel  string // path relative to the batch root
}

// Discover finds all exports below root. A root naming a single file yields
// that file. Jobs are returned in natural path order so that "Part 2"
// precedes "Part 10".
func Discover(root string, log *zap.Logger) ([]Job, error) {
	if log == nil {
		log = zap.NewNop()
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading batch root: %w", err)
	}
	if !info.IsDir() {
		return []Job{{Path: root, Rel: filepath.Base(root)}}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("Skipping unreadable path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && IsAssetDir(d.Name()) {
				log.Debug("Skipping asset directory", zap.String("path", path))
				return fs.SkipDir
			}
			return nil
		}
		if IsExport(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Sort(natural.StringSlice(paths))

	queue := NewQueue()
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		if !queue.Add(Job{Path: path, Rel: rel}) {
			log.Debug("Skipping duplicate export", zap.String("path", path))
		}
	}

	log.Info("Discovered exports", zap.String("root", root), zap.Int("count", queue.Len()))
	return queue.All(), nil
}
