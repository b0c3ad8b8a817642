// Package batch: path filtering rules.
// Provides helpers to filter and normalize paths while discovering exports.
package batch

import (
	"path/filepath"
	"strings"
)

// exportExtensions are the file extensions of HTML exports.
var exportExtensions = map[string]bool{
	".html": true, ".htm": true, ".xhtml": true,
}

// assetDirs hold the images and attachments that ship next to an export.
var assetDirs = map[string]bool{
	"images": true, "assets": true, "img": true, "node_modules": true,
}

// IsExport reports whether path names an HTML export.
func IsExport(path string) bool {
	return exportExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsAssetDir reports whether a directory is skipped during discovery.
// Hidden directories and "<name>_files" attachment folders are skipped too.
func IsAssetDir(name string) bool {
	if len(name) > 1 && strings.HasPrefix(name, ".") {
		return true
	}
	return assetDirs[strings.ToLower(name)] || strings.HasSuffix(strings.ToLower(name), "_files")
}

// NormalizePath returns the key used to deduplicate exports: the absolute,
// cleaned path with symbolic links resolved where possible.
func NormalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
