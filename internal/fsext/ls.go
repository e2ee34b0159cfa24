package fsext

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile is the per directory ignore file honored next to .gitignore.
const IgnoreFile = ".recyclerignore"

// CommonIgnorePatterns contains commonly ignored files and directories
var CommonIgnorePatterns = []string{
	// Version control
	".git",
	".svn",
	".hg",

	// IDE and editor files
	".vscode",
	".idea",
	"*.swp",
	"*~",
	".DS_Store",
	"Thumbs.db",

	// Build artifacts and dependencies
	"node_modules",
	"vendor",
	"dist",
	"__pycache__",

	// Temporary files
	"*.tmp",
	".cache",

	// OS generated files
	".Trash",
	".Spotlight-V100",
	".fseventsd",

	// Recycler
	".recycler",
}

type FileInfo struct {
	Path    string
	ModTime time.Time
	Size    int64
}

type ListOptions struct {
	// Include holds doublestar patterns matched against the path relative to
	// the root. A file matching any of them is listed. Empty lists all files.
	Include []string
	// Ignore holds extra patterns matched against base names.
	Ignore []string
	// Limit caps the number of results. Zero means no limit.
	Limit int
}

type DirectoryLister struct {
	gitignore    *ignore.GitIgnore
	localIgnore  *ignore.GitIgnore
	commonIgnore *ignore.GitIgnore
	rootPath     string
}

func NewDirectoryLister(rootPath string) *DirectoryLister {
	dl := &DirectoryLister{
		rootPath:     rootPath,
		gitignore:    compileIgnoreFile(filepath.Join(rootPath, ".gitignore")),
		localIgnore:  compileIgnoreFile(filepath.Join(rootPath, IgnoreFile)),
		commonIgnore: ignore.CompileIgnoreLines(CommonIgnorePatterns...),
	}
	return dl
}

func compileIgnoreFile(path string) *ignore.GitIgnore {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

func (dl *DirectoryLister) shouldIgnore(path string, ignorePatterns []string) bool {
	relPath, err := filepath.Rel(dl.rootPath, path)
	if err != nil {
		relPath = path
	}

	if dl.commonIgnore.MatchesPath(relPath) {
		return true
	}
	if dl.gitignore != nil && dl.gitignore.MatchesPath(relPath) {
		return true
	}
	if dl.localIgnore != nil && dl.localIgnore.MatchesPath(relPath) {
		return true
	}

	base := filepath.Base(path)
	if base != "." && strings.HasPrefix(base, ".") {
		return true
	}

	for _, pattern := range ignorePatterns {
		matched, err := filepath.Match(pattern, base)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (dl *DirectoryLister) included(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	relPath, err := filepath.Rel(dl.rootPath, path)
	if err != nil {
		relPath = path
	}
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}

// ListFiles lists the files under root, most recently modified first. The
// second result reports whether the list was truncated by the limit.
func ListFiles(root string, opts ListOptions) ([]FileInfo, bool, error) {
	for _, pattern := range opts.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, false, fmt.Errorf("invalid include pattern %q", pattern)
		}
	}

	dl := NewDirectoryLister(root)
	var results []FileInfo
	conf := fastwalk.Config{
		Follow: true,
		// Use forward slashes when running a Windows binary under WSL or MSYS
		ToSlash: fastwalk.DefaultToSlash(),
	}
	var mu sync.Mutex
	err := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files we don't have permission to access
		}
		if path == root {
			return nil
		}
		if dl.shouldIgnore(path, opts.Ignore) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !dl.included(path, opts.Include) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		mu.Lock()
		results = append(results, FileInfo{Path: path, ModTime: info.ModTime(), Size: info.Size()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("fastwalk error: %w", err)
	}

	slices.SortFunc(results, func(a, b FileInfo) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})

	truncated := false
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
		truncated = true
	}
	return results, truncated, nil
}
