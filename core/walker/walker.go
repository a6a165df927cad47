package walker

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tristendillon/gohb/core/logger"
)

// Walker enumerates files under a root, never descending into excluded
// directory names.
type Walker interface {
	Files(root string, match func(name string) bool) ([]string, error)
}

type SourceWalker struct {
	Exclude []string
}

func NewSourceWalker(exclude []string) *SourceWalker {
	return &SourceWalker{Exclude: exclude}
}

// MatchExt returns a matcher accepting file names with the given extension.
func MatchExt(ext string) func(string) bool {
	return func(name string) bool {
		return filepath.Ext(name) == ext
	}
}

// MatchName returns a matcher accepting exactly one file name.
func MatchName(want string) func(string) bool {
	return func(name string) bool {
		return name == want
	}
}

// Files returns the absolute paths of matching files in lexical order.
// Unreadable subtrees are logged and skipped; only a missing root is an
// error.
func (w *SourceWalker) Files(root string, match func(name string) bool) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != absRoot && w.excluded(d.Name()) {
				logger.Debug("Excluding directory: %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		if match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

func (w *SourceWalker) excluded(name string) bool {
	for _, ex := range w.Exclude {
		if name == ex {
			return true
		}
	}
	return false
}
