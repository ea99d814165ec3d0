// Package workspace keeps the parse trees of every grammar file below a root
// directory up to date.
package workspace

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/ebnfpt/config"
	"github.com/dhamidi/ebnfpt/parse"
	"github.com/dhamidi/ebnfpt/pt"
)

var log = commonlog.GetLogger("ebnfpt.workspace")

type Workspace struct {
	mu    sync.RWMutex
	fs    afero.Fs
	root  string
	cfg   config.WorkspaceConfig
	files map[string]*File
}

// File is the latest parse of one grammar file. Tree is partial when Err is
// a syntax error.
type File struct {
	Path    string
	Content []byte
	Tree    *pt.Tree
	Err     error
}

type Option func(*Workspace)

// WithConfig selects the extensions, hidden-file handling and debounce
// interval of the workspace.
func WithConfig(cfg config.WorkspaceConfig) Option {
	return func(w *Workspace) {
		w.cfg = cfg
	}
}

func New(fsys afero.Fs, root string, opts ...Option) *Workspace {
	w := &Workspace{
		fs:    fsys,
		root:  root,
		files: make(map[string]*File),
	}
	for _, opt := range opts {
		opt(w)
	}
	if len(w.cfg.Extensions) == 0 {
		w.cfg.Extensions = []string{config.DefaultExtension}
	}
	if w.cfg.Debounce == 0 {
		w.cfg.Debounce = config.DefaultDebounce
	}
	return w
}

func (w *Workspace) Root() string {
	return w.root
}

// ScanAll parses every matching file below the root. Unreadable entries are
// skipped.
func (w *Workspace) ScanAll() error {
	n := 0
	err := afero.Walk(w.fs, w.root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			log.Debugf("skipping %s: %v", path, err)
			return nil
		}
		if w.skipHidden(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !w.Matches(path) {
			return nil
		}
		if err := w.ScanFile(path); err != nil {
			log.Warningf("%s: %v", path, err)
			return nil
		}
		n++
		return nil
	})
	log.Infof("scanned %d grammar files below %s", n, w.root)
	return err
}

// ScanFile reads path and parses it. Only read errors are returned; syntax
// errors are recorded in the File.
func (w *Workspace) ScanFile(path string) error {
	content, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new text of path.
func (w *Workspace) UpdateFile(path string, content []byte) *File {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.updateFileLocked(path, content)
}

func (w *Workspace) updateFileLocked(path string, content []byte) *File {
	tree, err := parse.FromString(string(content))
	if err != nil {
		log.Debugf("%s: %v", path, err)
	}
	f := &File{
		Path:    path,
		Content: content,
		Tree:    tree,
		Err:     err,
	}
	w.files[path] = f
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns every known file ordered by path.
func (w *Workspace) Files() []*File {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b *File) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files
}

// Matches reports whether path has one of the configured extensions.
func (w *Workspace) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range w.cfg.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

func (w *Workspace) skipHidden(path string) bool {
	if w.cfg.IncludeHidden || filepath.Clean(path) == filepath.Clean(w.root) {
		return false
	}
	return strings.HasPrefix(filepath.Base(path), ".")
}
