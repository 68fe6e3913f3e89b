// Package workspace keeps parsed C files in memory and re-parses them as
// they change, on disk or in an editor.
package workspace

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/dhamidi/cfront/c/lexer"
	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/project"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

type Workspace struct {
	mu      sync.RWMutex
	project *project.Project
	config  parser.Config
	files   map[string]*File
	log     commonlog.Logger
}

// File is the latest parse of one document.
type File struct {
	Path        string
	Content     []byte
	AST         *parser.Node
	Diagnostics []*parser.ParseError
	// Err is set when the file could not be read or tokenized.
	Err error
}

func (f *File) Errors() int {
	n := 0
	for _, d := range f.Diagnostics {
		if d.IsError() {
			n++
		}
	}
	return n
}

func (f *File) Warnings() int {
	return len(f.Diagnostics) - f.Errors()
}

// New creates an empty workspace for proj. The project's parser
// configuration must be valid.
func New(proj *project.Project) (*Workspace, error) {
	cfg, err := proj.Config()
	if err != nil {
		return nil, err
	}
	return &Workspace{
		project: proj,
		config:  cfg,
		files:   make(map[string]*File),
		log:     commonlog.GetLogger("cfront.workspace"),
	}, nil
}

func (w *Workspace) Project() *project.Project {
	return w.project
}

func (w *Workspace) Config() parser.Config {
	return w.config
}

// ScanAll parses every source file of the project concurrently.
func (w *Workspace) ScanAll(ctx context.Context) error {
	paths, err := w.project.SourceFiles()
	if err != nil {
		return err
	}
	files, err := CheckFiles(ctx, w.config, paths, 0)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, f := range files {
		w.files[f.Path] = f
	}
	w.log.Infof("scanned %d files", len(files))
	return nil
}

func (w *Workspace) ScanFile(path string) *File {
	content, err := os.ReadFile(path)
	if err != nil {
		f := &File{Path: path, Err: err}
		w.store(f)
		return f
	}
	return w.UpdateFile(path, content)
}

// UpdateFile replaces the content of path and parses it again.
func (w *Workspace) UpdateFile(path string, content []byte) *File {
	f := ParseFile(w.config, path, content)
	w.store(f)
	return f
}

func (w *Workspace) store(f *File) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[f.Path] = f
	w.log.Debugf("%s: %d errors, %d warnings", f.Path, f.Errors(), f.Warnings())
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

// Paths returns the known documents in sorted order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ParseFile tokenizes and parses content with a parser of its own.
func ParseFile(cfg parser.Config, path string, content []byte) *File {
	f := &File{Path: path, Content: content}

	toks, err := lexer.Tokenize(content, lexer.WithFile(path), lexer.WithStandard(cfg.Standard))
	if err != nil {
		f.Err = err
		return f
	}
	p, err := parser.New(cfg, parser.WithFile(path))
	if err != nil {
		f.Err = err
		return f
	}
	f.AST, _ = p.ParseTokens(toks)
	f.Diagnostics = p.Diagnostics()
	return f
}

// CheckFiles reads and parses paths concurrently, at most limit at a time
// (unbounded when limit <= 0). Results come back in the order of paths.
// Unreadable files are reported in File.Err; only cancellation of ctx
// fails the whole check.
func CheckFiles(ctx context.Context, cfg parser.Config, paths []string, limit int) ([]*File, error) {
	files := make([]*File, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				files[i] = &File{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
				return nil
			}
			files[i] = ParseFile(cfg, path, content)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
