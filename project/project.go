package project

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dhamidi/cfront/c/lexer"
	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/c/token"
	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up in the root directory.
const FileName = ".cfront.yaml"

// Project describes a tree of C sources and how to parse them.
type Project struct {
	RootDir    string        `yaml:"-"`
	ConfigFile string        `yaml:"-"`
	Std        string        `yaml:"std"`
	Extensions []string      `yaml:"extensions"`
	Exclude    []string      `yaml:"exclude"`
	Parser     parser.Config `yaml:"parser"`
}

// Load reads the project in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads rootDir/.cfront.yaml. A missing file yields the defaults:
// C17, .c and .h sources, no exclusions.
func LoadFrom(rootDir string) (*Project, error) {
	proj := defaults(rootDir)

	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return proj, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, proj); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	proj.ConfigFile = path

	if _, err := proj.Config(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return proj, nil
}

// Find walks up from dir to the nearest directory holding a project file.
// It returns dir itself when none exists.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for d := abs; ; {
		if _, err := os.Stat(filepath.Join(d, FileName)); err == nil {
			return d, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return abs, nil
		}
		d = parent
	}
}

func defaults(rootDir string) *Project {
	return &Project{
		RootDir:    rootDir,
		Std:        token.C17.String(),
		Extensions: []string{".c", ".h"},
		Parser:     parser.DefaultConfig(),
	}
}

// Config returns the parser configuration with the project's standard applied.
func (p *Project) Config() (parser.Config, error) {
	cfg := p.Parser
	if p.Std != "" {
		std, err := token.ParseStandard(p.Std)
		if err != nil {
			return cfg, err
		}
		cfg.Standard = std
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Includes reports whether path is a source file of this project.
func (p *Project) Includes(path string) bool {
	return slices.Contains(p.Extensions, filepath.Ext(path)) && p.IncludesDir(filepath.Dir(path))
}

// IncludesDir reports whether dir lies inside RootDir and outside every
// hidden or excluded directory.
func (p *Project) IncludesDir(dir string) bool {
	rel, err := filepath.Rel(p.RootDir, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	for _, name := range strings.Split(rel, string(filepath.Separator)) {
		if p.skipDir(name) {
			return false
		}
	}
	return true
}

func (p *Project) skipDir(name string) bool {
	if name == "." {
		return false
	}
	return strings.HasPrefix(name, ".") || slices.Contains(p.Exclude, name)
}

// SourceFiles returns all source files below RootDir in lexical order.
// Hidden and excluded directories are skipped.
func (p *Project) SourceFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(p.RootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != p.RootDir && p.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(p.Extensions, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan sources in %s: %w", p.RootDir, err)
	}
	return files, nil
}

// Entrypoint is a definition of main.
type Entrypoint struct {
	File string
	Pos  token.Position
}

// FindEntrypoints parses every .c file and returns the ones that define main.
// Files that fail to read are skipped; parse errors are tolerated.
func (p *Project) FindEntrypoints() ([]Entrypoint, error) {
	cfg, err := p.Config()
	if err != nil {
		return nil, err
	}
	files, err := p.SourceFiles()
	if err != nil {
		return nil, err
	}

	var entrypoints []Entrypoint
	for _, file := range files {
		if filepath.Ext(file) != ".c" {
			continue
		}
		ep, ok, err := findEntrypointInFile(file, cfg)
		if err != nil {
			continue
		}
		if ok {
			entrypoints = append(entrypoints, ep)
		}
	}
	return entrypoints, nil
}

func findEntrypointInFile(path string, cfg parser.Config) (Entrypoint, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entrypoint{}, false, err
	}
	if !bytes.Contains(data, []byte("main")) {
		return Entrypoint{}, false, nil
	}

	toks, err := lexer.Tokenize(data, lexer.WithFile(path), lexer.WithStandard(cfg.Standard))
	if err != nil {
		return Entrypoint{}, false, err
	}
	p, err := parser.New(cfg, parser.WithFile(path))
	if err != nil {
		return Entrypoint{}, false, err
	}
	unit, _ := p.ParseTokens(toks)
	if unit == nil {
		return Entrypoint{}, false, nil
	}

	for _, decl := range unit.Children {
		if isMainDefinition(decl) {
			return Entrypoint{File: path, Pos: decl.Span.Start}, true, nil
		}
	}
	return Entrypoint{}, false, nil
}

func isMainDefinition(decl *parser.Node) bool {
	return decl.Kind == parser.KindFunctionDeclaration &&
		decl.Name == "main" &&
		decl.Body() != nil
}
