package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/cfront/c/token"
	"github.com/nalgeon/be"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		be.Err(t, os.MkdirAll(filepath.Dir(path), 0755), nil)
		be.Err(t, os.WriteFile(path, []byte(content), 0644), nil)
	}
}

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	proj, err := LoadFrom(root)
	be.Err(t, err, nil)
	be.Equal(t, proj.ConfigFile, "")
	be.Equal(t, proj.Extensions, []string{".c", ".h"})

	cfg, err := proj.Config()
	be.Err(t, err, nil)
	be.Equal(t, cfg.Standard, token.C17)
	be.True(t, cfg.Recovery)
}

func TestLoadProjectFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		FileName: "std: gnu99\nexclude: [vendor]\nparser:\n  max_errors: 5\n  max_depth: 64\n",
	})

	proj, err := LoadFrom(root)
	be.Err(t, err, nil)
	be.Equal(t, proj.ConfigFile, filepath.Join(root, FileName))
	be.Equal(t, proj.Exclude, []string{"vendor"})

	cfg, err := proj.Config()
	be.Err(t, err, nil)
	be.Equal(t, cfg.Standard, token.C99)
	be.Equal(t, cfg.MaxErrors, 5)
	be.Equal(t, cfg.MaxDepth, 64)
	// Fields the file leaves out keep their defaults.
	be.True(t, cfg.Recovery)
}

func TestLoadRejectsInvalidProject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown standard", "std: c42\n", `unknown C standard "c42"`},
		{"bad limits", "parser:\n  max_errors: 0\n", "max errors must be positive"},
		{"malformed yaml", "std: [c99\n", "parse "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, map[string]string{FileName: tt.content})
			_, err := LoadFrom(root)
			be.Err(t, err, tt.want)
		})
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		FileName:      "std: c11\n",
		"src/lib/a.c": "",
	})

	dir, err := Find(filepath.Join(root, "src", "lib"))
	be.Err(t, err, nil)
	want, _ := filepath.Abs(root)
	be.Equal(t, dir, want)
}

func TestSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		FileName:          "exclude: [vendor]\n",
		"main.c":          "",
		"include/util.h":  "",
		"src/util.c":      "",
		"README.md":       "",
		"vendor/dep.c":    "",
		".cache/object.c": "",
		"src/.hidden/x.c": "",
	})

	proj, err := LoadFrom(root)
	be.Err(t, err, nil)
	files, err := proj.SourceFiles()
	be.Err(t, err, nil)
	be.Equal(t, files, []string{
		filepath.Join(root, "include", "util.h"),
		filepath.Join(root, "main.c"),
		filepath.Join(root, "src", "util.c"),
	})

	be.True(t, proj.Includes(filepath.Join(root, "src", "util.c")))
	be.True(t, !proj.Includes(filepath.Join(root, "vendor", "dep.c")))
	be.True(t, !proj.Includes(filepath.Join(root, "README.md")))
}

func TestFindEntrypoints(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"cmd/tool.c": "int helper(void);\n\nint main(int argc, char **argv) {\n\treturn helper();\n}\n",
		"lib/help.c": "int helper(void) { return 0; }\n",
		"lib/decl.c": "int main(void);\n",
		"broken.c":   "int main(void) { return ; ; }}\n",
	})

	proj, err := LoadFrom(root)
	be.Err(t, err, nil)
	eps, err := proj.FindEntrypoints()
	be.Err(t, err, nil)

	be.Equal(t, len(eps), 2)
	be.Equal(t, eps[0].File, filepath.Join(root, "broken.c"))
	be.Equal(t, eps[1].File, filepath.Join(root, "cmd", "tool.c"))
	be.Equal(t, eps[1].Pos.Line, 3)
}
