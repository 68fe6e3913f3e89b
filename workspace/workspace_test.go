package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/project"
	"github.com/nalgeon/be"
)

func newWorkspace(t *testing.T, files map[string]string) *Workspace {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		be.Err(t, os.MkdirAll(filepath.Dir(path), 0755), nil)
		be.Err(t, os.WriteFile(path, []byte(content), 0644), nil)
	}
	proj, err := project.LoadFrom(root)
	be.Err(t, err, nil)
	ws, err := New(proj)
	be.Err(t, err, nil)
	return ws
}

func TestScanAll(t *testing.T) {
	ws := newWorkspace(t, map[string]string{
		"main.c":     "int main(void) { return 0; }\n",
		"util/bad.c": "int f(void) { return 1 + ; }\n",
		"util/u.h":   "typedef unsigned long size;\n",
		"notes.txt":  "not c",
	})
	be.Err(t, ws.ScanAll(context.Background()), nil)

	root := ws.Project().RootDir
	be.Equal(t, ws.Paths(), []string{
		filepath.Join(root, "main.c"),
		filepath.Join(root, "util", "bad.c"),
		filepath.Join(root, "util", "u.h"),
	})

	mainFile := ws.GetFile(filepath.Join(root, "main.c"))
	be.Equal(t, mainFile.Errors(), 0)
	be.Equal(t, mainFile.AST.SExpr(), "(unit (function main int (params) (block (return 0))))")

	bad := ws.GetFile(filepath.Join(root, "util", "bad.c"))
	be.True(t, bad.Errors() > 0)
	be.True(t, bad.AST != nil)
}

func TestUpdateFile(t *testing.T) {
	ws := newWorkspace(t, nil)
	f := ws.UpdateFile("/virtual/a.c", []byte("int x = ;"))
	be.True(t, f.Errors() > 0)
	be.Equal(t, f.Diagnostics[0].Range.Start.File, "/virtual/a.c")

	f = ws.UpdateFile("/virtual/a.c", []byte("int x = 1;"))
	be.Equal(t, f.Errors(), 0)
	be.Equal(t, ws.GetFile("/virtual/a.c"), f)

	ws.RemoveFile("/virtual/a.c")
	be.True(t, ws.GetFile("/virtual/a.c") == nil)
}

func TestScanFileRecordsReadErrors(t *testing.T) {
	ws := newWorkspace(t, nil)
	f := ws.ScanFile(filepath.Join(ws.Project().RootDir, "missing.c"))
	be.True(t, f.Err != nil)
	be.True(t, f.AST == nil)
}

func TestCheckFilesKeepsOrder(t *testing.T) {
	root := t.TempDir()
	var paths []string
	for i, src := range []string{"int a;", "int b = ;", "void c(void) {}", "int d"} {
		path := filepath.Join(root, string(rune('a'+i))+".c")
		be.Err(t, os.WriteFile(path, []byte(src), 0644), nil)
		paths = append(paths, path)
	}
	paths = append(paths, filepath.Join(root, "gone.c"))

	files, err := CheckFiles(context.Background(), parser.DefaultConfig(), paths, 2)
	be.Err(t, err, nil)
	be.Equal(t, len(files), 5)
	for i, f := range files {
		be.Equal(t, f.Path, paths[i])
	}
	be.Equal(t, files[0].Errors(), 0)
	be.True(t, files[1].Errors() > 0)
	be.Equal(t, files[2].Errors(), 0)
	be.True(t, files[3].Errors() > 0)
	be.Err(t, files[4].Err, "read ")
}

func TestCheckFilesHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CheckFiles(ctx, parser.DefaultConfig(), []string{"a.c"}, 0)
	be.Err(t, err, context.Canceled)
}

func waitForChange(t *testing.T, fw *Watcher, path string) Change {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case c, ok := <-fw.Changes():
			if !ok {
				t.Fatalf("watcher stopped before %s changed", path)
			}
			if c.Path == path {
				return c
			}
		case <-timeout:
			t.Fatalf("no change for %s", path)
		}
	}
}

func TestWatcher(t *testing.T) {
	ws := newWorkspace(t, map[string]string{"a.c": "int a;\n"})
	fw, err := NewWatcher(ws)
	be.Err(t, err, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- fw.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	root := ws.Project().RootDir
	path := filepath.Join(root, "b.c")
	tmp := filepath.Join(root, "b.tmp")
	be.Err(t, os.WriteFile(tmp, []byte("int b = ;\n"), 0644), nil)
	be.Err(t, os.Rename(tmp, path), nil)

	c := waitForChange(t, fw, path)
	be.True(t, c.File != nil)
	be.True(t, c.File.Errors() > 0)
	be.True(t, ws.GetFile(path) != nil)

	be.Err(t, os.Remove(path), nil)
	c = waitForChange(t, fw, path)
	be.True(t, c.File == nil)
	be.True(t, ws.GetFile(path) == nil)
}
