package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Change is a re-parse triggered by the file system. File is nil when
// the source was removed or renamed away.
type Change struct {
	Path string
	File *File
}

// Watcher keeps a workspace in sync with the project tree using OS-native
// notifications. Directories created after Start are watched as well.
type Watcher struct {
	ws      *Workspace
	w       *fsnotify.Watcher
	changes chan Change
	errs    chan error
}

func NewWatcher(ws *Workspace) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{
		ws:      ws,
		w:       w,
		changes: make(chan Change, 128),
		errs:    make(chan error, 1),
	}
	if err := fw.addTree(ws.Project().RootDir); err != nil {
		w.Close()
		return nil, err
	}
	return fw, nil
}

func (fw *Watcher) Changes() <-chan Change { return fw.changes }
func (fw *Watcher) Errors() <-chan error   { return fw.errs }

// Run forwards events until ctx is done, then closes the watcher and the
// Changes channel.
func (fw *Watcher) Run(ctx context.Context) error {
	defer close(fw.changes)
	defer fw.w.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			fw.handle(ctx, ev)
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			select {
			case fw.errs <- err:
			default:
				fw.ws.log.Errorf("watch: %s", err)
			}
		}
	}
}

func (fw *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !fw.ws.Project().IncludesDir(ev.Name) {
				return
			}
			if err := fw.addTree(ev.Name); err != nil {
				fw.ws.log.Warningf("watch %s: %s", ev.Name, err)
			}
			return
		}
	}
	if !fw.ws.Project().Includes(ev.Name) {
		return
	}

	var change Change
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		fw.ws.RemoveFile(ev.Name)
		change = Change{Path: ev.Name}
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		change = Change{Path: ev.Name, File: fw.ws.ScanFile(ev.Name)}
	default:
		return
	}

	select {
	case fw.changes <- change:
	case <-ctx.Done():
	}
}

// addTree watches root and every directory below it that may hold sources.
func (fw *Watcher) addTree(root string) error {
	proj := fw.ws.Project()
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && !proj.IncludesDir(path) {
			return filepath.SkipDir
		}
		return fw.w.Add(path)
	})
}
