// Package watch re-runs generation when description files change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/logger"
	"github.com/teranos/classgen/schema"
)

// RunFunc regenerates; it is called after each debounced burst of changes
type RunFunc func(ctx context.Context, changed []string) error

// Watcher watches description directories for changes and triggers runs
type Watcher struct {
	watcher        *fsnotify.Watcher
	debouncePeriod time.Duration
	run            RunFunc
	log            *zap.SugaredLogger

	ignored []string
	pending map[string]bool // owned by Run
}

// Options configures a Watcher
type Options struct {
	// Roots are description directories or files; files are watched through
	// their parent directory
	Roots []string
	// Ignore lists directories whose events are dropped, typically output.dir
	Ignore   []string
	Debounce time.Duration
}

// New watches the roots and every directory below them. Directories created
// later are added as they appear.
func New(opts Options, run RunFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:        fw,
		debouncePeriod: opts.Debounce,
		run:            run,
		log:            logger.ComponentLogger("watch"),
		pending:        make(map[string]bool),
	}
	for _, dir := range opts.Ignore {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		w.ignored = append(w.ignored, dir)
	}
	for _, root := range opts.Roots {
		if err := w.addTree(root); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addTree watches dir and its subdirectories; a file is watched through its
// parent directory
func (w *Watcher) addTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrapf(err, "failed to watch %s", root)
	}
	if !info.IsDir() {
		root = filepath.Dir(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.isIgnored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		w.log.Debugw("Watching directory", logger.FieldPath, path)
		return nil
	})
}

func (w *Watcher) isIgnored(path string) bool {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	for _, dir := range w.ignored {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// relevant reports whether an event should trigger a run
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if w.isIgnored(event.Name) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	_, ok := schema.FormatOf(event.Name)
	return ok
}

// Run processes events until ctx is cancelled. Runs never overlap: changes
// arriving during a run are batched into the next one.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	// Armed by the first relevant event
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			// New directories join the watch so nested descriptions are seen
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.log.Warnw("Failed to watch new directory", logger.FieldPath, event.Name, logger.FieldError, err)
					}
					continue
				}
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("Description changed", logger.FieldFile, event.Name, logger.FieldOperation, event.Op.String())
			w.pending[event.Name] = true
			timer.Reset(w.debouncePeriod)

		case <-timer.C:
			changed := w.drain()
			w.log.Infow("Regenerating", logger.FieldCount, len(changed))
			if err := w.run(ctx, changed); err != nil {
				// A broken description must not stop the watch
				w.log.Errorw("Regeneration failed", logger.FieldError, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// drain returns the changed paths, sorted, and clears them
func (w *Watcher) drain() []string {
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]bool)
	sort.Strings(changed)
	return changed
}

// Close stops watching without running; Run closes the watcher itself on return
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
