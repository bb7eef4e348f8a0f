// Package watch reports changes to a fixed set of files.
package watch

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDelay is how long the watcher waits for a burst of events to settle
const DefaultDelay = 100 * time.Millisecond

// Options configures a FileWatcher
type Options struct {
	// Files are the paths to watch
	Files []string

	// Delay is the debounce window; DefaultDelay when zero
	Delay time.Duration

	// Logger receives change and error events; a no-op logger when nil
	Logger *zap.Logger
}

// FileWatcher watches the parent directories of a set of files and calls
// onChange with the files that changed. Watching directories instead of the
// files keeps working when editors replace a file by renaming over it.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	mu        sync.RWMutex
	files     map[string]struct{}
	started   bool
	logger    *zap.Logger
	onChange  func([]string) error
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewFileWatcher creates a new file watcher instance
func NewFileWatcher(opts Options, onChange func([]string) error) (*FileWatcher, error) {
	if len(opts.Files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}

	files, err := resolve(opts.Files)
	if err != nil {
		return nil, err
	}

	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(delay),
		files:     files,
		logger:    logger,
		onChange:  onChange,
		stopChan:  make(chan struct{}),
	}

	fw.debouncer.SetCallback(func(changed []string) {
		if err := fw.onChange(changed); err != nil {
			fw.logger.Error("change handler failed", zap.Strings("files", changed), zap.Error(err))
		}
	})

	return fw, nil
}

func resolve(paths []string) (map[string]struct{}, error) {
	files := make(map[string]struct{}, len(paths))
	for _, f := range paths {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		files[abs] = struct{}{}
	}
	return files, nil
}

// Start begins watching the file system
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, dir := range fw.directories() {
		if err := fw.addDir(dir); err != nil {
			return err
		}
	}
	fw.started = true

	fw.wg.Add(1)
	go fw.watch()

	return nil
}

// SetFiles replaces the watched files. Once started, directories that are no
// longer needed are released and new ones are watched.
func (fw *FileWatcher) SetFiles(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no files to watch")
	}
	files, err := resolve(paths)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	before := fw.directories()
	fw.files = files
	if !fw.started {
		return nil
	}

	after := fw.directories()
	for _, dir := range after {
		if !slices.Contains(before, dir) {
			if err := fw.addDir(dir); err != nil {
				return err
			}
		}
	}
	for _, dir := range before {
		if !slices.Contains(after, dir) {
			if err := fw.watcher.Remove(dir); err != nil {
				fw.logger.Warn("failed to release directory", zap.String("dir", dir), zap.Error(err))
			}
		}
	}
	return nil
}

// Files returns the watched files, sorted
func (fw *FileWatcher) Files() []string {
	fw.mu.RLock()
	defer fw.mu.RUnlock()
	return slices.Sorted(maps.Keys(fw.files))
}

func (fw *FileWatcher) addDir(dir string) error {
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	fw.logger.Debug("watching directory", zap.String("dir", dir))
	return nil
}

// Stop stops the file watcher. Pending changes are discarded.
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()
	fw.debouncer.Stop()
	return fw.watcher.Close()
}

// watch is the main event loop
func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if fw.matches(event.Name) {
				fw.logger.Info("file changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
				fw.debouncer.Add(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", zap.Error(err))

		case <-fw.stopChan:
			return
		}
	}
}

// directories returns the sorted, distinct parent directories of the files.
// Callers hold fw.mu.
func (fw *FileWatcher) directories() []string {
	dirs := make([]string, 0, len(fw.files))
	for f := range fw.files {
		dirs = append(dirs, filepath.Dir(f))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

// matches reports whether path is one of the watched files
func (fw *FileWatcher) matches(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	fw.mu.RLock()
	defer fw.mu.RUnlock()
	_, ok := fw.files[abs]
	return ok
}

// Debouncer collects file changes and triggers callbacks after a delay
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	running  sync.Mutex
	callback func([]string)
	stopped  bool
}

// NewDebouncer creates a new debouncer instance
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
	}
}

// Add records a change and restarts the delay
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}

	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

// flush calls the callback with the accumulated files, sorted. Callbacks run
// one at a time; changes arriving meanwhile are picked up by the next flush.
func (d *Debouncer) flush() {
	d.running.Lock()
	defer d.running.Unlock()

	d.mutex.Lock()
	if d.stopped || len(d.files) == 0 {
		d.mutex.Unlock()
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}
	slices.Sort(files)

	d.files = make(map[string]struct{})
	callback := d.callback
	d.mutex.Unlock()

	if callback != nil {
		callback(files)
	}
}

// SetCallback sets the callback function
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Stop stops the debouncer; later calls to Add are ignored
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.stopped = true
}
