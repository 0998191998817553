package mirror

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/blotsync/internal/logging"
)

// DefaultDebounce is the settle time used when none is configured.
const DefaultDebounce = 50 * time.Millisecond

// WatcherStats reports watcher activity.
type WatcherStats struct {
	// Events is the number of file events seen for the watched file.
	Events int64
	// Deliveries is the number of contents sent.
	Deliveries int64
	// Errors is the number of watch or read errors.
	Errors int64
	// LastError is the most recent error.
	LastError error
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits after the last write before
// reading the file. Non-positive values keep the default.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l.WithComponent("watcher")
		}
	}
}

// Watcher delivers the content of one file each time it settles after a
// change. The file's directory is watched so that editors which replace the
// file by rename are still followed.
type Watcher struct {
	path   string
	delay  time.Duration
	logger *logging.Logger

	fsw *fsnotify.Watcher

	content chan string
	errors  chan error

	mu        sync.Mutex
	timer     *time.Timer
	lastError error
	closed    bool
	closeCh   chan struct{}
	closedWg  sync.WaitGroup

	events     int64
	deliveries int64
	errCount   int64
}

// NewWatcher starts watching path.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		delay:   DefaultDebounce,
		logger:  logging.Null,
		fsw:     fsw,
		content: make(chan string, 1),
		errors:  make(chan error, 10),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Content returns the channel receiving the file's content after changes.
// A slow reader only ever sees the latest content.
func (w *Watcher) Content() <-chan string {
	return w.content
}

// Errors returns the error channel.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stats returns watcher statistics.
func (w *Watcher) Stats() WatcherStats {
	w.mu.Lock()
	last := w.lastError
	w.mu.Unlock()
	return WatcherStats{
		Events:     atomic.LoadInt64(&w.events),
		Deliveries: atomic.LoadInt64(&w.deliveries),
		Errors:     atomic.LoadInt64(&w.errCount),
		LastError:  last,
	}
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.closedWg.Wait()
	close(w.content)
	close(w.errors)
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			atomic.AddInt64(&w.events, 1)
			w.schedule()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.fail(err)
		}
	}
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.deliver)
}

// deliver reads the file and replaces any undelivered content with it.
func (w *Watcher) deliver() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// A rename-based save may leave the file briefly missing; the
		// following create event schedules another read.
		if !os.IsNotExist(err) {
			w.fail(err)
		}
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case <-w.content:
	default:
	}
	w.content <- string(data)
	atomic.AddInt64(&w.deliveries, 1)
	w.logger.Debug("delivered %d bytes from %s", len(data), w.path)
}

func (w *Watcher) fail(err error) {
	atomic.AddInt64(&w.errCount, 1)
	w.logger.Warn("watch error: %v", err)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastError = err
	if w.closed {
		return
	}
	select {
	case w.errors <- err:
	default:
	}
}
