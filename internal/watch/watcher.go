// Package watch keeps an eye on a single directory and re-runs organizing
// passes when new files appear.
package watch

import (
	"os"
	"sync"
	"time"

	"organizer/internal/errors"
	"organizer/internal/log"

	"github.com/fsnotify/fsnotify"
)

// FileEvent is a file creation or write observed in the watched directory.
type FileEvent struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors one directory for new files using fsnotify.
type Watcher struct {
	directory string

	// Channel delivering file events to the consumer
	events chan FileEvent

	// Channel to signal stop
	stop chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	mu      sync.Mutex
	running bool
}

// New creates a watcher for directory.
func New(directory string) (*Watcher, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, errors.NewOrganizeError("cannot access directory", directory, errors.SetupFailed, err)
	}
	if !info.IsDir() {
		return nil, errors.NewOrganizeError("path is not a directory", directory, errors.SetupFailed, nil)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsWatcher.Add(directory); err != nil {
		fsWatcher.Close()
		return nil, errors.Wrapf(err, "failed to watch directory %s", directory)
	}

	return &Watcher{
		directory: directory,
		events:    make(chan FileEvent, 10),
		stop:      make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Events returns the channel that delivers file events. It is closed when
// the watcher stops.
func (w *Watcher) Events() <-chan FileEvent {
	return w.events
}

// Start begins delivering events.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	go w.loop()

	log.LogWithFields(log.F("directory", w.directory)).Info("Watching directory")
	return nil
}

func (w *Watcher) loop() {
	// Only the loop closes the events channel, after its last send.
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}

			// The file can vanish between the event and the stat.
			info, err := os.Stat(event.Name)
			if err != nil {
				if !os.IsNotExist(err) {
					log.LogWithFields(log.F("file", event.Name), log.F("error", err)).Error("Error stating file")
				}
				continue
			}
			if info.IsDir() {
				continue
			}

			ev := FileEvent{Path: event.Name, Op: event.Op, Timestamp: time.Now()}
			select {
			case w.events <- ev:
			default:
				log.LogWithFields(log.F("file", event.Name)).Warn("Event channel is full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-w.stop:
			return
		}
	}
}

// Stop halts the watcher. The events channel is closed once the event
// loop has wound down.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	close(w.stop)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	w.running = false

	log.Info("Watcher stopped.")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
