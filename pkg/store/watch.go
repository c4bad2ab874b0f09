package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes what changed in the store.
type EventType int

const (
	// EventFilterChanged means a filter slot was written or cleared.
	EventFilterChanged EventType = iota
	// EventResultChanged means a dialog result was written.
	EventResultChanged
)

func (t EventType) String() string {
	switch t {
	case EventFilterChanged:
		return "filter"
	case EventResultChanged:
		return "result"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is emitted by Watch when the store changes on disk.
type Event struct {
	Type EventType
	Name string
}

// Watch streams change events until ctx is cancelled. Bursts are coalesced
// and events are dropped when the consumer is not draining the channel.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	if s.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	dirs := []string{s.basePath}
	for _, prefix := range []string{filterPrefix, resultPrefix} {
		dirs = append(dirs, filepath.Join(s.basePath, prefix))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure %s: %w", dir, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	for _, dir := range dirs[1:] {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		}()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
			}
		}
		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev, ok := s.eventForPath(evt.Name); ok {
					throttle.Enqueue(ev, send)
				}
			}
		}
	}()
	return events, nil
}

// eventForPath maps base/<prefix>/<name>.json back to an event.
func (s *Store) eventForPath(path string) (Event, bool) {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil {
		return Event{}, false
	}
	dir, file := filepath.Split(rel)
	name, ok := strings.CutSuffix(file, ".json")
	if !ok || name == "" {
		return Event{}, false
	}
	switch filepath.Clean(dir) {
	case filterPrefix:
		return Event{Type: EventFilterChanged, Name: name}, true
	case resultPrefix:
		return Event{Type: EventResultChanged, Name: name}, true
	}
	return Event{}, false
}

// eventThrottle coalesces rapid notifications into one per burst.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[ev] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = nil
	if t.stopped {
		return
	}
	for ev := range t.pending {
		send(ev)
	}
	t.pending = make(map[Event]struct{})
}

// Stop drops pending events. send is never called after Stop returns.
func (t *eventThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
