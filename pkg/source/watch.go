package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is emitted by Watch when the event file may have changed. Err is set
// when the watcher itself reported a problem.
type Change struct {
	Path string
	Err  error
}

// ThrottleDelay is how long Watch waits for a burst of writes to settle.
const ThrottleDelay = 100 * time.Millisecond

// Watch streams changes to the source file until ctx is cancelled. The
// directory is watched rather than the file so editors that replace the file
// on save keep triggering. Slow consumers miss coalesced duplicates, never
// the final change.
func (s *Source) Watch(ctx context.Context) (<-chan Change, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("source: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				s.Log.WithError(err).Warn("source: watcher close")
			}
		})
	}

	dir := filepath.Dir(s.Path)
	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("source: watch %s: %w", dir, err)
	}

	changes := make(chan Change, 1)

	go func() {
		var mu sync.Mutex
		closed := false
		defer func() {
			mu.Lock()
			closed = true
			close(changes)
			mu.Unlock()
		}()
		defer closeWatcher()

		send := func(c Change) {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			select {
			case changes <- c:
			default:
				// One change is already queued; it causes the same reload.
			}
		}

		throttle := newThrottle(ThrottleDelay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.Log.WithError(err).Warn("source: watcher error")
				throttle.Enqueue(Change{Path: s.Path, Err: err}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != s.Path {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				s.Log.WithField("op", evt.Op.String()).Debug("source: file changed")
				throttle.Enqueue(Change{Path: s.Path}, send)
			}
		}
	}()

	return changes, nil
}

// throttle coalesces rapid notifications so a burst of writes produces one
// reload.
type throttle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending *Change
	delay   time.Duration
}

func newThrottle(delay time.Duration) *throttle {
	return &throttle{delay: delay}
}

func (t *throttle) Enqueue(c Change, send func(Change)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil || c.Err != nil {
		t.pending = &c
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *throttle) flush(send func(Change)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.timer = nil
	t.mu.Unlock()

	if pending != nil {
		send(*pending)
	}
}

func (t *throttle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
