package level

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before a change is reported.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports which maps changed on disk. Editors often write a file
// in several steps, so events for the same map are coalesced until the
// directory has been quiet for the debounce interval.
type Watcher struct {
	watcher  *fsnotify.Watcher
	log      *log.Logger
	debounce time.Duration

	// Events receives map ids. Errors receives watcher failures.
	// Both are closed once the watcher stops.
	Events chan int
	Errors chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching dir for level file changes.
func NewWatcher(dir string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher:  w,
		log:      logger,
		debounce: debounce,
		Events:   make(chan int, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	pending := make(map[int]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			id, ok := IDFromName(event.Name)
			if !ok {
				continue
			}
			w.log.Debug("level file changed", "file", event.Name, "op", event.Op.String())
			pending[id] = struct{}{}
			timer.Reset(w.debounce)
		case <-timer.C:
			ids := make([]int, 0, len(pending))
			for id := range pending {
				ids = append(ids, id)
			}
			sort.Ints(ids)
			clear(pending)
			for _, id := range ids {
				select {
				case w.Events <- id:
				case <-w.closeCh:
					return
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				w.log.Warn("level watcher error dropped", "err", err)
			}
		case <-w.closeCh:
			return
		}
	}
}
