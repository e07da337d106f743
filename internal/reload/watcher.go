package reload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"intentrouter/router"
)

// DefaultDebounce пауза после последнего события перед перезагрузкой
const DefaultDebounce = 300 * time.Millisecond

// Stats счетчики перезагрузок
type Stats struct {
	Reloads  uint64 `json:"reloads"`
	Failures uint64 `json:"failures"`
}

// Watcher следит за файлом правил и подменяет маршрутизатор в Holder после успешной сборки.
// При ошибке остается прежняя таблица.
type Watcher struct {
	path          string
	maxReferences int
	holder        *router.Holder
	logger        *slog.Logger
	debounce      time.Duration

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	reloads  atomic.Uint64
	failures atomic.Uint64
}

// New создает наблюдатель за файлом правил path
func New(path string, maxReferences int, holder *router.Holder, logger *slog.Logger) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("rules path is required for watching")
	}
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rules path: %w", err)
	}

	return &Watcher{
		path:          abs,
		maxReferences: maxReferences,
		holder:        holder,
		logger:        logger.With("component", "reload"),
		debounce:      DefaultDebounce,
	}, nil
}

// SetDebounce меняет паузу перед перезагрузкой. Вызывается до Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start начинает наблюдение. Следит за каталогом, чтобы пережить замену файла редактором.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	w.watcher = watcher
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	go w.run(ctx)

	w.logger.Info("watching rules file", "path", w.path)
	return nil
}

// Stop останавливает наблюдение и дожидается завершения цикла событий
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	return w.watcher.Close()
}

// Reload загружает и собирает правила, при успехе подменяет маршрутизатор
func (w *Watcher) Reload() error {
	next, err := router.Load(w.path, w.maxReferences, w.logger)
	if err != nil {
		w.failures.Add(1)
		w.logger.Error("rules reload failed, keeping previous table",
			"path", w.path,
			"error", err,
			"generation", w.holder.Generation(),
		)
		return err
	}

	w.holder.Swap(next)
	w.reloads.Add(1)
	w.logger.Info("rules reloaded",
		"path", w.path,
		"rules", len(next.Table().Rules()),
		"version", next.Table().Version(),
		"generation", w.holder.Generation(),
	)
	return nil
}

// Stats возвращает счетчики перезагрузок
func (w *Watcher) Stats() Stats {
	return Stats{Reloads: w.reloads.Load(), Failures: w.failures.Load()}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("rules file event", "op", event.Op.String(), "path", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)

		case <-timerC:
			timerC = nil
			_ = w.Reload()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
