package workers

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 150 * time.Millisecond

// Invalidator drops cached snapshots of the store.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Reloader re-reads the store into memory.
type Reloader interface {
	LoadAll(ctx context.Context) error
}

type ReloadJob struct {
	Reason string
}

// ReloadWorker keeps readers of the session file fresh: every job drops the cache first, then
// reloads the in-memory list. Either collaborator may be nil.
type ReloadWorker struct {
	cache    Invalidator
	store    Reloader
	jobs     chan ReloadJob
	debounce time.Duration
	done     func(ReloadJob)
}

func NewReloadWorker(cache Invalidator, store Reloader) *ReloadWorker {
	return &ReloadWorker{
		cache:    cache,
		store:    store,
		jobs:     make(chan ReloadJob, 100),
		debounce: defaultDebounce,
	}
}

// OnProcessed registers a hook called after each job. Call it before Start.
func (w *ReloadWorker) OnProcessed(fn func(ReloadJob)) {
	w.done = fn
}

func (w *ReloadWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[WORKER] Reload worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("[WORKER] Reload worker shutting down...")
				return
			}
		}
	}()
}

func (w *ReloadWorker) Enqueue(reason string) {
	select {
	case w.jobs <- ReloadJob{Reason: reason}:
	default:
		log.Printf("[WORKER] Reload queue full! Dropping job (%s)", reason)
	}
}

func (w *ReloadWorker) processJob(ctx context.Context, job ReloadJob) {
	if w.cache != nil {
		if err := w.cache.Invalidate(ctx); err != nil {
			log.Printf("[WORKER] Failed to invalidate cache (%s): %v", job.Reason, err)
		}
	}
	if w.store != nil {
		if err := w.store.LoadAll(ctx); err != nil {
			log.Printf("[WORKER] Failed to reload entries (%s): %v", job.Reason, err)
		}
	}
	if w.done != nil {
		w.done(job)
	}
}

// Watch enqueues a job whenever path changes on disk. The parent directory is watched because
// saves replace the file through a rename. Bursts of events collapse into one job.
func (w *ReloadWorker) Watch(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("reload worker: resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("reload worker: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("reload worker: watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()

		var (
			mu    sync.Mutex
			timer *time.Timer
		)
		schedule := func(reason string) {
			mu.Lock()
			defer mu.Unlock()
			if timer != nil {
				return
			}
			timer = time.AfterFunc(w.debounce, func() {
				mu.Lock()
				timer = nil
				mu.Unlock()
				w.Enqueue(reason)
			})
		}

		for {
			select {
			case <-ctx.Done():
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				mu.Unlock()
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[WORKER] Watcher error: %v", err)
				schedule("watcher error")
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				schedule(evt.Op.String())
			}
		}
	}()

	return nil
}
