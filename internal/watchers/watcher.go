package watchers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"outlog/internal/events"
	"outlog/internal/shared/loggers"
	"outlog/internal/streams"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

var ErrInvalidGlob = errors.New("invalid glob")

// Options configures which files under the root are watched.
type Options struct {
	Glob      string
	OutputDir string
	Debounce  time.Duration
}

//go:generate mockgen -source=watcher.go -destination=./mocks/watcher_mock.go -package=mocks
type Watcher interface {
	// Run forwards changes of matching outlogs to the producer until ctx is done.
	Run(ctx context.Context) error
	// Dirs returns the directories currently subscribed to.
	Dirs() []string
}

type watcher struct {
	root     string
	opts     Options
	producer streams.CompactionProducer
	fsw      *fsnotify.Watcher

	dirs    []string
	pending map[string]pendingEvent
}

type pendingEvent struct {
	op  string
	due time.Time
}

// NewWatcher subscribes to root and every directory below it except output directories.
// fsnotify is not recursive, so directories created later are added as they appear.
func NewWatcher(root string, opts Options, producer streams.CompactionProducer) (Watcher, error) {
	if !doublestar.ValidatePattern(opts.Glob) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGlob, opts.Glob)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}

	w := &watcher{
		root:     root,
		opts:     opts,
		producer: producer,
		fsw:      fsw,
		pending:  make(map[string]pendingEvent),
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *watcher) Dirs() []string {
	return slices.Clone(w.dirs)
}

func (w *watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	tick := w.opts.Debounce / 2
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	logger := loggers.Ctx(ctx)
	logger.Info().Msgf("watching %s for %s (%d dirs)", w.root, w.opts.Glob, len(w.dirs))

	for {
		select {
		case <-ctx.Done():
			return w.drain(ctx)
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return w.drain(ctx)
			}
			w.handle(ctx, ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("fs watcher error")
		case now := <-ticker.C:
			if err := w.flush(ctx, now); err != nil {
				return err
			}
		}
	}
}

func (w *watcher) handle(ctx context.Context, ev fsnotify.Event) {
	var op string
	switch {
	case ev.Has(fsnotify.Create):
		op = events.OpCreate
	case ev.Has(fsnotify.Write):
		op = events.OpWrite
	default:
		return
	}

	if op == events.OpCreate && w.isDir(ev.Name) {
		if err := w.addTree(ev.Name); err != nil {
			loggers.Ctx(ctx).Warn().Err(err).Msgf("cannot watch new directory %s", ev.Name)
		}
		return
	}

	rel, ok := w.match(ev.Name)
	if !ok {
		metricEventsTotal.WithLabelValues(op, outcomeIgnored).Inc()
		return
	}

	if _, exists := w.pending[rel]; exists {
		metricEventsTotal.WithLabelValues(op, outcomeDebounced).Inc()
	}
	w.pending[rel] = pendingEvent{op: op, due: time.Now().Add(w.opts.Debounce)}
	if w.opts.Debounce <= 0 {
		_ = w.flush(ctx, time.Now())
	}
}

// flush publishes every pending change whose quiet period is over.
func (w *watcher) flush(ctx context.Context, now time.Time) error {
	var due []string
	for rel, p := range w.pending {
		if !p.due.After(now) {
			due = append(due, rel)
		}
	}
	return w.publish(ctx, due, now)
}

// drain publishes every pending change without waiting out its quiet period. Run drains after
// ctx is done, so publishing is detached from its cancellation.
func (w *watcher) drain(ctx context.Context) error {
	if len(w.pending) == 0 {
		return nil
	}
	loggers.Ctx(ctx).Debug().Msgf("queueing %d pending change(s) before stopping", len(w.pending))
	return w.publish(context.WithoutCancel(ctx), slices.Collect(maps.Keys(w.pending)), time.Now())
}

// publish hands the named pending changes to the producer in name order.
func (w *watcher) publish(ctx context.Context, due []string, now time.Time) error {
	slices.Sort(due)

	for _, rel := range due {
		p := w.pending[rel]
		delete(w.pending, rel)

		err := w.producer.Produce(ctx, &events.CompactionRequestedEvent{
			SourceName: rel,
			Op:         p.op,
			DetectedAt: now.UTC(),
		})
		if err != nil {
			metricEventsTotal.WithLabelValues(p.op, outcomeFailed).Inc()
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to queue %s: %w", rel, err)
		}
		metricEventsTotal.WithLabelValues(p.op, outcomeQueued).Inc()
	}
	return nil
}

// match returns the slash separated path relative to the root when name is a watched outlog.
func (w *watcher) match(name string) (string, bool) {
	rel, err := filepath.Rel(w.root, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if w.inOutputDir(rel) {
		return "", false
	}
	return rel, doublestar.MatchUnvalidated(w.opts.Glob, rel)
}

func (w *watcher) inOutputDir(rel string) bool {
	if w.opts.OutputDir == "" {
		return false
	}
	return slices.Contains(strings.Split(rel, "/"), w.opts.OutputDir)
}

func (w *watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && d.Name() == w.opts.OutputDir {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}
		w.dirs = append(w.dirs, path)
		return nil
	})
}

func (w *watcher) isDir(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.IsDir()
}
