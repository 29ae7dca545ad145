// Package watch re-runs a callback when preset files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	lintlog "github.com/lugassawan/lintcfg/internal/log"
)

// DefaultDebounce collapses bursts of events from editors that write a
// file in several steps.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches directories and fires OnChange after activity settles.
type Watcher struct {
	// Dirs are watched non-recursively.
	Dirs []string
	// Match filters events by file path. Nil accepts every event.
	Match func(path string) bool
	// OnChange runs on the watch goroutine; a slow callback delays the
	// next one.
	OnChange func(ctx context.Context)
	Debounce time.Duration
	Logger   *zerolog.Logger
}

// Run blocks until ctx is done or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	if w.OnChange == nil {
		return errors.New("watch: OnChange is required")
	}
	if len(w.Dirs) == 0 {
		return errors.New("watch: no directories to watch")
	}

	log := lintlog.WithComponent("watch")
	if w.Logger != nil {
		log = *w.Logger
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range Dedupe(w.Dirs) {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		log.Debug().Str("dir", dir).Msg("watching")
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) || (w.Match != nil && !w.Match(event.Name)) {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("changed")
			timer.Reset(debounce)

		case <-timer.C:
			w.OnChange(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}

func relevant(e fsnotify.Event) bool {
	return e.Has(fsnotify.Write) || e.Has(fsnotify.Create) ||
		e.Has(fsnotify.Rename) || e.Has(fsnotify.Remove)
}

// Dedupe cleans dirs and drops repeats, keeping first-seen order.
func Dedupe(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = filepath.Clean(d)
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out
}
