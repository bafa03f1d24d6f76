package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups editor save bursts into one run.
const DefaultDebounce = 150 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Debounce time.Duration
	// Write passes each run through WriteResults.
	Write bool
}

// WatchRun is reported after every expansion run.
type WatchRun struct {
	// Trigger: изменённые файлы; пусто для первого прогона
	Trigger []string
	Result  *Result
	Written int
	Err     error
}

// Watch expands dir once, then again after every debounced batch of
// source changes, until ctx is cancelled.
// Повторная запись после --write безопасна: раскрытие идемпотентно,
// второй прогон ничего не меняет.
func Watch(ctx context.Context, dir string, opts Options, wopts WatchOptions, onRun func(WatchRun)) error {
	if wopts.Debounce <= 0 {
		wopts.Debounce = DefaultDebounce
	}
	if onRun == nil {
		onRun = func(WatchRun) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addWatchDirs(watcher, dir, opts.Exclude); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	run := func(trigger []string) {
		res, err := ExpandDir(ctx, dir, opts)
		r := WatchRun{Trigger: trigger, Result: res, Err: err}
		if err == nil && wopts.Write {
			r.Written, r.Err = WriteResults(res, opts.Progress)
		}
		onRun(r)
	}
	run(nil)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]struct{})
	)
	exts := opts.extensions()
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					// новый каталог: подписываемся и на него
					_ = addWatchDirs(watcher, event.Name, opts.Exclude)
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !hasExtension(event.Name, exts) || strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(wopts.Debounce)
			} else {
				timer.Reset(wopts.Debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			trigger := make([]string, 0, len(pending))
			for p := range pending {
				trigger = append(trigger, p)
			}
			sort.Strings(trigger)
			clear(pending)
			run(trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onRun(WatchRun{Err: fmt.Errorf("watcher: %w", err)})
		}
	}
}

// addWatchDirs подписывает watcher на root и все вложенные каталоги, кроме скрытых и исключённых.
func addWatchDirs(watcher *fsnotify.Watcher, root string, exclude []string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if rel, relErr := filepath.Rel(root, p); relErr == nil && rel != "." && excluded(filepath.ToSlash(rel), exclude) {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}
