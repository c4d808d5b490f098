package internal

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce lets editors finish writing before the file is parsed again.
const debounce = 100 * time.Millisecond

// StartWatching parses files again whenever they are written and hands
// each result to report.
func (e *Engine) StartWatching(files []string, report func(Result)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isWatching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	// Watch the parent directories: editors often replace files rather than write them in place.
	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			watcher.Close()
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.isWatching = true
	go e.watchLoop(watcher, watched, report)
	return nil
}

// StopWatching stops the watcher started by StartWatching.
func (e *Engine) StopWatching() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isWatching {
		e.logger.Warn("not watching")
		return nil
	}
	e.isWatching = false
	return e.watcher.Close()
}

// watchLoop only reads the watched set and report it was started with.
func (e *Engine) watchLoop(watcher *fsnotify.Watcher, watched map[string]bool, report func(Result)) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event, watched, report)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event, watched map[string]bool, report func(Result)) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || !watched[abs] {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(debounce)
	res, err := e.Run(event.Name)
	if err != nil {
		e.logger.Error("error parsing changed file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	if report != nil {
		report(res)
	}
}
