package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/lumenrt/lumen/log"
)

var logger = log.New("config")

// Watches a configuration file and reloads it whenever it changes.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// Watch path for edits. onChange is invoked from the watcher goroutine with
// the reloaded configuration or the error that prevented loading it. The
// parent directory is watched so that editors that replace the file on save
// are also detected.
func Watch(path string, onChange func(Config, error)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    absPath,
		watcher: fw,
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop(onChange)
	return w, nil
}

func (w *Watcher) loop(onChange func(Config, error)) {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debugf("reloading %s after %s", w.path, event.Op)
			onChange(Load(w.path))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warningf("watcher error: %v", err)
		}
	}
}

// Stop watching. No callbacks are invoked once Close returns.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
