package settings

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// reloadDebounce is how long the file must stay unchanged before it is reloaded. Editors
// commonly emit several events for a single save.
const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a settings file every time it changes on disk. Successfully decoded and
// validated settings are sent on Updates, failures on Errors.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	log     *logrus.Entry

	Updates chan Settings
	Errors  chan error

	closeCh chan struct{}
	once    sync.Once
}

// Watch starts watching the settings file at the path. The directory of the file is watched
// rather than the file itself so that editors replacing the file are picked up.
func Watch(path string, log *logrus.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		log:     log.WithField("settings", abs),
		Updates: make(chan Settings, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Updates and Errors are closed once the watcher has stopped.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Updates)
	defer close(w.Errors)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || filepath.Clean(ev.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			s, err := Load(w.path)
			if err != nil {
				w.log.Warnf("unable to reload settings: %v", err)
				w.send(nil, err)
				continue
			}
			w.log.Debug("settings reloaded")
			w.send(&s, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

// send delivers an update or an error, replacing a pending update that was not consumed yet.
func (w *Watcher) send(s *Settings, err error) {
	if err != nil {
		select {
		case w.Errors <- err:
		case <-w.closeCh:
		default:
		}
		return
	}
	for {
		select {
		case w.Updates <- *s:
			return
		case <-w.closeCh:
			return
		default:
			select {
			case <-w.Updates:
			default:
			}
		}
	}
}
