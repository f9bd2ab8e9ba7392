package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watcher reloads the configuration when its file changes.
type Watcher struct {
	v *viper.Viper

	mu        sync.RWMutex
	current   *Config
	callbacks []func(*Config)
	errFn     func(error)
	stopped   bool
}

// NewWatcher loads the configuration and prepares to watch the file it came
// from. Nothing is watched until Start.
func NewWatcher(cfgFile string) (*Watcher, error) {
	v := newViper()
	if err := readConfig(v, cfgFile); err != nil {
		return nil, err
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	return &Watcher{v: v, current: cfg}, nil
}

// File returns the watched file, or "" when only defaults were loaded.
func (w *Watcher) File() string {
	return w.v.ConfigFileUsed()
}

// OnChange registers fn to receive every successfully reloaded config.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// OnError registers fn to receive reload failures. The previous config stays
// current when a reload fails.
func (w *Watcher) OnError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errFn = fn
}

// Start begins watching. It is a no-op when no file was found.
func (w *Watcher) Start() error {
	if w.File() == "" {
		return nil
	}
	w.v.OnConfigChange(func(fsnotify.Event) {
		if err := w.reload(); err != nil {
			w.mu.RLock()
			fn := w.errFn
			w.mu.RUnlock()
			if fn != nil {
				fn(err)
			}
		}
	})
	w.v.WatchConfig()
	return nil
}

// Stop suppresses further callbacks. viper offers no way to remove its
// file watch, so events after Stop are dropped here.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
}

// Reload rereads the file and notifies callbacks.
func (w *Watcher) Reload() error {
	if err := w.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	return w.reload()
}

func (w *Watcher) reload() error {
	cfg, err := decode(w.v)
	if err != nil {
		return err
	}

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.current = cfg
	callbacks := append([]func(*Config){}, w.callbacks...)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
	return nil
}

// Current returns the last successfully loaded config.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}
