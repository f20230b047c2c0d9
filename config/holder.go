package config

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// reloadDelay coalesces bursts of file events (editors often write twice).
const reloadDelay = 100 * time.Millisecond

// Holder serves the current configuration and replaces it when the file
// changes or the process receives SIGHUP. Only the query defaults and the log
// level are applied without a restart; listeners decide what to do with the
// rest.
type Holder struct {
	current atomic.Pointer[Config]
	path    string
	logger  zerolog.Logger

	mu        sync.Mutex
	listeners []func(*Config)

	requests chan string
	stopCh   chan struct{}
	stopOnce sync.Once
	watcher  *fsnotify.Watcher
}

// NewHolder loads path and starts the reload loop. Call Stop to release it.
func NewHolder(path string, logger zerolog.Logger) (*Holder, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	cfg, err := Load(abs)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	h := &Holder{
		path:     abs,
		logger:   logger.With().Str("config", abs).Logger(),
		requests: make(chan string, 1),
		stopCh:   make(chan struct{}),
	}
	h.current.Store(cfg)
	go h.loop()
	return h, nil
}

// Static wraps cfg in a Holder that never reloads.
func Static(cfg *Config) *Holder {
	h := &Holder{logger: zerolog.Nop(), stopCh: make(chan struct{})}
	h.current.Store(cfg)
	return h
}

// Get returns the current configuration. Callers must not modify it.
func (h *Holder) Get() *Config { return h.current.Load() }

// OnChange registers fn to run after a reload that changed the configuration.
func (h *Holder) OnChange(fn func(*Config)) {
	h.mu.Lock()
	h.listeners = append(h.listeners, fn)
	h.mu.Unlock()
}

// Reload reads the file now. A file that fails to load or validate leaves the
// current configuration in place.
func (h *Holder) Reload() error {
	if h.path == "" {
		return nil
	}
	next, err := Load(h.path)
	if err != nil {
		h.logger.Error().Err(err).Msg("config reload failed, keeping current config")
		return fmt.Errorf("reload config: %w", err)
	}
	prev := h.current.Swap(next)
	if reflect.DeepEqual(prev, next) {
		h.logger.Debug().Msg("config unchanged")
		return nil
	}
	h.report(prev, next)

	h.mu.Lock()
	fns := make([]func(*Config), len(h.listeners))
	copy(fns, h.listeners)
	h.mu.Unlock()
	for _, fn := range fns {
		fn(next)
	}
	return nil
}

// WatchFile reloads after writes to the config file. The directory is watched
// so that editors replacing the file by rename are seen too.
func (h *Holder) WatchFile() error {
	if h.path == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(h.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(h.path), err)
	}
	h.watcher = w

	name := filepath.Base(h.path)
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) == name && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					h.request("file " + ev.Op.String())
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				h.logger.Warn().Err(err).Msg("config watcher")
			case <-h.stopCh:
				return
			}
		}
	}()
	return nil
}

// WatchSignals reloads on SIGHUP.
func (h *Holder) WatchSignals() {
	if h.path == "" {
		return
	}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP)
	go func() {
		defer signal.Stop(sig)
		for {
			select {
			case <-sig:
				h.request("SIGHUP")
			case <-h.stopCh:
				return
			}
		}
	}()
}

// Stop ends watching. It may be called more than once.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		if h.watcher != nil {
			h.watcher.Close()
		}
	})
}

// request queues a reload; pending requests collapse into one.
func (h *Holder) request(reason string) {
	select {
	case h.requests <- reason:
	default:
	}
}

func (h *Holder) loop() {
	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case reason := <-h.requests:
			h.logger.Debug().Str("reason", reason).Msg("config reload requested")
			timer.Reset(reloadDelay)
		case <-timer.C:
			_ = h.Reload()
		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) report(prev, next *Config) {
	ev := h.logger.Info()
	if prev.Logging.Level != next.Logging.Level {
		ev = ev.Str("log_level", next.Logging.Level)
	}
	if prev.Query != next.Query {
		ev = ev.Int("query_limit", next.Query.Limit).
			Str("query_sort", next.Query.SortField+" "+next.Query.SortOrder)
	}
	ev.Msg("config reloaded")

	if fields := restartFields(prev, next); len(fields) > 0 {
		h.logger.Warn().Strs("fields", fields).Msg("changes take effect after restart")
	}
}

// restartFields lists the changed settings that a running server only reads
// at startup.
func restartFields(prev, next *Config) []string {
	var out []string
	if prev.API != next.API {
		out = append(out, "api")
	}
	if prev.Server != next.Server {
		out = append(out, "server")
	}
	if prev.Metrics != next.Metrics {
		out = append(out, "metrics")
	}
	if prev.Logging.Format != next.Logging.Format {
		out = append(out, "logging.format")
	}
	if prev.Language != next.Language {
		out = append(out, "language")
	}
	return out
}
