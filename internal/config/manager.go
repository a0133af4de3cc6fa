package config

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/paper/internal/config/notify"
	"github.com/dshills/paper/internal/config/watcher"
)

// Manager holds the current configuration and reloads it on change.
type Manager struct {
	mu       sync.RWMutex
	path     string
	opts     []Option
	current  *Config
	notifier *notify.Notifier
	watcher  *watcher.Watcher
	logger   zerolog.Logger
	debounce time.Duration
	closed   bool
	wg       sync.WaitGroup
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(l zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l.With().Str("component", "config").Logger()
	}
}

// WithLoadOptions sets the options used for every load.
func WithLoadOptions(opts ...Option) ManagerOption {
	return func(m *Manager) {
		m.opts = append(m.opts, opts...)
	}
}

// WithDebounce sets the watcher debounce delay.
func WithDebounce(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.debounce = d
	}
}

// NewManager loads the configuration at path.
func NewManager(path string, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		path:     path,
		logger:   zerolog.Nop(),
		debounce: watcher.DefaultConfig().Debounce,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.notifier = notify.New(notify.WithPanicHandler(func(r any) {
		m.logger.Error().Interface("panic", r).Msg("config observer panicked")
	}))

	cfg, err := Load(path, m.opts...)
	if err != nil {
		return nil, err
	}
	m.current = cfg
	return m, nil
}

// SetLogger replaces the manager's logger. Hosts that build their logger
// from the loaded configuration call it once the logger exists.
func (m *Manager) SetLogger(l zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = l.With().Str("component", "config").Logger()
}

// Config returns the current configuration. Callers must not modify it.
func (m *Manager) Config() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Path returns the config file path.
func (m *Manager) Path() string {
	return m.path
}

// Subscribe registers an observer for every change.
func (m *Manager) Subscribe(observer notify.Observer) *notify.Subscription {
	return m.notifier.Subscribe(observer)
}

// SubscribeSection registers an observer for one section.
func (m *Manager) SubscribeSection(section string, observer notify.Observer) *notify.Subscription {
	return m.notifier.SubscribeSection(section, observer)
}

// Reload re-reads the configuration. On error the current configuration
// is kept. Observers are told about each changed section, then about the
// reload, and it returns the changed section names.
func (m *Manager) Reload() ([]string, error) {
	next, err := Load(m.path, m.opts...)
	if err != nil {
		m.logger.Warn().Err(err).Str("path", m.path).Msg("config reload failed, keeping previous")
		return nil, err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrManagerClosed
	}
	prev := m.current
	m.current = next
	m.mu.Unlock()

	changed := Diff(prev, next)
	m.logger.Info().Strs("sections", changed).Str("path", m.path).Msg("config reloaded")

	oldSections, newSections := prev.Sections(), next.Sections()
	for _, name := range changed {
		m.notifier.Notify(notify.Change{
			Section:  name,
			Type:     notify.ChangeSet,
			OldValue: oldSections[name],
			NewValue: newSections[name],
			Source:   m.path,
		})
	}
	m.notifier.NotifyReload(m.path)
	return changed, nil
}

// Watch starts reloading whenever the file changes, until ctx is done or
// the manager is closed. reload is called from the watcher goroutine; a
// nil reload calls Reload directly. Hosts with a single-threaded event
// loop pass a function that posts the reload to it.
func (m *Manager) Watch(ctx context.Context, reload func()) error {
	if m.path == "" {
		return nil
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}
	if m.watcher != nil {
		m.mu.Unlock()
		return nil
	}
	w, err := watcher.New(m.path, watcher.WithDebounce(m.debounce))
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.watcher = w
	m.mu.Unlock()

	if reload == nil {
		reload = func() { _, _ = m.Reload() }
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events():
				if !ok {
					return
				}
				m.logger.Debug().Str("op", ev.Op.String()).Msg("config file changed")
				reload()
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				m.logger.Warn().Err(err).Msg("config watcher error")
			}
		}
	}()
	return nil
}

// Close stops watching.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	w := m.watcher
	m.mu.Unlock()

	var err error
	if w != nil {
		err = w.Close()
	}
	m.wg.Wait()
	return err
}
