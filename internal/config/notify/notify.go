// Package notify delivers configuration change notifications.
//
// Observers subscribe to every change or to one configuration section.
// Delivery is synchronous and in subscription order; a panicking
// observer is recovered so the others still run.
package notify

import (
	"fmt"
	"sort"
	"sync"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a section's value changed.
	ChangeSet ChangeType = iota

	// ChangeReload indicates the configuration was reloaded. It is sent
	// once per reload after the section changes.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Section is the changed section, e.g. "keymap". Empty for reloads.
	Section string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous section value (may be nil).
	OldValue any

	// NewValue is the new section value (may be nil).
	NewValue any

	// Source identifies where the change came from, usually a file path.
	Source string
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	section  string
	observer Observer
}

// Notifier manages configuration change subscriptions.
type Notifier struct {
	mu      sync.RWMutex
	entries map[uint64]entry
	nextID  uint64
	onPanic func(any)
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithPanicHandler sets the function that receives recovered observer
// panics.
func WithPanicHandler(fn func(any)) Option {
	return func(n *Notifier) {
		n.onPanic = fn
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{entries: make(map[uint64]entry)}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.add("", observer)
}

// SubscribeSection registers an observer for one section. It also
// receives reload notifications.
func (n *Notifier) SubscribeSection(section string, observer Observer) *Subscription {
	return n.add(section, observer)
}

func (n *Notifier) add(section string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.entries[n.nextID] = entry{section: section, observer: observer}
	return &Subscription{id: n.nextID, notifier: n}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.entries, id)
}

// Count returns the number of subscriptions.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

// Notify sends a change to every matching observer.
func (n *Notifier) Notify(change Change) {
	for _, obs := range n.matching(change) {
		n.safeCall(obs, change)
	}
}

// NotifyReload is a convenience for a reload change.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

func (n *Notifier) matching(change Change) []Observer {
	n.mu.RLock()
	defer n.mu.RUnlock()

	ids := make([]uint64, 0, len(n.entries))
	for id, e := range n.entries {
		if e.section == "" || change.Type == ChangeReload || e.section == change.Section {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Observer, len(ids))
	for i, id := range ids {
		out[i] = n.entries[id].observer
	}
	return out
}

func (n *Notifier) safeCall(obs Observer, change Change) {
	defer func() {
		if r := recover(); r != nil && n.onPanic != nil {
			n.onPanic(fmt.Errorf("config observer panic on %s %q: %v", change.Type, change.Section, r))
		}
	}()
	obs(change)
}
