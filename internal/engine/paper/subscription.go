package paper

// Subscription is the handle of a registered listener.
type Subscription struct {
	id       uint64
	listener Listener
	paper    *Paper
	active   bool
}

// Unsubscribe removes this listener. It is safe to call more than once and
// from inside a listener.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.paper == nil {
		return
	}
	s.paper.Unsubscribe(s)
}

// Active reports whether the listener is still registered.
func (s *Subscription) Active() bool {
	return s != nil && s.active
}

// Subscribe registers a listener for commits.
func (p *Paper) Subscribe(listener Listener) *Subscription {
	p.nextID++
	sub := &Subscription{
		id:       p.nextID,
		listener: listener,
		paper:    p,
		active:   !p.closed,
	}
	if p.closed {
		return sub
	}
	p.subs = append(p.subs, sub)
	return sub
}

// Unsubscribe removes a listener. A nil subscription clears every listener,
// which is what a host does at teardown.
func (p *Paper) Unsubscribe(sub *Subscription) {
	if sub == nil {
		p.UnsubscribeAll()
		return
	}
	for i, s := range p.subs {
		if s == sub {
			s.active = false
			p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
			return
		}
	}
}

// UnsubscribeAll removes every listener.
func (p *Paper) UnsubscribeAll() {
	for _, s := range p.subs {
		s.active = false
	}
	p.subs = nil
}

// ListenerCount returns the number of registered listeners.
func (p *Paper) ListenerCount() int {
	return len(p.subs)
}
