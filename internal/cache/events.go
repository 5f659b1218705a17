package cache

// EventType tells subscribers what happened to an entry
type EventType int

const (
	// EventUpdated means a fetch landed and replaced the collection
	EventUpdated EventType = iota + 1
	// EventFailed means a fetch failed; the previous collection is kept
	EventFailed
	// EventInvalidated means the entry was marked stale
	EventInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventUpdated:
		return "updated"
	case EventFailed:
		return "failed"
	case EventInvalidated:
		return "invalidated"
	}
	return "unknown"
}

// Event is delivered to the subscribers of a kind
type Event struct {
	Kind Kind
	Type EventType
	Err  error
}

// Subscribe registers interest in kind and starts a fetch when the entry is
// absent or stale. Invalidating a subscribed kind refetches it immediately.
// The returned func unsubscribes and closes the channel; it does not cancel a
// fetch already in flight.
func (c *Cache) Subscribe(kind Kind) (<-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	e, ok := c.entries[kind]
	if !ok {
		close(ch)
		return ch, func() {}
	}

	c.nextSub++
	id := c.nextSub
	e.subscribers[id] = ch
	c.triggerLocked(kind, e, true)

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if sub, ok := e.subscribers[id]; ok {
			delete(e.subscribers, id)
			close(sub)
		}
	}
}

// broadcastLocked never blocks; a subscriber with a full buffer misses the event
func broadcastLocked(e *entry, ev Event) {
	for _, ch := range e.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}
